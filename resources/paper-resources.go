package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paperiq/paperiq/internal/storage"
	"github.com/paperiq/paperiq/models"
)

// PaperResourceHandler handles resource requests for parsed papers
type PaperResourceHandler struct {
	store storage.Store
}

// NewPaperResourceHandler creates a new paper resource handler
func NewPaperResourceHandler(store storage.Store) *PaperResourceHandler {
	return &PaperResourceHandler{store: store}
}

// ListResources returns a list of available resources
func (h *PaperResourceHandler) ListResources(ctx context.Context) ([]mcp.Resource, error) {
	papers, err := h.store.ListPapers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list papers: %w", err)
	}

	var resources []mcp.Resource
	for _, paper := range papers {
		name := paper.Title
		if name == "" {
			name = paper.Filename
		}

		resources = append(resources, mcp.Resource{
			URI:         fmt.Sprintf("paper://%d", paper.ID),
			Name:        fmt.Sprintf("%s (Paper)", name),
			Description: fmt.Sprintf("Parsed research paper: %s", name),
			MIMEType:    "application/json",
		})

		resources = append(resources, mcp.Resource{
			URI:         fmt.Sprintf("paper://%d/sections", paper.ID),
			Name:        fmt.Sprintf("%s (Sections)", name),
			Description: "All detected sections with confidence scores",
			MIMEType:    "application/json",
		})

		resources = append(resources, mcp.Resource{
			URI:         fmt.Sprintf("paper://%d/quality", paper.ID),
			Name:        fmt.Sprintf("%s (Quality)", name),
			Description: "Detection quality assessment for the paper",
			MIMEType:    "application/json",
		})
	}

	return resources, nil
}

// ReadResource reads a specific resource by URI
func (h *PaperResourceHandler) ReadResource(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	// Parse URI: paper://paper_id/resource_type/optional_kind
	if !strings.HasPrefix(uri, "paper://") {
		return nil, fmt.Errorf("invalid URI scheme, expected paper://")
	}

	parts := strings.Split(strings.TrimPrefix(uri, "paper://"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return nil, fmt.Errorf("invalid URI, missing paper ID")
	}

	paperID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid paper ID: %s", parts[0])
	}

	resourceType := ""
	if len(parts) > 1 {
		resourceType = parts[1]
	}

	var content string
	switch resourceType {
	case "":
		content, err = h.getPaperSummary(ctx, paperID)
	case "sections":
		if len(parts) > 2 {
			content, err = h.getSection(ctx, paperID, parts[2])
		} else {
			content, err = h.getAllSections(ctx, paperID)
		}
	case "quality":
		content, err = h.getQuality(ctx, paperID)
	default:
		return nil, fmt.Errorf("unknown resource type: %s", resourceType)
	}

	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     content,
			},
		},
	}, nil
}

func (h *PaperResourceHandler) getPaperSummary(ctx context.Context, paperID int64) (string, error) {
	paper, err := h.store.GetPaper(ctx, paperID)
	if err != nil {
		return "", err
	}

	kinds := make([]string, len(paper.Sections))
	for i, sec := range paper.Sections {
		kinds[i] = string(sec.Kind)
	}

	summary := map[string]interface{}{
		"paper_id":      paper.ID,
		"filename":      paper.Filename,
		"title":         paper.Title,
		"page_count":    paper.PageCount,
		"status":        paper.Status,
		"section_count": len(paper.Sections),
		"section_kinds": kinds,
		"quality":       paper.Quality,
		"available_resources": []string{
			fmt.Sprintf("paper://%d/sections", paper.ID),
			fmt.Sprintf("paper://%d/quality", paper.ID),
		},
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}

	return string(data), nil
}

func (h *PaperResourceHandler) getAllSections(ctx context.Context, paperID int64) (string, error) {
	sections, err := h.store.GetSections(ctx, paperID)
	if err != nil {
		return "", err
	}

	result := map[string]interface{}{
		"paper_id":      paperID,
		"section_count": len(sections),
		"sections":      sections,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal sections: %w", err)
	}

	return string(data), nil
}

func (h *PaperResourceHandler) getSection(ctx context.Context, paperID int64, kindName string) (string, error) {
	kind := models.ParseSectionKind(kindName)
	if kind == models.KindUnknown {
		return "", fmt.Errorf("unknown section kind: %s", kindName)
	}

	sec, err := h.store.GetSection(ctx, paperID, kind)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(sec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal section: %w", err)
	}

	return string(data), nil
}

func (h *PaperResourceHandler) getQuality(ctx context.Context, paperID int64) (string, error) {
	paper, err := h.store.GetPaper(ctx, paperID)
	if err != nil {
		return "", err
	}

	missing := make([]string, 0, len(models.AllExpectedKinds()))
	for _, kind := range paper.MissingKinds() {
		missing = append(missing, string(kind))
	}

	result := map[string]interface{}{
		"paper_id":      paper.ID,
		"quality_score": paper.Quality.Score,
		"quality_level": paper.Quality.Level,
		"section_count": len(paper.Sections),
		"missing_kinds": missing,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal quality: %w", err)
	}

	return string(data), nil
}
