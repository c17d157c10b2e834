package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paperiq/paperiq/internal/logger"
	"github.com/paperiq/paperiq/internal/operations"
	"github.com/paperiq/paperiq/models"
)

type PaperParseQuery struct {
	ZoteroID string `json:"zotero_id,omitempty"`
	URL      string `json:"url,omitempty"`
	FilePath string `json:"file_path,omitempty"`
	RawData  []byte `json:"raw_data,omitempty"`
}

type PaperParseResponse struct {
	PaperID       int64    `json:"paper_id"`
	Title         string   `json:"title,omitempty"`
	PageCount     int      `json:"page_count"`
	SectionCount  int      `json:"section_count"`
	SectionKinds  []string `json:"section_kinds"`
	QualityScore  float64  `json:"quality_score"`
	QualityLevel  string   `json:"quality_level"`
	ResourcePaths []string `json:"resource_paths"`
}

func PaperParseTool() *mcp.Tool {
	inputschema, err := jsonschema.For[PaperParseQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "paper-parse",
		Description: "Parse a research paper PDF into its canonical sections (abstract, introduction, methodology, results, discussion, conclusion, references) with per-section confidence scores and an overall detection quality assessment. The paper can come from a Zotero attachment, a URL, a local file path, or raw PDF bytes. Already-parsed papers are returned from storage without re-parsing.",
		InputSchema: inputschema,
	}
}

func PaperParseToolHandler(ctx context.Context, req *mcp.CallToolRequest, query PaperParseQuery, pipeline *operations.Pipeline, log logger.Logger) (*mcp.CallToolResult, *PaperParseResponse, error) {
	log.Info("paper-parse tool called")

	source := models.SourceInfo{
		ZoteroID: query.ZoteroID,
		URL:      query.URL,
		Filename: query.FilePath,
	}

	paper, err := pipeline.GetOrParsePaper(ctx, source, query.RawData)
	if err != nil {
		log.Error("paper-parse tool failed: %v", err)
		return nil, nil, err
	}

	kinds := make([]string, len(paper.Sections))
	for i, sec := range paper.Sections {
		kinds[i] = string(sec.Kind)
	}

	response := &PaperParseResponse{
		PaperID:      paper.ID,
		Title:        paper.Title,
		PageCount:    paper.PageCount,
		SectionCount: len(paper.Sections),
		SectionKinds: kinds,
		QualityScore: paper.Quality.Score,
		QualityLevel: paper.Quality.Level,
		ResourcePaths: []string{
			fmt.Sprintf("paper://%d", paper.ID),
			fmt.Sprintf("paper://%d/sections", paper.ID),
			fmt.Sprintf("paper://%d/quality", paper.ID),
		},
	}

	return nil, response, nil
}
