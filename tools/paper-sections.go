package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paperiq/paperiq/internal/logger"
	"github.com/paperiq/paperiq/internal/storage"
	"github.com/paperiq/paperiq/models"
)

type PaperSectionsQuery struct {
	PaperID int64 `json:"paper_id"`
	// Kind optionally narrows the result to one section type, e.g.
	// "abstract" or "methodology".
	Kind string `json:"kind,omitempty"`
}

type SectionSummary struct {
	Kind            string  `json:"kind"`
	Confidence      float64 `json:"confidence"`
	ConfidenceLevel string  `json:"confidence_level"`
	WordCount       int     `json:"word_count"`
	Preview         string  `json:"preview"`
}

type PaperSectionsResponse struct {
	PaperID  int64            `json:"paper_id"`
	Sections []SectionSummary `json:"sections,omitempty"`
	// Content is only set when a single kind was requested.
	Content string `json:"content,omitempty"`
}

func PaperSectionsTool() *mcp.Tool {
	inputschema, err := jsonschema.For[PaperSectionsQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "paper-sections",
		Description: "List the detected sections of a parsed paper with confidence scores and content previews, or retrieve the full content of one section by kind (abstract, introduction, methodology, results, discussion, conclusion, or references).",
		InputSchema: inputschema,
	}
}

func PaperSectionsToolHandler(ctx context.Context, req *mcp.CallToolRequest, query PaperSectionsQuery, store storage.Store, log logger.Logger) (*mcp.CallToolResult, *PaperSectionsResponse, error) {
	log.Info("paper-sections tool called for paper %d", query.PaperID)

	if query.Kind != "" {
		kind := models.ParseSectionKind(query.Kind)
		if kind == models.KindUnknown {
			return nil, nil, fmt.Errorf("unknown section kind: %s", query.Kind)
		}

		sec, err := store.GetSection(ctx, query.PaperID, kind)
		if err != nil {
			log.Error("paper-sections tool failed: %v", err)
			return nil, nil, err
		}

		return nil, &PaperSectionsResponse{
			PaperID:  query.PaperID,
			Sections: []SectionSummary{summarizeSection(*sec)},
			Content:  sec.Content,
		}, nil
	}

	sections, err := store.GetSections(ctx, query.PaperID)
	if err != nil {
		log.Error("paper-sections tool failed: %v", err)
		return nil, nil, err
	}

	summaries := make([]SectionSummary, len(sections))
	for i, sec := range sections {
		summaries[i] = summarizeSection(sec)
	}

	return nil, &PaperSectionsResponse{PaperID: query.PaperID, Sections: summaries}, nil
}

func summarizeSection(sec models.Section) SectionSummary {
	return SectionSummary{
		Kind:            string(sec.Kind),
		Confidence:      sec.Confidence,
		ConfidenceLevel: sec.ConfidenceLevel(),
		WordCount:       sec.WordCount,
		Preview:         sec.Preview(),
	}
}
