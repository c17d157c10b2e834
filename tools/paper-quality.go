package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paperiq/paperiq/internal/logger"
	"github.com/paperiq/paperiq/internal/operations"
	"github.com/paperiq/paperiq/models"
)

type PaperQualityQuery struct {
	PaperID int64 `json:"paper_id"`
}

type PaperQualityResponse struct {
	PaperID      int64                    `json:"paper_id"`
	QualityScore float64                  `json:"quality_score"`
	QualityLevel string                   `json:"quality_level"`
	SectionCount int                      `json:"section_count"`
	MissingKinds []string                 `json:"missing_kinds,omitempty"`
	Checks       []models.ValidationCheck `json:"checks"`
	PassCount    int                      `json:"pass_count"`
	WarningCount int                      `json:"warning_count"`
	FailCount    int                      `json:"fail_count"`
}

func PaperQualityTool() *mcp.Tool {
	inputschema, err := jsonschema.For[PaperQualityQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "paper-quality",
		Description: "Report how well a paper's structure was recovered: the overall detection quality score and level, which expected sections are missing, and per-section content validation checks.",
		InputSchema: inputschema,
	}
}

func PaperQualityToolHandler(ctx context.Context, req *mcp.CallToolRequest, query PaperQualityQuery, pipeline *operations.Pipeline, log logger.Logger) (*mcp.CallToolResult, *PaperQualityResponse, error) {
	log.Info("paper-quality tool called for paper %d", query.PaperID)

	paper, err := pipeline.Store.GetPaper(ctx, query.PaperID)
	if err != nil {
		log.Error("paper-quality tool failed: %v", err)
		return nil, nil, err
	}

	report := pipeline.ValidatePaper(paper)

	missing := make([]string, 0, len(models.AllExpectedKinds()))
	for _, kind := range paper.MissingKinds() {
		missing = append(missing, string(kind))
	}

	response := &PaperQualityResponse{
		PaperID:      paper.ID,
		QualityScore: report.QualityScore,
		QualityLevel: report.QualityLevel,
		SectionCount: len(paper.Sections),
		MissingKinds: missing,
		Checks:       report.Checks,
		PassCount:    report.PassCount(),
		WarningCount: report.WarningCount(),
		FailCount:    report.FailCount(),
	}

	return nil, response, nil
}
