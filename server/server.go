package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paperiq/paperiq/internal/config"
	"github.com/paperiq/paperiq/internal/extract"
	"github.com/paperiq/paperiq/internal/filestore"
	"github.com/paperiq/paperiq/internal/logger"
	"github.com/paperiq/paperiq/internal/operations"
	"github.com/paperiq/paperiq/internal/sections"
	"github.com/paperiq/paperiq/internal/storage"
	"github.com/paperiq/paperiq/internal/textclean"
	"github.com/paperiq/paperiq/internal/validate"
	"github.com/paperiq/paperiq/resources"
	"github.com/paperiq/paperiq/tools"
)

func CreateServer(log logger.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "paperiq", Version: "v0.1.0"}, nil)

	pipeline, err := buildPipeline(log)
	if err != nil {
		log.Fatal("Failed to initialize pipeline: %v", err)
	}

	paperResourceHandler := resources.NewPaperResourceHandler(pipeline.Store)

	// Register tools with pipeline and logger dependencies
	mcp.AddTool(server, tools.PaperParseTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.PaperParseQuery) (*mcp.CallToolResult, *tools.PaperParseResponse, error) {
		return tools.PaperParseToolHandler(ctx, req, query, pipeline, log)
	})

	mcp.AddTool(server, tools.PaperSectionsTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.PaperSectionsQuery) (*mcp.CallToolResult, *tools.PaperSectionsResponse, error) {
		return tools.PaperSectionsToolHandler(ctx, req, query, pipeline.Store, log)
	})

	mcp.AddTool(server, tools.PaperQualityTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.PaperQualityQuery) (*mcp.CallToolResult, *tools.PaperQualityResponse, error) {
		return tools.PaperQualityToolHandler(ctx, req, query, pipeline, log)
	})

	// Template for paper summary
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "paper://{paperId}",
		Name:        "paper",
		Description: "Parsed research paper with section and quality summary",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return paperResourceHandler.ReadResource(ctx, req.Params.URI)
	})

	// Template for all sections
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "paper://{paperId}/sections",
		Name:        "paper-sections",
		Description: "All detected sections of the paper with confidence scores",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return paperResourceHandler.ReadResource(ctx, req.Params.URI)
	})

	// Template for a single section by kind
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "paper://{paperId}/sections/{kind}",
		Name:        "paper-section",
		Description: "A single section by kind (abstract, introduction, methodology, results, discussion, conclusion, references)",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return paperResourceHandler.ReadResource(ctx, req.Params.URI)
	})

	// Template for the quality assessment
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "paper://{paperId}/quality",
		Name:        "paper-quality",
		Description: "Detection quality assessment: score, level, and missing sections",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return paperResourceHandler.ReadResource(ctx, req.Params.URI)
	})

	return server
}

// buildPipeline assembles the ingestion pipeline from configuration
func buildPipeline(log logger.Logger) (*operations.Pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log.Info("Initializing SQLite database at: %s", cfg.DBPath)
	store, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	files, err := filestore.New(cfg.UploadDir)
	if err != nil {
		store.Close()
		return nil, err
	}

	detCfg := sections.DefaultConfig()
	detCfg.MinSectionLength = cfg.MinSectionLength
	detCfg.HeaderFontRatio = cfg.HeaderFontRatio
	detCfg.HighQualityThreshold = cfg.HighQualityThreshold
	detCfg.MediumQualityThreshold = cfg.MediumQualityThreshold

	return &operations.Pipeline{
		Store:     store,
		Files:     files,
		Extractor: extract.NewPDFExtractor(log),
		Detector:  sections.NewDetector(detCfg, textclean.New(true), log),
		Validator: validate.New(cfg),
		Log:       log,
	}, nil
}
