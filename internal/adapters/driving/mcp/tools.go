package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// RetrieveInput is the input schema for the retrieve_context tool.
type RetrieveInput struct {
	Query    string `json:"query" jsonschema:"what the draft is about, e.g. the case summary"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"maximum number of passages (default from config)"`
	Category string `json:"category,omitempty" jsonschema:"restrict reference samples to a draft type, e.g. writ_petition"`
}

// RetrieveOutput is the output schema for the retrieve_context tool.
type RetrieveOutput struct {
	Results []RetrievalOutput `json:"results"`
	Count   int               `json:"count"`
}

// RetrievalOutput represents a single retrieved passage.
type RetrievalOutput struct {
	Source    string  `json:"source"`
	Partition string  `json:"partition"`
	Score     float64 `json:"score"`
	Text      string  `json:"text"`
}

// GenerateInput is the input schema for the generate_draft tool.
type GenerateInput struct {
	Facts          domain.CaseFacts `json:"facts" jsonschema:"structured case facts"`
	AnnexurePaths  []string         `json:"annexure_paths,omitempty" jsonschema:"local annexure files to ingest and cite"`
	IncludeContext bool             `json:"include_context,omitempty" jsonschema:"return the retrieved passages as well"`
}

// GenerateOutput is the output schema for the generate_draft tool.
type GenerateOutput struct {
	OutputPath string            `json:"output_path"`
	Text       string            `json:"text"`
	Annexures  []string          `json:"annexures,omitempty"`
	Context    []RetrievalOutput `json:"context,omitempty"`
}

// IngestInput is the input schema for the ingest_files tool.
type IngestInput struct {
	Paths     []string `json:"paths" jsonschema:"files or directories to ingest"`
	Temporary bool     `json:"temporary,omitempty" jsonschema:"ingest into the temporary (per-case) partition"`
	Category  string   `json:"category,omitempty" jsonschema:"category tag, e.g. writ_petition"`
}

// IngestOutput is the output schema for the ingest_files tool.
type IngestOutput struct {
	Ingested  int    `json:"ingested"`
	Partition string `json:"partition"`
}

// registerTools registers all tool handlers with the MCP server.
// Tools whose port is not wired are left out.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve_context",
		Description: "Retrieve reference sample and annexure passages relevant to a petition",
	}, s.handleRetrieve)

	if s.ports.Draft != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "generate_draft",
			Description: "Draft a petition from case facts and write it as a .docx document",
		}, s.handleGenerate)
	}

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest_files",
			Description: "Add local files to the knowledge base",
		}, s.handleIngest)
	}
}

func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	results, err := s.ports.Retrieval.Retrieve(ctx, input.Query, input.TopK, input.Category)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{Results: toOutputs(results), Count: len(results)}
	return nil, output, nil
}

func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	annexures := make([]domain.UploadedFile, 0, len(input.AnnexurePaths))
	for _, p := range input.AnnexurePaths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, GenerateOutput{}, fmt.Errorf("reading annexure: %w", err)
		}
		annexures = append(annexures, domain.UploadedFile{Name: filepath.Base(p), Content: content})
	}

	draft, err := s.ports.Draft.Generate(ctx, input.Facts, annexures)
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	output := GenerateOutput{
		OutputPath: draft.OutputPath,
		Text:       draft.RenderedText,
		Annexures:  draft.Annexures,
	}
	if input.IncludeContext {
		output.Context = toOutputs(draft.Context)
	}
	return nil, output, nil
}

func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	partition := domain.PartitionFor(!input.Temporary)
	n, err := s.ports.Ingest.IngestPaths(ctx, input.Paths, partition, input.Category)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, IngestOutput{Ingested: n, Partition: partition.String()}, nil
}

func toOutputs(results []domain.RetrievalResult) []RetrievalOutput {
	out := make([]RetrievalOutput, len(results))
	for i, r := range results {
		out[i] = RetrievalOutput{
			Source:    r.Source,
			Partition: r.Partition.String(),
			Score:     r.Score,
			Text:      r.Text,
		}
	}
	return out
}
