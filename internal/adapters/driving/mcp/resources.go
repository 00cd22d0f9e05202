package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for lexdraft resources.
	uriScheme = "lexdraft://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.KnowledgeBase == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "knowledge-base",
		Name:        "knowledge-base",
		Description: "Entry, source and category counts for both partitions",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "partitions/{partition}",
		Name:        "partition",
		Description: "Statistics for one partition (permanent or temporary)",
		MIMEType:    "application/json",
	}, s.handlePartitionResource)
}

type partitionInfo struct {
	Partition  string         `json:"partition"`
	Entries    int            `json:"entries"`
	Sources    int            `json:"sources"`
	Categories map[string]int `json:"categories,omitempty"`
}

func toPartitionInfo(ps domain.PartitionStats) partitionInfo {
	return partitionInfo{
		Partition:  ps.Partition.String(),
		Entries:    ps.Entries,
		Sources:    ps.Sources,
		Categories: ps.Categories,
	}
}

// handleStatsResource returns statistics for both partitions.
func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	stats, err := s.ports.KnowledgeBase.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading stats: %w", err)
	}

	return jsonResource(req.Params.URI, []partitionInfo{
		toPartitionInfo(stats.Permanent),
		toPartitionInfo(stats.Temporary),
	})
}

// handlePartitionResource returns statistics for a single partition.
func (s *Server) handlePartitionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	partition, err := domain.ParsePartition(extractPartition(req.Params.URI))
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	stats, err := s.ports.KnowledgeBase.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading stats: %w", err)
	}

	ps := stats.Permanent
	if partition == domain.PartitionTemporary {
		ps = stats.Temporary
	}
	return jsonResource(req.Params.URI, toPartitionInfo(ps))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling stats: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPartition extracts the partition name from a URI like lexdraft://partitions/{partition}.
func extractPartition(uri string) string {
	const prefix = uriScheme + "partitions/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
