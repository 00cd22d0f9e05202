package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

func TestExtractPartition(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"permanent", "lexdraft://partitions/permanent", "permanent"},
		{"temporary", "lexdraft://partitions/temporary", "temporary"},
		{"invalid prefix", "file://partitions/permanent", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractPartition(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func testStats() *domain.KnowledgeBaseStats {
	return &domain.KnowledgeBaseStats{
		Permanent: domain.PartitionStats{
			Partition:  domain.PartitionPermanent,
			Entries:    12,
			Sources:    3,
			Categories: map[string]int{"writ petition": 12},
		},
		Temporary: domain.PartitionStats{Partition: domain.PartitionTemporary, Entries: 2, Sources: 1},
	}
}

func TestServer_handleStatsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns both partitions", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Retrieval:     &mockRetrievalService{},
			KnowledgeBase: &mockKnowledgeBaseService{stats: testStats()},
		})
		require.NoError(t, err)

		result, err := server.handleStatsResource(ctx, makeReadResourceRequest("lexdraft://knowledge-base"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var infos []partitionInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
		require.Len(t, infos, 2)
		assert.Equal(t, "permanent", infos[0].Partition)
		assert.Equal(t, 12, infos[0].Entries)
		assert.Equal(t, map[string]int{"writ petition": 12}, infos[0].Categories)
		assert.Equal(t, 2, infos[1].Entries)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Retrieval:     &mockRetrievalService{},
			KnowledgeBase: &mockKnowledgeBaseService{err: errors.New("locked")},
		})
		require.NoError(t, err)

		_, err = server.handleStatsResource(ctx, makeReadResourceRequest("lexdraft://knowledge-base"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "locked")
	})
}

func TestServer_handlePartitionResource(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(&Ports{
		Retrieval:     &mockRetrievalService{},
		KnowledgeBase: &mockKnowledgeBaseService{stats: testStats()},
	})
	require.NoError(t, err)

	t.Run("returns one partition", func(t *testing.T) {
		result, err := server.handlePartitionResource(ctx, makeReadResourceRequest("lexdraft://partitions/temporary"))
		require.NoError(t, err)

		var info partitionInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &info))
		assert.Equal(t, "temporary", info.Partition)
		assert.Equal(t, 2, info.Entries)
	})

	t.Run("unknown partition is not found", func(t *testing.T) {
		_, err := server.handlePartitionResource(ctx, makeReadResourceRequest("lexdraft://partitions/archive"))
		assert.Error(t, err)
	})
}
