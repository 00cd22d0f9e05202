package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil retrieval service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingRetrievalService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Retrieval: &mockRetrievalService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("all ports creates server", func(t *testing.T) {
		ports := &Ports{
			Retrieval:     &mockRetrievalService{},
			Draft:         &mockDraftService{},
			Ingest:        &mockIngestService{},
			KnowledgeBase: &mockKnowledgeBaseService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil retrieval service returns error", func(t *testing.T) {
		ports := &Ports{Draft: &mockDraftService{}}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingRetrievalService)
	})

	t.Run("retrieval only is valid", func(t *testing.T) {
		ports := &Ports{Retrieval: &mockRetrievalService{}}
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_Instructions(t *testing.T) {
	minimal, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}})
	require.NoError(t, err)
	assert.Contains(t, minimal.instructions(), "retrieve_context")
	assert.NotContains(t, minimal.instructions(), "generate_draft")
	assert.NotContains(t, minimal.instructions(), "ingest_files")

	full, err := NewServer(&Ports{
		Retrieval: &mockRetrievalService{},
		Draft:     &mockDraftService{},
		Ingest:    &mockIngestService{},
	})
	require.NoError(t, err)
	assert.Contains(t, full.instructions(), "generate_draft")
	assert.Contains(t, full.instructions(), "ingest_files")
}

func TestServer_RunHTTPStopsOnCancel(t *testing.T) {
	server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}})
	require.NoError(t, err)
	assert.NotNil(t, server.Handler())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.RunHTTP(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunHTTP did not return after cancel")
	}
}
