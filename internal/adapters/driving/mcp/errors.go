// Package mcp provides an MCP (Model Context Protocol) server adapter for lexdraft.
// It lets AI assistants retrieve grounding context, ingest files and draft
// petitions through the same services the CLI uses.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
