// Package driving defines the operations the CLI, MCP server and TUI call:
// ingest, retrieve, generate, knowledge base administration and settings.
//
// Implementations live in internal/core/services.
package driving
