package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexdraft/internal/adapters/driving/mcp"
)

var (
	mcpPort int
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve retrieval, drafting and ingestion to AI assistants",
	Long: `Start a Model Context Protocol server over the configured knowledge base.

Tools:
  retrieve_context  passages a draft would be grounded on
  generate_draft    draft a petition from case facts into a .docx
  ingest_files      add local files to a partition

Resources:
  lexdraft://knowledge-base            statistics for both partitions
  lexdraft://partitions/{partition}    statistics for one partition

The server speaks JSON-RPC over stdio by default. With --port it serves the
streamable HTTP transport instead, bound to --host (loopback by default,
since generate_draft and ingest_files read local files).

Examples:
  lexdraft mcp serve
  lexdraft mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "lexdraft": {
        "command": "/path/to/lexdraft",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "127.0.0.1", "HTTP bind address")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func mcpPorts() *mcp.Ports {
	return &mcp.Ports{
		Retrieval:     retrievalService,
		Draft:         draftService,
		Ingest:        ingestService,
		KnowledgeBase: kbService,
	}
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(mcpPorts())
	if err != nil {
		return err
	}

	if mcpPort <= 0 {
		return server.Run(cmd.Context())
	}

	addr := net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort))
	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
