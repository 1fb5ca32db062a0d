package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alma-hanif/infinitag/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so an assistant can list
documents, look up catalog keywords and tag documents.

By default the server speaks JSON-RPC over stdio. Use --port to serve over
HTTP instead; Prometheus metrics are then exposed at /metrics.

Examples:
  infinitag mcp serve
  infinitag mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ctx := commandContext(cmd)
	if err := loadTable(ctx, false); err != nil {
		return err
	}

	ports := &mcp.Ports{
		Tagging:   taggingService,
		Table:     tableView,
		Catalog:   keywordCatalog,
		Workspace: workspaceService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		if metricsHandler != nil {
			server.SetMetricsHandler(metricsHandler)
		}
		addr := fmt.Sprintf(":%d", port)
		cmd.Printf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
