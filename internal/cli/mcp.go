package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	taskermcp "github.com/a1mart/tasker/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the tasker MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tasker MCP server on stdio",
	Long: `Start the tasker MCP server on stdio transport.

The server exposes the task service through the data core as MCP tools:
list_tasks, search_tasks, create_task, update_task_status.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := taskermcp.NewServer(App.Store, App.Monitor, App.Syncer, App.Mutations, App.Client, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
