package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	nurturemcp "github.com/introware/nurture/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the nurture MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the nurture MCP server on stdio",
	Long: `Start the nurture MCP server on stdio transport.

The server exposes scheduling functionality as MCP tools that AI
assistants can call: get_stats, list_interactions, schedule_interaction,
complete_interaction, list_suggestions, apply_suggestion, get_metrics,
get_reminders.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Scheduler == nil || Engine == nil || StatsCalc == nil {
			return fmt.Errorf("scheduling services not initialized")
		}

		srv := nurturemcp.NewServer(Scheduler, Engine, StatsCalc, MetricsCalc, ReminderEngine, appVersion)

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
