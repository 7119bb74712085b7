package commands

import (
	"os"
	"os/signal"

	"github.com/erraggy/outdiff/internal/mcpserver"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the diff tools over the Model Context Protocol on stdio",
		Long: `Serve the diff_text and diff_json tools over the Model Context Protocol
(MCP) using the stdio transport. Server limits and cache settings are read
from OUTDIFF_MCP_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			a.logger.Info("starting mcp server on stdio")
			return mcpserver.Run(ctx)
		},
	}
}
