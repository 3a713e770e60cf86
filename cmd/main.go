package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kisansaathi/kisansaathi-backend/internal/app"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/shutdown"
)

var rootCmd = &cobra.Command{
	Use:   "kisansaathi",
	Short: "KisanSaathi government scheme search backend",
	Long: `KisanSaathi serves farmer-facing scheme discovery: a free-text question,
optionally with a farmer profile, is matched against the scheme catalog and
ranked by Gemini, falling back to keyword matches when ranking fails.

Run without arguments to start the HTTP server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	ctx, stop := shutdown.NotifyContext(parent)
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer a.Close(context.Background())

	if err := a.Run(ctx); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func main() {
	rootCmd.AddCommand(serveCmd, searchCmd, catalogCmd)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
