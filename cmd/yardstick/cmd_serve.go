package main

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sserver "github.com/HendryAvila/yardstick/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, cleanup, err := sserver.New(app.cfg, app.log.Named("server"))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	app.log.Info("serving on stdio", zap.String("data_dir", app.cfg.DataDir))
	return server.ServeStdio(s)
}
