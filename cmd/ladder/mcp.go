package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/ladder/internal/adapters/lineproto"
	"github.com/okian/ladder/pkg/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Answer 'lookup <slug>' requests on stdin, one JSON line each",
	Args:  cobra.NoArgs,
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	svc := newService()

	// Fail before the banner when there is nothing to serve.
	if _, err := svc.Index(ctx); err != nil {
		return err
	}

	srv := lineproto.New(svc, lineproto.WithLogger(logger.Named("lineproto")))
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return nil
	}
}
