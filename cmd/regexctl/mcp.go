package main

import (
	"context"

	"github.com/spf13/cobra"

	regexboard "github.com/kailas-cloud/regexboard/pkg/sdk"
)

func newMCPCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  "Serve the pattern and approval tools over the Model Context Protocol on stdin/stdout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := opts.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return withClient(cmd, opts, func(ctx context.Context, c *regexboard.Client) error {
				return c.ServeMCP(ctx, logger)
			})
		},
	}
}
