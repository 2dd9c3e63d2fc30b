package main

import (
	"context"

	"github.com/spf13/cobra"

	regexboard "github.com/kailas-cloud/regexboard/pkg/sdk"
)

func newPatternsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patterns",
		Aliases: []string{"pattern", "p"},
		Short:   "Manage regex patterns",
	}
	cmd.AddCommand(newPatternsListCmd(opts))
	cmd.AddCommand(newPatternsCreateCmd(opts))
	cmd.AddCommand(newPatternsUpdateCmd(opts))
	cmd.AddCommand(newPatternsDeleteCmd(opts))
	return cmd
}

func newPatternsListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List patterns in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *regexboard.Client) error {
				patterns, err := c.Patterns().List(ctx)
				if err != nil {
					return err
				}
				if opts.format == formatJSON {
					return outputJSON(cmd, patterns)
				}
				renderPatterns(cmd.OutOrStdout(), patterns)
				return nil
			})
		},
	}
}

func newPatternsCreateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "create /pattern/flags",
		Short:   "Add a pattern and recompute matches",
		Example: "  regexctl patterns create '/lorem/i'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *regexboard.Client) error {
				st, err := c.Patterns().Create(ctx, args[0])
				if err != nil {
					return err
				}
				return outputState(cmd, opts, st)
			})
		},
	}
}

func newPatternsUpdateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> /pattern/flags",
		Short: "Replace a pattern's regex, keeping its ID and position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *regexboard.Client) error {
				st, err := c.Patterns().Update(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				return outputState(cmd, opts, st)
			})
		},
	}
}

func newPatternsDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a pattern and its matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *regexboard.Client) error {
				st, err := c.Patterns().Delete(ctx, args[0])
				if err != nil {
					return err
				}
				return outputState(cmd, opts, st)
			})
		},
	}
}

func outputState(cmd *cobra.Command, opts *globalOptions, st regexboard.State) error {
	if opts.format == formatJSON {
		return outputJSON(cmd, st)
	}
	renderState(cmd.OutOrStdout(), st)
	return nil
}
