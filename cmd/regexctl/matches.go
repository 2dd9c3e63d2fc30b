package main

import (
	"context"

	"github.com/spf13/cobra"

	regexboard "github.com/kailas-cloud/regexboard/pkg/sdk"
)

func newDocumentCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Show the stored document and its matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *regexboard.Client) error {
				doc, err := c.Document(ctx)
				if err != nil {
					return err
				}
				if opts.format == formatJSON {
					return outputJSON(cmd, doc)
				}
				renderDocument(cmd.OutOrStdout(), doc)
				return nil
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "regenerate",
		Short: "Replace the text with fresh filler and recompute matches",
		Long:  "Regenerate discards the stored text and every approval, seeds new lorem ipsum text and runs all patterns against it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *regexboard.Client) error {
				st, err := c.RegenerateDocument(ctx)
				if err != nil {
					return err
				}
				return outputState(cmd, opts, st)
			})
		},
	})
	return cmd
}

func newMatchesCmd(opts *globalOptions) *cobra.Command {
	var patternID string

	cmd := &cobra.Command{
		Use:   "matches",
		Short: "List stored matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *regexboard.Client) error {
				matches, err := c.Matches().List(ctx, patternID)
				if err != nil {
					return err
				}
				if opts.format == formatJSON {
					return outputJSON(cmd, matches)
				}
				renderMatches(cmd.OutOrStdout(), matches)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&patternID, "pattern", "", "Only show matches of this pattern ID")
	return cmd
}

func newApproveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <pattern-id> <matched-text>",
		Short: "Approve a match",
		Long:  "Approve marks the match produced by the pattern with the exact matched text. Unknown pairs are ignored.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *regexboard.Client) error {
				matches, err := c.Matches().Approve(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				if opts.format == formatJSON {
					return outputJSON(cmd, matches)
				}
				renderMatches(cmd.OutOrStdout(), matches)
				return nil
			})
		},
	}
}

func newRecomputeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recompute",
		Short: "Recompute matches from the current patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *regexboard.Client) error {
				st, err := c.Matches().Recompute(ctx)
				if err != nil {
					return err
				}
				return outputState(cmd, opts, st)
			})
		},
	}
}

func newViewCmd(opts *globalOptions) *cobra.Command {
	var (
		modeName  string
		patternID string
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the sidebar for a mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *regexboard.Client) error {
				v, err := c.Matches().View(ctx, regexboard.Mode(modeName), patternID)
				if err != nil {
					return err
				}
				if opts.format == formatJSON {
					return outputJSON(cmd, v)
				}
				renderView(cmd.OutOrStdout(), v)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&modeName, "mode", string(regexboard.ModeApproval), "Mode: edit or approval")
	cmd.Flags().StringVar(&patternID, "pattern", "", "Pattern ID to review in approval mode")
	return cmd
}
