package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"toybrowser/pkg/html"
	"toybrowser/pkg/layout"
)

func newRenderCmd(opts *globalOptions) *cobra.Command {
	var (
		output string
		scroll float64
	)
	cmd := &cobra.Command{
		Use:   "render <url>",
		Short: "Render one viewport of a page to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := opts.newBrowser()
			if err := b.Load(cmd.Context(), args[0]); err != nil {
				return err
			}
			applied := b.ScrollTo(scroll)

			r := b.NewRenderer()
			drawn := b.Draw(r)
			if err := r.SavePNG(output); err != nil {
				return fmt.Errorf("saving %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rendered %s to %s: %d of %d commands at scroll %g (page height %g)\n",
				args[0], output, drawn, len(b.DisplayList()), applied, b.Document().Height)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "output.png", "output PNG file path")
	cmd.Flags().Float64Var(&scroll, "scroll", 0, "vertical scroll offset in pixels")
	return cmd
}

func newTreeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <url>",
		Short: "Print the document tree of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := opts.newBrowser()
			if err := b.Load(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), html.Dump(b.Tree()))
			return nil
		},
	}
}

func newRulesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules <url>",
		Short: "Print the style rules that apply to a page, with their specificity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := opts.newBrowser()
			if err := b.Load(cmd.Context(), args[0]); err != nil {
				return err
			}
			for _, rule := range b.Rules() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", rule.Selector.Specificity(), rule)
			}
			return nil
		},
	}
}

func newBoxesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "boxes <url>",
		Short: "Print the laid-out box tree of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := opts.newBrowser()
			if err := b.Load(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), layout.Dump(b.Document()))
			return nil
		},
	}
}

func newShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <url>",
		Short: "Print the text of a page with all markup removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, _, err := opts.newFetcher().Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), html.StripTags(body))
			return nil
		},
	}
}
