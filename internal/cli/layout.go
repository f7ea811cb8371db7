package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treekit/lineage/pkg/config"
	"github.com/treekit/lineage/pkg/layout"
	"github.com/treekit/lineage/pkg/pipeline"
)

// layoutCommand creates the layout command for computing tree layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		configPath string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "layout [family.json]",
		Short: "Compute a family-tree layout from member records",
		Long: `Compute a family-tree layout from member records.

The layout command takes a family.json file (a flat array of member records)
and computes node positions and edges for the tree. The output is a
layout.json file that can be rendered to DOT/SVG/PNG using 'lineage render'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], layout.ModeTree, output, configPath, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/lineage/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the load cache")

	return cmd
}

// gridCommand creates the grid command, a row-major fallback layout that
// ignores family structure entirely.
func (c *CLI) gridCommand() *cobra.Command {
	var (
		output     string
		configPath string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "grid [family.json]",
		Short: "Compute a flat grid layout from member records",
		Long: `Compute a flat grid layout from member records.

Unlike 'layout', the grid command places members in rows without regard to
parent or spouse relationships. Useful for very large or badly linked
families where the tree layout becomes unwieldy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], layout.ModeGrid, output, configPath, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/lineage/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the load cache")

	return cmd
}

// runLayout loads the members, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, mode, output, configPath string, noCache, refresh bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Input:   input,
		Refresh: refresh,
		Mode:    mode,
		Config:  &cfg.Layout,
		Logger:  c.Logger,
	}

	members, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load members %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", mode))
	spinner.Start()

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, members, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := layout.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Nodes), len(l.Edges), cacheHit)
	printNewline()
	printNextStep("Render", "lineage render "+input)

	return nil
}
