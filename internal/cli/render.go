package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treekit/lineage/pkg/config"
	"github.com/treekit/lineage/pkg/pipeline"
)

// renderCommand creates the render command for generating visual artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		mode       string
		configPath string
		detailed   bool
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [family.json]",
		Short: "Render a family tree to SVG, PNG, DOT, or JSON",
		Long: `Render a family tree to SVG, PNG, DOT, or JSON.

The render command runs the full pipeline: it loads member records, computes
the layout, and writes one artifact per requested format. Use --format with
a comma-separated list to produce several artifacts in one run.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			if mode != "" {
				if err := pipeline.ValidateMode(mode); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), args[0], renderParams{
				output:     output,
				formats:    formats,
				mode:       mode,
				configPath: configPath,
				detailed:   detailed,
				noCache:    noCache,
				refresh:    refresh,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "layout mode: tree (default), grid")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/lineage/config.toml)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include lifespans and occupations in node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the load cache")

	return cmd
}

// renderParams holds the resolved render command flags.
type renderParams struct {
	output     string
	formats    []string
	mode       string
	configPath string
	detailed   bool
	noCache    bool
	refresh    bool
}

// runRender executes the full pipeline and writes the requested artifacts.
func (c *CLI) runRender(ctx context.Context, input string, p renderParams) error {
	cfg, err := config.Load(p.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runner, err := c.newRunner(p.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering family tree...")
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Input:    input,
		Refresh:  p.refresh,
		Mode:     p.mode,
		Config:   &cfg.Layout,
		Formats:  p.formats,
		Detailed: p.detailed,
		Logger:   c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, p.formats, p.output, input)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)

	for _, f := range result.Findings {
		printWarning("%s", f.String())
	}

	return nil
}

// writeArtifacts writes one file per format and returns the written paths.
// With a single format the output path is used as-is; with multiple formats
// it serves as the base path and each file gets its format as extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	if len(formats) == 1 {
		path := output
		if path == "" {
			path = basePath("", input) + "." + formats[0]
		}
		if err := os.WriteFile(path, artifacts[formats[0]], 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		return []string{path}, nil
	}

	base := basePath(output, input)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := fmt.Sprintf("%s.%s", base, format)
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output ends in a
// known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
