package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/viewdock/pkg/render/sink"
	"github.com/matzehuels/viewdock/pkg/script"
)

// layoutCommand creates the layout command for computing view rectangles.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [script]",
		Short: "Compute the view rectangles of a layout script",
		Long: `Compute the view rectangles of a layout script.

The layout command replays a script (.json, .toml, .yaml) into a workspace and
writes the resulting layout as JSON: the frame, one block per view with its
rectangle, and the split tree. The output has the same shape as 'render -f json'.

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runLayout loads the script, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, noCache, refresh bool) error {
	s, err := script.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load script %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	data, cacheHit, err := runner.Layout(ctx, s, refresh)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	l, err := sink.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("read layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Blocks), treeDepth(l.Tree), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}

// treeDepth counts the splits on the longest root-to-leaf path.
func treeDepth(n *sink.TreeNode) int {
	if n == nil {
		return 0
	}
	return 1 + max(treeDepth(n.Left.Split), treeDepth(n.Right.Split))
}
