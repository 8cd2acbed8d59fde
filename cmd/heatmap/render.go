// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/gogpu/heatmap"
	"github.com/gogpu/heatmap/replay"
)

var (
	renderOutput string
	renderStats  bool
)

var renderCmd = &cobra.Command{
	Use:   "render [script]",
	Short: "Replay an event script and write a PNG",
	Long: `Replay an event script against a fresh heatmap and write the final frame
as PNG. The script is read from stdin when omitted or "-". Scripts may be
zstd compressed.`,
	Example: `  heatmap render session.txt -o session.png
  heatmap render --background floor.jpg --legend session.txt.zst`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "heatmap.png", `output PNG ("-" for stdout)`)
	renderCmd.Flags().BoolVar(&renderStats, "stats", false, "print heat statistics")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := global.load(cmd.Flags())
	if err != nil {
		return err
	}
	m, err := cfg.NewMap()
	if err != nil {
		return err
	}
	if cfg.Background != "" {
		if err := m.LoadBackground(cfg.Background); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
	}

	script, err := readScript(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	res := script.Apply(m)
	for _, err := range res.ImageErrors {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	dc := gg.NewContext(m.Width(), m.Height())
	defer dc.Close()
	s := heatmap.NewContextSurface(dc)
	defer s.Close()

	m.Render(s)
	if err := dc.FlushGPU(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err := writePNG(dc, cmd.OutOrStdout()); err != nil {
		return err
	}

	if renderStats {
		printStats(cmd.ErrOrStderr(), m.Stats(), res)
	}
	return nil
}

func readScript(stdin io.Reader, args []string) (*replay.Script, error) {
	if len(args) == 0 || args[0] == "-" {
		if f, ok := stdin.(*os.File); ok && len(args) == 0 && isTerminal(f) {
			return nil, errors.New("no script given and stdin is a terminal")
		}
		return replay.Parse(stdin)
	}
	return replay.ParseFile(args[0])
}

func writePNG(dc *gg.Context, stdout io.Writer) error {
	if renderOutput == "-" {
		return dc.EncodePNG(stdout)
	}
	if err := dc.SavePNG(renderOutput); err != nil {
		return fmt.Errorf("save %s: %w", renderOutput, err)
	}
	return nil
}

func printStats(w io.Writer, st heatmap.Stats, res replay.Result) {
	var r heatmap.Renderer
	fmt.Fprintf(w, "clicks:    %s (%d rejected)\n", r.FormatCount(st.Clicks), res.Rejected)
	fmt.Fprintf(w, "points:    %s\n", r.FormatCount(st.Points))
	fmt.Fprintf(w, "clusters:  %s\n", r.FormatCount(st.Clusters))
	fmt.Fprintf(w, "peak:      %.3f\n", st.Peak)
	fmt.Fprintf(w, "mean:      %.3f ± %.3f\n", st.Mean, st.StdDev)
	fmt.Fprintf(w, "hot cells: %s\n", r.FormatCount(st.HotCells))
}

// isTerminal reports whether f is an interactive terminal.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
