package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scorefall/scorefall-ink/constants"
	"github.com/scorefall/scorefall-ink/engrave"
	"github.com/scorefall/scorefall-ink/glyph"
	"github.com/scorefall/scorefall-ink/render"
	"github.com/scorefall/scorefall-ink/scof"
	"github.com/scorefall/scorefall-ink/score"
	"github.com/scorefall/scorefall-ink/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(engraveCmd)
}

var engraveCmd = &cobra.Command{
	Use:   "engrave [file.scof]",
	Short: "Engraves a score to SVG",
	Long:  `Engraves a scof container and writes the SVG pages to the output dir.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runEngrave(args[0])
	},
}

func runEngrave(path string) {
	f, err := scof.ReadFile(path)
	if err != nil {
		panic("Could not read scof file: " + err.Error())
	}

	sc, errs := score.Assemble(f.Sigs, f.Bars)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("%v\n", e.Error())
		}
		os.Exit(1)
	}

	pageWidth := constants.GetPageWidth()
	metrics := glyph.DefaultMetrics()
	lines, err := engrave.Layout(sc, metrics, pageWidth, engrave.DefaultOptions())
	if err != nil {
		fmt.Printf("Layout failed: %v\n", err)
		os.Exit(1)
	}

	outDir := constants.GetOutDir()
	util.RecreateOutputDir(outDir)

	svg := render.Render(sc, lines, metrics, pageWidth)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(outDir, base+".svg")
	if err := os.WriteFile(outPath, []byte(svg), 0666); err != nil {
		panic("Could not write SVG: " + err.Error())
	}
	fmt.Printf("Wrote %v (%v lines)\n", outPath, len(lines))
}
