package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scorefall-ink",
	Short: "Music notation engraver",
	Long:  `Parses scof containers, validates their notation and engraves them as SVG.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
