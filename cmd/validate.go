package cmd

import (
	"fmt"
	"os"

	"github.com/scorefall/scorefall-ink/scof"
	"github.com/scorefall/scorefall-ink/score"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [file.scof]",
	Short: "Validates a score",
	Long:  `Validates every bar of a scof container and reports all errors at once.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !validate(args[0]) {
			os.Exit(1)
		}
	},
}

func validate(path string) bool {
	f, err := scof.ReadFile(path)
	if err != nil {
		fmt.Printf("Could not read %v: %v\n", path, err)
		return false
	}

	sc, errs := score.Assemble(f.Sigs, f.Bars)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("%v\n", e.Error())
		}
		fmt.Printf("%v errors in %v bars\n", len(errs), len(f.Bars))
		return false
	}
	fmt.Printf("OK: %v bars, %v signatures\n", len(sc.Bars), len(sc.Sigs))
	return true
}
