package cmd

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the editing API",
	Long:  `Serves the score editing and layout API on port 8080.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func serve() {
	log.Fatal(http.ListenAndServe(":8080", NewRouter()))
}
