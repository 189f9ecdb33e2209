package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskctl",
	Short: "Operator tools for the task API",
	Long: `taskctl classifies text offline, prepares the database and issues
bearer tokens for the task API.

Database and secret settings come from the same environment variables
(or .env file) the API server reads.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
