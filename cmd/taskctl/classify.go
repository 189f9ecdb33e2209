package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"smart-task-backend/internal/classifier"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a task without storing it",
	Long: `Run the classifier over a title and description and print the result as JSON.

Examples:
  taskctl classify --title "Fix login bug" --description "Users see an error"
  taskctl classify --title "Pay rent" --description "Monthly bill" --due 2026-05-01T09:00:00Z`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		dueFlag, _ := cmd.Flags().GetString("due")

		if strings.TrimSpace(title) == "" && strings.TrimSpace(description) == "" {
			return errors.New("--title or --description is required")
		}

		var due *time.Time
		if dueFlag != "" {
			t, err := time.Parse(time.RFC3339, dueFlag)
			if err != nil {
				return fmt.Errorf("invalid --due %q: expected RFC3339", dueFlag)
			}
			due = &t
		}

		res := classifier.New().Classify(title, description, due)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	classifyCmd.Flags().String("title", "", "Task title")
	classifyCmd.Flags().String("description", "", "Task description")
	classifyCmd.Flags().String("due", "", "Due date (RFC3339)")
	rootCmd.AddCommand(classifyCmd)
}
