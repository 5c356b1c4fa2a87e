package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcrafter/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent quiz generation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		runs, err := s.RunRepo().Recent(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-10s  %-22s  %s\n",
			"Run", "Started", "Status", "Error", "Goal")
		fmt.Println(strings.Repeat("─", 110))

		for _, r := range runs {
			goal := r.Goal
			if len(goal) > 40 {
				goal = goal[:40]
			}
			fmt.Printf("%-36s  %-19s  %-10s  %-22s  %s\n",
				r.ID,
				r.StartedAt.Local().Format("2006-01-02 15:04:05"),
				r.Status,
				r.ErrorKind,
				goal,
			)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")
}
