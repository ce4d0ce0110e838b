package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizladder/internal/quiz"
	"github.com/abhisek/quizladder/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show points, completed sets and recent attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		ctx := cmd.Context()
		userKey := resolveUserKey(cmd)

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		progress, err := st.ProgressRepo().Load(ctx, userKey)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		stats, err := st.EventRepo().AttemptStats(ctx, userKey)
		if err != nil {
			return fmt.Errorf("attempt stats: %w", err)
		}

		fmt.Printf("User:           %s\n", userKey)
		fmt.Printf("Points:         %d\n", progress.TotalPoints)
		fmt.Printf("Completed sets: %d\n", len(progress.CompletedSets))
		if len(progress.CompletedSets) > 0 {
			fmt.Printf("                %s\n", strings.Join(progress.CompletedSets, ", "))
		}
		fmt.Printf("Attempts:       %d (%d passed, %d timed out)\n", stats.Attempts, stats.Passed, stats.Expired)
		fmt.Printf("Time spent:     %s\n", time.Duration(stats.TotalTimeSec)*time.Second)

		if len(stats.BestBySet) > 0 {
			fmt.Println()
			fmt.Println("Best scores:")
			setIDs := make([]string, 0, len(stats.BestBySet))
			for id := range stats.BestBySet {
				setIDs = append(setIDs, id)
			}
			sort.Strings(setIDs)
			for _, id := range setIDs {
				fmt.Printf("  %-24s %5.1f%%\n", id, stats.BestBySet[id])
			}
		}

		if limit <= 0 {
			return nil
		}
		recent, err := st.EventRepo().QueryAttemptEvents(ctx, store.QueryOpts{
			Limit:   limit,
			UserKey: userKey,
			Actions: []string{store.ActionFinish, store.ActionExpire},
		})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		if len(recent) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Printf("%-16s  %-12s  %-16s  %-7s  %-5s  %-6s  %s\n",
			"When", "Topic", "Set", "Score", "%", "Time", "OK")
		fmt.Println(strings.Repeat("─", 80))
		for _, a := range recent {
			ok := "✓"
			if !a.Passed {
				ok = "✗"
			}
			if a.Action == store.ActionExpire {
				ok += " (time up)"
			}
			fmt.Printf("%-16s  %-12s  %-16s  %-7s  %-5.0f  %-6s  %s\n",
				a.Timestamp.Local().Format("2006-01-02 15:04"),
				a.Topic,
				a.SetID,
				fmt.Sprintf("%d/%d", a.CorrectCount, a.Total),
				a.Percentage,
				quiz.FormatClock(time.Duration(a.DurationMs)*time.Millisecond),
				ok,
			)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent attempts to show (0 to hide)")
}
