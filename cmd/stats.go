package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ghostprotocol/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress and statistics for the current slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(cmd)
	},
}

func runStats(cmd *cobra.Command) error {
	return withSession(cmd, func(ctx context.Context, rt *runtime) error {
		st := rt.sess.Stats()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Player:      %s (slot %d)\n", st.PlayerName, st.Slot)
		fmt.Fprintf(out, "Sanity:      %d/100\n", st.Sanity)
		if st.NextLevelXP > 0 {
			fmt.Fprintf(out, "Level:       %d (%d XP, %d to next)\n", st.Level, st.Experience, st.NextLevelXP)
		} else {
			fmt.Fprintf(out, "Level:       %d (%d XP, max)\n", st.Level, st.Experience)
		}
		fmt.Fprintf(out, "Challenges:  %d/%d\n", st.Completed, st.Total)
		fmt.Fprintf(out, "Scaling:     %s\n", st.Scaling)
		fmt.Fprintf(out, "Hints used:  %d\n", st.HintsUsed)
		fmt.Fprintf(out, "Secrets:     %d\n", st.Secrets)
		fmt.Fprintf(out, "Resolved:    %d solved (%d first try), %d failed, %d skipped\n",
			st.Solved, st.FirstTrySolves, st.Failed, st.Skipped)
		if st.RecentSamples > 0 {
			fmt.Fprintf(out, "Success:     %.0f%% overall, %.0f%% over the last %d\n",
				st.SuccessRate*100, st.RecentSuccessRate*100, st.RecentSamples)
			fmt.Fprintf(out, "Averages:    %.1f attempts per solve, %.1f hints per challenge\n",
				st.AverageAttempts, st.HintsPerChallenge)
		}
		if st.Phase == progress.PhaseGameOver {
			fmt.Fprintln(out, "\nSanity depleted. Start over with 'ghostprotocol new'.")
		} else if st.NeedsTutorial {
			fmt.Fprintln(out, "\nNew here? Try: ghostprotocol show welcome_tutorial")
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-20s  %9s  %9s  %6s\n", "Category", "Completed", "Attempted", "Solved")
		fmt.Fprintln(out, strings.Repeat("─", 52))
		for _, row := range st.Categories {
			fmt.Fprintf(out, "%-20s  %4d/%-4d  %9d  %6d\n",
				row.Name, row.Completed, row.Total, row.Attempted, row.Solved)
		}
		return nil
	})
}
