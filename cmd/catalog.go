package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ghostprotocol/internal/challenges"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List challenges (optionally filtered by level or category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetInt("level")
		category, _ := cmd.Flags().GetString("category")

		var filter *challenges.Level
		if level >= 0 {
			l := challenges.Level(level)
			filter = &l
		}
		if category != "" && !isCategory(challenges.Category(category)) {
			return fmt.Errorf("unknown category %q", category)
		}

		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			views := rt.sess.Challenges(filter)
			if len(views) == 0 {
				return fmt.Errorf("no challenges found for level %d", level)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-26s  %5s  %-14s  %4s  %6s  %-8s  %s\n",
				"ID", "Level", "Category", "XP", "Sanity", "Status", "Title")
			fmt.Fprintln(out, strings.Repeat("─", 100))

			for _, v := range views {
				if category != "" && v.Category != challenges.Category(category) {
					continue
				}
				status := ""
				switch {
				case v.Completed:
					status = "done"
				case v.Attempts > 0:
					status = fmt.Sprintf("%d tries", v.Attempts)
				}
				title := v.Title
				if len(title) > 36 {
					title = title[:33] + "..."
				}
				fmt.Fprintf(out, "%-26s  %5d  %-14s  %4d  %6d  %-8s  %s\n",
					v.ID, v.Level, v.Category, v.XPReward, v.SanityCost, status, title)
			}
			return nil
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a challenge's details without starting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ch, err := challenges.Lookup(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)

		fmt.Fprintf(out, "ID:          %s\n", ch.ID)
		fmt.Fprintf(out, "Title:       %s\n", ch.Title)
		fmt.Fprintf(out, "Level:       %d\n", ch.Level)
		fmt.Fprintf(out, "Category:    %s\n", challenges.CategoryDisplayName(ch.Category))
		fmt.Fprintf(out, "Difficulty:  %s\n", ch.Difficulty)
		fmt.Fprintf(out, "Reward:      %d XP\n", ch.XPReward)
		fmt.Fprintf(out, "Sanity cost: %d\n", ch.SanityCost)
		fmt.Fprintf(out, "Hints:       %d\n", len(ch.Hints))
		if ch.TimeLimit > 0 {
			fmt.Fprintf(out, "Time limit:  %s\n", ch.TimeLimit)
		}
		if ch.IsVariant() {
			fmt.Fprintf(out, "Variant of:  %s\n", ch.Concept)
		} else if len(ch.Variants) > 0 {
			var ds []string
			for _, v := range ch.Variants {
				ds = append(ds, fmt.Sprintf("%s (%s)", v.Difficulty, v.ID))
			}
			fmt.Fprintf(out, "Variants:    %s\n", strings.Join(ds, ", "))
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, ch.Prompt)
		fmt.Fprintln(out, sep)
		return nil
	},
}

func init() {
	listCmd.Flags().Int("level", -1, "Only challenges of this level")
	listCmd.Flags().String("category", "", "Only challenges of this category")
}

func isCategory(c challenges.Category) bool {
	return slices.Contains(challenges.AllCategories(), c)
}
