package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ghostprotocol/internal/store"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the gameplay event journal",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent journal events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kinds, _ := cmd.Flags().GetStringSlice("kind")
		allSlots, _ := cmd.Flags().GetBool("all-slots")

		opts := store.QueryOpts{Limit: limit, Newest: true}
		for _, k := range kinds {
			kind := store.Kind(k)
			if !kind.Valid() {
				return fmt.Errorf("unknown event kind %q", k)
			}
			opts.Kinds = append(opts.Kinds, kind)
		}

		s, slot, err := openJournal(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		if !allSlots {
			opts.Slot = slot
		}

		events, err := s.EventRepo().Query(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No journal events found.")
			return nil
		}

		fmt.Fprintf(out, "%-6s  %-19s  %4s  %-9s  %-26s  %s\n",
			"Seq", "Timestamp", "Slot", "Kind", "Challenge", "Detail")
		fmt.Fprintln(out, strings.Repeat("─", 90))

		// Oldest first reads naturally.
		for i := len(events) - 1; i >= 0; i-- {
			e := events[i]
			fmt.Fprintf(out, "%-6d  %-19s  %4d  %-9s  %-26s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Slot,
				e.Kind,
				e.ChallengeID,
				e.Detail,
			)
		}
		return nil
	},
}

var journalStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count journal events by kind",
	RunE: func(cmd *cobra.Command, args []string) error {
		allSlots, _ := cmd.Flags().GetBool("all-slots")

		s, slot, err := openJournal(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		if allSlots {
			slot = 0
		}

		counts, err := s.EventRepo().CountByKind(cmd.Context(), slot)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-10s  %6s\n", "Kind", "Events")
		fmt.Fprintln(out, strings.Repeat("─", 18))
		total := 0
		for _, k := range slices.Sorted(maps.Keys(counts)) {
			n := counts[k]
			total += n
			fmt.Fprintf(out, "%-10s  %6d\n", k, n)
		}
		fmt.Fprintln(out, strings.Repeat("─", 18))
		fmt.Fprintf(out, "%-10s  %6d\n", "TOTAL", total)
		return nil
	},
}

func init() {
	journalListCmd.Flags().Int("limit", 20, "Maximum number of events")
	journalListCmd.Flags().StringSlice("kind", nil, "Only these event kinds (repeatable)")
	journalListCmd.Flags().Bool("all-slots", false, "Include every slot")
	journalStatsCmd.Flags().Bool("all-slots", false, "Include every slot")

	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalStatsCmd)
}

// openJournal opens the journal of the configured data directory and
// returns it with the selected slot.
func openJournal(cmd *cobra.Command) (*store.Store, int, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, 0, err
	}
	if !cfg.Journal {
		return nil, 0, fmt.Errorf("the journal is disabled (journal: false in config)")
	}
	s, err := store.OpenDir(cfg.DataDir)
	if err != nil {
		return nil, 0, fmt.Errorf("open journal: %w", err)
	}
	return s, cfg.DefaultSlot, nil
}
