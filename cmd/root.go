package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ghostprotocol",
	Short: "Security puzzles against a draining sanity meter",
	Long: `Ghost Protocol is a capture-the-flag style game: solve security puzzles
to earn experience before your sanity runs out. Each command loads the
current save slot, applies one action and saves again.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/ghostprotocol/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for save slots and the journal (overrides GHOSTPROTOCOL_DATA_DIR)")
	rootCmd.PersistentFlags().Int("slot", 0, "Save slot to play (default from config)")
	rootCmd.PersistentFlags().Bool("debug", false, "Verbose logging to stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(attemptCmd)
	rootCmd.AddCommand(skipCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(scalingCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(versionCmd)
}
