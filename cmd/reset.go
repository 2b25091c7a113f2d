package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the current slot's save",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("reset deletes the slot's progress; pass --yes to confirm")
		}
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			res, err := rt.sess.Reset(ctx)
			if err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
