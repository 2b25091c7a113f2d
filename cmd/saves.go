package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ghostprotocol/internal/progress"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new game in the current slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		scaling, _ := cmd.Flags().GetString("scaling")

		var sc progress.Scaling
		if scaling != "" {
			var ok bool
			if sc, ok = progress.ParseScaling(scaling); !ok {
				return fmt.Errorf("unknown scaling %q (want adaptive, static or custom)", scaling)
			}
		}

		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			res, err := rt.sess.NewGame(ctx, name)
			if err != nil {
				return err
			}
			if sc != "" {
				if _, err := rt.sess.SetScaling(ctx, sc); err != nil {
					return err
				}
			}
			if !rt.cfg.AutoSave {
				if _, err := rt.sess.Save(ctx, 0); err != nil {
					return err
				}
			}
			printResult(cmd, res)
			return nil
		})
	},
}

var scalingCmd = &cobra.Command{
	Use:   "scaling <adaptive|static|custom>",
	Short: "Change how challenge difficulty is chosen",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, ok := progress.ParseScaling(args[0])
		if !ok {
			return fmt.Errorf("unknown scaling %q (want adaptive, static or custom)", args[0])
		}
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			res, err := rt.sess.SetScaling(ctx, sc)
			if err != nil {
				return err
			}
			if _, err := rt.sess.Save(ctx, 0); err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		})
	},
}

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List save slots",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			infos, err := rt.saves.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-4s  %-16s  %5s  %6s  %6s  %9s  %-19s\n",
				"Slot", "Player", "Level", "XP", "Sanity", "Completed", "Saved")
			fmt.Fprintln(out, strings.Repeat("─", 78))
			for _, info := range infos {
				marker := " "
				if info.Slot == rt.sess.Slot() {
					marker = "*"
				}
				switch {
				case !info.Exists:
					fmt.Fprintf(out, "%s%-3d  (empty)\n", marker, info.Slot)
				case info.Corrupt:
					fmt.Fprintf(out, "%s%-3d  (corrupt: %s)\n", marker, info.Slot, info.Err)
				default:
					fmt.Fprintf(out, "%s%-3d  %-16s  %5d  %6d  %6d  %9d  %-19s\n",
						marker, info.Slot, info.PlayerName, info.Level, info.Experience,
						info.Sanity, info.Completed, info.LastModified.Local().Format("2006-01-02 15:04:05"))
				}
			}
			return nil
		})
	},
}

var saveCmd = &cobra.Command{
	Use:   "save <slot>",
	Short: "Copy the current game into another slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid slot %q: %w", args[0], err)
		}
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			res, err := rt.sess.Save(ctx, slot)
			if err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		})
	},
}

var loadCmd = &cobra.Command{
	Use:   "load <slot>",
	Short: "Check a slot's save and upgrade it to the current format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid slot %q: %w", args[0], err)
		}
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			res, err := rt.sess.Load(ctx, slot)
			if err != nil {
				return err
			}
			// Rewrite in the current format.
			if _, err := rt.sess.Save(ctx, slot); err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current game as portable JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			res, err := rt.sess.Export(ctx)
			if err != nil {
				return err
			}
			if outPath == "" || outPath == "-" {
				_, err := cmd.OutOrStdout().Write(res.Data)
				return err
			}
			if err := os.WriteFile(outPath, res.Data, 0o600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s Wrote %s.\n", res.Message, outPath)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Replace the current slot with an exported game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read import: %w", err)
		}

		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			res, err := rt.sess.Import(ctx, data)
			if err != nil {
				return err
			}
			if !rt.cfg.AutoSave {
				if _, err := rt.sess.Save(ctx, 0); err != nil {
					return err
				}
			}
			printResult(cmd, res)
			return nil
		})
	},
}

func init() {
	newCmd.Flags().String("name", "", "Player name (default from config)")
	newCmd.Flags().String("scaling", "", "Difficulty scaling: adaptive, static or custom")
	exportCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
}
