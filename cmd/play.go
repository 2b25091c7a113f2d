package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ghostprotocol/internal/challenges"
	"github.com/abhisek/ghostprotocol/internal/game"
)

var attemptCmd = &cobra.Command{
	Use:   "attempt <id> <answer...>",
	Short: "Submit an answer to a challenge",
	Long: `Start a challenge and submit an answer in one step. The words after the
id are joined with single spaces to form the answer.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := startRequest(cmd)
		if err != nil {
			return err
		}
		answer := strings.Join(args[1:], " ")

		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			if _, err := rt.sess.Start(ctx, args[0], req); err != nil {
				return err
			}
			res, err := rt.sess.Submit(ctx, answer)
			if err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		})
	},
}

var hintCmd = &cobra.Command{
	Use:   "hint <id>",
	Short: "Reveal hints for a challenge (counted in your statistics)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		if count < 1 {
			return fmt.Errorf("--count must be at least 1")
		}
		req, err := startRequest(cmd)
		if err != nil {
			return err
		}

		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			if _, err := rt.sess.Start(ctx, args[0], req); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i := range count {
				res, err := rt.sess.Hint(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Hint %d: %s\n", i+1, res.Hint)
			}
			return nil
		})
	},
}

var skipCmd = &cobra.Command{
	Use:   "skip <id>",
	Short: "Give up on a challenge at its sanity cost",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := startRequest(cmd)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			if _, err := rt.sess.Start(ctx, args[0], req); err != nil {
				return err
			}
			res, err := rt.sess.Skip(ctx)
			if err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{attemptCmd, hintCmd, skipCmd} {
		c.Flags().String("difficulty", "", "Requested difficulty under custom scaling or with --replay: beginner, standard, advanced or expert")
		c.Flags().Bool("replay", false, "Allow an unplayed variant of a completed challenge")
	}
	hintCmd.Flags().IntP("count", "n", 1, "Number of hints to reveal")
}

func startRequest(cmd *cobra.Command) (game.StartRequest, error) {
	d, _ := cmd.Flags().GetString("difficulty")
	replay, _ := cmd.Flags().GetBool("replay")

	req := game.StartRequest{Replay: replay}
	if d != "" {
		diff, ok := challenges.ParseDifficulty(d)
		if !ok {
			return game.StartRequest{}, fmt.Errorf("unknown difficulty %q", d)
		}
		req.Difficulty = diff
	}
	return req, nil
}
