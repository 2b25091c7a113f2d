package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/ghostprotocol/internal/config"
	"github.com/abhisek/ghostprotocol/internal/game"
	"github.com/abhisek/ghostprotocol/internal/logging"
	"github.com/abhisek/ghostprotocol/internal/savegame"
	"github.com/abhisek/ghostprotocol/internal/store"
)

// runtime is everything one command invocation needs.
type runtime struct {
	cfg     config.Config
	log     *logging.Logger
	saves   *savegame.Manager
	journal *store.Store // nil when the journal is disabled or unavailable
	sess    *game.Session
}

// resolveConfig loads the config file and environment, then applies the
// persistent flags on top.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	if slot, _ := cmd.Flags().GetInt("slot"); slot != 0 {
		cfg.DefaultSlot = slot
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openRuntime resolves configuration, opens the saves and the journal and
// resumes the selected slot. The caller must close the runtime.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	log, err := logging.New(logging.Options{Level: cfg.LogLevel, Debug: debug})
	if err != nil {
		return nil, err
	}

	saves, err := savegame.NewManager(cfg.DataDir,
		savegame.WithSlots(cfg.Slots),
		savegame.WithGameVersion(version),
		savegame.WithLogger(log.Named("savegame")),
	)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open saves: %w", err)
	}

	rt := &runtime{cfg: cfg, log: log, saves: saves}

	opts := game.Options{
		Slot:        cfg.DefaultSlot,
		Saves:       saves,
		Logger:      log.Named("game"),
		AutoSave:    cfg.AutoSave,
		MaxAttempts: cfg.MaxAttempts,
		PlayerName:  cfg.PlayerName,
		Scaling:     cfg.Scaling(),
	}
	if cfg.Journal {
		st, err := store.OpenDir(cfg.DataDir)
		if err != nil {
			// The journal is optional; play continues without it.
			log.Warn("journal unavailable", zap.Error(err))
		} else {
			rt.journal = st
			opts.Journal = st.EventRepo()
		}
	}

	sess, err := game.New(opts)
	if err != nil {
		rt.closeResources()
		return nil, err
	}
	rt.sess = sess

	res, err := sess.Resume(cmd.Context())
	if err != nil {
		rt.closeResources()
		return nil, err
	}
	if res.Warning != "" {
		printWarning(cmd.ErrOrStderr(), res.Warning)
	}
	return rt, nil
}

// Close persists unsaved progress and releases the journal.
func (rt *runtime) Close(ctx context.Context) error {
	err := rt.sess.Close(ctx)
	rt.closeResources()
	if err != nil {
		return fmt.Errorf("save on exit: %w", err)
	}
	return nil
}

func (rt *runtime) closeResources() {
	if rt.journal != nil {
		if err := rt.journal.Close(); err != nil {
			rt.log.Warn("close journal", zap.Error(err))
		}
	}
	rt.log.Sync()
}

// withSession runs fn against an open runtime and closes it afterwards.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, rt *runtime) error) (err error) {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	defer func() {
		if cerr := rt.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(ctx, rt)
}

// printResult writes a command result: the message to out, a warning to
// errOut.
func printResult(cmd *cobra.Command, res game.Result) {
	if res.Message != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	}
	if res.Warning != "" {
		printWarning(cmd.ErrOrStderr(), res.Warning)
	}
}

func printWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, "warning:", msg)
}
