package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/abhisek/shardhunt/internal/config"
	"github.com/abhisek/shardhunt/internal/logging"
	"github.com/abhisek/shardhunt/internal/quest"
	"github.com/abhisek/shardhunt/internal/store"
	"github.com/abhisek/shardhunt/internal/wallet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env bundles what every subcommand opens.
type env struct {
	cfg    *config.Config
	store  *store.Store
	kv     store.KV
	ledger *wallet.Ledger
	svc    *quest.Service
	log    *zap.Logger
}

// openEnv loads config, opens the store and builds the services. With
// logToFile the logs go to a file beside the database so they don't
// corrupt the TUI.
func openEnv(cmd *cobra.Command, logToFile bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logOpts := logging.Options{Level: cfg.Logging.Level, Verbose: verbose}
	if logToFile {
		logOpts.File = cfg.Logging.File
		if logOpts.File == "" {
			logOpts.File = filepath.Join(filepath.Dir(dbPath), "shardhunt.log")
		}
		if err := store.EnsureDir(logOpts.File); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	log, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", zap.String("path", dbPath))

	kv := st.KV()
	ledger := wallet.NewLedger(kv, log.Named("wallet"))
	return &env{
		cfg:    cfg,
		store:  st,
		kv:     kv,
		ledger: ledger,
		svc:    quest.NewService(kv, ledger, cfg.Quest(), log.Named("quest")),
		log:    log,
	}, nil
}

// Close flushes the logger and closes the store.
func (e *env) Close() {
	_ = e.log.Sync()
	e.store.Close()
}
