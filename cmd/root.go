// Package cmd is the gdrivepath command line.
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/svetlyi/gdrivepath/config"
	"github.com/svetlyi/gdrivepath/contracts"
	"github.com/svetlyi/gdrivepath/db"
	"github.com/svetlyi/gdrivepath/journal"
	"github.com/svetlyi/gdrivepath/ldrive"
	"github.com/svetlyi/gdrivepath/logger"
	"github.com/svetlyi/gdrivepath/rdrive"
	"github.com/svetlyi/gdrivepath/rdrive/auth"
	"github.com/svetlyi/gdrivepath/synchronization"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

var (
	debug    bool
	strict   bool
	authMode string

	cfg        config.Cfg
	log        contracts.Logger
	appLog     logger.Logger
	dbInstance *sql.DB
	history    journal.Journal
)

var rootCmd = &cobra.Command{
	Use:   "gdrivepath",
	Short: "Work with Google Drive by paths",
	Long: `gdrivepath addresses Google Drive files by slash paths like
root/photos/2020/a.jpg. Missing folders are created on upload, existing
files are overwritten or skipped.

The first segment of a path is the id of the folder to start from,
"root" being "My Drive".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		if cfg, err = config.ReadCreateIfNotExist(); err != nil {
			return errors.Wrap(err, "could not read config")
		}
		verbosity := cfg.LogVerbosity
		if debug {
			verbosity = contracts.LogDebugLevel
		}
		closeResources()
		if appLog, err = logger.New(config.GetAppName(), cfg.LogFileMaxSize, verbosity, debug); err != nil {
			return errors.Wrap(err, "could not create logger")
		}
		log = appLog
		if dbInstance, err = db.Open(cfg.DBPath); err != nil {
			return err
		}
		history, err = journal.New(dbInstance, log)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeResources()
	},
}

func closeResources() {
	if dbInstance != nil {
		dbInstance.Close()
		dbInstance = nil
	}
	appLog.Close()
	appLog = logger.Logger{}
}

// newSession authenticates and creates a synchronizer with an empty path cache.
func newSession(ctx context.Context) (*synchronization.Synchronizer, error) {
	mode := cfg.AuthMode
	if authMode != "" {
		mode = authMode
	}
	cfgDir, err := config.GetCfgDir()
	if err != nil {
		return nil, err
	}
	tokenSource, err := auth.GetTokenSource(ctx, auth.Config{
		Mode:            auth.Mode(mode),
		ConfigDir:       cfgDir,
		CredentialsFile: cfg.CredentialsFile,
		CallbackAddr:    cfg.CallbackAddr,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not get token source")
	}
	srv, err := drive.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, errors.Wrap(err, "unable to retrieve Drive client")
	}

	return synchronization.New(
		rdrive.New(srv, cfg.PageSizeToQuery, log),
		ldrive.New(log),
		log,
		synchronization.WithStrict(strict),
		synchronization.WithReporter(history),
	), nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Show debugging information")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Stop resolving a path at the first missing folder")
	rootCmd.PersistentFlags().StringVar(&authMode, "auth", "", "Auth mode: cli, webserver or service-account (default from config)")
}
