// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command replsync synchronizes the two roots of a stored profile.
//
//	replsync                      # terminal UI
//	replsync sync photos --yes    # headless run
//	replsync profile list
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-replica-sync/internal/client"
	"github.com/MKhiriev/go-replica-sync/internal/config"
	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/tui"
	"github.com/MKhiriev/go-replica-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := newCLI(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	if err := c.execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// cli carries what every subcommand shares. app and log are set by setup.
type cli struct {
	root      *cobra.Command
	buildInfo models.AppBuildInfo
	flags     *config.StructuredConfig
	log       *logger.Logger
	app       *client.App
}

func newCLI(buildInfo models.AppBuildInfo) *cli {
	c := &cli{buildInfo: buildInfo}
	c.root = c.rootCmd()
	return c
}

// execute runs the command line, then closes the app even when the command
// failed.
func (c *cli) execute(ctx context.Context) error {
	err := c.root.ExecuteContext(ctx)
	return errors.Join(err, c.close())
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "replsync",
		Short:             "Two-replica file synchronizer",
		Long:              "replsync reconciles two directory trees, local or served by replsync-server,\nand propagates the changes you approve.",
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		RunE:              c.runTUI,
	}
	c.flags = config.BindClientFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Open the terminal UI (default)",
			Args:  cobra.NoArgs,
			RunE:  c.runTUI,
		},
		c.syncCmd(),
		c.profileCmd(),
		c.versionCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.GetClientConfig(c.flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.App.Version == "" {
		cfg.App.Version = c.buildInfo.BuildVersion()
	}

	c.log = logger.NewClientLogger("replsync", cfg.App.LogFile)
	c.log.Debug().
		Str("db", cfg.Storage.DB.DSN).
		Dur("request_timeout", cfg.Adapter.RequestTimeout).
		Int("max_auth_attempts", cfg.App.MaxAuthAttempts).
		Msg("received configs")

	c.app, err = client.NewApp(cmd.Context(), cfg, c.log)
	if err != nil {
		c.log.Err(err).Msg("init client app error")
		return err
	}
	return nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func (c *cli) runTUI(cmd *cobra.Command, _ []string) error {
	ui := tui.New(c.app.NewSession, c.buildInfo, c.log)
	return c.app.Run(cmd.Context(), ui)
}
