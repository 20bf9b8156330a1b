// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Command chesstv watches the live broadcast chess game in a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chesstv/internal/app"
	"chesstv/internal/bootstrap"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgPath string
	var feedURL string

	cmd := &cobra.Command{
		Use:   "chesstv",
		Short: "Watch the featured live chess game in your terminal",
		Long: `chesstv connects to a broadcast chess stream (the Lichess TV
feed by default), extracts positions and player info from its events, and
renders the board in the terminal.  Quit with q or Escape.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap.Setup(cfgPath)
			if err != nil {
				return err
			}
			if feedURL != "" {
				cfg.FeedURL = feedURL
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer logger.Sync()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go handleShutdown(cancel, logger)

			if err := app.Run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to a config file")
	cmd.Flags().StringVarP(&feedURL, "url", "u", "", "feed URL (overrides the configured one)")
	return cmd
}

// newLogger logs to the configured file.  Without one it logs nowhere: the
// TUI owns the terminal and stray log lines would corrupt the display.
func newLogger(cfg *bootstrap.Config) (*zap.SugaredLogger, error) {
	if cfg.LogFile == "" {
		return zap.NewNop().Sugar(), nil
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", cfg.LogLevel, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{cfg.LogFile}
	zcfg.ErrorOutputPaths = []string{cfg.LogFile}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func handleShutdown(cancel context.CancelFunc, log *zap.SugaredLogger) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	log.Infow("shutting down", "signal", s.String())
	cancel()
}
