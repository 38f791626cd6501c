/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/suparena/tablestore"
	"github.com/suparena/tablestore/activitylog"
	"github.com/suparena/tablestore/config"
	"github.com/suparena/tablestore/pagination"
)

// activityService is the part of activitylog.Writer the commands use.
type activityService interface {
	LogActivity(ctx context.Context, entity *activitylog.Entity) activitylog.Result
	List(ctx context.Context, opts activitylog.QueryOptions) ([]*activitylog.Entity, pagination.Pagination, error)
}

type app struct {
	configPath string
	logLevel   string

	// replaced in tests
	activities func(ctx context.Context) (activityService, error)
	ensure     func(ctx context.Context) error
}

func newApp() *app {
	a := &app{}
	a.activities = func(ctx context.Context) (activityService, error) {
		stores, err := a.open(ctx)
		if err != nil {
			return nil, err
		}
		return stores.ActivityLogs, nil
	}
	a.ensure = func(ctx context.Context) error {
		stores, err := a.open(ctx)
		if err != nil {
			return err
		}
		return stores.EnsureTables(ctx)
	}
	return a
}

func (a *app) open(ctx context.Context) (*tablestore.Stores, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	logger, err := config.NewLogger(level)
	if err != nil {
		return nil, err
	}
	return tablestore.Open(ctx, cfg, logger.Named("tablectl"))
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "tablectl",
		Short:        "Manage tablestore tables and activity logs",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file (default ./tablestore.yaml when present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		newVersionCmd(),
		newEnsureTableCmd(a),
		newActivityCmd(a),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := tablestore.GetVersionInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tablectl version %s\n", info.Version)
			fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
			return nil
		},
	}
}

func newEnsureTableCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-table",
		Short: "Create the configured tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensure(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "tables ready")
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
