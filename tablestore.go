/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablestore

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/suparena/tablestore/activitylog"
	"github.com/suparena/tablestore/config"
	"github.com/suparena/tablestore/datastore/ddb"
)

// ActivityLogTable is the catalog name of the activity log table.
const ActivityLogTable = "activitylog"

// Stores bundles the DynamoDB-backed tables of an application.
type Stores struct {
	Config       *config.Config
	Logger       *zap.Logger
	Client       ddb.API
	Catalog      *Catalog
	ActivityLogs *activitylog.Writer
}

// Open connects to DynamoDB with cfg and wires every table.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	client, err := ddb.NewClient(ctx, cfg.ClientOptions())
	if err != nil {
		return nil, err
	}
	return OpenWithClient(cfg, client, logger)
}

// OpenWithClient wires every table on top of an existing client.
func OpenWithClient(cfg *config.Config, client ddb.API, logger *zap.Logger) (*Stores, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Stores{
		Config:  cfg,
		Logger:  logger,
		Client:  client,
		Catalog: NewCatalog(),
	}

	activityTable := ddb.NewTable[activitylog.Entity](client, cfg.Tables.ActivityLog,
		ddb.WithLogger(logger.Named("ddb")),
		ddb.WithDefaultPageSize(cfg.Query.PageSize),
		ddb.WithDefaultParallelism(cfg.Query.Parallelism),
	)
	if err := Register[activitylog.Entity](s.Catalog, ActivityLogTable, activityTable); err != nil {
		return nil, err
	}

	writer, err := activitylog.NewWriter(activityTable, activitylog.WithLogger(logger.Named("activitylog")))
	if err != nil {
		return nil, fmt.Errorf("failed to create activity log writer: %w", err)
	}
	s.ActivityLogs = writer
	return s, nil
}

// tableCreator is implemented by catalog tables backed by a real store.
type tableCreator interface {
	EnsureTable(ctx context.Context) error
}

// EnsureTables creates every cataloged table that does not exist yet.
// In-memory tables are skipped.
func (s *Stores) EnsureTables(ctx context.Context) error {
	for _, name := range List[activitylog.Entity](s.Catalog) {
		table, err := Get[activitylog.Entity](s.Catalog, name)
		if err != nil {
			return err
		}
		creator, ok := table.(tableCreator)
		if !ok {
			continue
		}
		if err := creator.EnsureTable(ctx); err != nil {
			return fmt.Errorf("failed to ensure table %s: %w", name, err)
		}
	}
	return nil
}
