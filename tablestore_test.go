/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablestore_test

import (
	"context"
	"slices"
	"testing"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/tablestore"
	"github.com/suparena/tablestore/activitylog"
	"github.com/suparena/tablestore/config"
	"github.com/suparena/tablestore/datastore/ddb"
	"github.com/suparena/tablestore/datastore/mock"
)

// existingTables answers DescribeTable for every table and panics on
// anything else.
type existingTables struct {
	ddb.API
	described []string
}

func (e *existingTables) DescribeTable(_ context.Context, in *sdk.DescribeTableInput, _ ...func(*sdk.Options)) (*sdk.DescribeTableOutput, error) {
	e.described = append(e.described, *in.TableName)
	return &sdk.DescribeTableOutput{Table: &types.TableDescription{
		TableName:   in.TableName,
		TableStatus: types.TableStatusActive,
	}}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		AWS:    config.AWSConfig{Region: "us-east-1"},
		Tables: config.TablesConfig{ActivityLog: "ActivityLogTest"},
		Query:  config.QueryConfig{PageSize: 50, Parallelism: 4},
		Log:    config.LogConfig{Level: "info"},
	}
}

func TestOpenWithClient(t *testing.T) {
	client := &existingTables{}
	stores, err := tablestore.OpenWithClient(testConfig(), client, nil)
	if err != nil {
		t.Fatalf("OpenWithClient: %v", err)
	}
	if stores.ActivityLogs == nil {
		t.Fatal("activity log writer not wired")
	}
	if stores.Logger == nil {
		t.Fatal("expected a no-op logger")
	}

	table, err := tablestore.Get[activitylog.Entity](stores.Catalog, tablestore.ActivityLogTable)
	if err != nil {
		t.Fatalf("activity log table not registered: %v", err)
	}
	named, ok := table.(interface{ Name() string })
	if !ok || named.Name() != "ActivityLogTest" {
		t.Fatalf("expected table ActivityLogTest, got %v", table)
	}
}

func TestEnsureTablesSkipsExisting(t *testing.T) {
	client := &existingTables{}
	stores, err := tablestore.OpenWithClient(testConfig(), client, nil)
	if err != nil {
		t.Fatalf("OpenWithClient: %v", err)
	}

	if err := stores.EnsureTables(context.Background()); err != nil {
		t.Fatalf("EnsureTables: %v", err)
	}
	if len(client.described) != 1 || client.described[0] != "ActivityLogTest" {
		t.Fatalf("expected one DescribeTable for ActivityLogTest, got %v", client.described)
	}
}

func TestEnsureTablesWalksCatalog(t *testing.T) {
	client := &existingTables{}
	stores, err := tablestore.OpenWithClient(testConfig(), client, nil)
	if err != nil {
		t.Fatalf("OpenWithClient: %v", err)
	}

	archive := ddb.NewTable[activitylog.Entity](client, "ActivityLogArchive")
	if err := tablestore.Register[activitylog.Entity](stores.Catalog, "archive", archive); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := tablestore.Register[activitylog.Entity](stores.Catalog, "scratch", mock.NewTable[activitylog.Entity]("scratch")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := stores.EnsureTables(context.Background()); err != nil {
		t.Fatalf("EnsureTables: %v", err)
	}
	want := []string{"ActivityLogTest", "ActivityLogArchive"}
	if len(client.described) != len(want) {
		t.Fatalf("expected DescribeTable for %v, got %v", want, client.described)
	}
	for _, name := range want {
		if !slices.Contains(client.described, name) {
			t.Fatalf("expected DescribeTable for %s, got %v", name, client.described)
		}
	}
}

func TestGetVersionInfo(t *testing.T) {
	info := tablestore.GetVersionInfo()
	if info.Version != tablestore.Version {
		t.Fatalf("expected version %s, got %s", tablestore.Version, info.Version)
	}
}
