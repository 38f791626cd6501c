/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/tablestore/storagemodels"
)

// TableCreateTimeout bounds how long EnsureTable waits for a new table to become active.
var TableCreateTimeout = 5 * time.Minute

// EnsureTable creates the table with the PartitionKey/RowKey schema if it
// does not exist, and waits until it is active.
func (d *Table[T, P]) EnsureTable(ctx context.Context) error {
	return EnsureTable(ctx, d.client, d.tableName, d.logger)
}

// EnsureTable creates tableName if it does not exist.
func EnsureTable(ctx context.Context, client API, tableName string, logger *zap.Logger) error {
	_, err := client.DescribeTable(ctx, &sdk.DescribeTableInput{TableName: aws.String(tableName)})
	if err == nil {
		return nil
	}
	if !isResourceNotFound(err) {
		return storageError("describeTable", err)
	}

	logger.Info("creating table", zap.String("table", tableName))
	_, err = client.CreateTable(ctx, &sdk.CreateTableInput{
		TableName:   aws.String(tableName),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(storagemodels.AttrPartitionKey), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(storagemodels.AttrRowKey), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(storagemodels.AttrPartitionKey), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(storagemodels.AttrRowKey), KeyType: types.KeyTypeRange},
		},
	})
	// another process may be creating the same table
	if err != nil && !isResourceInUse(err) {
		return storageError("createTable", err)
	}

	waiter := sdk.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &sdk.DescribeTableInput{TableName: aws.String(tableName)}, TableCreateTimeout); err != nil {
		return fmt.Errorf("wait for table %s to exist: %w", tableName, err)
	}
	return nil
}
