/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storeerrors "github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/filter"
	"github.com/suparena/tablestore/pagination"
	"github.com/suparena/tablestore/storagemodels"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newAwardTable(api *fakeAPI) *Table[Award, *Award] {
	return NewTable[Award](api, "awards", WithClock(func() time.Time { return fixedNow }))
}

func newAward() *Award {
	return &Award{
		TableEntity: storagemodels.TableEntity{PartitionKey: "hack", RowKey: "a1"},
		Name:        "Best Design",
	}
}

func TestInsert(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		api := &fakeAPI{}
		award := newAward()
		require.NoError(t, newAwardTable(api).Insert(ctx, award))

		assert.NotEmpty(t, award.ETag)
		assert.Equal(t, fixedNow, award.Timestamp)
		require.NotNil(t, api.lastPut.ConditionExpression)
		assert.Contains(t, *api.lastPut.ConditionExpression, "attribute_not_exists")

		etag, ok := api.lastPut.Item[storagemodels.AttrETag].(*types.AttributeValueMemberS)
		require.True(t, ok)
		assert.Equal(t, award.ETag, etag.Value)
	})

	t.Run("Collision", func(t *testing.T) {
		api := &fakeAPI{putErr: &types.ConditionalCheckFailedException{}}
		award := newAward()
		err := newAwardTable(api).Insert(ctx, award)
		assert.True(t, storeerrors.IsAlreadyExists(err))
		assert.Empty(t, award.ETag)
	})

	t.Run("MissingKey", func(t *testing.T) {
		err := newAwardTable(&fakeAPI{}).Insert(ctx, &Award{Name: "x"})
		assert.True(t, storeerrors.IsValidationError(err))
	})

	t.Run("Throttled", func(t *testing.T) {
		api := &fakeAPI{putErr: httpError(400, "ProvisionedThroughputExceededException")}
		err := newAwardTable(api).Insert(ctx, newAward())

		var se *storeerrors.StorageError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 400, se.StatusCode)
		assert.Equal(t, "ProvisionedThroughputExceededException", se.ErrorCode)
	})
}

func TestMerge(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		api := &fakeAPI{}
		award := newAward()
		award.ETag = "old"
		require.NoError(t, newAwardTable(api).Merge(ctx, award))

		in := api.lastUpdate
		require.NotNil(t, in)
		assert.True(t, strings.HasPrefix(*in.UpdateExpression, "SET "))
		assert.Equal(t, types.ReturnValuesOnConditionCheckFailureAllOld, in.ReturnValuesOnConditionCheckFailure)
		require.NotNil(t, in.ConditionExpression)
		assert.Contains(t, *in.ConditionExpression, "attribute_exists")

		var fields []string
		for _, name := range in.ExpressionAttributeNames {
			fields = append(fields, name)
		}
		assert.Contains(t, fields, "Name")
		assert.Contains(t, fields, storagemodels.AttrETag)
		assert.NotContains(t, fields, "Quantity")
		assert.NotContains(t, fields, storagemodels.AttrRowKey)

		assert.NotEqual(t, "old", award.ETag)
		assert.Equal(t, fixedNow, award.Timestamp)
	})

	t.Run("StaleETag", func(t *testing.T) {
		api := &fakeAPI{updateErr: &types.ConditionalCheckFailedException{
			Item: map[string]types.AttributeValue{storagemodels.AttrETag: &types.AttributeValueMemberS{Value: "newer"}},
		}}
		award := newAward()
		award.ETag = "old"
		err := newAwardTable(api).Merge(ctx, award)
		assert.True(t, storeerrors.IsPreconditionFailed(err))
		assert.Equal(t, "old", award.ETag)
	})

	t.Run("RowGone", func(t *testing.T) {
		api := &fakeAPI{updateErr: &types.ConditionalCheckFailedException{}}
		award := newAward()
		award.ETag = "old"
		assert.True(t, storeerrors.IsNotFound(newAwardTable(api).Merge(ctx, award)))
	})

	t.Run("NoETag", func(t *testing.T) {
		api := &fakeAPI{}
		assert.True(t, storeerrors.IsValidationError(newAwardTable(api).Merge(ctx, newAward())))
		assert.Nil(t, api.lastUpdate)
	})

	t.Run("UpsertIsUnconditional", func(t *testing.T) {
		api := &fakeAPI{}
		require.NoError(t, newAwardTable(api).UpsertMerge(ctx, newAward()))
		assert.Nil(t, api.lastUpdate.ConditionExpression)
	})
}

func TestReplace(t *testing.T) {
	ctx := context.Background()

	api := &fakeAPI{putErr: &types.ConditionalCheckFailedException{
		Item: map[string]types.AttributeValue{storagemodels.AttrETag: &types.AttributeValueMemberS{Value: "newer"}},
	}}
	award := newAward()
	award.ETag = "old"
	assert.True(t, storeerrors.IsPreconditionFailed(newAwardTable(api).Replace(ctx, award)))

	api = &fakeAPI{}
	require.NoError(t, newAwardTable(api).UpsertReplace(ctx, newAward()))
	assert.Nil(t, api.lastPut.ConditionExpression)
}

func TestRetrieve(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing", func(t *testing.T) {
		api := &fakeAPI{}
		got, err := newAwardTable(api).Retrieve(ctx, "hack", "a1")
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.True(t, *api.lastGet.ConsistentRead)
	})

	t.Run("Found", func(t *testing.T) {
		item, err := storagemodels.MarshalItem(newAward())
		require.NoError(t, err)
		api := &fakeAPI{}
		api.getOut = getOutput(item)

		got, err := newAwardTable(api).Retrieve(ctx, "hack", "a1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Best Design", got.Name)
	})
}

func TestRetrieveAndMergeMissingIsNoop(t *testing.T) {
	api := &fakeAPI{}
	called := false
	err := newAwardTable(api).RetrieveAndMerge(context.Background(), "hack", "gone", func(*Award) { called = true })
	require.NoError(t, err)
	assert.False(t, called)
	assert.Nil(t, api.lastUpdate)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	api := &fakeAPI{}
	table := newAwardTable(api)
	require.NoError(t, table.Delete(ctx, "hack", "a1"))
	require.NoError(t, table.Delete(ctx, "hack", "a1"))
	assert.Nil(t, api.lastDelete.ConditionExpression)

	api.deleteErr = httpError(403, "AccessDeniedException")
	err := table.Delete(ctx, "hack", "a1")
	assert.Equal(t, 403, storeerrors.StatusCode(err))

	api.deleteErr = context.Canceled
	assert.True(t, errors.Is(table.Delete(ctx, "hack", "a1"), context.Canceled))
	assert.False(t, storeerrors.IsStorageError(table.Delete(ctx, "hack", "a1")))
}

func TestQueryPage(t *testing.T) {
	ctx := context.Background()

	t.Run("PartitionQuery", func(t *testing.T) {
		item, err := storagemodels.MarshalItem(newAward())
		require.NoError(t, err)
		api := &fakeAPI{}
		api.queryOut = queryOutput([]storagemodels.Item{item}, keyAttributes("hack", "a1"))

		items, next, err := newAwardTable(api).QueryPage(ctx, filter.PartitionKeyEquals("hack"),
			pagination.Pagination{NP: "hack", NR: "a0"}, 1)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, pagination.Pagination{NP: "hack", NR: "a1"}, next)

		in := api.lastQuery
		require.NotNil(t, in)
		assert.Equal(t, int32(1), *in.Limit)
		assert.Equal(t, keyAttributes("hack", "a0"), in.ExclusiveStartKey)
		assert.Nil(t, in.FilterExpression)
		assert.Nil(t, api.lastScan)
	})

	t.Run("LastPage", func(t *testing.T) {
		api := &fakeAPI{}
		_, next, err := newAwardTable(api).QueryPage(ctx, filter.PartitionKeyEquals("hack"), pagination.Pagination{}, 10)
		require.NoError(t, err)
		assert.True(t, next.Exhausted())
		assert.Nil(t, api.lastQuery.ExclusiveStartKey)
	})

	t.Run("ScanWithoutPartition", func(t *testing.T) {
		api := &fakeAPI{}
		_, _, err := newAwardTable(api).QueryPage(ctx, filter.FieldEquals("Name", "Best Design"), pagination.Pagination{}, 10)
		require.NoError(t, err)
		require.NotNil(t, api.lastScan)
		assert.NotNil(t, api.lastScan.FilterExpression)
		assert.Nil(t, api.lastQuery)
	})

	t.Run("FullScan", func(t *testing.T) {
		api := &fakeAPI{}
		_, _, err := newAwardTable(api).QueryPage(ctx, filter.Filter{}, pagination.Pagination{}, 10)
		require.NoError(t, err)
		require.NotNil(t, api.lastScan)
		assert.Nil(t, api.lastScan.FilterExpression)
	})

	t.Run("InvalidFilter", func(t *testing.T) {
		api := &fakeAPI{}
		f := filter.And(filter.PartitionKeyEquals("hack"),
			filter.Compare(storagemodels.AttrRowKey, filter.GreaterThan, filter.String("a")),
			filter.Compare(storagemodels.AttrRowKey, filter.LessThan, filter.String("b")))
		_, _, err := newAwardTable(api).QueryPage(ctx, f, pagination.Pagination{}, 10)
		assert.True(t, storeerrors.IsValidationError(err))
		assert.Nil(t, api.lastQuery)
	})

	t.Run("StoreError", func(t *testing.T) {
		api := &fakeAPI{queryErr: httpError(500, "InternalServerError")}
		_, _, err := newAwardTable(api).QueryPage(ctx, filter.PartitionKeyEquals("hack"), pagination.Pagination{}, 10)
		assert.Equal(t, 500, storeerrors.StatusCode(err))
	})
}

func TestEnsureTableExisting(t *testing.T) {
	api := &fakeAPI{}
	require.NoError(t, newAwardTable(api).EnsureTable(context.Background()))
	assert.Zero(t, api.creates)

	api = &fakeAPI{describeErr: httpError(400, "AccessDeniedException")}
	err := newAwardTable(api).EnsureTable(context.Background())
	assert.True(t, storeerrors.IsStorageError(err))
	assert.Zero(t, api.creates)
}

func TestForEachParallelUsesDefaultParallelism(t *testing.T) {
	first, err := storagemodels.MarshalItem(newAward())
	require.NoError(t, err)
	other := newAward()
	other.RowKey = "a2"
	second, err := storagemodels.MarshalItem(other)
	require.NoError(t, err)

	api := &fakeAPI{queryOut: queryOutput([]storagemodels.Item{first, second}, nil)}
	table := NewTable[Award](api, "awards", WithDefaultParallelism(2))

	// each visit waits for the other, so both must be in flight at once
	var arrived sync.WaitGroup
	arrived.Add(2)
	overlapped := make(chan struct{})
	go func() {
		arrived.Wait()
		close(overlapped)
	}()

	err = table.ForEachParallel(context.Background(), filter.PartitionKeyEquals("hack"), func(context.Context, *Award) error {
		arrived.Done()
		select {
		case <-overlapped:
			return nil
		case <-time.After(5 * time.Second):
			return errors.New("visits did not overlap")
		}
	}, 0, 0)
	require.NoError(t, err)
}
