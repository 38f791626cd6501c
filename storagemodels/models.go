/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"time"
)

// TableEntity holds the key and version attributes every stored record carries.
// Concrete records embed it by value.
type TableEntity struct {
	// PartitionKey selects the storage partition.
	PartitionKey string `dynamodbav:"PartitionKey" json:"partitionKey"`
	// RowKey identifies the record inside its partition.
	RowKey string `dynamodbav:"RowKey" json:"rowKey"`
	// Timestamp is written by the store on every successful write.
	Timestamp time.Time `dynamodbav:"Timestamp" json:"timestamp"`
	// ETag is the optimistic-concurrency token, regenerated on every write.
	ETag string `dynamodbav:"ETag,omitempty" json:"etag,omitempty"`
}

func (e *TableEntity) GetPartitionKey() string   { return e.PartitionKey }
func (e *TableEntity) GetRowKey() string         { return e.RowKey }
func (e *TableEntity) GetETag() string           { return e.ETag }
func (e *TableEntity) SetETag(etag string)       { e.ETag = etag }
func (e *TableEntity) GetTimestamp() time.Time   { return e.Timestamp }
func (e *TableEntity) SetTimestamp(ts time.Time) { e.Timestamp = ts }
func (e *TableEntity) Key() string               { return KeyString(e.PartitionKey, e.RowKey) }

// Entity is the capability a record needs to be stored in a table.
type Entity interface {
	GetPartitionKey() string
	GetRowKey() string
	GetETag() string
	SetETag(string)
	GetTimestamp() time.Time
	SetTimestamp(time.Time)
}

// EntityPointer constrains P to be *T and an Entity, so tables can both
// allocate new records and call the Entity methods on them.
type EntityPointer[T any] interface {
	*T
	Entity
}

// KeyString renders a (partition, row) pair for messages and map keys.
func KeyString(partitionKey, rowKey string) string {
	return partitionKey + "/" + rowKey
}
