/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Attribute names shared by every table.
const (
	AttrPartitionKey = "PartitionKey"
	AttrRowKey       = "RowKey"
	AttrETag         = "ETag"
	AttrTimestamp    = "Timestamp"
)

// Item is the attribute map a record is persisted as.
type Item = map[string]types.AttributeValue

// MarshalItem converts a record into its persisted attribute map.
func MarshalItem(entity any) (Item, error) {
	item, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return item, nil
}

// UnmarshalItem allocates a new T and fills it from item.
func UnmarshalItem[T any, P EntityPointer[T]](item Item) (P, error) {
	var v T
	if err := attributevalue.UnmarshalMap(item, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item to %T: %w", v, err)
	}
	return P(&v), nil
}

// IsEmptyAttribute reports whether v carries no value. Merges skip such
// attributes so they leave the stored value untouched.
func IsEmptyAttribute(v types.AttributeValue) bool {
	switch av := v.(type) {
	case nil:
		return true
	case *types.AttributeValueMemberNULL:
		return true
	case *types.AttributeValueMemberS:
		return av.Value == ""
	case *types.AttributeValueMemberL:
		return len(av.Value) == 0
	case *types.AttributeValueMemberM:
		return len(av.Value) == 0
	case *types.AttributeValueMemberSS:
		return len(av.Value) == 0
	case *types.AttributeValueMemberNS:
		return len(av.Value) == 0
	case *types.AttributeValueMemberBS:
		return len(av.Value) == 0
	case *types.AttributeValueMemberB:
		return len(av.Value) == 0
	}
	return false
}

// IsSystemAttribute reports whether name is a key or version attribute.
func IsSystemAttribute(name string) bool {
	switch name {
	case AttrPartitionKey, AttrRowKey, AttrETag, AttrTimestamp:
		return true
	}
	return false
}

// MergeItem returns a copy of stored overlaid with every non-empty,
// non-system attribute of patch.
func MergeItem(stored, patch Item) Item {
	merged := make(Item, len(stored)+len(patch))
	for k, v := range stored {
		merged[k] = v
	}
	for k, v := range patch {
		if IsSystemAttribute(k) || IsEmptyAttribute(v) {
			continue
		}
		merged[k] = v
	}
	return merged
}

// CloneItem returns a shallow copy of item.
func CloneItem(item Item) Item {
	if item == nil {
		return nil
	}
	out := make(Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

// StampItem writes the version attributes of a successful write into item.
func StampItem(item Item, etag string, ts time.Time) error {
	av, err := attributevalue.Marshal(ts)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}
	item[AttrETag] = &types.AttributeValueMemberS{Value: etag}
	item[AttrTimestamp] = av
	return nil
}
