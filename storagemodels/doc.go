/*
Package storagemodels defines the data structures shared by every table store.

Key Types:

TableEntity:
The key and version attributes every record carries. Records embed it:

	type Team struct {
	    storagemodels.TableEntity
	    DisplayName string `dynamodbav:"DisplayName,omitempty"`
	    CreatorID   string `dynamodbav:"CreatorId,omitempty"`
	}

*Team then satisfies Entity, and EntityPointer[Team] lets a generic table
allocate and mutate Team values without reflection.

Item:
The persisted attribute map. MarshalItem/UnmarshalItem convert records,
MergeItem overlays the non-empty attributes of a partial update.

StreamResult:
Results from streaming operations with metadata:

	type StreamResult[T any] struct {
	    Item  T          // The typed entity
	    Error error      // Item-specific error, if any
	    Meta  StreamMeta // Metadata about this item
	}

StreamOptions:
Configuration for streaming behavior:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithMaxRetries(3),
	    WithProgressHandler(progressFunc),
	}
*/
package storagemodels
