/*
Package datastore defines the typed table interface and the scan helpers
shared by every backend.

Table[T, P] is the client for one logical table, generic over the record
type T and its pointer P:

	type Table[T any, P storagemodels.EntityPointer[T]] interface {
	    Insert(ctx context.Context, entity P) error
	    Merge(ctx context.Context, entity P) error
	    Replace(ctx context.Context, entity P) error
	    UpsertMerge(ctx context.Context, entity P) error
	    UpsertReplace(ctx context.Context, entity P) error
	    RetrieveAndMerge(ctx context.Context, pk, rk string, mutate func(P)) error
	    Delete(ctx context.Context, pk, rk string) error
	    Retrieve(ctx context.Context, pk, rk string) (P, error)
	    QueryPage(ctx context.Context, f filter.Filter, page pagination.Pagination, pageSize int) ([]P, pagination.Pagination, error)
	    QueryAll(ctx context.Context, f filter.Filter) ([]P, error)
	    ForEach(ctx context.Context, f filter.Filter, visit Visitor[P], limit int) error
	    ForEachParallel(ctx context.Context, f filter.Filter, visit Visitor[P], maxParallelism, limit int) error
	    Stream(ctx context.Context, f filter.Filter, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[P]
	}

Backends implement QueryPage and delegate the multi-page operations to
QueryAll, ForEach, ForEachParallel and Stream in this package, so paging,
limits, cancellation and bounded parallelism behave the same everywhere.

Implementations:
  - ddb: DynamoDB implementation
  - mock: In-memory implementation for testing
*/
package datastore
