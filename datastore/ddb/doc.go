/*
Package ddb provides the DynamoDB implementation of datastore.Table.

Every table uses the same key schema: PartitionKey (hash) and RowKey
(range), both strings. Each write stores a fresh ETag (a UUID) and a
Timestamp, and copies both back onto the caller's entity.

Conditional writes:

	Insert          attribute_not_exists(PartitionKey)
	Merge, Replace  attribute_exists(PartitionKey) AND ETag = :etag

Merge and Replace ask for the old item on a failed condition, which tells
a deleted row (NotFound) apart from a concurrent update (PreconditionFailed).

Queries:
Filters are compiled with the expression builder. A partition-key equality
plus at most one row-key comparison become the key condition and run as a
Query; everything else becomes the filter expression. Filters without a
partition-key equality run as a Scan. The LastEvaluatedKey of each page is
returned as the np/nr cursor halves.

	table := ddb.NewTable[Team](client, "teams", ddb.WithLogger(logger))
	teams, next, err := table.QueryPage(ctx, filter.PartitionKeyEquals("hack"), page, 20)

Against dynamodb-local, set ClientOptions.Endpoint and call EnsureTable.
*/
package ddb
