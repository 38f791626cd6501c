/*
Package tablestore is a typed client for partition-key/row-key tables with
optimistic concurrency, filtered scans that resume from opaque cursors, and
bounded-parallel fan-out over scan results.

Packages:
  - storagemodels: TableEntity, the base every record embeds
  - filter: comparisons and conjunctions evaluated by the store
  - pagination: top/np/nr page requests and next links
  - datastore: the Table interface and the shared scan engine
  - datastore/ddb: DynamoDB tables
  - datastore/mock: in-memory tables for tests
  - activitylog: the activity fan-out writer
  - errors: NotFound, AlreadyExists, PreconditionFailed, Validation and Storage errors
  - config: settings from .env, YAML and the environment

Basic Usage:

	cfg, _ := config.Load("")
	stores, _ := tablestore.Open(ctx, cfg, logger)

	teams := ddb.NewTable[Team](stores.Client, "Teams")
	tablestore.Register[Team](stores.Catalog, "teams", teams)

	team := &Team{Name: "rockets"}
	team.PartitionKey, team.RowKey = "hack1", "rockets"
	if err := teams.Insert(ctx, team); errors.IsAlreadyExists(err) {
		// pick another name
	}

	err := teams.ForEachParallel(ctx, filter.PartitionKeyEquals("hack1"),
		func(ctx context.Context, t *Team) error { return notify(ctx, t) },
		8, 0)

	_ = stores.ActivityLogs.LogActivity(ctx, &activitylog.Entity{
		ActivityType:  activitylog.TypeCreateTeam,
		UserID:        userID,
		HackathonName: "hack1",
	})
*/
package tablestore
