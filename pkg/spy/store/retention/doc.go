// Package retention prunes aged entries from the aggregation store.
//
// The Pruner removes entries older than the configured number of days;
// the Scheduler runs it on a cron schedule while the report viewer server
// is up. Pruning failures are logged and never fatal.
package retention
