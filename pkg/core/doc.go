// Package core implements symkeeper's reconciliation pipeline.
// It provides the main execution flow from the desired link set through
// to filesystem operations and the persisted record.
//
// # Ownership
//
// symkeeper only ever overwrites what it created. The lock file records
// every link written by the last successful run together with its target.
// When a configured link path is already occupied, Plan decides:
//
//  1. The link was queued for removal by a previous run: safe to replace
//
//  2. The link is not in the record: someone else put it there, --force is
//     required
//
//  3. The link is in the record and still points at the recorded target:
//     safe, this is an ordinary re-sync
//
//  4. The link is in the record but is no longer a symlink, or points
//     elsewhere: it drifted since the last run, --force is required
//
// Every offending link is reported in a single LINK_CONFLICT error and
// nothing is touched.
//
// # Removal
//
// A link that leaves the configuration is not deleted immediately. It moves
// from the managed set to the pending-removal set of the new record, and
// Clean deletes it afterwards. A failed Clean keeps the whole pending set
// for the next run.
//
// # Dry Run
//
// Dry-run mode is a filesystem strategy (filesystem.NewDryRunFS). The
// pipeline runs exactly the same code and makes the same decisions, but
// every mutation, lock file writes included, is only reported.
package core
