// Package reconcile audits a ledger of entries against the resources they
// stand for.
//
// The pool registry is the ledger in this service: every listed pool should
// exist in storage and back no bucket. Nothing prevents drift (a crashed
// creator, a pool removed by hand, two allocations racing for the same pool),
// so operators reconcile after the fact.
//
// # Architecture
//
//  1. Adapter: loads the listed keys, the subset that exists and the subset
//     that is bound. Presence and bindings load concurrently.
//
//  2. Engine: turns the views into one ReconcileResult per listed key.
//
//  3. Plan: summarizes results and, with DoPurge, plans removal of every
//     unhealthy entry. ApplyPlan executes only with Confirmed set and DryRun
//     unset, through the adapter's Mutator.
//
// # Usage Example
//
//	plan, executed, err := reconcile.ReconcileAndApply(ctx, adapter, reconcile.ReconcileOptions{
//	    DoPurge:   true,
//	    Confirmed: true,
//	})
package reconcile
