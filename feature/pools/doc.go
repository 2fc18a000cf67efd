// Package pools hands out storage pools to new buckets.
//
// Creating a pool is expensive, so pools are created ahead of time in
// batches and listed in a shared registry document until a bucket takes
// one.
//
// # Components
//
//   - Preallocator: names and creates a batch of pools. Partial failure
//     yields the pools that succeeded; only a batch with no success fails.
//   - Registry: the shared document of available pools. Publish creates the
//     document's pool on first use. Withdraw sets a single key. Snapshot
//     reads an absent document as empty.
//   - Allocator: picks a pool uniformly at random from the registry, or
//     generates a fresh batch when the registry is empty, binding the last
//     pool and publishing the rest.
//   - Maintainer: tops the registry up to PreallocateMax whenever it falls
//     below PreallocateThreshold, either on demand or on a ticker.
//   - Auditor: reports (and optionally removes) entries whose pool is gone
//     from storage or already bound.
//
// # Concurrency
//
// The registry is read and then acted upon without compare-and-swap. Two
// allocations can pick the same pool; exclusive bucket creation is what
// catches the collision. Allocated pools are not removed from the registry.
package pools
