// Package metrics exposes Prometheus collectors for pool preallocation,
// allocation, bucket creation and compensating actions.
//
// Components take a *Metrics and may be handed nil, which disables
// recording. Handler mounts the registry on a fiber route.
package metrics
