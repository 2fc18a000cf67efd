// Package gateway is the production backend.Backend.
//
// Pools map onto storage buckets named "<namespace>-<pool>". Bucket
// identity and ownership live in the catalog. Shared documents live in the
// document store but still require their pool to exist, so the first publish
// into a fresh deployment reports backend.ErrNotFound and the registry creates
// the bucket-index pool before retrying.
package gateway
