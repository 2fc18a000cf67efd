// Package backend defines the storage backend contract and its production
// implementation.
//
// # Contract
//
// Backend exposes batch pool creation, bucket creation and deletion, plain
// object get/put and a shared key/payload document primitive. Errors are
// classified with the package sentinels (ErrNotFound, ErrAlreadyExists,
// ErrCorrupt) and tested with errors.Is; anything else is a transient backend
// failure passed through unchanged.
//
// # Gateway
//
// Gateway composes three services:
//   - a MinIO client: every pool is one S3 bucket and bookkeeping objects live
//     in the bucket-index pool
//   - the bucket catalog (core/catalog): bucket ids, owners and the unique
//     name constraint that makes exclusive creation safe across instances
//   - the document store (core/docstore): shared documents as Redis hashes,
//     each update a single atomic command
//
// # Testing
//
// The mocks package carries a testify mock and backendtest an in-memory
// implementation with failure hooks.
package backend
