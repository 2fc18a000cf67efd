// Package buckets creates buckets and persists their records.
//
// # Records
//
// InfoStore writes each record to the bucket-index pool twice: under the
// bucket name and under "." followed by the decimal bucket id. The two
// writes are independent; a failed alias write is logged and the call still
// succeeds. Loading an unknown name yields a default record whose pool is
// the name, which is how system buckets resolve.
//
// # Creation
//
// Creator.Create runs these steps in order for tenant buckets:
//
//  1. allocate a pool (see package pools)
//  2. create the bucket in the backend, exclusively if asked
//  3. on a conflict, withdraw the pool back into the registry and return
//     the conflict
//  4. persist the record; on failure delete the new bucket and return the
//     persistence error
//
// Compensating steps never change the error the caller receives. Pools
// generated along the way are kept even when creation fails.
package buckets
