// Package integrity provides infrastructure health checks.
//
// # Checks Provided
//
//   - Index: the bucket-index pool exists (fixable by creating it as a
//     system bucket).
//   - Registry: the available-pool document is readable; reports its size.
//   - Schema: the catalog table has every column the catalog uses.
//
// Registry contents are audited by package pools, not here.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/index : Index pool check (supports ?fix=true).
//   - GET /integrity/registry : Registry check.
//   - GET /integrity/schema : Catalog schema check.
package integrity
