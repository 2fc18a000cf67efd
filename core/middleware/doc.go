// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation on the X-API-Key header.
//   - rayid: a request id per incoming request, stored in the context and
//     echoed in the X-Ray-ID response header for tracing.
//
// Register rayid first so every later log line carries the id.
package middleware
