// Package server holds the admin HTTP server configuration and the mapping
// from error kinds to HTTP responses shared by every feature handler.
//
// # Error mapping
//
//	backend.ErrNotFound       404
//	backend.ErrAlreadyExists  409
//	backend.ErrCorrupt        500
//	random.ErrUnavailable     503
//	anything else             502
package server
