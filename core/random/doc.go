// Package random wraps the cryptographic random source used for pool name
// suffixes and for picking an available pool.
//
// A failing source is a hard error (ErrUnavailable); nothing here degrades to
// a deterministic choice.
package random
