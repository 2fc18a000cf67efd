package reconcile

import "context"

// Adapter loads the three views the engine compares: the ledger of listed
// entries, the resources that exist, and which of them are already bound.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g., "pools").
	Name() string

	// LoadListed returns the keys in the ledger.
	LoadListed(ctx context.Context) (map[string]struct{}, error)

	// LoadPresent returns the subset of keys whose resource exists.
	LoadPresent(ctx context.Context, keys []string) (map[string]struct{}, error)

	// LoadBindings maps each bound key in keys to its owner.
	LoadBindings(ctx context.Context, keys []string) (map[string]string, error)
}

// Mutator is implemented by adapters that can apply a plan.
type Mutator interface {
	// RemoveListed drops keys from the ledger in one request.
	RemoveListed(ctx context.Context, keys []string) error
}
