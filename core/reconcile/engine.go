package reconcile

import (
	"context"
	"sort"
	"sync"
)

// Index holds the views loaded from an adapter.
type Index struct {
	Listed   map[string]struct{}
	Present  map[string]struct{}
	Bindings map[string]string
}

// BuildIndex loads the ledger, then presence and bindings of its keys
// concurrently.
func BuildIndex(ctx context.Context, adapter Adapter) (*Index, error) {
	listed, err := adapter.LoadListed(ctx)
	if err != nil {
		return nil, err
	}

	keys := sortedKeys(listed)

	var (
		present     map[string]struct{}
		bindings    map[string]string
		presentErr  error
		bindingsErr error
		wg          sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		present, presentErr = adapter.LoadPresent(ctx, keys)
	}()

	go func() {
		defer wg.Done()
		bindings, bindingsErr = adapter.LoadBindings(ctx, keys)
	}()

	wg.Wait()

	if presentErr != nil {
		return nil, presentErr
	}
	if bindingsErr != nil {
		return nil, bindingsErr
	}

	return &Index{Listed: listed, Present: present, Bindings: bindings}, nil
}

// ReconcileAll returns one result per listed key, sorted by key.
func ReconcileAll(ctx context.Context, adapter Adapter) ([]ReconcileResult, error) {
	idx, err := BuildIndex(ctx, adapter)
	if err != nil {
		return nil, err
	}
	return resultsFromIndex(idx), nil
}

func resultsFromIndex(idx *Index) []ReconcileResult {
	results := make([]ReconcileResult, 0, len(idx.Listed))
	for _, key := range sortedKeys(idx.Listed) {
		_, present := idx.Present[key]
		results = append(results, ReconcileResult{
			ID:      key,
			Listed:  true,
			Present: present,
			BoundTo: idx.Bindings[key],
		})
	}
	return results
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
