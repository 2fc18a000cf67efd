package checks

import (
	"context"
	"errors"
	"fmt"

	"bucket-manager/core/backend"
)

// RegistryReport describes the available-pool document.
type RegistryReport struct {
	// Present is false when the document was never written.
	Present   bool `json:"present"`
	Available int  `json:"available"`
	// Blank counts entries with an empty key.
	Blank int `json:"blank"`
}

// CheckRegistry reads the available-pool document once.
func CheckRegistry(ctx context.Context, b backend.Backend, ref backend.ObjectRef) (*RegistryReport, error) {
	_, entries, err := b.DocGet(ctx, ref)
	if errors.Is(err, backend.ErrNotFound) {
		return &RegistryReport{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registry %s/%s: %w", ref.Pool, ref.Key, err)
	}

	report := &RegistryReport{Present: true, Available: len(entries)}
	if _, ok := entries[""]; ok {
		report.Blank = 1
		report.Available--
	}
	return report, nil
}
