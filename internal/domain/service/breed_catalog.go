package service

import "context"

// BreedCatalog is the external breed directory. Both calls are best-effort:
// callers degrade when they fail.
type BreedCatalog interface {
	// ListBreeds returns breed names in catalog order.
	ListBreeds(ctx context.Context) ([]string, error)

	// LookupTemperament returns the temperament text of a breed; ok is false when
	// the catalog has no entry for it.
	LookupTemperament(ctx context.Context, breed string) (temperament string, ok bool, err error)
}
