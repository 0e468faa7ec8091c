package location

import "context"

type Repository interface {
	// GetByIDs resolves locations in one read; missing ids are absent
	// from the result map.
	GetByIDs(ctx context.Context, ids []string) (map[string]Location, error)
}
