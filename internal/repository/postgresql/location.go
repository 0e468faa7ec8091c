package postgresql

import (
	"context"
	"fmt"

	"github.com/staffloom/attendance-backend-go/internal/domain/location"
	"github.com/staffloom/attendance-backend-go/internal/pkg/database"
)

type locationRepository struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) location.Repository {
	return &locationRepository{db: db}
}

// GetByIDs implements location.Repository.
func (r *locationRepository) GetByIDs(ctx context.Context, ids []string) (map[string]location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, timezone FROM locations WHERE id = ANY($1)`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	out := make(map[string]location.Location, len(ids))
	for rows.Next() {
		var loc location.Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Timezone); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		out[loc.ID] = loc
	}
	return out, rows.Err()
}
