package repositories

import (
	"context"

	"driveline/internal/database"
	"driveline/internal/models"
)

// LocationRepository is the read-only lookup used for the city/state
// referential check at registration. City and state CRUD belongs to the
// back-office service, not to this one.
type LocationRepository struct {
	db *database.DB
}

// NewLocationRepository creates a new LocationRepository
func NewLocationRepository(db *database.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) GetCity(ctx context.Context, id string) (*models.City, error) {
	query := `SELECT id, name, state_id FROM cities WHERE id = $1`

	var city models.City
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&city.ID, &city.Name, &city.StateID)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &city, nil
}
