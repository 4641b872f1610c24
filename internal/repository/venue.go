package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kayfabe/promoter/internal/domain"
	"github.com/kayfabe/promoter/internal/infra"
)

type venueRepo struct{}

// NewVenueRepository returns a pgx-backed VenueRepository.
func NewVenueRepository() VenueRepository {
	return &venueRepo{}
}

const venueColumns = `id, name, location, capacity, rental_cost, prestige, is_available, created_at`

func (r *venueRepo) Create(ctx context.Context, db DBTX, v *domain.VenueSnapshot) error {
	_, err := db.Exec(ctx, `
		INSERT INTO venues (`+venueColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		v.ID, v.Name, v.Location, v.Capacity,
		infra.Int64ToNumeric(v.RentalCost), v.Prestige, v.IsAvailable, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert venue: %w", err)
	}
	return nil
}

func (r *venueRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.VenueSnapshot, error) {
	row := db.QueryRow(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = $1`, id)
	return scanVenue(row)
}

func (r *venueRepo) List(ctx context.Context, db DBTX) ([]domain.VenueSnapshot, error) {
	rows, err := db.Query(ctx, `SELECT `+venueColumns+` FROM venues ORDER BY capacity DESC`)
	if err != nil {
		return nil, fmt.Errorf("query venues: %w", err)
	}
	defer rows.Close()

	var venues []domain.VenueSnapshot
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, *v)
	}
	return venues, rows.Err()
}

func scanVenue(row pgx.Row) (*domain.VenueSnapshot, error) {
	var v domain.VenueSnapshot
	var rental pgtype.Numeric
	err := row.Scan(&v.ID, &v.Name, &v.Location, &v.Capacity, &rental, &v.Prestige, &v.IsAvailable, &v.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan venue: %w", err)
	}

	v.RentalCost, err = infra.NumericToInt64(rental)
	if err != nil {
		return nil, fmt.Errorf("convert rental_cost: %w", err)
	}
	return &v, nil
}
