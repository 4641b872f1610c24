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

type rosterRepo struct{}

// NewRosterRepository returns a pgx-backed RosterRepository.
func NewRosterRepository() RosterRepository {
	return &rosterRepo{}
}

const wrestlerColumns = `id, company_id, name, strength, agility, charisma, technical, style, popularity, salary, created_at, updated_at`

func (r *rosterRepo) Create(ctx context.Context, db DBTX, w *domain.WrestlerSnapshot) error {
	_, err := db.Exec(ctx, `
		INSERT INTO wrestlers (`+wrestlerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		w.ID, w.CompanyID, w.Name,
		w.Strength, w.Agility, w.Charisma, w.Technical,
		w.Style, w.Popularity, infra.Int64ToNumeric(w.Salary),
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wrestler: %w", err)
	}
	return nil
}

func (r *rosterRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.WrestlerSnapshot, error) {
	row := db.QueryRow(ctx, `SELECT `+wrestlerColumns+` FROM wrestlers WHERE id = $1`, id)
	return scanWrestler(row)
}

func (r *rosterRepo) ListByCompany(ctx context.Context, db DBTX, companyID uuid.UUID) ([]domain.WrestlerSnapshot, error) {
	rows, err := db.Query(ctx, `
		SELECT `+wrestlerColumns+` FROM wrestlers
		WHERE company_id = $1 ORDER BY popularity DESC, name ASC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("query roster: %w", err)
	}
	defer rows.Close()

	var roster []domain.WrestlerSnapshot
	for rows.Next() {
		w, err := scanWrestler(rows)
		if err != nil {
			return nil, err
		}
		roster = append(roster, *w)
	}
	return roster, rows.Err()
}

func (r *rosterRepo) SnapshotsByIDs(ctx context.Context, db DBTX, ids []uuid.UUID) (map[uuid.UUID]domain.WrestlerSnapshot, error) {
	snapshots := make(map[uuid.UUID]domain.WrestlerSnapshot, len(ids))
	if len(ids) == 0 {
		return snapshots, nil
	}

	rows, err := db.Query(ctx, `SELECT `+wrestlerColumns+` FROM wrestlers WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		w, err := scanWrestler(rows)
		if err != nil {
			return nil, err
		}
		snapshots[w.ID] = *w
	}
	return snapshots, rows.Err()
}

// BoostPopularity clamps server-side so the [1,100] invariant holds even
// under concurrent boosts.
func (r *rosterRepo) BoostPopularity(ctx context.Context, db DBTX, id uuid.UUID, delta int) (int, error) {
	var popularity int
	err := db.QueryRow(ctx, `
		UPDATE wrestlers
		SET popularity = LEAST(100, GREATEST(1, popularity + $2)), updated_at = now()
		WHERE id = $1
		RETURNING popularity`, id, delta).Scan(&popularity)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, domain.ErrNotFound("wrestler", id.String())
		}
		return 0, fmt.Errorf("boost popularity: %w", err)
	}
	return popularity, nil
}

func scanWrestler(row pgx.Row) (*domain.WrestlerSnapshot, error) {
	var w domain.WrestlerSnapshot
	var salary pgtype.Numeric
	err := row.Scan(
		&w.ID, &w.CompanyID, &w.Name,
		&w.Strength, &w.Agility, &w.Charisma, &w.Technical,
		&w.Style, &w.Popularity, &salary,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wrestler: %w", err)
	}

	w.Salary, err = infra.NumericToInt64(salary)
	if err != nil {
		return nil, fmt.Errorf("convert salary: %w", err)
	}
	return &w, nil
}
