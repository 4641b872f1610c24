package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kayfabe/promoter/internal/domain"
)

type championshipRepo struct{}

// NewChampionshipRepository returns a pgx-backed ChampionshipRepository.
func NewChampionshipRepository() ChampionshipRepository {
	return &championshipRepo{}
}

const championshipColumns = `id, company_id, name, prestige, current_holder, last_defended, defended_at, created_at, updated_at`

func (r *championshipRepo) Create(ctx context.Context, db DBTX, c *domain.ChampionshipRecord) error {
	defendedAt, err := json.Marshal(c.DefendedAt)
	if err != nil {
		return fmt.Errorf("marshal defended_at: %w", err)
	}
	_, err = db.Exec(ctx, `
		INSERT INTO championships (`+championshipColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.CompanyID, c.Name, c.Prestige, c.CurrentHolder, c.LastDefended,
		defendedAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert championship: %w", err)
	}
	return nil
}

func (r *championshipRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.ChampionshipRecord, error) {
	row := db.QueryRow(ctx, `SELECT `+championshipColumns+` FROM championships WHERE id = $1`, id)
	c, err := scanChampionship(row)
	if err != nil || c == nil {
		return c, err
	}
	if err := r.loadHistory(ctx, db, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *championshipRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.ChampionshipRecord, error) {
	row := tx.QueryRow(ctx, `SELECT `+championshipColumns+` FROM championships WHERE id = $1 FOR UPDATE`, id)
	c, err := scanChampionship(row)
	if err != nil || c == nil {
		return c, err
	}
	if err := r.loadHistory(ctx, tx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *championshipRepo) CloseReign(ctx context.Context, tx pgx.Tx, reign *domain.TitleReign) error {
	tag, err := tx.Exec(ctx, `
		UPDATE title_reigns SET end_date = $2 WHERE id = $1 AND end_date IS NULL`,
		reign.ID, reign.EndDate)
	if err != nil {
		return fmt.Errorf("close reign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPrecondition("reign already closed")
	}
	return nil
}

func (r *championshipRepo) InsertReign(ctx context.Context, tx pgx.Tx, championshipID uuid.UUID, reign *domain.TitleReign) error {
	defenses, err := json.Marshal(reign.Defenses)
	if err != nil {
		return fmt.Errorf("marshal defenses: %w", err)
	}
	// The partial unique index on (championship_id) WHERE end_date IS NULL
	// backs the single-open-reign invariant at the storage layer too.
	_, err = tx.Exec(ctx, `
		INSERT INTO title_reigns (id, championship_id, holder, won_from, won_at_show,
			start_date, end_date, defense_count, defenses)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		reign.ID, championshipID, reign.Holder, reign.WonFrom, reign.WonAt,
		reign.StartDate, reign.EndDate, reign.DefenseCount, defenses,
	)
	if err != nil {
		return fmt.Errorf("insert reign: %w", err)
	}
	return nil
}

func (r *championshipRepo) UpdateReignDefenses(ctx context.Context, tx pgx.Tx, reign *domain.TitleReign) error {
	defenses, err := json.Marshal(reign.Defenses)
	if err != nil {
		return fmt.Errorf("marshal defenses: %w", err)
	}
	_, err = tx.Exec(ctx, `
		UPDATE title_reigns SET defense_count = $2, defenses = $3 WHERE id = $1`,
		reign.ID, reign.DefenseCount, defenses)
	if err != nil {
		return fmt.Errorf("update reign defenses: %w", err)
	}
	return nil
}

func (r *championshipRepo) UpdateHeader(ctx context.Context, tx pgx.Tx, c *domain.ChampionshipRecord) error {
	defendedAt, err := json.Marshal(c.DefendedAt)
	if err != nil {
		return fmt.Errorf("marshal defended_at: %w", err)
	}
	_, err = tx.Exec(ctx, `
		UPDATE championships
		SET current_holder = $2, prestige = LEAST(100, GREATEST(1, $3)),
			last_defended = $4, defended_at = $5, updated_at = now()
		WHERE id = $1`,
		c.ID, c.CurrentHolder, c.Prestige, c.LastDefended, defendedAt)
	if err != nil {
		return fmt.Errorf("update championship: %w", err)
	}
	return nil
}

func (r *championshipRepo) loadHistory(ctx context.Context, db DBTX, c *domain.ChampionshipRecord) error {
	rows, err := db.Query(ctx, `
		SELECT id, holder, won_from, won_at_show, start_date, end_date, defense_count, defenses
		FROM title_reigns WHERE championship_id = $1 ORDER BY start_date ASC`, c.ID)
	if err != nil {
		return fmt.Errorf("query reigns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reign domain.TitleReign
		var defenses []byte
		if err := rows.Scan(
			&reign.ID, &reign.Holder, &reign.WonFrom, &reign.WonAt,
			&reign.StartDate, &reign.EndDate, &reign.DefenseCount, &defenses,
		); err != nil {
			return fmt.Errorf("scan reign: %w", err)
		}
		if err := json.Unmarshal(defenses, &reign.Defenses); err != nil {
			return fmt.Errorf("unmarshal defenses: %w", err)
		}
		c.TitleHistory = append(c.TitleHistory, reign)
	}
	return rows.Err()
}

func scanChampionship(row pgx.Row) (*domain.ChampionshipRecord, error) {
	var c domain.ChampionshipRecord
	var defendedAt []byte
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Prestige, &c.CurrentHolder,
		&c.LastDefended, &defendedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan championship: %w", err)
	}
	if err := json.Unmarshal(defendedAt, &c.DefendedAt); err != nil {
		return nil, fmt.Errorf("unmarshal defended_at: %w", err)
	}
	return &c, nil
}
