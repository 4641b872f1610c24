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

type companyRepo struct{}

// NewCompanyRepository returns a pgx-backed CompanyRepository.
func NewCompanyRepository() CompanyRepository {
	return &companyRepo{}
}

const companyColumns = `id, name, popularity, money, created_at, updated_at`

func (r *companyRepo) Create(ctx context.Context, db DBTX, c *domain.CompanySnapshot) error {
	_, err := db.Exec(ctx, `
		INSERT INTO companies (`+companyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Popularity, infra.Int64ToNumeric(c.Money), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (r *companyRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.CompanySnapshot, error) {
	row := db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row)
}

func (r *companyRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.CompanySnapshot, error) {
	row := tx.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1 FOR UPDATE`, id)
	return scanCompany(row)
}

func (r *companyRepo) ApplyShowResult(ctx context.Context, tx pgx.Tx, id uuid.UUID, popularity int, money int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE companies
		SET popularity = LEAST(100, GREATEST(1, $2)), money = $3, updated_at = now()
		WHERE id = $1`,
		id, popularity, infra.Int64ToNumeric(money))
	if err != nil {
		return fmt.Errorf("apply show result: %w", err)
	}
	return nil
}

func scanCompany(row pgx.Row) (*domain.CompanySnapshot, error) {
	var c domain.CompanySnapshot
	var money pgtype.Numeric
	err := row.Scan(&c.ID, &c.Name, &c.Popularity, &money, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan company: %w", err)
	}

	c.Money, err = infra.NumericToInt64(money)
	if err != nil {
		return nil, fmt.Errorf("convert money: %w", err)
	}
	return &c, nil
}
