package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kayfabe/promoter/internal/domain"
)

type accountRepo struct{}

// NewAccountRepository returns a pgx-backed AccountRepository.
func NewAccountRepository() AccountRepository {
	return &accountRepo{}
}

func (r *accountRepo) FindByEmail(ctx context.Context, db DBTX, email string) (*domain.Account, error) {
	row := db.QueryRow(ctx, `
		SELECT id, email, password_hash, role, company_id, created_at, updated_at
		FROM accounts WHERE email = $1`, email)

	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.CompanyID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &a, nil
}

func (r *accountRepo) Create(ctx context.Context, db DBTX, a *domain.Account) error {
	_, err := db.Exec(ctx, `
		INSERT INTO accounts (id, email, password_hash, role, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.Email, a.PasswordHash, a.Role, a.CompanyID, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}
