package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kayfabe/promoter/internal/auth"
	"github.com/kayfabe/promoter/internal/domain"
	"github.com/kayfabe/promoter/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles promoter registration and login.
type AuthService struct {
	pool     *pgxpool.Pool
	accounts repository.AccountRepository
	jwtMgr   *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(pool *pgxpool.Pool, accounts repository.AccountRepository, jwtMgr *auth.JWTManager) *AuthService {
	return &AuthService{pool: pool, accounts: accounts, jwtMgr: jwtMgr}
}

// RegisterInput holds the registration request fields.
type RegisterInput struct {
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token     string     `json:"token"`
	AccountID uuid.UUID  `json:"account_id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
}

// Register creates a promoter account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrValidation("password must be at least 8 characters")
	}

	existing, err := s.accounts.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find account", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	now := time.Now()
	account := &domain.Account{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         string(auth.RealmPromoter),
		CompanyID:    input.CompanyID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accounts.Create(ctx, s.pool, account); err != nil {
		return nil, domain.ErrInternal("create account", err)
	}

	return s.issueToken(account)
}

// LoginInput holds the login request fields.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an account and returns a JWT.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	account, err := s.accounts.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find account", err)
	}
	if account == nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	return s.issueToken(account)
}

func (s *AuthService) issueToken(account *domain.Account) (*AuthResult, error) {
	realm := auth.RealmPromoter
	if account.Role == string(auth.RealmAdmin) {
		realm = auth.RealmAdmin
	}

	companyID := ""
	if account.CompanyID != nil {
		companyID = account.CompanyID.String()
	}

	token, err := s.jwtMgr.GenerateToken(realm, account.ID, account.Email, account.Role, companyID)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{
		Token:     token,
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
		CompanyID: account.CompanyID,
	}, nil
}
