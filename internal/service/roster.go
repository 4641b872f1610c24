package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kayfabe/promoter/internal/domain"
	"github.com/kayfabe/promoter/internal/repository"
)

// RosterService handles the CRUD surface: wrestlers, companies and venues.
type RosterService struct {
	pool      *pgxpool.Pool
	roster    repository.RosterRepository
	companies repository.CompanyRepository
	venues    repository.VenueRepository
	logger    *slog.Logger
}

// NewRosterService creates a RosterService.
func NewRosterService(
	pool *pgxpool.Pool,
	roster repository.RosterRepository,
	companies repository.CompanyRepository,
	venues repository.VenueRepository,
	logger *slog.Logger,
) *RosterService {
	return &RosterService{
		pool:      pool,
		roster:    roster,
		companies: companies,
		venues:    venues,
		logger:    logger,
	}
}

// CreateWrestlerInput holds the wrestler creation request fields.
type CreateWrestlerInput struct {
	CompanyID  uuid.UUID         `json:"company_id"`
	Name       string            `json:"name"`
	Style      domain.Style      `json:"style"`
	Attributes domain.Attributes `json:"attributes"`
	Popularity int               `json:"popularity"`
	Salary     int64             `json:"salary"`
}

// CreateWrestler signs a wrestler to a company's roster.
func (s *RosterService) CreateWrestler(ctx context.Context, input CreateWrestlerInput) (*domain.WrestlerSnapshot, error) {
	if input.Name == "" {
		return nil, domain.ErrValidation("wrestler name is required")
	}
	if err := domain.ValidateStyle(input.Style); err != nil {
		return nil, err
	}
	if err := domain.ValidateAttributes(input.Attributes); err != nil {
		return nil, err
	}
	if input.Salary < 0 {
		return nil, domain.ErrValidation("salary cannot be negative")
	}

	company, err := s.companies.FindByID(ctx, s.pool, input.CompanyID)
	if err != nil {
		return nil, domain.ErrInternal("find company", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound("company", input.CompanyID.String())
	}

	now := time.Now()
	w := &domain.WrestlerSnapshot{
		ID:         uuid.New(),
		CompanyID:  input.CompanyID,
		Name:       input.Name,
		Attributes: input.Attributes,
		Style:      input.Style,
		Popularity: domain.Clamp(input.Popularity, 1, 100),
		Salary:     input.Salary,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.roster.Create(ctx, s.pool, w); err != nil {
		return nil, domain.ErrInternal("create wrestler", err)
	}
	return w, nil
}

// GetWrestler returns a wrestler by ID.
func (s *RosterService) GetWrestler(ctx context.Context, id uuid.UUID) (*domain.WrestlerSnapshot, error) {
	w, err := s.roster.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("find wrestler", err)
	}
	if w == nil {
		return nil, domain.ErrNotFound("wrestler", id.String())
	}
	return w, nil
}

// ListRoster returns a company's roster.
func (s *RosterService) ListRoster(ctx context.Context, companyID uuid.UUID) ([]domain.WrestlerSnapshot, error) {
	roster, err := s.roster.ListByCompany(ctx, s.pool, companyID)
	if err != nil {
		return nil, domain.ErrInternal("list roster", err)
	}
	return roster, nil
}

// BoostWrestlerPopularity applies a popularity delta, clamped server-side.
// Returns the new popularity.
func (s *RosterService) BoostWrestlerPopularity(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	pop, err := s.roster.BoostPopularity(ctx, s.pool, id, delta)
	if err != nil {
		return 0, err
	}
	return pop, nil
}

// CreateCompanyInput holds the company creation request fields.
type CreateCompanyInput struct {
	Name       string `json:"name"`
	Popularity int    `json:"popularity"`
	Money      int64  `json:"money"`
}

// CreateCompany creates a promotion company.
func (s *RosterService) CreateCompany(ctx context.Context, input CreateCompanyInput) (*domain.CompanySnapshot, error) {
	if input.Name == "" {
		return nil, domain.ErrValidation("company name is required")
	}

	now := time.Now()
	c := &domain.CompanySnapshot{
		ID:         uuid.New(),
		Name:       input.Name,
		Popularity: domain.Clamp(input.Popularity, 1, 100),
		Money:      input.Money,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.companies.Create(ctx, s.pool, c); err != nil {
		return nil, domain.ErrInternal("create company", err)
	}
	return c, nil
}

// GetCompany returns a company by ID.
func (s *RosterService) GetCompany(ctx context.Context, id uuid.UUID) (*domain.CompanySnapshot, error) {
	c, err := s.companies.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("find company", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound("company", id.String())
	}
	return c, nil
}

// CreateVenueInput holds the venue creation request fields.
type CreateVenueInput struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	RentalCost  int64  `json:"rental_cost"`
	Prestige    int    `json:"prestige"`
	IsAvailable bool   `json:"is_available"`
}

// CreateVenue registers a venue.
func (s *RosterService) CreateVenue(ctx context.Context, input CreateVenueInput) (*domain.VenueSnapshot, error) {
	if input.Name == "" {
		return nil, domain.ErrValidation("venue name is required")
	}
	if err := domain.ValidateCapacity(input.Capacity); err != nil {
		return nil, err
	}
	if input.RentalCost < 0 {
		return nil, domain.ErrValidation("rental cost cannot be negative")
	}

	v := &domain.VenueSnapshot{
		ID:          uuid.New(),
		Name:        input.Name,
		Location:    input.Location,
		Capacity:    input.Capacity,
		RentalCost:  input.RentalCost,
		Prestige:    domain.Clamp(input.Prestige, 1, 100),
		IsAvailable: input.IsAvailable,
		CreatedAt:   time.Now(),
	}
	if err := s.venues.Create(ctx, s.pool, v); err != nil {
		return nil, domain.ErrInternal("create venue", err)
	}
	return v, nil
}

// ListVenues returns every venue, largest first.
func (s *RosterService) ListVenues(ctx context.Context) ([]domain.VenueSnapshot, error) {
	venues, err := s.venues.List(ctx, s.pool)
	if err != nil {
		return nil, domain.ErrInternal("list venues", err)
	}
	return venues, nil
}
