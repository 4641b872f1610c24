package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kayfabe/promoter/internal/domain"
	"github.com/kayfabe/promoter/internal/lineage"
	"github.com/kayfabe/promoter/internal/repository"
)

// Popularity boosts applied on title transitions. These belong to the
// promotion layer, not the lineage ledger itself.
const (
	titleWinBoost     = 5
	titleDefenseBoost = 2
)

// ChampionshipService handles championships and their reign ledger.
type ChampionshipService struct {
	pool    *pgxpool.Pool
	titles  repository.ChampionshipRepository
	roster  repository.RosterRepository
	outbox  repository.OutboxRepository
	tracker *lineage.Tracker
	logger  *slog.Logger
}

// NewChampionshipService creates a ChampionshipService.
func NewChampionshipService(
	pool *pgxpool.Pool,
	titles repository.ChampionshipRepository,
	roster repository.RosterRepository,
	outbox repository.OutboxRepository,
	tracker *lineage.Tracker,
	logger *slog.Logger,
) *ChampionshipService {
	return &ChampionshipService{
		pool:    pool,
		titles:  titles,
		roster:  roster,
		outbox:  outbox,
		tracker: tracker,
		logger:  logger,
	}
}

// CreateChampionshipInput holds the creation request fields.
type CreateChampionshipInput struct {
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	Prestige  int       `json:"prestige"`
}

// CreateChampionship creates a vacant championship.
func (s *ChampionshipService) CreateChampionship(ctx context.Context, input CreateChampionshipInput) (*domain.ChampionshipRecord, error) {
	if input.Name == "" {
		return nil, domain.ErrValidation("championship name is required")
	}

	now := time.Now()
	title := &domain.ChampionshipRecord{
		ID:         uuid.New(),
		CompanyID:  input.CompanyID,
		Name:       input.Name,
		Prestige:   domain.Clamp(input.Prestige, 1, 100),
		DefendedAt: []uuid.UUID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.titles.Create(ctx, s.pool, title); err != nil {
		return nil, domain.ErrInternal("create championship", err)
	}
	return title, nil
}

// GetChampionship returns a championship with its full reign history.
func (s *ChampionshipService) GetChampionship(ctx context.Context, id uuid.UUID) (*domain.ChampionshipRecord, error) {
	title, err := s.titles.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("find championship", err)
	}
	if title == nil {
		return nil, domain.ErrNotFound("championship", id.String())
	}
	return title, nil
}

// CrownInput holds a title-change request.
type CrownInput struct {
	NewHolder uuid.UUID  `json:"new_holder"`
	WonFrom   *uuid.UUID `json:"won_from,omitempty"`
	WonAtShow *uuid.UUID `json:"won_at_show,omitempty"`
}

// CrownChampion transfers the title to a new holder: the open reign (if any)
// is closed and a new one appended, both persisted in one transaction under
// the championship's row lock. The new champion gets a popularity boost.
func (s *ChampionshipService) CrownChampion(ctx context.Context, titleID uuid.UUID, input CrownInput) (*domain.TitleReign, error) {
	holder, err := s.roster.FindByID(ctx, s.pool, input.NewHolder)
	if err != nil {
		return nil, domain.ErrInternal("find wrestler", err)
	}
	if holder == nil {
		return nil, domain.ErrNotFound("wrestler", input.NewHolder.String())
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	title, err := s.titles.LockForUpdate(ctx, tx, titleID)
	if err != nil {
		return nil, domain.ErrInternal("lock championship", err)
	}
	if title == nil {
		return nil, domain.ErrNotFound("championship", titleID.String())
	}

	var closingID uuid.UUID
	if open := title.OpenReign(); open != nil {
		closingID = open.ID
	}

	reign, err := s.tracker.CrownChampion(title, input.NewHolder, input.WonFrom, input.WonAtShow)
	if err != nil {
		return nil, err
	}

	if closingID != uuid.Nil {
		for i := range title.TitleHistory {
			if title.TitleHistory[i].ID == closingID {
				if err := s.titles.CloseReign(ctx, tx, &title.TitleHistory[i]); err != nil {
					return nil, err
				}
				break
			}
		}
	}

	if err := s.titles.InsertReign(ctx, tx, title.ID, reign); err != nil {
		return nil, err
	}
	if err := s.titles.UpdateHeader(ctx, tx, title); err != nil {
		return nil, domain.ErrInternal("update championship", err)
	}
	if _, err := s.roster.BoostPopularity(ctx, tx, input.NewHolder, titleWinBoost); err != nil {
		return nil, domain.ErrInternal("boost new champion", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewTitleChangedEvent(title, reign)); err != nil {
		return nil, domain.ErrInternal("enqueue title event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("championship changed hands",
		"championship_id", titleID, "new_holder", input.NewHolder)
	return reign, nil
}

// DefenseInput holds a title-defense request.
type DefenseInput struct {
	Challenger uuid.UUID `json:"challenger"`
	ShowID     uuid.UUID `json:"show_id"`
	Quality    *float64  `json:"quality,omitempty"`
}

// RecordDefense appends a successful defense to the open reign and adjusts
// prestige. A vacant title or missing reign is a precondition violation.
// The defending champion gets a popularity boost.
func (s *ChampionshipService) RecordDefense(ctx context.Context, titleID uuid.UUID, input DefenseInput) (*domain.TitleDefense, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	title, err := s.titles.LockForUpdate(ctx, tx, titleID)
	if err != nil {
		return nil, domain.ErrInternal("lock championship", err)
	}
	if title == nil {
		return nil, domain.ErrNotFound("championship", titleID.String())
	}

	defense, err := s.tracker.RecordDefense(title, input.Challenger, input.ShowID, input.Quality)
	if err != nil {
		return nil, err
	}

	if err := s.titles.UpdateReignDefenses(ctx, tx, title.OpenReign()); err != nil {
		return nil, err
	}
	if err := s.titles.UpdateHeader(ctx, tx, title); err != nil {
		return nil, domain.ErrInternal("update championship", err)
	}
	if _, err := s.roster.BoostPopularity(ctx, tx, *title.CurrentHolder, titleDefenseBoost); err != nil {
		return nil, domain.ErrInternal("boost champion", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewTitleDefendedEvent(title, *defense)); err != nil {
		return nil, domain.ErrInternal("enqueue defense event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("title defended",
		"championship_id", titleID, "challenger", input.Challenger, "show_id", input.ShowID)
	return defense, nil
}

// LineageView is the derived lineage summary: the stored ledger plus
// day-arithmetic that is computed on read, never persisted.
type LineageView struct {
	Championship     *domain.ChampionshipRecord `json:"championship"`
	CurrentReignDays int                        `json:"current_reign_days"`
	DaysHeld         map[string]int             `json:"days_held"`
}

// Lineage returns the full reign history with derived durations per holder.
func (s *ChampionshipService) Lineage(ctx context.Context, titleID uuid.UUID) (*LineageView, error) {
	title, err := s.GetChampionship(ctx, titleID)
	if err != nil {
		return nil, err
	}

	daysHeld := make(map[string]int)
	for _, reign := range title.TitleHistory {
		key := reign.Holder.String()
		if _, done := daysHeld[key]; done {
			continue
		}
		daysHeld[key] = s.tracker.TotalDaysHeld(title, reign.Holder)
	}

	return &LineageView{
		Championship:     title,
		CurrentReignDays: s.tracker.CurrentReignDurationDays(title),
		DaysHeld:         daysHeld,
	}, nil
}
