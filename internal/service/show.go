package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kayfabe/promoter/internal/domain"
	"github.com/kayfabe/promoter/internal/engine"
	"github.com/kayfabe/promoter/internal/guard"
	"github.com/kayfabe/promoter/internal/policy"
	"github.com/kayfabe/promoter/internal/repository"
)

// ShowService handles show booking, card editing, lifecycle transitions and
// completion.
type ShowService struct {
	pool        *pgxpool.Pool
	shows       repository.ShowRepository
	venues      repository.VenueRepository
	companies   repository.CompanyRepository
	roster      repository.RosterRepository
	outbox      repository.OutboxRepository
	engine      *engine.Engine
	booking     policy.BookingPolicy
	completions *guard.CompletionGuard
	locks       *guard.KeyedMutex
	logger      *slog.Logger
}

// NewShowService creates a ShowService.
func NewShowService(
	pool *pgxpool.Pool,
	shows repository.ShowRepository,
	venues repository.VenueRepository,
	companies repository.CompanyRepository,
	roster repository.RosterRepository,
	outbox repository.OutboxRepository,
	eng *engine.Engine,
	booking policy.BookingPolicy,
	logger *slog.Logger,
) *ShowService {
	return &ShowService{
		pool:        pool,
		shows:       shows,
		venues:      venues,
		companies:   companies,
		roster:      roster,
		outbox:      outbox,
		engine:      eng,
		booking:     booking,
		completions: guard.NewCompletionGuard(),
		locks:       guard.NewKeyedMutex(),
		logger:      logger,
	}
}

// BookShowInput holds the show booking request fields.
type BookShowInput struct {
	CompanyID   uuid.UUID       `json:"company_id"`
	VenueID     uuid.UUID       `json:"venue_id"`
	Name        string          `json:"name"`
	ShowType    domain.ShowType `json:"show_type"`
	ShowDate    time.Time       `json:"show_date"`
	TicketPrice int64           `json:"ticket_price"`
}

// BookShow creates a new Draft show after checking the booking policy.
func (s *ShowService) BookShow(ctx context.Context, input BookShowInput) (*domain.ShowRecord, error) {
	if input.Name == "" {
		return nil, domain.ErrValidation("show name is required")
	}

	company, err := s.companies.FindByID(ctx, s.pool, input.CompanyID)
	if err != nil {
		return nil, domain.ErrInternal("find company", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound("company", input.CompanyID.String())
	}

	venue, err := s.venues.FindByID(ctx, s.pool, input.VenueID)
	if err != nil {
		return nil, domain.ErrInternal("find venue", err)
	}

	now := time.Now()
	show := &domain.ShowRecord{
		ID:          uuid.New(),
		CompanyID:   input.CompanyID,
		VenueID:     input.VenueID,
		Name:        input.Name,
		ShowType:    input.ShowType,
		Status:      domain.ShowDraft,
		ShowDate:    input.ShowDate,
		TicketPrice: input.TicketPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if eval := policy.EvaluateBooking(s.booking, *show, venue); !eval.Allowed {
		return nil, domain.ErrValidation(eval.Reason)
	}

	if err := s.shows.Create(ctx, s.pool, show); err != nil {
		return nil, domain.ErrInternal("create show", err)
	}
	return show, nil
}

// GetShow returns a show with its full card.
func (s *ShowService) GetShow(ctx context.Context, id uuid.UUID) (*domain.ShowRecord, error) {
	show, err := s.shows.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("find show", err)
	}
	if show == nil {
		return nil, domain.ErrNotFound("show", id.String())
	}
	return show, nil
}

// ListShows returns a company's shows, newest first.
func (s *ShowService) ListShows(ctx context.Context, companyID uuid.UUID) ([]domain.ShowRecord, error) {
	shows, err := s.shows.ListByCompany(ctx, s.pool, companyID)
	if err != nil {
		return nil, domain.ErrInternal("list shows", err)
	}
	return shows, nil
}

// ReplaceCard swaps the show's matches and segments. Only Draft and
// Scheduled shows accept structural edits.
func (s *ShowService) ReplaceCard(ctx context.Context, showID uuid.UUID, matches []domain.MatchRecord, segments []domain.SegmentRecord) (*domain.ShowRecord, error) {
	for _, m := range matches {
		if m.IsChampionshipMatch && m.ChampionshipID == nil {
			return nil, domain.ErrValidation(fmt.Sprintf("championship match at position %d has no championship", m.Position))
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	show, err := s.shows.LockForUpdate(ctx, tx, showID)
	if err != nil {
		return nil, domain.ErrInternal("lock show", err)
	}
	if show == nil {
		return nil, domain.ErrNotFound("show", showID.String())
	}
	if !show.Status.AllowsStructuralEdits() {
		return nil, domain.ErrConflict(fmt.Sprintf("show in status %s no longer accepts card changes", show.Status))
	}

	show.Matches = matches
	show.Segments = segments
	if eval := policy.EvaluateCard(s.booking, *show); !eval.Allowed {
		return nil, domain.ErrValidation(eval.Reason)
	}

	if err := s.shows.ReplaceCard(ctx, tx, show); err != nil {
		return nil, domain.ErrInternal("replace card", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}
	return show, nil
}

// Transition moves a show along its lifecycle state machine. The Completed
// state is unreachable here; completion resolves the whole show through
// CompleteShow.
func (s *ShowService) Transition(ctx context.Context, showID uuid.UUID, to domain.ShowStatus) (*domain.ShowRecord, error) {
	if to == domain.ShowCompleted {
		return nil, domain.ErrValidation("a show is completed through the completion endpoint, not a status update")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	show, err := s.shows.LockForUpdate(ctx, tx, showID)
	if err != nil {
		return nil, domain.ErrInternal("lock show", err)
	}
	if show == nil {
		return nil, domain.ErrNotFound("show", showID.String())
	}
	if !domain.CanTransition(show.Status, to) {
		return nil, domain.ErrInvalidTransition("show", show.Status, to)
	}

	if err := s.shows.UpdateStatus(ctx, tx, showID, to); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	show.Status = to
	return show, nil
}

// CompleteShowResult pairs the resolved show with the engine outcome.
type CompleteShowResult struct {
	Show    *domain.ShowRecord `json:"show"`
	Outcome *engine.Outcome    `json:"outcome"`
}

// CompleteShow resolves an In Progress show: it locks the show and company
// rows, loads the participant snapshots, runs the engine, and persists every
// derived field plus the company's new standing in one transaction. Missing
// venue, company or participants degrade the result instead of failing it.
//
// Completion for a given show is serialized through a keyed mutex and
// deduplicated by an in-process guard; the status state machine in the
// database remains the source of truth.
func (s *ShowService) CompleteShow(ctx context.Context, showID uuid.UUID) (*CompleteShowResult, error) {
	key := showID.String()
	if res := s.completions.Check(key); !res.Allowed {
		return nil, domain.ErrConflict(res.Reason)
	}

	committed := false
	defer func() {
		if !committed {
			s.completions.Remove(key)
		}
	}()

	unlock := s.locks.Lock(key)
	defer unlock()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	show, err := s.shows.LockForUpdate(ctx, tx, showID)
	if err != nil {
		return nil, domain.ErrInternal("lock show", err)
	}
	if show == nil {
		return nil, domain.ErrNotFound("show", showID.String())
	}

	venue, err := s.venues.FindByID(ctx, tx, show.VenueID)
	if err != nil {
		return nil, domain.ErrInternal("find venue", err)
	}
	company, err := s.companies.LockForUpdate(ctx, tx, show.CompanyID)
	if err != nil {
		return nil, domain.ErrInternal("lock company", err)
	}
	wrestlers, err := s.roster.SnapshotsByIDs(ctx, tx, show.UniqueParticipantIDs())
	if err != nil {
		return nil, domain.ErrInternal("load roster snapshots", err)
	}

	outcome, err := s.engine.CompleteShow(show, engine.CompletionInput{
		Venue:     venue,
		Company:   company,
		Wrestlers: wrestlers,
	})
	if err != nil {
		return nil, err
	}

	if err := s.shows.SaveCompletion(ctx, tx, show); err != nil {
		return nil, domain.ErrInternal("save completion", err)
	}

	if company != nil {
		if err := s.companies.ApplyShowResult(ctx, tx, company.ID, company.Popularity, company.Money); err != nil {
			return nil, domain.ErrInternal("apply show result", err)
		}
	}

	if company != nil && venue != nil {
		if err := s.outbox.Insert(ctx, tx, domain.NewShowCompletedEvent(show, company, venue)); err != nil {
			return nil, domain.ErrInternal("enqueue show event", err)
		}
	} else {
		s.logger.Warn("show completed without full context, skipping event",
			"show_id", showID, "has_company", company != nil, "has_venue", venue != nil)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}
	committed = true

	if len(outcome.Degraded) > 0 {
		s.logger.Warn("show completed with degraded inputs",
			"show_id", showID, "reasons", outcome.Degraded)
	}
	s.logger.Info("show completed",
		"show_id", showID,
		"overall_rating", show.OverallRating,
		"attendance", show.Attendance,
		"profit", show.Profit)

	return &CompleteShowResult{Show: show, Outcome: outcome}, nil
}
