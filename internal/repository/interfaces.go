package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kayfabe/promoter/internal/domain"
	"github.com/kayfabe/promoter/internal/infra"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX = infra.DBTX

// RosterRepository provides access to wrestlers.
type RosterRepository interface {
	// Create inserts a new wrestler.
	Create(ctx context.Context, db DBTX, w *domain.WrestlerSnapshot) error

	// FindByID returns a wrestler by ID.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.WrestlerSnapshot, error)

	// ListByCompany returns a company's roster ordered by popularity.
	ListByCompany(ctx context.Context, db DBTX, companyID uuid.UUID) ([]domain.WrestlerSnapshot, error)

	// SnapshotsByIDs bulk-loads wrestler snapshots. IDs that resolve to
	// nothing are simply absent from the result; the engine's fail-soft
	// defaults cover the gap.
	SnapshotsByIDs(ctx context.Context, db DBTX, ids []uuid.UUID) (map[uuid.UUID]domain.WrestlerSnapshot, error)

	// BoostPopularity applies a popularity delta with server-side
	// clamping to [1,100]. Returns the new value.
	BoostPopularity(ctx context.Context, db DBTX, id uuid.UUID, delta int) (int, error)
}

// CompanyRepository provides access to companies.
type CompanyRepository interface {
	Create(ctx context.Context, db DBTX, c *domain.CompanySnapshot) error
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.CompanySnapshot, error)

	// LockForUpdate acquires a row-level lock (SELECT FOR UPDATE).
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.CompanySnapshot, error)

	// ApplyShowResult writes the post-show popularity and money.
	ApplyShowResult(ctx context.Context, tx pgx.Tx, id uuid.UUID, popularity int, money int64) error
}

// VenueRepository provides access to venues.
type VenueRepository interface {
	Create(ctx context.Context, db DBTX, v *domain.VenueSnapshot) error
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.VenueSnapshot, error)
	List(ctx context.Context, db DBTX) ([]domain.VenueSnapshot, error)
}

// ShowRepository provides access to shows and their owned cards.
type ShowRepository interface {
	// Create inserts a show with its initial card.
	Create(ctx context.Context, db DBTX, show *domain.ShowRecord) error

	// FindByID returns a show with its full card.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.ShowRecord, error)

	// LockForUpdate locks the show row and returns it with its full card.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.ShowRecord, error)

	// ListByCompany returns a company's shows, newest first.
	ListByCompany(ctx context.Context, db DBTX, companyID uuid.UUID) ([]domain.ShowRecord, error)

	// ReplaceCard swaps the show's matches and segments. Caller must have
	// verified the show still accepts structural edits.
	ReplaceCard(ctx context.Context, tx pgx.Tx, show *domain.ShowRecord) error

	// UpdateStatus writes a status transition.
	UpdateStatus(ctx context.Context, db DBTX, id uuid.UUID, status domain.ShowStatus) error

	// SaveCompletion persists every completion-derived field (per-entry
	// actual qualities and impacts, rating and financial blocks, and the
	// Completed status) in the caller's transaction.
	SaveCompletion(ctx context.Context, tx pgx.Tx, show *domain.ShowRecord) error
}

// ChampionshipRepository provides access to championships and their
// append-only reign ledger.
type ChampionshipRepository interface {
	Create(ctx context.Context, db DBTX, c *domain.ChampionshipRecord) error

	// FindByID returns a championship with its full reign history,
	// oldest reign first.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.ChampionshipRecord, error)

	// LockForUpdate locks the championship row and returns it with
	// history. Crown and defense transitions run under this lock.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.ChampionshipRecord, error)

	// CloseReign sets a reign's end date.
	CloseReign(ctx context.Context, tx pgx.Tx, reign *domain.TitleReign) error

	// InsertReign appends a new reign row.
	InsertReign(ctx context.Context, tx pgx.Tx, championshipID uuid.UUID, reign *domain.TitleReign) error

	// UpdateReignDefenses writes a reign's defense list and count.
	UpdateReignDefenses(ctx context.Context, tx pgx.Tx, reign *domain.TitleReign) error

	// UpdateHeader writes the derived championship fields (holder,
	// prestige, last defended, defense venues).
	UpdateHeader(ctx context.Context, tx pgx.Tx, c *domain.ChampionshipRecord) error
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the
	// state change it describes).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events for the poller.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxDraft, error)

	// MarkPublished marks events as published.
	MarkPublished(ctx context.Context, db DBTX, seqIDs []int64) error
}

// AccountRepository provides access to accounts (API credentials).
type AccountRepository interface {
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.Account, error)
	Create(ctx context.Context, db DBTX, a *domain.Account) error
}
