package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kayfabe/promoter/internal/domain"
	"github.com/kayfabe/promoter/internal/infra"
)

type showRepo struct{}

// NewShowRepository returns a pgx-backed ShowRepository.
func NewShowRepository() ShowRepository {
	return &showRepo{}
}

const showColumns = `id, company_id, venue_id, name, show_type, status, show_date, ticket_price,
	attendance, ticket_revenue, merchandise_revenue, venue_rental_cost, production_cost, talent_cost, profit,
	overall_rating, critic_rating, audience_satisfaction, created_at, updated_at`

func (r *showRepo) Create(ctx context.Context, db DBTX, show *domain.ShowRecord) error {
	_, err := db.Exec(ctx, `
		INSERT INTO shows (id, company_id, venue_id, name, show_type, status, show_date, ticket_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		show.ID, show.CompanyID, show.VenueID, show.Name, show.ShowType, show.Status,
		show.ShowDate, infra.Int64ToNumeric(show.TicketPrice), show.CreatedAt, show.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert show: %w", err)
	}
	return r.insertCard(ctx, db, show)
}

func (r *showRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.ShowRecord, error) {
	row := db.QueryRow(ctx, `SELECT `+showColumns+` FROM shows WHERE id = $1`, id)
	show, err := scanShow(row)
	if err != nil || show == nil {
		return show, err
	}
	if err := r.loadCard(ctx, db, show); err != nil {
		return nil, err
	}
	return show, nil
}

func (r *showRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.ShowRecord, error) {
	row := tx.QueryRow(ctx, `SELECT `+showColumns+` FROM shows WHERE id = $1 FOR UPDATE`, id)
	show, err := scanShow(row)
	if err != nil || show == nil {
		return show, err
	}
	if err := r.loadCard(ctx, tx, show); err != nil {
		return nil, err
	}
	return show, nil
}

func (r *showRepo) ListByCompany(ctx context.Context, db DBTX, companyID uuid.UUID) ([]domain.ShowRecord, error) {
	rows, err := db.Query(ctx, `
		SELECT `+showColumns+` FROM shows
		WHERE company_id = $1 ORDER BY show_date DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("query shows: %w", err)
	}
	defer rows.Close()

	var shows []domain.ShowRecord
	for rows.Next() {
		s, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		shows = append(shows, *s)
	}
	return shows, rows.Err()
}

func (r *showRepo) ReplaceCard(ctx context.Context, tx pgx.Tx, show *domain.ShowRecord) error {
	if _, err := tx.Exec(ctx, `DELETE FROM show_matches WHERE show_id = $1`, show.ID); err != nil {
		return fmt.Errorf("clear matches: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM show_segments WHERE show_id = $1`, show.ID); err != nil {
		return fmt.Errorf("clear segments: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE shows SET updated_at = now() WHERE id = $1`, show.ID); err != nil {
		return fmt.Errorf("touch show: %w", err)
	}
	return r.insertCard(ctx, tx, show)
}

func (r *showRepo) UpdateStatus(ctx context.Context, db DBTX, id uuid.UUID, status domain.ShowStatus) error {
	tag, err := db.Exec(ctx, `
		UPDATE shows SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("show", id.String())
	}
	return nil
}

// SaveCompletion writes the entire completion result at once: the show is
// never observable half-resolved.
func (r *showRepo) SaveCompletion(ctx context.Context, tx pgx.Tx, show *domain.ShowRecord) error {
	_, err := tx.Exec(ctx, `
		UPDATE shows SET
			status = $2,
			attendance = $3,
			ticket_revenue = $4,
			merchandise_revenue = $5,
			venue_rental_cost = $6,
			production_cost = $7,
			talent_cost = $8,
			profit = $9,
			overall_rating = $10,
			critic_rating = $11,
			audience_satisfaction = $12,
			updated_at = now()
		WHERE id = $1`,
		show.ID, show.Status, show.Attendance,
		infra.Int64ToNumeric(show.TicketRevenue),
		infra.Int64ToNumeric(show.MerchandiseRevenue),
		infra.Int64ToNumeric(show.VenueRentalCost),
		infra.Int64ToNumeric(show.ProductionCost),
		infra.Int64ToNumeric(show.TalentCost),
		infra.Int64ToNumeric(show.Profit),
		show.OverallRating, show.CriticRating, show.AudienceSatisfaction,
	)
	if err != nil {
		return fmt.Errorf("save completion: %w", err)
	}

	for i := range show.Matches {
		m := &show.Matches[i]
		_, err := tx.Exec(ctx, `
			UPDATE show_matches SET actual_quality = $3, popularity_impact = $4
			WHERE show_id = $1 AND id = $2`,
			show.ID, m.ID, m.ActualQuality, m.PopularityImpact)
		if err != nil {
			return fmt.Errorf("save match result: %w", err)
		}
	}
	for i := range show.Segments {
		s := &show.Segments[i]
		_, err := tx.Exec(ctx, `
			UPDATE show_segments SET actual_quality = $3, popularity_impact = $4
			WHERE show_id = $1 AND id = $2`,
			show.ID, s.ID, s.ActualQuality, s.PopularityImpact)
		if err != nil {
			return fmt.Errorf("save segment result: %w", err)
		}
	}
	return nil
}

func (r *showRepo) insertCard(ctx context.Context, db DBTX, show *domain.ShowRecord) error {
	for i := range show.Matches {
		m := &show.Matches[i]
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		participants, err := json.Marshal(m.Participants)
		if err != nil {
			return fmt.Errorf("marshal participants: %w", err)
		}
		_, err = db.Exec(ctx, `
			INSERT INTO show_matches (id, show_id, position, match_type, championship_id,
				is_championship_match, stipulation, duration_minutes, booked_outcome,
				planned_quality, participants, actual_quality, popularity_impact)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			m.ID, show.ID, m.Position, m.MatchType, m.ChampionshipID,
			m.IsChampionshipMatch, m.Stipulation, m.DurationMinutes, m.BookedOutcome,
			m.PlannedQuality, participants, m.ActualQuality, m.PopularityImpact,
		)
		if err != nil {
			return fmt.Errorf("insert match: %w", err)
		}
	}

	for i := range show.Segments {
		s := &show.Segments[i]
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		participants, err := json.Marshal(s.Participants)
		if err != nil {
			return fmt.Errorf("marshal participants: %w", err)
		}
		_, err = db.Exec(ctx, `
			INSERT INTO show_segments (id, show_id, position, segment_type,
				planned_quality, participants, actual_quality, popularity_impact)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			s.ID, show.ID, s.Position, s.SegmentType,
			s.PlannedQuality, participants, s.ActualQuality, s.PopularityImpact,
		)
		if err != nil {
			return fmt.Errorf("insert segment: %w", err)
		}
	}
	return nil
}

func (r *showRepo) loadCard(ctx context.Context, db DBTX, show *domain.ShowRecord) error {
	rows, err := db.Query(ctx, `
		SELECT id, position, match_type, championship_id, is_championship_match,
			stipulation, duration_minutes, booked_outcome, planned_quality,
			participants, actual_quality, popularity_impact
		FROM show_matches WHERE show_id = $1 ORDER BY position ASC`, show.ID)
	if err != nil {
		return fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.MatchRecord
		var participants []byte
		if err := rows.Scan(
			&m.ID, &m.Position, &m.MatchType, &m.ChampionshipID, &m.IsChampionshipMatch,
			&m.Stipulation, &m.DurationMinutes, &m.BookedOutcome, &m.PlannedQuality,
			&participants, &m.ActualQuality, &m.PopularityImpact,
		); err != nil {
			return fmt.Errorf("scan match: %w", err)
		}
		if err := json.Unmarshal(participants, &m.Participants); err != nil {
			return fmt.Errorf("unmarshal participants: %w", err)
		}
		show.Matches = append(show.Matches, m)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	segRows, err := db.Query(ctx, `
		SELECT id, position, segment_type, planned_quality, participants, actual_quality, popularity_impact
		FROM show_segments WHERE show_id = $1 ORDER BY position ASC`, show.ID)
	if err != nil {
		return fmt.Errorf("query segments: %w", err)
	}
	defer segRows.Close()

	for segRows.Next() {
		var s domain.SegmentRecord
		var participants []byte
		if err := segRows.Scan(
			&s.ID, &s.Position, &s.SegmentType, &s.PlannedQuality,
			&participants, &s.ActualQuality, &s.PopularityImpact,
		); err != nil {
			return fmt.Errorf("scan segment: %w", err)
		}
		if err := json.Unmarshal(participants, &s.Participants); err != nil {
			return fmt.Errorf("unmarshal participants: %w", err)
		}
		show.Segments = append(show.Segments, s)
	}
	return segRows.Err()
}

func scanShow(row pgx.Row) (*domain.ShowRecord, error) {
	var s domain.ShowRecord
	var price, ticketRev, merchRev, rental, production, talent, profit pgtype.Numeric
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.VenueID, &s.Name, &s.ShowType, &s.Status, &s.ShowDate, &price,
		&s.Attendance, &ticketRev, &merchRev, &rental, &production, &talent, &profit,
		&s.OverallRating, &s.CriticRating, &s.AudienceSatisfaction, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan show: %w", err)
	}

	conversions := []struct {
		dst *int64
		src pgtype.Numeric
	}{
		{&s.TicketPrice, price},
		{&s.TicketRevenue, ticketRev},
		{&s.MerchandiseRevenue, merchRev},
		{&s.VenueRentalCost, rental},
		{&s.ProductionCost, production},
		{&s.TalentCost, talent},
		{&s.Profit, profit},
	}
	for _, c := range conversions {
		v, err := infra.NumericToInt64(c.src)
		if err != nil {
			return nil, fmt.Errorf("convert show money column: %w", err)
		}
		*c.dst = v
	}
	return &s, nil
}
