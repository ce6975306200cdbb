package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
)

// PitchRepository provides data access methods for the pitch and
// pitch_review_note tables.
type PitchRepository struct {
	db *sql.DB
}

// NewPitchRepository creates a new PitchRepository with the provided database connection.
func NewPitchRepository(db *sql.DB) *PitchRepository {
	return &PitchRepository{db: db}
}

const pitchColumns = `
	id, creator_id, title, company_name, company_description, category_id, status,
	funding_goal, funding_raised, valuation,
	average_investment, largest_investment, smallest_investment,
	total_equity_allocated, equity_remaining, average_equity_per_investor,
	created_at, updated_at
`

// GetPitches retrieves pitches from the database based on filter criteria.
// Returns an empty slice if no pitches match the filter criteria.
func (s *PitchRepository) GetPitches(filter model.PitchFilter) ([]model.Pitch, error) {
	query := `
		SELECT ` + pitchColumns + `
		FROM pitch
		WHERE 1=1
	`
	var args []any

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}

	if filter.CategoryID != "" {
		query += " AND category_id = ?"
		args = append(args, filter.CategoryID)
	}

	if filter.CreatorID != "" {
		query += " AND creator_id = ?"
		args = append(args, filter.CreatorID)
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pitch table: %w", err)
	}
	defer rows.Close()

	pitches := []model.Pitch{}

	for rows.Next() {
		p, err := scanPitch(rows)
		if err != nil {
			return nil, err
		}
		pitches = append(pitches, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pitch table: %w", err)
	}

	return pitches, nil
}

// GetPitchOnID retrieves a single pitch by ID. The optional Querier allows
// the read to participate in a caller-owned transaction; pass nil to read
// from the pooled connection.
func (s *PitchRepository) GetPitchOnID(ctx context.Context, q Querier, pitchID string) (model.Pitch, error) {
	if q == nil {
		q = s.db
	}

	query := `
		SELECT ` + pitchColumns + `
		FROM pitch
		WHERE id = ?
	`

	row := q.QueryRowContext(ctx, query, pitchID)
	p, err := scanPitchRow(row)
	if err == sql.ErrNoRows {
		return model.Pitch{}, apperrors.ErrPitchNotFound
	}
	if err != nil {
		return model.Pitch{}, fmt.Errorf("failed to query pitch: %w", err)
	}

	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPitch(rows *sql.Rows) (model.Pitch, error) {
	p, err := scanPitchRow(rows)
	if err != nil {
		return model.Pitch{}, fmt.Errorf("failed to scan pitch table results: %w", err)
	}
	return p, nil
}

func scanPitchRow(row rowScanner) (model.Pitch, error) {
	var p model.Pitch
	var description, categoryID, fundingGoal, valuation sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&p.ID,
		&p.CreatorID,
		&p.Title,
		&p.CompanyName,
		&description,
		&categoryID,
		&p.Status,
		&fundingGoal,
		&p.FundingRaised,
		&valuation,
		&p.Metrics.AverageInvestment,
		&p.Metrics.LargestInvestment,
		&p.Metrics.SmallestInvestment,
		&p.Metrics.TotalEquityAllocated,
		&p.Metrics.EquityRemaining,
		&p.Metrics.AverageEquityPerInvestor,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return model.Pitch{}, err
	}

	p.CompanyDescription = description.String
	p.CategoryID = categoryID.String
	p.FundingGoal = fundingGoal.String
	p.Valuation = valuation.String

	p.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Pitch{}, fmt.Errorf("failed to parse date: %w", err)
	}
	p.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.Pitch{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return p, nil
}

// InsertPitch persists a new pitch in draft status.
func (s *PitchRepository) InsertPitch(ctx context.Context, p *model.Pitch) error {
	query := `
		INSERT INTO pitch (
			id, creator_id, title, company_name, company_description, category_id, status,
			funding_goal, funding_raised, valuation, equity_remaining, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var categoryID any
	if p.CategoryID != "" {
		categoryID = p.CategoryID
	}

	now := p.CreatedAt.Format("2006-01-02 15:04:05")
	_, err := s.db.ExecContext(ctx, query,
		p.ID,
		p.CreatorID,
		p.Title,
		p.CompanyName,
		p.CompanyDescription,
		categoryID,
		p.Status,
		p.FundingGoal,
		p.FundingRaised,
		p.Valuation,
		p.Metrics.EquityRemaining,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert pitch: %w", err)
	}

	return nil
}

// UpdatePitch updates the pitcher-editable fields.
func (s *PitchRepository) UpdatePitch(ctx context.Context, p *model.Pitch) error {
	query := `
		UPDATE pitch
		SET title = ?, company_name = ?, company_description = ?, category_id = ?,
			funding_goal = ?, valuation = ?, updated_at = ?
		WHERE id = ?
	`

	var categoryID any
	if p.CategoryID != "" {
		categoryID = p.CategoryID
	}

	result, err := s.db.ExecContext(ctx, query,
		p.Title,
		p.CompanyName,
		p.CompanyDescription,
		categoryID,
		p.FundingGoal,
		p.Valuation,
		time.Now().UTC().Format("2006-01-02 15:04:05"),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pitch: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrPitchNotFound
	}

	return nil
}

// UpdatePitchStatus sets the moderation status of a pitch.
func (s *PitchRepository) UpdatePitchStatus(ctx context.Context, q Querier, pitchID, status string) error {
	if q == nil {
		q = s.db
	}

	query := `
		UPDATE pitch
		SET status = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := q.ExecContext(ctx, query, status, time.Now().UTC().Format("2006-01-02 15:04:05"), pitchID)
	if err != nil {
		return fmt.Errorf("failed to update pitch status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrPitchNotFound
	}

	return nil
}

// UpdatePitchMetrics writes the recomputed aggregate metrics for a pitch.
// Always called inside the transaction that changed the investment set.
func (s *PitchRepository) UpdatePitchMetrics(ctx context.Context, q Querier, pitchID string, m model.PitchMetrics) error {
	query := `
		UPDATE pitch
		SET average_investment = ?, largest_investment = ?, smallest_investment = ?,
			total_equity_allocated = ?, equity_remaining = ?, average_equity_per_investor = ?,
			updated_at = ?
		WHERE id = ?
	`

	_, err := q.ExecContext(ctx, query,
		m.AverageInvestment,
		m.LargestInvestment,
		m.SmallestInvestment,
		m.TotalEquityAllocated,
		m.EquityRemaining,
		m.AverageEquityPerInvestor,
		time.Now().UTC().Format("2006-01-02 15:04:05"),
		pitchID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pitch metrics: %w", err)
	}

	return nil
}

// IncrementFundingRaised adds a completed payment amount to the pitch total.
func (s *PitchRepository) IncrementFundingRaised(ctx context.Context, q Querier, pitchID string, amount float64) error {
	query := `
		UPDATE pitch
		SET funding_raised = funding_raised + ?, updated_at = ?
		WHERE id = ?
	`

	result, err := q.ExecContext(ctx, query, amount, time.Now().UTC().Format("2006-01-02 15:04:05"), pitchID)
	if err != nil {
		return fmt.Errorf("failed to increment funding raised: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrPitchNotFound
	}

	return nil
}

// DeletePitch removes a pitch and, via cascading foreign keys, its rounds,
// investments and review notes.
func (s *PitchRepository) DeletePitch(ctx context.Context, pitchID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM pitch WHERE id = ?", pitchID)
	if err != nil {
		return fmt.Errorf("failed to delete pitch: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrPitchNotFound
	}

	return nil
}

// InsertReviewNote appends one entry to a pitch's moderation history.
func (s *PitchRepository) InsertReviewNote(ctx context.Context, q Querier, note *model.PitchReviewNote) error {
	if q == nil {
		q = s.db
	}

	query := `
		INSERT INTO pitch_review_note (id, pitch_id, reviewer_id, status, feedback, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		note.ID,
		note.PitchID,
		note.ReviewerID,
		note.Status,
		note.Feedback,
		note.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert pitch review note: %w", err)
	}

	return nil
}

// GetReviewNotes retrieves a pitch's moderation history, oldest first.
func (s *PitchRepository) GetReviewNotes(pitchID string) ([]model.PitchReviewNote, error) {
	query := `
		SELECT id, pitch_id, reviewer_id, status, feedback, created_at
		FROM pitch_review_note
		WHERE pitch_id = ?
		ORDER BY created_at ASC
	`

	rows, err := s.db.Query(query, pitchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pitch_review_note table: %w", err)
	}
	defer rows.Close()

	notes := []model.PitchReviewNote{}

	for rows.Next() {
		var n model.PitchReviewNote
		var feedback sql.NullString
		var createdAtStr string

		err := rows.Scan(&n.ID, &n.PitchID, &n.ReviewerID, &n.Status, &feedback, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pitch_review_note table results: %w", err)
		}

		n.Feedback = feedback.String
		n.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		notes = append(notes, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pitch_review_note table: %w", err)
	}

	return notes, nil
}
