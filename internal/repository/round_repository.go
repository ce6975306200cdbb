package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
)

// RoundRepository provides data access methods for the funding_round table.
// Capacity accounting lives here: reservations and releases are single
// conditional UPDATEs so two concurrent investments can never jointly
// overshoot a round's target.
type RoundRepository struct {
	db *sql.DB
}

// NewRoundRepository creates a new RoundRepository with the provided database connection.
func NewRoundRepository(db *sql.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

const roundColumns = `
	id, pitch_id, round_number, status, target_amount, minimum_ticket, maximum_ticket,
	current_amount, number_of_investors, available_equity, opened_at, closed_at
`

// InsertRound persists a new funding round.
func (s *RoundRepository) InsertRound(ctx context.Context, q Querier, r *model.FundingRound) error {
	if q == nil {
		q = s.db
	}

	query := `
		INSERT INTO funding_round (
			id, pitch_id, round_number, status, target_amount, minimum_ticket, maximum_ticket,
			current_amount, number_of_investors, available_equity, opened_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		r.ID,
		r.PitchID,
		r.RoundNumber,
		r.Status,
		r.TargetAmount,
		r.MinimumTicket,
		r.MaximumTicket,
		r.CurrentAmount,
		r.NumberOfInvestors,
		r.AvailableEquity,
		r.OpenedAt.Format("2006-01-02 15:04:05"),
	)
	if isUniqueViolation(err) {
		return apperrors.ErrDuplicateEntry
	}
	if err != nil {
		return fmt.Errorf("failed to insert funding round: %w", err)
	}

	return nil
}

// GetRoundOnID retrieves a single round by ID.
func (s *RoundRepository) GetRoundOnID(ctx context.Context, q Querier, roundID string) (model.FundingRound, error) {
	if q == nil {
		q = s.db
	}

	query := `
		SELECT ` + roundColumns + `
		FROM funding_round
		WHERE id = ?
	`

	return s.scanRoundRow(q.QueryRowContext(ctx, query, roundID))
}

// GetOpenRound retrieves the pitch's open round.
// Returns ErrRoundNotOpen when the pitch has no open round.
func (s *RoundRepository) GetOpenRound(ctx context.Context, q Querier, pitchID string) (model.FundingRound, error) {
	if q == nil {
		q = s.db
	}

	query := `
		SELECT ` + roundColumns + `
		FROM funding_round
		WHERE pitch_id = ? AND status = 'open'
	`

	round, err := s.scanRoundRow(q.QueryRowContext(ctx, query, pitchID))
	if err == apperrors.ErrRoundNotFound {
		return model.FundingRound{}, apperrors.ErrRoundNotOpen
	}
	return round, err
}

func (s *RoundRepository) scanRoundRow(row *sql.Row) (model.FundingRound, error) {
	var r model.FundingRound
	var openedAtStr string
	var closedAtStr sql.NullString

	err := row.Scan(
		&r.ID,
		&r.PitchID,
		&r.RoundNumber,
		&r.Status,
		&r.TargetAmount,
		&r.MinimumTicket,
		&r.MaximumTicket,
		&r.CurrentAmount,
		&r.NumberOfInvestors,
		&r.AvailableEquity,
		&openedAtStr,
		&closedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.FundingRound{}, apperrors.ErrRoundNotFound
	}
	if err != nil {
		return model.FundingRound{}, fmt.Errorf("failed to query funding_round table: %w", err)
	}

	r.OpenedAt, err = ParseTime(openedAtStr)
	if err != nil {
		return model.FundingRound{}, fmt.Errorf("failed to parse date: %w", err)
	}
	if closedAtStr.Valid {
		closedAt, err := ParseTime(closedAtStr.String)
		if err != nil {
			return model.FundingRound{}, fmt.Errorf("failed to parse date: %w", err)
		}
		r.ClosedAt = &closedAt
	}

	return r, nil
}

// GetRoundsForPitch retrieves all rounds for a pitch, newest first.
func (s *RoundRepository) GetRoundsForPitch(pitchID string) ([]model.FundingRound, error) {
	query := `
		SELECT ` + roundColumns + `
		FROM funding_round
		WHERE pitch_id = ?
		ORDER BY round_number DESC
	`

	rows, err := s.db.Query(query, pitchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query funding_round table: %w", err)
	}
	defer rows.Close()

	rounds := []model.FundingRound{}

	for rows.Next() {
		var r model.FundingRound
		var openedAtStr string
		var closedAtStr sql.NullString

		err := rows.Scan(
			&r.ID,
			&r.PitchID,
			&r.RoundNumber,
			&r.Status,
			&r.TargetAmount,
			&r.MinimumTicket,
			&r.MaximumTicket,
			&r.CurrentAmount,
			&r.NumberOfInvestors,
			&r.AvailableEquity,
			&openedAtStr,
			&closedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan funding_round table results: %w", err)
		}

		r.OpenedAt, err = ParseTime(openedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		if closedAtStr.Valid {
			closedAt, err := ParseTime(closedAtStr.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse date: %w", err)
			}
			r.ClosedAt = &closedAt
		}

		rounds = append(rounds, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating funding_round table: %w", err)
	}

	return rounds, nil
}

// ReserveCapacity atomically adds amount to the round's current_amount,
// but only while the round is open and the resulting total stays within
// target_amount. The capacity check and the increment are one statement, so
// concurrent reservations serialize at the storage layer and at most one of
// two reservations that would jointly overshoot can succeed.
//
// Returns false (and no error) when the predicate rejected the reservation;
// the caller distinguishes fully-subscribed from would-overshoot by reading
// the round afterwards.
func (s *RoundRepository) ReserveCapacity(ctx context.Context, q Querier, roundID string, amount float64) (bool, error) {
	if q == nil {
		q = s.db
	}

	query := `
		UPDATE funding_round
		SET current_amount = current_amount + ?
		WHERE id = ? AND status = 'open' AND current_amount + ? <= target_amount
	`

	result, err := q.ExecContext(ctx, query, amount, roundID, amount)
	if err != nil {
		return false, fmt.Errorf("failed to reserve round capacity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check reservation result: %w", err)
	}

	return rows == 1, nil
}

// ReleaseCapacity subtracts a no-longer-counted investment's amount from the
// round. The floor guard keeps a double release from driving the total negative.
func (s *RoundRepository) ReleaseCapacity(ctx context.Context, q Querier, roundID string, amount float64) error {
	if q == nil {
		q = s.db
	}

	query := `
		UPDATE funding_round
		SET current_amount = current_amount - ?
		WHERE id = ? AND current_amount - ? >= 0
	`

	result, err := q.ExecContext(ctx, query, amount, roundID, amount)
	if err != nil {
		return fmt.Errorf("failed to release round capacity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check release result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: release of %.2f would underflow round %s", apperrors.ErrDataInconsistency, amount, roundID)
	}

	return nil
}

// SetNumberOfInvestors writes the recomputed distinct-investor count.
func (s *RoundRepository) SetNumberOfInvestors(ctx context.Context, q Querier, roundID string, count int) error {
	if q == nil {
		q = s.db
	}

	_, err := q.ExecContext(ctx, "UPDATE funding_round SET number_of_investors = ? WHERE id = ?", count, roundID)
	if err != nil {
		return fmt.Errorf("failed to update investor count: %w", err)
	}

	return nil
}

// CloseOpenRounds closes any open round on the pitch, stamping closed_at.
// Used when a new round is opened or a round is closed explicitly.
func (s *RoundRepository) CloseOpenRounds(ctx context.Context, q Querier, pitchID string) error {
	if q == nil {
		q = s.db
	}

	query := `
		UPDATE funding_round
		SET status = 'closed', closed_at = ?
		WHERE pitch_id = ? AND status = 'open'
	`

	_, err := q.ExecContext(ctx, query, time.Now().UTC().Format("2006-01-02 15:04:05"), pitchID)
	if err != nil {
		return fmt.Errorf("failed to close funding rounds: %w", err)
	}

	return nil
}

// NextRoundNumber returns one past the highest round number used on the pitch.
func (s *RoundRepository) NextRoundNumber(ctx context.Context, q Querier, pitchID string) (int, error) {
	if q == nil {
		q = s.db
	}

	var max sql.NullInt64
	err := q.QueryRowContext(ctx, "SELECT MAX(round_number) FROM funding_round WHERE pitch_id = ?", pitchID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to query round numbers: %w", err)
	}

	return int(max.Int64) + 1, nil
}
