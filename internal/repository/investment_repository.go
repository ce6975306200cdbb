package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
)

// InvestmentRepository provides data access methods for the investment and
// investment_review_note tables. Status changes are guarded UPDATEs scoped by
// the expected current status, so a transition observed by the caller cannot
// be applied twice.
type InvestmentRepository struct {
	db *sql.DB
}

// NewInvestmentRepository creates a new InvestmentRepository with the provided database connection.
func NewInvestmentRepository(db *sql.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

const investmentColumns = `
	id, pitch_id, round_id, investor_id, investor_user_id, amount, investment_type, equity,
	status, risk_tolerance,
	dd_financials_reviewed, dd_legal_reviewed, dd_market_reviewed, dd_team_reviewed,
	accredited_investor, terms_accepted,
	checkout_session_id, payment_reference, paid_at, created_at, updated_at
`

// InsertInvestment persists a new standalone investment row.
func (s *InvestmentRepository) InsertInvestment(ctx context.Context, q Querier, inv *model.Investment) error {
	if q == nil {
		q = s.db
	}

	query := `
		INSERT INTO investment (
			id, pitch_id, round_id, investor_id, investor_user_id, amount, investment_type, equity,
			status, risk_tolerance,
			dd_financials_reviewed, dd_legal_reviewed, dd_market_reviewed, dd_team_reviewed,
			accredited_investor, terms_accepted, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := inv.CreatedAt.Format("2006-01-02 15:04:05")
	_, err := q.ExecContext(ctx, query,
		inv.ID,
		inv.PitchID,
		inv.RoundID,
		inv.InvestorID,
		inv.InvestorUserID,
		inv.Amount,
		inv.InvestmentType,
		inv.Equity,
		inv.Status,
		inv.RiskTolerance,
		inv.DueDiligence.FinancialsReviewed,
		inv.DueDiligence.LegalReviewed,
		inv.DueDiligence.MarketReviewed,
		inv.DueDiligence.TeamReviewed,
		inv.Compliance.AccreditedInvestor,
		inv.Compliance.TermsAccepted,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert investment: %w", err)
	}

	return nil
}

// GetInvestmentOnID retrieves a single investment by ID.
func (s *InvestmentRepository) GetInvestmentOnID(ctx context.Context, q Querier, investmentID string) (model.Investment, error) {
	if q == nil {
		q = s.db
	}

	query := `
		SELECT ` + investmentColumns + `
		FROM investment
		WHERE id = ?
	`

	return s.scanInvestmentRow(q.QueryRowContext(ctx, query, investmentID))
}

// GetInvestmentBySession retrieves the investment referencing a checkout session.
func (s *InvestmentRepository) GetInvestmentBySession(ctx context.Context, q Querier, sessionID string) (model.Investment, error) {
	if q == nil {
		q = s.db
	}

	query := `
		SELECT ` + investmentColumns + `
		FROM investment
		WHERE checkout_session_id = ?
	`

	inv, err := s.scanInvestmentRow(q.QueryRowContext(ctx, query, sessionID))
	if err == apperrors.ErrInvestmentNotFound {
		return model.Investment{}, apperrors.ErrSessionNotFound
	}
	return inv, err
}

func (s *InvestmentRepository) scanInvestmentRow(row *sql.Row) (model.Investment, error) {
	inv, err := scanInvestment(row)
	if err == sql.ErrNoRows {
		return model.Investment{}, apperrors.ErrInvestmentNotFound
	}
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to query investment table: %w", err)
	}
	return inv, nil
}

func scanInvestment(row rowScanner) (model.Investment, error) {
	var inv model.Investment
	var riskTolerance, sessionID, paymentRef, paidAtStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&inv.ID,
		&inv.PitchID,
		&inv.RoundID,
		&inv.InvestorID,
		&inv.InvestorUserID,
		&inv.Amount,
		&inv.InvestmentType,
		&inv.Equity,
		&inv.Status,
		&riskTolerance,
		&inv.DueDiligence.FinancialsReviewed,
		&inv.DueDiligence.LegalReviewed,
		&inv.DueDiligence.MarketReviewed,
		&inv.DueDiligence.TeamReviewed,
		&inv.Compliance.AccreditedInvestor,
		&inv.Compliance.TermsAccepted,
		&sessionID,
		&paymentRef,
		&paidAtStr,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return model.Investment{}, err
	}

	inv.RiskTolerance = riskTolerance.String
	inv.CheckoutSessionID = sessionID.String
	inv.PaymentReference = paymentRef.String

	if paidAtStr.Valid {
		paidAt, err := ParseTime(paidAtStr.String)
		if err != nil {
			return model.Investment{}, fmt.Errorf("failed to parse date: %w", err)
		}
		inv.PaidAt = &paidAt
	}

	inv.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to parse date: %w", err)
	}
	inv.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return inv, nil
}

// GetInvestmentSummaries retrieves the embedded investment view for a pitch,
// joined with the investor profile for display names. This read-time join is
// the only "embedded copy" of investments; the investment rows stay the
// single source of truth.
func (s *InvestmentRepository) GetInvestmentSummaries(pitchID string) ([]model.InvestmentSummary, error) {
	query := `
		SELECT i.id, i.investor_id, p.name, i.amount, i.investment_type, i.equity, i.status, i.created_at
		FROM investment i
		JOIN profile p ON p.id = i.investor_id
		WHERE i.pitch_id = ?
		ORDER BY i.created_at ASC
	`

	rows, err := s.db.Query(query, pitchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	summaries := []model.InvestmentSummary{}

	for rows.Next() {
		var sum model.InvestmentSummary
		var createdAtStr string

		err := rows.Scan(
			&sum.ID,
			&sum.InvestorID,
			&sum.InvestorName,
			&sum.Amount,
			&sum.InvestmentType,
			&sum.Equity,
			&sum.Status,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment table results: %w", err)
		}

		sum.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		summaries = append(summaries, sum)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}

	return summaries, nil
}

// GetInvestmentsByInvestor retrieves all investments made by an external user,
// enriched with the pitch title, newest first.
func (s *InvestmentRepository) GetInvestmentsByInvestor(userID string) ([]model.InvestmentResponse, error) {
	query := `
		SELECT ` + prefixedInvestmentColumns + `, p.title
		FROM investment i
		JOIN pitch p ON p.id = i.pitch_id
		WHERE i.investor_user_id = ?
		ORDER BY i.created_at DESC
	`

	return s.queryInvestmentResponses(query, userID)
}

const prefixedInvestmentColumns = `
	i.id, i.pitch_id, i.round_id, i.investor_id, i.investor_user_id, i.amount, i.investment_type, i.equity,
	i.status, i.risk_tolerance,
	i.dd_financials_reviewed, i.dd_legal_reviewed, i.dd_market_reviewed, i.dd_team_reviewed,
	i.accredited_investor, i.terms_accepted,
	i.checkout_session_id, i.payment_reference, i.paid_at, i.created_at, i.updated_at
`

func (s *InvestmentRepository) queryInvestmentResponses(query string, args ...any) ([]model.InvestmentResponse, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments := []model.InvestmentResponse{}

	for rows.Next() {
		var resp model.InvestmentResponse
		var riskTolerance, sessionID, paymentRef, paidAtStr sql.NullString
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&resp.ID,
			&resp.PitchID,
			&resp.RoundID,
			&resp.InvestorID,
			&resp.InvestorUserID,
			&resp.Amount,
			&resp.InvestmentType,
			&resp.Equity,
			&resp.Status,
			&riskTolerance,
			&resp.DueDiligence.FinancialsReviewed,
			&resp.DueDiligence.LegalReviewed,
			&resp.DueDiligence.MarketReviewed,
			&resp.DueDiligence.TeamReviewed,
			&resp.Compliance.AccreditedInvestor,
			&resp.Compliance.TermsAccepted,
			&sessionID,
			&paymentRef,
			&paidAtStr,
			&createdAtStr,
			&updatedAtStr,
			&resp.PitchTitle,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment table results: %w", err)
		}

		resp.RiskTolerance = riskTolerance.String
		resp.CheckoutSessionID = sessionID.String
		resp.PaymentReference = paymentRef.String

		if paidAtStr.Valid {
			paidAt, err := ParseTime(paidAtStr.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse date: %w", err)
			}
			resp.PaidAt = &paidAt
		}

		resp.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		resp.UpdatedAt, err = ParseTime(updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		investments = append(investments, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}

	return investments, nil
}

// GetCountedInvestments retrieves the round's investments in counted
// statuses. Used for metrics recomputation inside mutation transactions.
func (s *InvestmentRepository) GetCountedInvestments(ctx context.Context, q Querier, roundID string) ([]model.Investment, error) {
	if q == nil {
		q = s.db
	}

	query := `
		SELECT ` + investmentColumns + `
		FROM investment
		WHERE round_id = ?
		AND status NOT IN ('pitcher_rejected', 'rejected', 'cancelled')
		ORDER BY created_at ASC
	`

	rows, err := q.QueryContext(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments := []model.Investment{}

	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment table results: %w", err)
		}
		investments = append(investments, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}

	return investments, nil
}

// CountDistinctInvestors counts distinct investors holding a counted
// investment in the round.
func (s *InvestmentRepository) CountDistinctInvestors(ctx context.Context, q Querier, roundID string) (int, error) {
	if q == nil {
		q = s.db
	}

	query := `
		SELECT COUNT(DISTINCT investor_id)
		FROM investment
		WHERE round_id = ?
		AND status NOT IN ('pitcher_rejected', 'rejected', 'cancelled')
	`

	var count int
	if err := q.QueryRowContext(ctx, query, roundID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count investors: %w", err)
	}

	return count, nil
}

// UpdateStatus moves an investment from an expected status to a new one.
// The WHERE clause pins the expected current status; zero rows affected means
// the investment was already moved (or never existed) and the transition must
// not be applied.
func (s *InvestmentRepository) UpdateStatus(ctx context.Context, q Querier, investmentID, fromStatus, toStatus string) (bool, error) {
	if q == nil {
		q = s.db
	}

	query := `
		UPDATE investment
		SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`

	result, err := q.ExecContext(ctx, query, toStatus, time.Now().UTC().Format("2006-01-02 15:04:05"), investmentID, fromStatus)
	if err != nil {
		return false, fmt.Errorf("failed to update investment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check update result: %w", err)
	}

	return rows == 1, nil
}

// SetCheckoutSession stores the provider session ID while moving the
// investment from payment_pending to payment_processing, guarded the same
// way as UpdateStatus.
func (s *InvestmentRepository) SetCheckoutSession(ctx context.Context, q Querier, investmentID, sessionID string) (bool, error) {
	if q == nil {
		q = s.db
	}

	query := `
		UPDATE investment
		SET checkout_session_id = ?, status = 'payment_processing', updated_at = ?
		WHERE id = ? AND status = 'payment_pending'
	`

	result, err := q.ExecContext(ctx, query, sessionID, time.Now().UTC().Format("2006-01-02 15:04:05"), investmentID)
	if err != nil {
		return false, fmt.Errorf("failed to store checkout session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check update result: %w", err)
	}

	return rows == 1, nil
}

// CompleteBySession marks the investment referencing the session as completed
// and stamps payment details. The status guard makes duplicate webhook
// deliveries a no-op: the second delivery matches zero rows.
func (s *InvestmentRepository) CompleteBySession(ctx context.Context, q Querier, sessionID, paymentReference string, paidAt time.Time) (bool, error) {
	if q == nil {
		q = s.db
	}

	query := `
		UPDATE investment
		SET status = 'completed', payment_reference = ?, paid_at = ?, updated_at = ?
		WHERE checkout_session_id = ? AND status = 'payment_processing'
	`

	now := time.Now().UTC().Format("2006-01-02 15:04:05")
	result, err := q.ExecContext(ctx, query, paymentReference, paidAt.UTC().Format("2006-01-02 15:04:05"), now, sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to complete investment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check update result: %w", err)
	}

	return rows == 1, nil
}

// ExpireBySession returns a payment_processing investment to payment_pending
// and clears its session, used when the provider reports the session expired.
func (s *InvestmentRepository) ExpireBySession(ctx context.Context, q Querier, sessionID string) (bool, error) {
	if q == nil {
		q = s.db
	}

	query := `
		UPDATE investment
		SET status = 'payment_pending', checkout_session_id = NULL, updated_at = ?
		WHERE checkout_session_id = ? AND status = 'payment_processing'
	`

	result, err := q.ExecContext(ctx, query, time.Now().UTC().Format("2006-01-02 15:04:05"), sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to expire checkout session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check update result: %w", err)
	}

	return rows == 1, nil
}

// GetStaleProcessing retrieves investments stuck in payment_processing whose
// last update is older than the cutoff. Fed to the expiry job.
func (s *InvestmentRepository) GetStaleProcessing(ctx context.Context, cutoff time.Time) ([]model.Investment, error) {
	query := `
		SELECT ` + investmentColumns + `
		FROM investment
		WHERE status = 'payment_processing' AND updated_at < ?
	`

	rows, err := s.db.QueryContext(ctx, query, cutoff.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments := []model.Investment{}

	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment table results: %w", err)
		}
		investments = append(investments, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}

	return investments, nil
}

// InsertReviewNote appends one entry to an investment's review history.
func (s *InvestmentRepository) InsertReviewNote(ctx context.Context, q Querier, note *model.InvestmentReviewNote) error {
	if q == nil {
		q = s.db
	}

	query := `
		INSERT INTO investment_review_note (id, investment_id, reviewer_id, reviewer_role, action, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		note.ID,
		note.InvestmentID,
		note.ReviewerID,
		note.ReviewerRole,
		note.Action,
		note.Note,
		note.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert investment review note: %w", err)
	}

	return nil
}

// GetReviewNotes retrieves an investment's review history, oldest first.
func (s *InvestmentRepository) GetReviewNotes(investmentID string) ([]model.InvestmentReviewNote, error) {
	query := `
		SELECT id, investment_id, reviewer_id, reviewer_role, action, note, created_at
		FROM investment_review_note
		WHERE investment_id = ?
		ORDER BY created_at ASC
	`

	rows, err := s.db.Query(query, investmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment_review_note table: %w", err)
	}
	defer rows.Close()

	notes := []model.InvestmentReviewNote{}

	for rows.Next() {
		var n model.InvestmentReviewNote
		var noteText sql.NullString
		var createdAtStr string

		err := rows.Scan(&n.ID, &n.InvestmentID, &n.ReviewerID, &n.ReviewerRole, &n.Action, &noteText, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment_review_note table results: %w", err)
		}

		n.Note = noteText.String
		n.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		notes = append(notes, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment_review_note table: %w", err)
	}

	return notes, nil
}
