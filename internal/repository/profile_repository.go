package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
)

// ProfileRepository provides data access methods for the profile table.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository with the provided database connection.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// InsertProfile persists a new profile. A UNIQUE violation on user_id or
// email is reported as ErrDuplicateProfile.
func (s *ProfileRepository) InsertProfile(ctx context.Context, p *model.Profile) error {
	query := `
		INSERT INTO profile (id, user_id, email, role, name, image_url, firm, bio, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.Email,
		p.Role,
		p.Name,
		p.ImageURL,
		p.Firm,
		p.Bio,
		p.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if isUniqueViolation(err) {
		return apperrors.ErrDuplicateProfile
	}
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return nil
}

// GetProfileOnID retrieves a profile by its primary key.
func (s *ProfileRepository) GetProfileOnID(profileID string) (model.Profile, error) {
	return s.getProfile("id", profileID)
}

// GetProfileOnUserID retrieves a profile by the external identity string.
func (s *ProfileRepository) GetProfileOnUserID(userID string) (model.Profile, error) {
	return s.getProfile("user_id", userID)
}

func (s *ProfileRepository) getProfile(column, value string) (model.Profile, error) {
	//#nosec G202 -- Safe: column is one of two hardcoded names, not user input
	query := `
		SELECT id, user_id, email, role, name, image_url, firm, bio, created_at
		FROM profile
		WHERE ` + column + ` = ?
	`

	var p model.Profile
	var imageURL, firm, bio sql.NullString
	var createdAtStr string

	err := s.db.QueryRow(query, value).Scan(
		&p.ID,
		&p.UserID,
		&p.Email,
		&p.Role,
		&p.Name,
		&imageURL,
		&firm,
		&bio,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Profile{}, apperrors.ErrProfileNotFound
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to query profile: %w", err)
	}

	p.ImageURL = imageURL.String
	p.Firm = firm.String
	p.Bio = bio.String

	p.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return p, nil
}

// UpdateProfile updates the mutable profile fields.
func (s *ProfileRepository) UpdateProfile(ctx context.Context, p *model.Profile) error {
	query := `
		UPDATE profile
		SET email = ?, name = ?, image_url = ?, firm = ?, bio = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, p.Email, p.Name, p.ImageURL, p.Firm, p.Bio, p.ID)
	if isUniqueViolation(err) {
		return apperrors.ErrDuplicateProfile
	}
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}
