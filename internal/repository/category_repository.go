package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
)

// CategoryRepository provides data access methods for the category table.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new CategoryRepository with the provided database connection.
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetCategories retrieves all categories, optionally filtered by type.
// Returns an empty slice if no categories match.
func (s *CategoryRepository) GetCategories(categoryType string) ([]model.Category, error) {
	query := `
		SELECT id, type, name
		FROM category
		WHERE 1=1
	`
	var args []any

	if categoryType != "" {
		query += " AND type = ?"
		args = append(args, categoryType)
	}

	query += " ORDER BY type, name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category table: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}

	for rows.Next() {
		var c model.Category

		err := rows.Scan(&c.ID, &c.Type, &c.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category table results: %w", err)
		}

		categories = append(categories, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category table: %w", err)
	}

	return categories, nil
}

// GetCategoryOnID retrieves a single category by ID.
func (s *CategoryRepository) GetCategoryOnID(categoryID string) (model.Category, error) {
	query := `
		SELECT id, type, name
		FROM category
		WHERE id = ?
	`

	var c model.Category

	err := s.db.QueryRow(query, categoryID).Scan(&c.ID, &c.Type, &c.Name)
	if err == sql.ErrNoRows {
		return model.Category{}, apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to query category: %w", err)
	}

	return c, nil
}

// InsertCategory persists a new category.
func (s *CategoryRepository) InsertCategory(ctx context.Context, c *model.Category) error {
	query := `
		INSERT INTO category (id, type, name)
		VALUES (?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, c.ID, c.Type, c.Name)
	if isUniqueViolation(err) {
		return apperrors.ErrDuplicateEntry
	}
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

// UpdateCategory updates an existing category's type and name.
func (s *CategoryRepository) UpdateCategory(ctx context.Context, c *model.Category) error {
	query := `
		UPDATE category
		SET type = ?, name = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, c.Type, c.Name, c.ID)
	if isUniqueViolation(err) {
		return apperrors.ErrDuplicateEntry
	}
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// DeleteCategory removes a category.
func (s *CategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM category WHERE id = ?", categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}
