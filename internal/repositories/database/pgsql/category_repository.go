package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/centsible/centsible_backend/internal/apperrors"
	"github.com/centsible/centsible_backend/internal/core/domain"
	portsrepo "github.com/centsible/centsible_backend/internal/core/ports/repositories"
	"github.com/centsible/centsible_backend/internal/models"
	"github.com/centsible/centsible_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `category_id, user_id, name, kind, icon, color, created_at, created_by, last_updated_at, last_updated_by`

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{pool: pool}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.Kind,
		&m.Icon,
		&m.Color,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.CategoryID,
		m.UserID,
		m.Name,
		m.Kind,
		m.Icon,
		m.Color,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category with ID %s already exists", apperrors.ErrDuplicate, m.CategoryID)
		}
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	m, err := scanCategory(r.pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}

	category := mapping.ToDomainCategory(m)
	return &category, nil
}

// ListCategories retrieves all categories of a user, by name.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 ORDER BY name ASC;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var modelCats []models.Category
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		modelCats = append(modelCats, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading category rows: %w", err)
	}

	return mapping.ToDomainCategorySlice(modelCats), nil
}

// UpdateCategory rewrites a category's mutable columns.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		UPDATE categories
		SET name = $2, icon = $3, color = $4, last_updated_at = $5, last_updated_by = $6
		WHERE category_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.CategoryID,
		m.Name,
		m.Icon,
		m.Color,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", m.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category. Transactions keep their rows with
// category_id set NULL; budget links cascade (both enforced by FKs).
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
