package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/budget-planner/internal/domain"
)

const categoryColumns = `id, user_id, name, monthly_limit, tag, is_system, is_active, created_at, updated_at`

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES (:id, :user_id, :name, :monthly_limit, :tag, :is_system, :is_active, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, category)
	return err
}

func (r *categoryRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error) {
	var category domain.Category
	err := r.db.GetContext(ctx, &category, `SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListActive(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1 AND is_active
		ORDER BY created_at, id
	`

	var categories []*domain.Category
	if err := r.db.SelectContext(ctx, &categories, query, userID); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories
		SET name = :name, monthly_limit = :monthly_limit, tag = :tag, is_active = :is_active, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id
	`

	category.UpdatedAt = time.Now()
	result, err := r.db.NamedExecContext(ctx, query, category)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *categoryRepository) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM categories WHERE user_id = $1`, userID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *categoryRepository) GetUncategorized(ctx context.Context, userID uuid.UUID) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1 AND tag = $2 AND is_system
		ORDER BY created_at
		LIMIT 1
	`

	var category domain.Category
	if err := r.db.GetContext(ctx, &category, query, userID, domain.CategoryTagUncategorized); err != nil {
		return nil, err
	}
	return &category, nil
}
