package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
)

type categoriesRepo struct {
	db dbtx
}

const categoryColumns = `id, name, description, created_at, updated_at`

func (r *categoriesRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *categoriesRepo) GetCategoryByID(ctx context.Context, id int64) (domain.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)

	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return c, nil
}

func (r *categoriesRepo) ListSubcategories(ctx context.Context, categoryID int64) ([]domain.Subcategory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category_id, name, description, created_at, updated_at
		 FROM subcategories WHERE category_id = ? ORDER BY name`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Subcategory
	for rows.Next() {
		var s domain.Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *categoriesRepo) GetSubcategoryByID(ctx context.Context, id int64) (domain.Subcategory, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, category_id, name, description, created_at, updated_at
		 FROM subcategories WHERE id = ?`, id)

	var s domain.Subcategory
	if err := row.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return domain.Subcategory{}, mapNotFound(err)
	}
	return s, nil
}

func (r *categoriesRepo) CreateCategory(ctx context.Context, name, description string) (domain.Category, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, description, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		name, description, now, now)
	if err != nil {
		return domain.Category{}, mapConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Category{}, err
	}

	return domain.Category{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (r *categoriesRepo) CreateSubcategory(ctx context.Context, categoryID int64, name, description string) (domain.Subcategory, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO subcategories (category_id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		categoryID, name, description, now, now)
	if err != nil {
		return domain.Subcategory{}, mapConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Subcategory{}, err
	}

	return domain.Subcategory{
		ID:          id,
		CategoryID:  categoryID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
