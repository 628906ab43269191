package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
)

type threadsRepo struct {
	db dbtx
}

const threadColumns = `id, subcategory_id, author_id, title, content, created_at, updated_at`

func scanThread(row interface{ Scan(...any) error }) (domain.Thread, error) {
	var t domain.Thread
	err := row.Scan(&t.ID, &t.SubcategoryID, &t.AuthorID, &t.Title, &t.Content, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *threadsRepo) GetThreadByID(ctx context.Context, id int64) (domain.Thread, error) {
	t, err := scanThread(r.db.QueryRowContext(ctx,
		`SELECT `+threadColumns+` FROM threads WHERE id = ?`, id))
	if err != nil {
		return domain.Thread{}, mapNotFound(err)
	}
	return t, nil
}

func (r *threadsRepo) CountThreads(ctx context.Context, subcategoryID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM threads WHERE subcategory_id = ?`, subcategoryID).Scan(&count)
	return count, err
}

func (r *threadsRepo) ListThreadsPage(ctx context.Context, subcategoryID int64, skip, take int) ([]domain.Thread, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+threadColumns+` FROM threads
		 WHERE subcategory_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`, subcategoryID, take, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectThreads(rows)
}

func (r *threadsRepo) CountThreadsInCategory(ctx context.Context, categoryID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM threads t
		 JOIN subcategories s ON s.id = t.subcategory_id
		 WHERE s.category_id = ?`, categoryID).Scan(&count)
	return count, err
}

func (r *threadsRepo) LatestThreadInCategory(ctx context.Context, categoryID int64) (domain.Thread, error) {
	t, err := scanThread(r.db.QueryRowContext(ctx,
		`SELECT t.id, t.subcategory_id, t.author_id, t.title, t.content, t.created_at, t.updated_at
		 FROM threads t
		 JOIN subcategories s ON s.id = t.subcategory_id
		 WHERE s.category_id = ?
		 ORDER BY t.created_at DESC, t.id DESC
		 LIMIT 1`, categoryID))
	if err != nil {
		return domain.Thread{}, mapNotFound(err)
	}
	return t, nil
}

func (r *threadsRepo) ListRecentThreads(ctx context.Context, limit int) ([]domain.Thread, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+threadColumns+` FROM threads
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectThreads(rows)
}

func (r *threadsRepo) CreateThread(ctx context.Context, t domain.Thread) (domain.Thread, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO threads (subcategory_id, author_id, title, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.SubcategoryID, t.AuthorID, t.Title, t.Content, now, now)
	if err != nil {
		return domain.Thread{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Thread{}, err
	}

	t.ID = id
	t.CreatedAt = now
	t.UpdatedAt = now
	return t, nil
}

func (r *threadsRepo) UpdateThreadContent(ctx context.Context, threadID int64, title, content string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE threads SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		title, content, time.Now().UTC(), threadID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *threadsRepo) DeleteThread(ctx context.Context, threadID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM threads WHERE id = ?`, threadID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func collectThreads(rows *sql.Rows) ([]domain.Thread, error) {
	var out []domain.Thread
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
