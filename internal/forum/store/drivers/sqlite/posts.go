package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/aussiebroadwan/forum/internal/forum/store"
)

type postsRepo struct {
	db dbtx
}

const postColumns = `id, thread_id, author_id, content, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (domain.Post, error) {
	var p domain.Post
	err := row.Scan(&p.ID, &p.ThreadID, &p.AuthorID, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *postsRepo) GetPostByID(ctx context.Context, id int64) (domain.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
	if err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	return p, nil
}

func (r *postsRepo) CountPosts(ctx context.Context, threadID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE thread_id = ?`, threadID).Scan(&count)
	return count, err
}

func (r *postsRepo) ListPostsPage(ctx context.Context, threadID int64, skip, take int) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts
		 WHERE thread_id = ?
		 ORDER BY created_at ASC, id ASC
		 LIMIT ? OFFSET ?`, threadID, take, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *postsRepo) CountPostsInCategory(ctx context.Context, categoryID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts p
		 JOIN threads t ON t.id = p.thread_id
		 JOIN subcategories s ON s.id = t.subcategory_id
		 WHERE s.category_id = ?`, categoryID).Scan(&count)
	return count, err
}

func (r *postsRepo) LatestPost(ctx context.Context, threadID int64) (domain.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts
		 WHERE thread_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`, threadID))
	if err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	return p, nil
}

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) (domain.Post, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (thread_id, author_id, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ThreadID, p.AuthorID, p.Content, now, now)
	if err != nil {
		return domain.Post{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Post{}, err
	}

	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

func (r *postsRepo) UpdatePostContent(ctx context.Context, postID int64, content string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET content = ?, updated_at = ? WHERE id = ?`,
		content, time.Now().UTC(), postID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *postsRepo) DeletePost(ctx context.Context, postID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, postID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func collectPosts(rows *sql.Rows) ([]domain.Post, error) {
	var out []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// requireRowAffected maps a zero-row update/delete to ErrNotFound so callers
// can tell a vanished row apart from a silent no-op.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
