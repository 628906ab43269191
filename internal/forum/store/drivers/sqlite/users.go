package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetCredentialByUsername(ctx context.Context, username string) (domain.Credential, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM users WHERE username = ?`, username)

	var c domain.Credential
	if err := row.Scan(&c.UserID, &c.PasswordHash); err != nil {
		return domain.Credential{}, mapNotFound(err)
	}
	return c, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		username, passwordHash, now, now)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}

	return domain.User{
		ID:        id,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
