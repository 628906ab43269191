package domain

import "time"

// User is the public projection of an account. It deliberately carries no
// secret material; handlers and templates may serialize it as-is.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Credential pairs a user id with its password hash. It only travels between
// the users store and the auth service during login; it never reaches the
// HTTP layer.
type Credential struct {
	UserID       int64
	PasswordHash string // argon2id PHC encoded
}
