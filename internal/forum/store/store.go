package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrTxUnsupported is returned by operations that only make sense on the
	// root store (migrations, starting another transaction) when called on a
	// Tx-scoped store.
	ErrTxUnsupported = errors.New("store: operation not supported inside a transaction")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so services depend on a narrow contract rather than a
// database handle.
type Store interface {
	Users() Users
	Categories() Categories
	Threads() Threads
	Posts() Posts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns the public projection of a user. The password hash
	// is never part of the result.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetCredentialByUsername returns the id and password hash for login.
	// Only the auth service may call this.
	GetCredentialByUsername(ctx context.Context, username string) (domain.Credential, error)

	// CreateUser inserts a new user and returns the stored row. Returns
	// ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Categories interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (domain.Category, error)

	// ListSubcategories returns the subcategories of a category ordered by name.
	ListSubcategories(ctx context.Context, categoryID int64) ([]domain.Subcategory, error)
	GetSubcategoryByID(ctx context.Context, id int64) (domain.Subcategory, error)

	// CreateCategory inserts a new category. Returns ErrAlreadyExists when the
	// name is taken.
	CreateCategory(ctx context.Context, name, description string) (domain.Category, error)

	// CreateSubcategory inserts a new subcategory under a category.
	CreateSubcategory(ctx context.Context, categoryID int64, name, description string) (domain.Subcategory, error)
}

type Threads interface {
	GetThreadByID(ctx context.Context, id int64) (domain.Thread, error)

	// CountThreads returns the number of threads in a subcategory.
	CountThreads(ctx context.Context, subcategoryID int64) (int, error)

	// ListThreadsPage returns a window of threads in a subcategory ordered by
	// creation date (newest first). skip/take come from pkg/paginate.
	ListThreadsPage(ctx context.Context, subcategoryID int64, skip, take int) ([]domain.Thread, error)

	// CountThreadsInCategory counts threads across all subcategories of a category.
	CountThreadsInCategory(ctx context.Context, categoryID int64) (int, error)

	// LatestThreadInCategory returns the most recently created thread in a
	// category, or ErrNotFound when the category has none.
	LatestThreadInCategory(ctx context.Context, categoryID int64) (domain.Thread, error)

	// ListRecentThreads returns the newest threads across the whole forum.
	ListRecentThreads(ctx context.Context, limit int) ([]domain.Thread, error)

	CreateThread(ctx context.Context, t domain.Thread) (domain.Thread, error)
	UpdateThreadContent(ctx context.Context, threadID int64, title, content string) error

	// DeleteThread removes the thread; posts cascade per schema.
	DeleteThread(ctx context.Context, threadID int64) error
}

type Posts interface {
	GetPostByID(ctx context.Context, id int64) (domain.Post, error)

	// CountPosts returns the number of posts in a thread.
	CountPosts(ctx context.Context, threadID int64) (int, error)

	// ListPostsPage returns a window of posts in a thread ordered by creation
	// date (oldest first, forum reading order).
	ListPostsPage(ctx context.Context, threadID int64, skip, take int) ([]domain.Post, error)

	// CountPostsInCategory counts posts across all threads of a category.
	CountPostsInCategory(ctx context.Context, categoryID int64) (int, error)

	// LatestPost returns the most recent post in a thread, or ErrNotFound.
	LatestPost(ctx context.Context, threadID int64) (domain.Post, error)

	CreatePost(ctx context.Context, p domain.Post) (domain.Post, error)
	UpdatePostContent(ctx context.Context, postID int64, content string) error
	DeletePost(ctx context.Context, postID int64) error
}
