package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/forum/internal/forum/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // nothing to close; outer DB stays open

// Ping is a no-op for transactions. The connection is already established
// when the transaction is created.
func (t *txStore) Ping(ctx context.Context) error { return nil }

// Migrations and nested transactions only exist on the root store; on a Tx
// they fail with store.ErrTxUnsupported. Nesting could be emulated with
// SAVEPOINT if a caller ever needs it.
func (t *txStore) ApplyMigrations() error { return store.ErrTxUnsupported }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, store.ErrTxUnsupported
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return store.ErrTxUnsupported
}

func (t *txStore) Users() store.Users           { return &usersRepo{db: t.tx} }
func (t *txStore) Categories() store.Categories { return &categoriesRepo{db: t.tx} }
func (t *txStore) Threads() store.Threads       { return &threadsRepo{db: t.tx} }
func (t *txStore) Posts() store.Posts           { return &postsRepo{db: t.tx} }
