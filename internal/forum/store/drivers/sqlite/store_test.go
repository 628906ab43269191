package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/aussiebroadwan/forum/internal/forum/store"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(filepath.Join(t.TempDir(), "forum.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestPragmaDSN(t *testing.T) {
	const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	t.Run("plain dsn gets a query string", func(t *testing.T) {
		require.Equal(t, "forum.db?"+pragmas, pragmaDSN("forum.db"))
	})

	t.Run("existing query string is extended", func(t *testing.T) {
		require.Equal(t, "file:forum.db?mode=rwc&"+pragmas, pragmaDSN("file:forum.db?mode=rwc"))
	})
}

// Pragmas apply per sqlite connection, so the delete cascade must hold on
// connections opened after the first one, not just on whichever connection
// happened to run first.
func TestDeleteThreadCascadesOnFreshConnections(t *testing.T) {
	ctx := context.Background()
	st := newFileStore(t)

	user, err := st.Users().CreateUser(ctx, "alice", "not-a-real-hash")
	require.NoError(t, err)

	category, err := st.Categories().CreateCategory(ctx, "General", "")
	require.NoError(t, err)

	subcategory, err := st.Categories().CreateSubcategory(ctx, category.ID, "Off Topic", "")
	require.NoError(t, err)

	thread, err := st.Threads().CreateThread(ctx, domain.Thread{
		SubcategoryID: subcategory.ID,
		AuthorID:      user.ID,
		Title:         "Thread",
		Content:       "body",
	})
	require.NoError(t, err)

	post, err := st.Posts().CreatePost(ctx, domain.Post{
		ThreadID: thread.ID,
		AuthorID: user.ID,
		Content:  "reply",
	})
	require.NoError(t, err)

	// Drop every idle connection so the delete runs on a brand new one
	st.db.SetMaxIdleConns(0)

	require.NoError(t, st.Threads().DeleteThread(ctx, thread.ID))

	_, err = st.Posts().GetPostByID(ctx, post.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTxScopedStoreRejectsRootOperations(t *testing.T) {
	ctx := context.Background()
	st := newFileStore(t)

	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.ErrorIs(t, tx.ApplyMigrations(), store.ErrTxUnsupported)

		_, err := tx.Tx(ctx)
		require.ErrorIs(t, err, store.ErrTxUnsupported)

		require.ErrorIs(t, tx.WithTx(ctx, func(store.Tx) error { return nil }), store.ErrTxUnsupported)
		return nil
	})
	require.NoError(t, err)
}
