package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/aussiebroadwan/forum/internal/forum/authz"
	"github.com/aussiebroadwan/forum/internal/forum/store"
	"github.com/stretchr/testify/require"
)

func TestCreateThread(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ForumService{Store: st}

	author := seedUser(t, st, "alice")
	_, subcategory := seedSubcategoryTree(t, st)

	t.Run("creates a thread owned by the author", func(t *testing.T) {
		thread, err := svc.CreateThread(ctx, author.ID, subcategory.ID, "First thread", "Hello world")
		require.NoError(t, err)
		require.Positive(t, thread.ID)
		require.Equal(t, author.ID, thread.AuthorID)
		require.Equal(t, subcategory.ID, thread.SubcategoryID)
	})

	t.Run("trims title and content", func(t *testing.T) {
		thread, err := svc.CreateThread(ctx, author.ID, subcategory.ID, "  padded  ", "  body  ")
		require.NoError(t, err)
		require.Equal(t, "padded", thread.Title)
		require.Equal(t, "body", thread.Content)
	})

	t.Run("rejects blank title", func(t *testing.T) {
		_, err := svc.CreateThread(ctx, author.ID, subcategory.ID, "   ", "body")
		require.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("rejects blank content", func(t *testing.T) {
		_, err := svc.CreateThread(ctx, author.ID, subcategory.ID, "title", "   ")
		require.ErrorIs(t, err, ErrContentRequired)
	})

	t.Run("unknown subcategory is not found", func(t *testing.T) {
		_, err := svc.CreateThread(ctx, author.ID, subcategory.ID+9000, "title", "body")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestThreadOwnership(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ForumService{Store: st}

	owner := seedUser(t, st, "alice")
	other := seedUser(t, st, "mallory")
	_, subcategory := seedSubcategoryTree(t, st)

	thread, err := svc.CreateThread(ctx, owner.ID, subcategory.ID, "Owned thread", "body")
	require.NoError(t, err)

	t.Run("owner can edit", func(t *testing.T) {
		require.NoError(t, svc.UpdateThread(ctx, owner.ID, thread.ID, "Edited", "new body", false))

		got, err := st.Threads().GetThreadByID(ctx, thread.ID)
		require.NoError(t, err)
		require.Equal(t, "Edited", got.Title)
	})

	t.Run("another user cannot edit", func(t *testing.T) {
		err := svc.UpdateThread(ctx, other.ID, thread.ID, "Hijacked", "body", false)
		require.ErrorIs(t, err, authz.ErrPermissionDenied)
	})

	t.Run("anonymous cannot edit", func(t *testing.T) {
		err := svc.UpdateThread(ctx, authz.Anonymous, thread.ID, "Hijacked", "body", false)
		require.ErrorIs(t, err, authz.ErrPermissionDenied)
	})

	t.Run("another user cannot delete", func(t *testing.T) {
		err := svc.DeleteThread(ctx, other.ID, thread.ID, false)
		require.ErrorIs(t, err, authz.ErrPermissionDenied)

		_, err = st.Threads().GetThreadByID(ctx, thread.ID)
		require.NoError(t, err)
	})

	t.Run("elevated caller overrides ownership", func(t *testing.T) {
		require.NoError(t, svc.UpdateThread(ctx, other.ID, thread.ID, "Moderated", "body", true))
		require.NoError(t, svc.DeleteThread(ctx, other.ID, thread.ID, true))

		_, err := st.Threads().GetThreadByID(ctx, thread.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestDeleteThreadCascadesPosts(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ForumService{Store: st}

	owner := seedUser(t, st, "alice")
	_, subcategory := seedSubcategoryTree(t, st)

	thread, err := svc.CreateThread(ctx, owner.ID, subcategory.ID, "Thread", "body")
	require.NoError(t, err)

	post, err := svc.CreatePost(ctx, owner.ID, thread.ID, "a reply")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteThread(ctx, owner.ID, thread.ID, false))

	_, err = st.Posts().GetPostByID(ctx, post.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostOwnership(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ForumService{Store: st}

	owner := seedUser(t, st, "alice")
	other := seedUser(t, st, "mallory")
	_, subcategory := seedSubcategoryTree(t, st)

	thread, err := svc.CreateThread(ctx, owner.ID, subcategory.ID, "Thread", "body")
	require.NoError(t, err)

	post, err := svc.CreatePost(ctx, owner.ID, thread.ID, "original")
	require.NoError(t, err)

	t.Run("owner can edit", func(t *testing.T) {
		require.NoError(t, svc.UpdatePost(ctx, owner.ID, post.ID, "edited", false))

		got, err := st.Posts().GetPostByID(ctx, post.ID)
		require.NoError(t, err)
		require.Equal(t, "edited", got.Content)
	})

	t.Run("another user cannot edit or delete", func(t *testing.T) {
		require.ErrorIs(t, svc.UpdatePost(ctx, other.ID, post.ID, "hijacked", false), authz.ErrPermissionDenied)
		require.ErrorIs(t, svc.DeletePost(ctx, other.ID, post.ID, false), authz.ErrPermissionDenied)
	})

	t.Run("blank content rejected before the ownership check", func(t *testing.T) {
		require.ErrorIs(t, svc.UpdatePost(ctx, other.ID, post.ID, "   ", false), ErrContentRequired)
	})

	t.Run("owner can delete", func(t *testing.T) {
		require.NoError(t, svc.DeletePost(ctx, owner.ID, post.ID, false))

		_, err := st.Posts().GetPostByID(ctx, post.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestSubcategoryThreads(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ForumService{Store: st}

	author := seedUser(t, st, "alice")
	_, subcategory := seedSubcategoryTree(t, st)

	const totalThreads = 12
	for i := 1; i <= totalThreads; i++ {
		_, err := svc.CreateThread(ctx, author.ID, subcategory.ID, fmt.Sprintf("Thread %d", i), "body")
		require.NoError(t, err)
	}

	t.Run("first page is full and newest first", func(t *testing.T) {
		view, err := svc.SubcategoryThreads(ctx, subcategory.ID, 1)
		require.NoError(t, err)
		require.Equal(t, subcategory.ID, view.Subcategory.ID)
		require.Len(t, view.Threads, ThreadPageSize)
		require.Equal(t, 1, view.Window.Page)
		require.Equal(t, 2, view.Window.TotalPages)
		require.Equal(t, totalThreads, view.Window.TotalItems)
		require.Equal(t, "Thread 12", view.Threads[0].Thread.Title)
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		view, err := svc.SubcategoryThreads(ctx, subcategory.ID, 2)
		require.NoError(t, err)
		require.Len(t, view.Threads, totalThreads-ThreadPageSize)
		require.Equal(t, "Thread 1", view.Threads[len(view.Threads)-1].Thread.Title)
	})

	t.Run("out-of-range page clamps to the last page", func(t *testing.T) {
		view, err := svc.SubcategoryThreads(ctx, subcategory.ID, 99)
		require.NoError(t, err)
		require.Equal(t, 2, view.Window.Page)
		require.Len(t, view.Threads, totalThreads-ThreadPageSize)
	})

	t.Run("page zero clamps to the first page", func(t *testing.T) {
		view, err := svc.SubcategoryThreads(ctx, subcategory.ID, 0)
		require.NoError(t, err)
		require.Equal(t, 1, view.Window.Page)
	})

	t.Run("reply counts and latest reply decorate each row", func(t *testing.T) {
		view, err := svc.SubcategoryThreads(ctx, subcategory.ID, 1)
		require.NoError(t, err)

		newest := view.Threads[0]
		require.Zero(t, newest.PostCount)
		require.Nil(t, newest.LatestPost)

		_, err = svc.CreatePost(ctx, author.ID, newest.Thread.ID, "a reply")
		require.NoError(t, err)

		view, err = svc.SubcategoryThreads(ctx, subcategory.ID, 1)
		require.NoError(t, err)
		require.Equal(t, 1, view.Threads[0].PostCount)
		require.NotNil(t, view.Threads[0].LatestPost)
		require.Equal(t, "a reply", view.Threads[0].LatestPost.Content)
	})

	t.Run("unknown subcategory is not found", func(t *testing.T) {
		_, err := svc.SubcategoryThreads(ctx, subcategory.ID+9000, 1)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestThreadPage(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ForumService{Store: st}

	author := seedUser(t, st, "alice")
	replier := seedUser(t, st, "bob")
	_, subcategory := seedSubcategoryTree(t, st)

	thread, err := svc.CreateThread(ctx, author.ID, subcategory.ID, "Long thread", "opening post")
	require.NoError(t, err)

	const totalPosts = 15
	for i := 1; i <= totalPosts; i++ {
		_, err := svc.CreatePost(ctx, replier.ID, thread.ID, fmt.Sprintf("reply %d", i))
		require.NoError(t, err)
	}

	t.Run("posts come back in reading order", func(t *testing.T) {
		view, err := svc.ThreadPage(ctx, thread.ID, 1)
		require.NoError(t, err)
		require.Equal(t, thread.ID, view.Thread.ID)
		require.Len(t, view.Posts, PostPageSize)
		require.Equal(t, "reply 1", view.Posts[0].Content)
		require.Equal(t, fmt.Sprintf("reply %d", PostPageSize), view.Posts[len(view.Posts)-1].Content)
	})

	t.Run("second page continues where the first left off", func(t *testing.T) {
		view, err := svc.ThreadPage(ctx, thread.ID, 2)
		require.NoError(t, err)
		require.Len(t, view.Posts, totalPosts-PostPageSize)
		require.Equal(t, fmt.Sprintf("reply %d", PostPageSize+1), view.Posts[0].Content)
	})

	t.Run("authors map covers the thread author and every page author", func(t *testing.T) {
		view, err := svc.ThreadPage(ctx, thread.ID, 1)
		require.NoError(t, err)
		require.Contains(t, view.Authors, author.ID)
		require.Contains(t, view.Authors, replier.ID)
		require.Equal(t, "alice", view.Authors[author.ID].Username)
	})

	t.Run("unknown thread is not found", func(t *testing.T) {
		_, err := svc.ThreadPage(ctx, thread.ID+9000, 1)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestHome(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ForumService{Store: st}

	author := seedUser(t, st, "alice")

	general, err := st.Categories().CreateCategory(ctx, "General", "")
	require.NoError(t, err)
	offTopic, err := st.Categories().CreateSubcategory(ctx, general.ID, "Off Topic", "")
	require.NoError(t, err)

	empty, err := st.Categories().CreateCategory(ctx, "Support", "")
	require.NoError(t, err)

	const totalThreads = 7
	var lastTitle string
	for i := 1; i <= totalThreads; i++ {
		lastTitle = fmt.Sprintf("Thread %d", i)
		thread, err := svc.CreateThread(ctx, author.ID, offTopic.ID, lastTitle, "body")
		require.NoError(t, err)

		_, err = svc.CreatePost(ctx, author.ID, thread.ID, "reply")
		require.NoError(t, err)
	}

	view, err := svc.Home(ctx)
	require.NoError(t, err)
	require.Len(t, view.Categories, 2)

	byID := map[int64]int{}
	for i, overview := range view.Categories {
		byID[overview.Category.ID] = i
	}

	populated := view.Categories[byID[general.ID]]
	require.Equal(t, totalThreads, populated.ThreadCount)
	require.Equal(t, totalThreads, populated.PostCount)
	require.NotNil(t, populated.LatestThread)
	require.Equal(t, lastTitle, populated.LatestThread.Title)

	emptied := view.Categories[byID[empty.ID]]
	require.Zero(t, emptied.ThreadCount)
	require.Zero(t, emptied.PostCount)
	require.Nil(t, emptied.LatestThread)

	require.Len(t, view.RecentThreads, RecentThreadLimit)
	require.Equal(t, lastTitle, view.RecentThreads[0].Title)
}

func TestBootstrapSeed(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &BootstrapService{Store: st}

	fresh, err := svc.IsFresh(ctx)
	require.NoError(t, err)
	require.True(t, fresh)

	require.NoError(t, svc.Seed(ctx))

	categories, err := st.Categories().ListCategories(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	subcategories, err := st.Categories().ListSubcategories(ctx, categories[0].ID)
	require.NoError(t, err)
	require.NotEmpty(t, subcategories)

	// Second run must not duplicate anything
	require.NoError(t, svc.Seed(ctx))

	again, err := st.Categories().ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, again, len(categories))

	t.Run("a populated database is never reseeded", func(t *testing.T) {
		other := newTestStore(t)
		seedUser(t, other, "alice")

		svc := &BootstrapService{Store: other}
		require.NoError(t, svc.Seed(ctx))

		categories, err := other.Categories().ListCategories(ctx)
		require.NoError(t, err)
		require.Empty(t, categories)
	})
}
