package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/forum/internal/forum/authz"
	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/aussiebroadwan/forum/internal/forum/store"
	"github.com/aussiebroadwan/forum/pkg/paginate"
	"github.com/aussiebroadwan/forum/pkg/slogx"
)

const (
	// ThreadPageSize is how many threads a subcategory listing shows per page.
	ThreadPageSize = 10
	// PostPageSize is how many posts a thread view shows per page.
	PostPageSize = 10
	// RecentThreadLimit caps the home page's recent-threads strip.
	RecentThreadLimit = 5
)

var (
	ErrTitleRequired   = errors.New("title_required")
	ErrContentRequired = errors.New("content_required")
)

// ForumService implements the forum's read aggregates and the guarded
// mutations on threads and posts. Every mutation runs the ownership check
// via authz before touching storage; the elevated flag is always threaded
// through explicitly from the caller.
type ForumService struct {
	Store store.Store
}

// HomeView is the front page: per-category overviews plus the newest threads
// across the whole forum.
type HomeView struct {
	Categories    []domain.CategoryOverview `json:"categories"`
	RecentThreads []domain.Thread           `json:"recent_threads"`
}

// CategoryView is a category plus its subcategories.
type CategoryView struct {
	Category      domain.Category      `json:"category"`
	Subcategories []domain.Subcategory `json:"subcategories"`
}

// ThreadListView is one page of a subcategory's threads.
type ThreadListView struct {
	Subcategory domain.Subcategory     `json:"subcategory"`
	Threads     []domain.ThreadSummary `json:"threads"`
	Window      paginate.Window        `json:"window"`
}

// ThreadView is a thread plus one page of its posts and the authors of
// everything shown.
type ThreadView struct {
	Thread  domain.Thread         `json:"thread"`
	Posts   []domain.Post         `json:"posts"`
	Window  paginate.Window       `json:"window"`
	Authors map[int64]domain.User `json:"authors"`
}

func (s *ForumService) Home(ctx context.Context) (HomeView, error) {
	categories, err := s.Store.Categories().ListCategories(ctx)
	if err != nil {
		return HomeView{}, err
	}

	overviews := make([]domain.CategoryOverview, 0, len(categories))
	for _, category := range categories {
		threadCount, err := s.Store.Threads().CountThreadsInCategory(ctx, category.ID)
		if err != nil {
			return HomeView{}, err
		}
		postCount, err := s.Store.Posts().CountPostsInCategory(ctx, category.ID)
		if err != nil {
			return HomeView{}, err
		}

		overview := domain.CategoryOverview{
			Category:    category,
			ThreadCount: threadCount,
			PostCount:   postCount,
		}

		latest, err := s.Store.Threads().LatestThreadInCategory(ctx, category.ID)
		switch {
		case err == nil:
			overview.LatestThread = &latest
		case errors.Is(err, store.ErrNotFound):
			// empty category
		default:
			return HomeView{}, err
		}

		overviews = append(overviews, overview)
	}

	recent, err := s.Store.Threads().ListRecentThreads(ctx, RecentThreadLimit)
	if err != nil {
		return HomeView{}, err
	}

	return HomeView{Categories: overviews, RecentThreads: recent}, nil
}

func (s *ForumService) Category(ctx context.Context, categoryID int64) (CategoryView, error) {
	category, err := s.Store.Categories().GetCategoryByID(ctx, categoryID)
	if err != nil {
		return CategoryView{}, err
	}

	subcategories, err := s.Store.Categories().ListSubcategories(ctx, categoryID)
	if err != nil {
		return CategoryView{}, err
	}

	return CategoryView{Category: category, Subcategories: subcategories}, nil
}

// SubcategoryThreads returns one page of a subcategory's threads, newest
// first, each decorated with its reply count and latest reply.
func (s *ForumService) SubcategoryThreads(ctx context.Context, subcategoryID int64, page int) (ThreadListView, error) {
	subcategory, err := s.Store.Categories().GetSubcategoryByID(ctx, subcategoryID)
	if err != nil {
		return ThreadListView{}, err
	}

	total, err := s.Store.Threads().CountThreads(ctx, subcategoryID)
	if err != nil {
		return ThreadListView{}, err
	}

	window := paginate.Compute(total, ThreadPageSize, page)

	threads, err := s.Store.Threads().ListThreadsPage(ctx, subcategoryID, window.Skip, window.PageSize)
	if err != nil {
		return ThreadListView{}, err
	}

	summaries := make([]domain.ThreadSummary, 0, len(threads))
	for _, thread := range threads {
		postCount, err := s.Store.Posts().CountPosts(ctx, thread.ID)
		if err != nil {
			return ThreadListView{}, err
		}

		summary := domain.ThreadSummary{Thread: thread, PostCount: postCount}

		latest, err := s.Store.Posts().LatestPost(ctx, thread.ID)
		switch {
		case err == nil:
			summary.LatestPost = &latest
		case errors.Is(err, store.ErrNotFound):
			// no replies yet
		default:
			return ThreadListView{}, err
		}

		summaries = append(summaries, summary)
	}

	return ThreadListView{Subcategory: subcategory, Threads: summaries, Window: window}, nil
}

// ThreadPage returns a thread plus one page of its posts in reading order.
func (s *ForumService) ThreadPage(ctx context.Context, threadID int64, page int) (ThreadView, error) {
	thread, err := s.Store.Threads().GetThreadByID(ctx, threadID)
	if err != nil {
		return ThreadView{}, err
	}

	total, err := s.Store.Posts().CountPosts(ctx, threadID)
	if err != nil {
		return ThreadView{}, err
	}

	window := paginate.Compute(total, PostPageSize, page)

	posts, err := s.Store.Posts().ListPostsPage(ctx, threadID, window.Skip, window.PageSize)
	if err != nil {
		return ThreadView{}, err
	}

	authors, err := s.resolveAuthors(ctx, thread, posts)
	if err != nil {
		return ThreadView{}, err
	}

	return ThreadView{Thread: thread, Posts: posts, Window: window, Authors: authors}, nil
}

// resolveAuthors fetches the public projection of every distinct author on
// the page. Authors whose accounts were removed are simply absent from the
// map; callers render them as deleted.
func (s *ForumService) resolveAuthors(ctx context.Context, thread domain.Thread, posts []domain.Post) (map[int64]domain.User, error) {
	ids := map[int64]struct{}{thread.AuthorID: {}}
	for _, post := range posts {
		ids[post.AuthorID] = struct{}{}
	}

	authors := make(map[int64]domain.User, len(ids))
	for id := range ids {
		user, err := s.Store.Users().GetUserByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		authors[id] = user
	}
	return authors, nil
}

func (s *ForumService) CreateThread(ctx context.Context, userID, subcategoryID int64, title, content string) (domain.Thread, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return domain.Thread{}, ErrTitleRequired
	}
	if content == "" {
		return domain.Thread{}, ErrContentRequired
	}

	// Surface a not-found on the parent before inserting
	if _, err := s.Store.Categories().GetSubcategoryByID(ctx, subcategoryID); err != nil {
		return domain.Thread{}, err
	}

	thread, err := s.Store.Threads().CreateThread(ctx, domain.Thread{
		SubcategoryID: subcategoryID,
		AuthorID:      userID,
		Title:         title,
		Content:       content,
	})
	if err != nil {
		return domain.Thread{}, err
	}

	slogx.FromContext(ctx).Info("thread created", "thread_id", thread.ID, "user_id", userID)
	return thread, nil
}

func (s *ForumService) UpdateThread(ctx context.Context, userID, threadID int64, title, content string, elevated bool) error {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return ErrTitleRequired
	}
	if content == "" {
		return ErrContentRequired
	}

	thread, err := s.Store.Threads().GetThreadByID(ctx, threadID)
	if err != nil {
		return err
	}

	if err := authz.AssertModify(userID, thread.AuthorID, elevated); err != nil {
		return err
	}

	return s.Store.Threads().UpdateThreadContent(ctx, threadID, title, content)
}

func (s *ForumService) DeleteThread(ctx context.Context, userID, threadID int64, elevated bool) error {
	// Load-check-delete inside one transaction so the ownership decision and
	// the delete see the same row.
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		thread, err := tx.Threads().GetThreadByID(ctx, threadID)
		if err != nil {
			return err
		}

		if err := authz.AssertModify(userID, thread.AuthorID, elevated); err != nil {
			return err
		}

		if err := tx.Threads().DeleteThread(ctx, threadID); err != nil {
			return err
		}

		slogx.FromContext(ctx).Info("thread deleted", "thread_id", threadID, "user_id", userID)
		return nil
	})
}

func (s *ForumService) CreatePost(ctx context.Context, userID, threadID int64, content string) (domain.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Post{}, ErrContentRequired
	}

	if _, err := s.Store.Threads().GetThreadByID(ctx, threadID); err != nil {
		return domain.Post{}, err
	}

	post, err := s.Store.Posts().CreatePost(ctx, domain.Post{
		ThreadID: threadID,
		AuthorID: userID,
		Content:  content,
	})
	if err != nil {
		return domain.Post{}, err
	}

	slogx.FromContext(ctx).Info("post created", "post_id", post.ID, "thread_id", threadID, "user_id", userID)
	return post, nil
}

func (s *ForumService) UpdatePost(ctx context.Context, userID, postID int64, content string, elevated bool) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrContentRequired
	}

	post, err := s.Store.Posts().GetPostByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := authz.AssertModify(userID, post.AuthorID, elevated); err != nil {
		return err
	}

	return s.Store.Posts().UpdatePostContent(ctx, postID, content)
}

func (s *ForumService) DeletePost(ctx context.Context, userID, postID int64, elevated bool) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		post, err := tx.Posts().GetPostByID(ctx, postID)
		if err != nil {
			return err
		}

		if err := authz.AssertModify(userID, post.AuthorID, elevated); err != nil {
			return err
		}

		return tx.Posts().DeletePost(ctx, postID)
	})
}
