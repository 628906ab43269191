package domain

import "time"

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Subcategory struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Thread struct {
	ID            int64     `json:"id"`
	SubcategoryID int64     `json:"subcategory_id"`
	AuthorID      int64     `json:"author_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Post struct {
	ID        int64     `json:"id"`
	ThreadID  int64     `json:"thread_id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryOverview is what the home listing shows per category: raw counts
// plus the most recently created thread, if any.
type CategoryOverview struct {
	Category     Category `json:"category"`
	ThreadCount  int      `json:"thread_count"`
	PostCount    int      `json:"post_count"`
	LatestThread *Thread  `json:"latest_thread,omitempty"`
}

// ThreadSummary decorates a thread row for subcategory listings with its
// reply count and latest reply.
type ThreadSummary struct {
	Thread     Thread `json:"thread"`
	PostCount  int    `json:"post_count"`
	LatestPost *Post  `json:"latest_post,omitempty"`
}
