package http

import (
	"net/http"

	"github.com/aussiebroadwan/forum/internal/forum/service"
	"github.com/aussiebroadwan/forum/pkg/httpx"
	"github.com/aussiebroadwan/forum/pkg/paginate"
)

// HomeHandler serves GET /v1/home: category overviews plus recent threads.
type HomeHandler struct {
	Forum *service.ForumService
}

func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	view, err := h.Forum.Home(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

// CategoryHandler serves GET /v1/categories/{id}: a category and its
// subcategories.
type CategoryHandler struct {
	Forum *service.ForumService
}

func (h *CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.ErrNotFound.WriteError(w)
		return
	}

	view, err := h.Forum.Category(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

// ThreadListHandler serves GET /v1/subcategories/{id}/threads?page=N.
type ThreadListHandler struct {
	Forum *service.ForumService
}

func (h *ThreadListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.ErrNotFound.WriteError(w)
		return
	}

	page := paginate.ParsePage(r.URL.Query().Get("page"))
	view, err := h.Forum.SubcategoryThreads(r.Context(), id, page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

// ThreadHandler serves GET /v1/threads/{id}?page=N: the thread and one page
// of its posts.
type ThreadHandler struct {
	Forum *service.ForumService
}

func (h *ThreadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.ErrNotFound.WriteError(w)
		return
	}

	page := paginate.ParsePage(r.URL.Query().Get("page"))
	view, err := h.Forum.ThreadPage(r.Context(), id, page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}
