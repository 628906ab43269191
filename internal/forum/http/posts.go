package http

import (
	"net/http"

	"github.com/aussiebroadwan/forum/internal/forum/service"
	"github.com/aussiebroadwan/forum/pkg/httpx"
)

// PostWriteHandler owns the mutating post endpoints; same session and
// ownership rules as ThreadWriteHandler.
type PostWriteHandler struct {
	Forum    *service.ForumService
	Sessions *service.SessionService
}

// HandleCreate serves POST /v1/threads/{id}/posts: reply to a thread.
func (h *PostWriteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := h.Sessions.RequireUserID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	threadID, ok := pathID(r, "id")
	if !ok {
		httpx.ErrNotFound.WriteError(w)
		return
	}

	if !parseForm(w, r) {
		return
	}

	post, err := h.Forum.CreatePost(r.Context(), userID, threadID, r.PostForm.Get("content"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, post)
}

// HandleUpdate serves POST /v1/posts/{id}.
func (h *PostWriteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, err := h.Sessions.RequireUserID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	postID, ok := pathID(r, "id")
	if !ok {
		httpx.ErrNotFound.WriteError(w)
		return
	}

	if !parseForm(w, r) {
		return
	}

	err = h.Forum.UpdatePost(r.Context(), userID, postID, r.PostForm.Get("content"), false)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete serves DELETE /v1/posts/{id}.
func (h *PostWriteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, err := h.Sessions.RequireUserID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	postID, ok := pathID(r, "id")
	if !ok {
		httpx.ErrNotFound.WriteError(w)
		return
	}

	if err := h.Forum.DeletePost(r.Context(), userID, postID, false); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
