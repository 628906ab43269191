package http

import (
	"net/http"

	"github.com/aussiebroadwan/forum/internal/forum/service"
	"github.com/aussiebroadwan/forum/pkg/httpx"
	"github.com/aussiebroadwan/forum/pkg/slogx"
)

// SignupHandler serves POST /v1/auth/signup.
// Accepts application/x-www-form-urlencoded: username, password1, password2.
// On success it issues a session cookie and redirects to the forum root.
type SignupHandler struct {
	Auth     *service.AuthService
	Sessions *service.SessionService
}

func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// An authenticated user has no business on the signup form
	if h.Sessions.RedirectIfAuthenticated(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if !parseForm(w, r) {
		return
	}

	password1 := r.PostForm.Get("password1")
	password2 := r.PostForm.Get("password2")
	if password1 != password2 {
		httpx.ErrInvalidRequest.WithDescription("passwords do not match").WriteError(w)
		return
	}

	user, err := h.Auth.Signup(ctx, r.PostForm.Get("username"), password1)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.Sessions.Login(w, user.ID); err != nil {
		slogx.FromContext(ctx).Error("failed to issue session", "user_id", user.ID, "err", err)
		httpx.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginHandler serves POST /v1/auth/login.
// Accepts application/x-www-form-urlencoded: username, password. An optional
// redirect_to query parameter carries the page to return to; off-site
// targets are discarded.
type LoginHandler struct {
	Auth     *service.AuthService
	Sessions *service.SessionService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Sessions.RedirectIfAuthenticated(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if !parseForm(w, r) {
		return
	}

	userID, err := h.Auth.Authenticate(ctx, r.PostForm.Get("username"), r.PostForm.Get("password"))
	if err != nil {
		// No cookie is issued on failure, and the response does not reveal
		// whether the username exists
		writeServiceError(w, r, err)
		return
	}

	if err := h.Sessions.Login(w, userID); err != nil {
		slogx.FromContext(ctx).Error("failed to issue session", "user_id", userID, "err", err)
		httpx.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	http.Redirect(w, r, safeRedirect(r.URL.Query().Get("redirect_to")), http.StatusSeeOther)
}

// LogoutHandler serves POST /v1/auth/logout. It expires the session cookie
// client-side and sends the user to the login page. Logging out while
// anonymous is a no-op rather than an error.
type LogoutHandler struct {
	Sessions *service.SessionService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(w)
	httpx.NoCache(w)
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

// MeHandler serves GET /v1/me: the public projection of the current user.
type MeHandler struct {
	Sessions *service.SessionService
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Sessions.CurrentUser(r.Context(), r)
	if !ok {
		httpx.ErrAuthenticationRequired.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, user)
}
