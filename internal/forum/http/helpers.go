package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/forum/internal/forum/authz"
	"github.com/aussiebroadwan/forum/internal/forum/service"
	"github.com/aussiebroadwan/forum/internal/forum/store"
	"github.com/aussiebroadwan/forum/pkg/httpx"
	"github.com/aussiebroadwan/forum/pkg/slogx"
)

// LoginPath is where anonymous users get sent when a guarded route requires
// a session. The original path rides along so login can bounce them back.
const LoginPath = "/login"

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// parseForm enforces the form content type and parses the body. Returns
// false after writing the error response.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		httpx.ErrInvalidRequest.WithDescription("expected application/x-www-form-urlencoded").WriteError(w)
		return false
	}
	if err := r.ParseForm(); err != nil {
		httpx.ErrInvalidRequest.WithDescription("failed to parse form body").WriteError(w)
		return false
	}
	return true
}

// redirectToLogin sends an anonymous request to the login page, carrying the
// original path so the login flow can return the user afterwards.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := LoginPath + "?redirect_to=" + url.QueryEscape(r.URL.Path)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeRedirect keeps redirect targets inside the application. Anything that
// could leave the site falls back to the forum root: absolute URLs,
// protocol-relative paths, and any target carrying a backslash, which
// browsers normalize to a forward slash (so "/\evil" is "//evil" to them).
func safeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "//") || strings.ContainsRune(target, '\\') {
		return "/"
	}
	return target
}

// writeServiceError maps service and store failures onto API error
// responses. Authentication absence redirects rather than erroring; see the
// failure semantics of the session service.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrAuthenticationRequired):
		redirectToLogin(w, r)
	case errors.Is(err, authz.ErrPermissionDenied):
		httpx.ErrPermissionDenied.WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		httpx.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrUsernameTaken):
		httpx.ErrUsernameTaken.WriteError(w)
	case errors.Is(err, service.ErrUsernameRequired):
		httpx.ErrInvalidRequest.WithDescription("username is required").WriteError(w)
	case errors.Is(err, service.ErrPasswordRequired):
		httpx.ErrInvalidRequest.WithDescription("password is required").WriteError(w)
	case errors.Is(err, service.ErrTitleRequired):
		httpx.ErrInvalidRequest.WithDescription("title is required").WriteError(w)
	case errors.Is(err, service.ErrContentRequired):
		httpx.ErrInvalidRequest.WithDescription("content is required").WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.ErrServerError.WriteError(w)
	}
}
