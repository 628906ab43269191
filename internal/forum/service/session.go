package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/aussiebroadwan/forum/internal/forum/store"
	"github.com/aussiebroadwan/forum/pkg/sessionx"
)

// ErrAuthenticationRequired signals that a guarded operation was attempted
// with no valid session. The HTTP layer turns it into a redirect to the
// login page carrying the original path as a return target.
var ErrAuthenticationRequired = errors.New("authentication_required")

// DefaultSessionCookie is the cookie name carrying the auth session.
const DefaultSessionCookie = "__session"

// SessionService resolves the current identity from inbound requests and
// issues or destroys session cookies. Tokens are self-contained; only
// CurrentUser touches storage, and only to fetch the public projection.
type SessionService struct {
	Codec      *sessionx.Codec
	Store      store.Store
	CookieName string
	Secure     bool // mark cookies Secure (prod)
}

func (s *SessionService) cookieOpts() sessionx.CookieOptions {
	name := s.CookieName
	if name == "" {
		name = DefaultSessionCookie
	}
	return sessionx.CookieOptions{
		Name:   name,
		MaxAge: s.Codec.TTL(),
		Secure: s.Secure,
	}
}

// Login mints a session token for userID and attaches it to the response.
// It does not verify credentials; that happens in AuthService before this is
// called. The caller decides where to redirect afterwards.
func (s *SessionService) Login(w http.ResponseWriter, userID int64) error {
	token, err := s.Codec.Encode(userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessionx.Cookie(token, s.cookieOpts()))
	return nil
}

// Logout attaches an expired cookie so future requests decode to anonymous.
func (s *SessionService) Logout(w http.ResponseWriter) {
	http.SetCookie(w, sessionx.ExpiredCookie(s.cookieOpts()))
}

// CurrentUserID resolves the user id asserted by the request's session
// cookie without touching storage, so it is cheap enough to call on every
// request. Any decode failure reads as anonymous, never as an error.
func (s *SessionService) CurrentUserID(r *http.Request) (int64, bool) {
	token := sessionx.TokenFromRequest(r, s.cookieOpts().Name)
	return s.Codec.Decode(token)
}

// CurrentUser resolves the full public projection behind the session. A
// session whose user row no longer exists reads as anonymous: stale tokens
// are resolved lazily here rather than being proactively invalidated.
func (s *SessionService) CurrentUser(ctx context.Context, r *http.Request) (domain.User, bool) {
	userID, ok := s.CurrentUserID(r)
	if !ok {
		return domain.User{}, false
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, false
	}
	return user, true
}

// RequireUserID is CurrentUserID for routes that must not proceed
// anonymously: absence becomes ErrAuthenticationRequired instead of a nil
// identity.
func (s *SessionService) RequireUserID(r *http.Request) (int64, error) {
	userID, ok := s.CurrentUserID(r)
	if !ok {
		return 0, ErrAuthenticationRequired
	}
	return userID, nil
}

// RedirectIfAuthenticated reports whether the request already carries a
// valid session, used to keep logged-in users off the login and signup
// pages.
func (s *SessionService) RedirectIfAuthenticated(r *http.Request) bool {
	_, ok := s.CurrentUserID(r)
	return ok
}
