package sessionx

import (
	"net/http"
	"time"
)

// CookieOptions control the transport attributes of a session cookie. The
// defaults match what the login flow needs: HTTP-only, same-site lax, whole
// application path.
type CookieOptions struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// Cookie builds the Set-Cookie value carrying a freshly minted token.
func Cookie(token string, opts CookieOptions) *http.Cookie {
	return &http.Cookie{
		Name:     opts.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie builds a Set-Cookie value that makes the client drop the
// session. Future requests then decode to anonymous.
func ExpiredCookie(opts CookieOptions) *http.Cookie {
	return &http.Cookie{
		Name:     opts.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// TokenFromRequest extracts the raw session token from the request, or ""
// when the cookie is absent.
func TokenFromRequest(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
