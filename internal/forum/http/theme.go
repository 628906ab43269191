package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/forum/pkg/httpx"
	"github.com/aussiebroadwan/forum/pkg/sessionx"
)

// ThemeTTL is deliberately long: a UI preference, unlike an auth session,
// should survive until the user changes it.
const ThemeTTL = 365 * 24 * time.Hour

// DefaultThemeCookie is the cookie name carrying the UI theme preference.
const DefaultThemeCookie = "theme"

var validThemes = map[string]struct{}{
	"light":  {},
	"dark":   {},
	"system": {},
}

// ThemeService stores the UI theme preference in its own signed cookie. It
// reuses the session codec so a tampered value degrades to the default
// theme instead of being trusted.
type ThemeService struct {
	Codec  *sessionx.Codec
	Secure bool
}

func (s *ThemeService) cookieOpts() sessionx.CookieOptions {
	return sessionx.CookieOptions{
		Name:   DefaultThemeCookie,
		MaxAge: ThemeTTL,
		Secure: s.Secure,
	}
}

// Set signs the theme value into the preference cookie.
func (s *ThemeService) Set(w http.ResponseWriter, theme string) error {
	token, err := s.Codec.EncodeSubject(theme)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessionx.Cookie(token, s.cookieOpts()))
	return nil
}

// Get returns the stored theme, or "system" when absent or unverifiable.
func (s *ThemeService) Get(r *http.Request) string {
	token := sessionx.TokenFromRequest(r, DefaultThemeCookie)
	theme, ok := s.Codec.DecodeSubject(token)
	if !ok {
		return "system"
	}
	if _, valid := validThemes[theme]; !valid {
		return "system"
	}
	return theme
}

// ThemeHandler serves POST /v1/theme with form field theme=light|dark|system.
type ThemeHandler struct {
	Themes *ThemeService
}

func (h *ThemeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	theme := r.PostForm.Get("theme")
	if _, ok := validThemes[theme]; !ok {
		httpx.ErrInvalidRequest.WithDescription("theme must be light, dark or system").WriteError(w)
		return
	}

	if err := h.Themes.Set(w, theme); err != nil {
		httpx.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"theme": theme})
}
