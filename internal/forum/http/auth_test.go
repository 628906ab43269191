package http

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/stretchr/testify/require"
)

func TestSignupEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("issues a session and redirects home", func(t *testing.T) {
		rec := postForm(t, router, "/v1/auth/signup", url.Values{
			"username":  {"alice"},
			"password1": {"correct horse battery staple"},
			"password2": {"correct horse battery staple"},
		}, nil)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/", rec.Header().Get("Location"))

		cookie := sessionCookie(t, rec)
		require.NotEmpty(t, cookie.Value)
		require.True(t, cookie.HttpOnly)
	})

	t.Run("mismatched passwords are rejected before account creation", func(t *testing.T) {
		rec := postForm(t, router, "/v1/auth/signup", url.Values{
			"username":  {"bob"},
			"password1": {"one password"},
			"password2": {"another password"},
		}, nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "invalid_request", errorCode(t, rec))
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		rec := postForm(t, router, "/v1/auth/signup", url.Values{
			"username":  {"alice"},
			"password1": {"correct horse battery staple"},
			"password2": {"correct horse battery staple"},
		}, nil)

		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, "username_taken", errorCode(t, rec))
	})

	t.Run("authenticated users are bounced off the signup form", func(t *testing.T) {
		session := signup(t, router, "carol")

		rec := postForm(t, router, "/v1/auth/signup", url.Values{
			"username":  {"carol2"},
			"password1": {"correct horse battery staple"},
			"password2": {"correct horse battery staple"},
		}, session)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/", rec.Header().Get("Location"))
	})
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	signup(t, router, "alice")

	t.Run("valid credentials issue a session", func(t *testing.T) {
		rec := postForm(t, router, "/v1/auth/login", url.Values{
			"username": {"alice"},
			"password": {"correct horse battery staple"},
		}, nil)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/", rec.Header().Get("Location"))
		require.NotEmpty(t, sessionCookie(t, rec).Value)
	})

	t.Run("wrong password is unauthorized with no cookie", func(t *testing.T) {
		rec := postForm(t, router, "/v1/auth/login", url.Values{
			"username": {"alice"},
			"password": {"wrong password"},
		}, nil)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "invalid_credentials", errorCode(t, rec))
		require.Empty(t, rec.Result().Cookies())
	})

	t.Run("unknown username reads the same as a wrong password", func(t *testing.T) {
		rec := postForm(t, router, "/v1/auth/login", url.Values{
			"username": {"nobody"},
			"password": {"correct horse battery staple"},
		}, nil)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "invalid_credentials", errorCode(t, rec))
	})

	t.Run("redirect_to returns the user to where they came from", func(t *testing.T) {
		rec := postForm(t, router, "/v1/auth/login?redirect_to=%2Fv1%2Fthreads%2F1", url.Values{
			"username": {"alice"},
			"password": {"correct horse battery staple"},
		}, nil)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/v1/threads/1", rec.Header().Get("Location"))
	})

	t.Run("off-site redirect targets fall back to the forum root", func(t *testing.T) {
		targets := []string{
			"https://evil.example",
			"//evil.example",
			`/\evil.example`,
			`/a\b`,
			"evil",
		}
		for _, target := range targets {
			rec := postForm(t, router, "/v1/auth/login?redirect_to="+url.QueryEscape(target), url.Values{
				"username": {"alice"},
				"password": {"correct horse battery staple"},
			}, nil)

			require.Equal(t, http.StatusSeeOther, rec.Code)
			require.Equal(t, "/", rec.Header().Get("Location"))
		}
	})
}

func TestLogoutEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	session := signup(t, router, "alice")

	rec := postForm(t, router, "/v1/auth/logout", url.Values{}, session)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, LoginPath, rec.Header().Get("Location"))

	cleared := sessionCookie(t, rec)
	require.Empty(t, cleared.Value)
	require.Negative(t, cleared.MaxAge)

	// Logging out anonymously is a no-op, not an error
	rec = postForm(t, router, "/v1/auth/logout", url.Values{}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestMeEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("returns the current user's public projection", func(t *testing.T) {
		session := signup(t, router, "alice")

		rec := get(t, router, "/v1/me", session)
		require.Equal(t, http.StatusOK, rec.Code)

		var user domain.User
		decodeBody(t, rec.Body, &user)
		require.Equal(t, "alice", user.Username)
		require.Positive(t, user.ID)
	})

	t.Run("anonymous requests are unauthorized", func(t *testing.T) {
		rec := get(t, router, "/v1/me", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "authentication_required", errorCode(t, rec))
	})
}
