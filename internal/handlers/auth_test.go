package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamflix/streamflix/internal/services"
)

func TestIndexRedirectsWhenLoggedOut(t *testing.T) {
	f := setupTestRouter(t)
	c := &client{router: f.router}

	w := c.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRegisterAndLogin(t *testing.T) {
	f := setupTestRouter(t)
	c := &client{router: f.router}

	w := c.do(t, http.MethodPost, "/register", url.Values{
		"name":             {"Ada"},
		"email":            {"a@x.com"},
		"password":         {"secret1"},
		"confirm_password": {"secret1"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	user, err := f.db.FindUserByEmail("a@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, "secret1", user.Password, "password must be stored hashed")
	assert.True(t, services.CheckPassword(user.Password, "secret1"))

	w = c.do(t, http.MethodPost, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"secret1"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// the session now authenticates page requests
	w = c.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := setupTestRouter(t)
	seedUser(t, f.db, "a@x.com", "oldpass123")
	c := &client{router: f.router}

	w := c.do(t, http.MethodPost, "/register", url.Values{
		"name":             {"Ada"},
		"email":            {"a@x.com"},
		"password":         {"secret1"},
		"confirm_password": {"secret1"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/register", w.Header().Get("Location"))
}

func TestRegisterValidation(t *testing.T) {
	f := setupTestRouter(t)

	cases := []struct {
		name string
		form url.Values
	}{
		{"short name", url.Values{
			"name": {"A"}, "email": {"a@x.com"},
			"password": {"secret1"}, "confirm_password": {"secret1"},
		}},
		{"invalid email", url.Values{
			"name": {"Ada"}, "email": {"not-an-email"},
			"password": {"secret1"}, "confirm_password": {"secret1"},
		}},
		{"short password", url.Values{
			"name": {"Ada"}, "email": {"a@x.com"},
			"password": {"abc"}, "confirm_password": {"abc"},
		}},
		{"mismatched passwords", url.Values{
			"name": {"Ada"}, "email": {"a@x.com"},
			"password": {"secret1"}, "confirm_password": {"secret2"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &client{router: f.router}
			w := c.do(t, http.MethodPost, "/register", tc.form)
			require.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/register", w.Header().Get("Location"))

			user, err := f.db.FindUserByEmail(tc.form.Get("email"))
			require.NoError(t, err)
			assert.Nil(t, user, "invalid registration must not create an account")
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := setupTestRouter(t)
	seedUser(t, f.db, "a@x.com", "secret1")
	c := &client{router: f.router}

	w := c.do(t, http.MethodPost, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"wrong"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// still unauthenticated
	w = c.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	f := setupTestRouter(t)
	seedUser(t, f.db, "a@x.com", "secret1")
	c := &client{router: f.router}

	c.do(t, http.MethodPost, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"secret1"},
	})

	w := c.do(t, http.MethodGet, "/logout", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = c.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
