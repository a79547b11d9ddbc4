package server

import (
	"net/http"
	"testing"

	"civicvoice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	_, app := newTestServer(t)

	req := jsonRequest(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Ada Citizen",
		"email":    "ada@example.com",
		"password": "SecurePass12!",
		"locality": "Northside",
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ada@example.com", user["email"])
	assert.Equal(t, string(models.RoleCitizen), user["role"])
	assert.Nil(t, user["password"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, app := newTestServer(t)
	registerUser(t, app, "dup@example.com")

	req := jsonRequest(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Second",
		"email":    "dup@example.com",
		"password": "SecurePass12!",
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegisterWeakPassword(t *testing.T) {
	_, app := newTestServer(t)

	req := jsonRequest(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Weak",
		"email":    "weak@example.com",
		"password": "short",
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	_, app := newTestServer(t)
	registerUser(t, app, "login@example.com")

	t.Run("Valid Credentials", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "login@example.com",
			"password": "SecurePass12!",
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("Wrong Password", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "login@example.com",
			"password": "WrongPass12!",
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "nobody@example.com",
			"password": "SecurePass12!",
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLoginDeactivatedAccount(t *testing.T) {
	srv, app := newTestServer(t)
	_, id := registerUser(t, app, "inactive@example.com")

	require.NoError(t, srv.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("is_active", false).Error)

	req := jsonRequest(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "inactive@example.com",
		"password": "SecurePass12!",
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetMyProfile(t *testing.T) {
	_, app := newTestServer(t)
	token, id := registerUser(t, app, "me@example.com")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/auth/me", token, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(id), body["id"])

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/auth/me", "", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutRevokesToken(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := registerUser(t, app, "logout@example.com")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/logout", token, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The revoked token must no longer authenticate.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/auth/me", token, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshIssuesNewToken(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := registerUser(t, app, "refresh@example.com")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/refresh", token, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	fresh, _ := body["token"].(string)
	require.NotEmpty(t, fresh)

	// The old token is revoked, the fresh one works.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/auth/me", token, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/auth/me", fresh, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
