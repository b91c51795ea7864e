package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	env := setupEnv(t)
	user, _ := env.signup(t, "Alice", "alice@example.com", "Password1")

	w := env.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "Password1",
	})

	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeBody(t, w)
	assert.Equal(t, "Login successful", payload["message"])
	assert.NotEmpty(t, payload["token"])

	detail, ok := payload["user"].(map[string]interface{})
	require.True(t, ok, "expected a user object in the login response")
	assert.Equal(t, user.ID.String(), detail["id"])
	assert.Equal(t, "Alice", detail["name"])
	assert.Equal(t, "alice@example.com", detail["email"])
}

func TestLogin_WrongPassword(t *testing.T) {
	env := setupEnv(t)
	env.signup(t, "Alice", "alice@example.com", "Password1")

	w := env.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "WrongPassword1",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email or password"}`, w.Body.String())
}

func TestLogin_UnknownEmail(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "Password1",
	})

	// Unknown account and bad password are indistinguishable from outside.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email or password"}`, w.Body.String())
}

func TestLogin_MalformedBody(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/login", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email or password"}`, w.Body.String())
}

func TestLogin_IssuedTokenGrantsAccess(t *testing.T) {
	env := setupEnv(t)
	env.signup(t, "Alice", "alice@example.com", "Password1")

	w := env.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "Password1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	token, _ := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)

	list := env.do(t, http.MethodGet, "/api/v1/tasks", token, nil)
	assert.Equal(t, http.StatusOK, list.Code)
	assert.JSONEq(t, `[]`, list.Body.String())
}
