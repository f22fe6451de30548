package rest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllUsers(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Retrieved 3 users successfully.", body["message"])
	assert.Len(t, body["users"], 3)
}

func TestGetUserByID(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/api/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	user := body["user"].(map[string]any)
	assert.Equal(t, "john.doe@example.com", user["email"])

	w, body = doJSON(t, router, http.MethodGet, "/api/users/999", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found.", body["message"])

	w, _ = doJSON(t, router, http.MethodGet, "/api/users/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserByEmail(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/api/users/by-email/JANE.SMITH@example.com", "")
	require.Equal(t, http.StatusOK, w.Code)
	user := body["user"].(map[string]any)
	assert.Equal(t, float64(2), user["id"])

	w, _ = doJSON(t, router, http.MethodGet, "/api/users/by-email/nobody@example.com", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateUser(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodPost, "/api/users",
		`{"firstName":"Alice","lastName":"Adams","email":"alice@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "/api/users/4", w.Header().Get("Location"))

	// created user is readable through both lookup routes
	w, body = doJSON(t, router, http.MethodGet, "/api/users/4", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice@example.com", body["user"].(map[string]any)["email"])

	w, _ = doJSON(t, router, http.MethodGet, "/api/users/by-email/alice@example.com", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCreateUserValidation(t *testing.T) {
	router := newTestRouter(t)

	t.Run("blank fields", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodPost, "/api/users",
			`{"firstName":"  ","lastName":"Adams","email":"alice@example.com"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "First name, last name, and email are required.", body["message"])
	})

	t.Run("duplicate email case-insensitive", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodPost, "/api/users",
			`{"firstName":"Jack","lastName":"Doe","email":"JOHN.DOE@example.com"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "A user with this email already exists.", body["message"])
	})

	t.Run("missing body", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodPost, "/api/users", "")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodPut, "/api/users/1",
		`{"id":1,"firstName":"Johnny","lastName":"Doe","email":"john.doe@example.com","isActive":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Johnny", body["user"].(map[string]any)["firstName"])
}

func TestUpdateUserIDMismatch(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodPut, "/api/users/1",
		`{"id":2,"firstName":"X","lastName":"Y","email":"x@y.com","isActive":true}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ID in URL must match ID in request body", body["message"])

	// store unchanged
	w, body = doJSON(t, router, http.MethodGet, "/api/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "John", body["user"].(map[string]any)["firstName"])
}

func TestUpdateUserNotFound(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodPut, "/api/users/99",
		`{"id":99,"firstName":"X","lastName":"Y","email":"x@y.com","isActive":true}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodPut, "/api/users/1",
		`{"id":1,"firstName":"John","lastName":"Doe","email":"jane.smith@example.com","isActive":true}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A user with this email already exists.", body["message"])
}

func TestDeleteUser(t *testing.T) {
	router := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodDelete, "/api/users/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User deleted successfully.", body["message"])

	w, _ = doJSON(t, router, http.MethodDelete, "/api/users/2", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w, body = doJSON(t, router, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["users"], 2)
}
