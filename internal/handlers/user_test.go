package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teamtasker/task-manager-api/internal/dto"
	apierrors "github.com/teamtasker/task-manager-api/internal/errors"
)

func TestUserHandler_ListUsers(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.registerAndLogin(t, "alice", "pw", false)
	env.registerAndLogin(t, "bob", "pw", false)

	w := env.doJSON(t, http.MethodGet, "/users", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeBody[dto.UserListResponse](t, w)
	require.Len(t, list.Users, 2)
	require.EqualValues(t, 2, list.Pagination.Total)
	require.NotContains(t, w.Body.String(), "password")
}

func TestUserHandler_UpdateUser(t *testing.T) {
	env := setupTestEnv(t)
	admin, _ := env.registerAndLogin(t, "admin", "pw", true)
	_, targetID := env.registerAndLogin(t, "target", "pw", false)

	w := env.doJSON(t, http.MethodPut, fmt.Sprintf("/users/%d", targetID), admin, map[string]any{
		"name":     "Target T.",
		"approved": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	user := decodeBody[dto.UserDTO](t, w)
	require.Equal(t, "Target T.", user.Name)
	require.True(t, user.Approved)
	require.Equal(t, "target", user.Username)

	w = env.doJSON(t, http.MethodPut, "/users/9999", admin, map[string]any{"name": "ghost"})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, apierrors.ErrCodeUserNotFound, decodeBody[apierrors.APIError](t, w).Code)
}

func TestUserHandler_UpdateUser_RequiresAdmin(t *testing.T) {
	env := setupTestEnv(t)
	token, id := env.registerAndLogin(t, "plain", "pw", false)

	w := env.doJSON(t, http.MethodPut, fmt.Sprintf("/users/%d", id), token, map[string]any{
		"name": "self",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	env := setupTestEnv(t)
	admin, _ := env.registerAndLogin(t, "admin", "pw", true)
	_, targetID := env.registerAndLogin(t, "target", "pw", false)

	w := env.doJSON(t, http.MethodDelete, fmt.Sprintf("/users/%d", targetID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodDelete, fmt.Sprintf("/users/%d", targetID), admin, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_UserTasks_UnknownUser(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.registerAndLogin(t, "alice", "pw", false)

	w := env.doJSON(t, http.MethodGet, "/users/9999/tasks", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, apierrors.ErrCodeUserNotFound, decodeBody[apierrors.APIError](t, w).Code)
}
