package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctchan-dev/ctchan/internal/domain"
	internal_errors "github.com/ctchan-dev/ctchan/internal/errors"
)

func TestAdminLoginHandler(t *testing.T) {
	t.Run("successful login sets the token cookie", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.MockLogin = func(password string) (string, error) {
			assert.Equal(t, "hunter2", password)
			return "signed-token", nil
		}

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/login", bytes.NewBuffer([]byte(`{"password": "hunter2"}`)))
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "accessToken", cookies[0].Name)
		assert.Equal(t, "signed-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "signed-token", body["access_token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.MockLogin = func(password string) (string, error) {
			return "", &internal_errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: 401}
		}

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/login", bytes.NewBuffer([]byte(`{"password": "nope"}`)))
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, rr.Result().Cookies())
	})

	t.Run("missing password", func(t *testing.T) {
		env := newTestEnv(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/login", bytes.NewBuffer([]byte(`{}`)))
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestThreadFlagHandlers(t *testing.T) {
	t.Run("sticky flag", func(t *testing.T) {
		env := newTestEnv(t)
		var gotId domain.ThreadId
		var gotValue bool
		env.thread.MockSetSticky = func(id domain.ThreadId, value bool) (domain.Thread, error) {
			gotId, gotValue = id, value
			return domain.Thread{Id: id, IsSticky: value}, nil
		}

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/threads/7/sticky", bytes.NewBuffer([]byte(`{"value": true}`)))
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, int64(7), gotId)
		assert.True(t, gotValue)
	})

	t.Run("lock flag false", func(t *testing.T) {
		env := newTestEnv(t)
		var gotValue bool
		env.thread.MockSetLocked = func(id domain.ThreadId, value bool) (domain.Thread, error) {
			gotValue = value
			return domain.Thread{Id: id}, nil
		}

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/threads/7/lock", bytes.NewBuffer([]byte(`{"value": false}`)))
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, gotValue, "explicit false must reach the service")
	})

	t.Run("missing value field", func(t *testing.T) {
		env := newTestEnv(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/threads/7/sticky", bytes.NewBuffer([]byte(`{}`)))
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDeleteRestoreHandlers(t *testing.T) {
	t.Run("delete thread", func(t *testing.T) {
		env := newTestEnv(t)
		req := httptest.NewRequest(http.MethodDelete, "/v1/admin/threads/7", nil)
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var thread domain.Thread
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &thread))
		assert.True(t, thread.IsDeleted)
	})

	t.Run("restore thread", func(t *testing.T) {
		env := newTestEnv(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/threads/7/restore", nil)
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("delete missing reply", func(t *testing.T) {
		env := newTestEnv(t)
		env.reply.MockDelete = func(id domain.ReplyId) (domain.Reply, error) {
			return domain.Reply{}, internal_errors.NotFound("Reply not found")
		}
		req := httptest.NewRequest(http.MethodDelete, "/v1/admin/replies/99", nil)
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("restore reply", func(t *testing.T) {
		env := newTestEnv(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/replies/99/restore", nil)
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestListAllBoardsHandler(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/boards", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var boards []domain.Board
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &boards))
	require.Len(t, boards, 2, "hidden boards must show up here")
}

func TestOverviewHandler(t *testing.T) {
	env := newTestEnv(t)
	env.thread.MockOverview = func() (domain.Overview, error) {
		return domain.Overview{TotalThreads: 5, DeletedThreads: 1, RecentThreads: []domain.Thread{{Id: 5}}}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/overview", nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var overview domain.Overview
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &overview))
	assert.Equal(t, 5, overview.TotalThreads)
	assert.Equal(t, 1, overview.DeletedThreads)
	require.Len(t, overview.RecentThreads, 1)
}
