package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chat-delivery/internal/mocks"
	"chat-delivery/internal/models"
	"chat-delivery/internal/repositories"
)

func setupDebugRouter(messages *mocks.MessageRepositoryMock, dir *mocks.DirectoryMock, enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterDebugRoutes(r, nil, messages, dir, "p1", enabled)
	return r
}

func TestDebugRoutesDisabled(t *testing.T) {
	router := setupDebugRouter(new(mocks.MessageRepositoryMock), new(mocks.DirectoryMock), false)

	req := httptest.NewRequest(http.MethodGet, "/debug/sessions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDebugMessageLookup(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	router := setupDebugRouter(messages, new(mocks.DirectoryMock), true)

	at := time.Now().UTC()
	messages.On("Get", mock.Anything, "m1").Return(models.Message{
		ID:             "m1",
		ConversationID: "c1",
		SenderID:       "u1",
		DistributedAt:  &at,
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/debug/messages/m1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Distributed bool `json:"distributed"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Distributed)

	messages.AssertExpectations(t)
}

func TestDebugMessageNotFound(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	router := setupDebugRouter(messages, new(mocks.DirectoryMock), true)

	messages.On("Get", mock.Anything, "missing").Return(models.Message{}, repositories.ErrMessageNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/debug/messages/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDebugSessionsListsLocalProcess(t *testing.T) {
	dir := new(mocks.DirectoryMock)
	router := setupDebugRouter(new(mocks.MessageRepositoryMock), dir, true)

	dir.On("ProcessSessions", mock.Anything, "p1").Return([]string{"u1/s1", "u2/s2"}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/debug/sessions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		ProcessID string   `json:"process_id"`
		Sessions  []string `json:"sessions"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "p1", resp.ProcessID)
	require.Equal(t, []string{"u1/s1", "u2/s2"}, resp.Sessions)

	dir.AssertExpectations(t)
}
