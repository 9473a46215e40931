package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type unreadSourceMock struct {
	mock.Mock
}

func (m *unreadSourceMock) UnreadSummary(ctx context.Context, userID string) (map[string]int, error) {
	args := m.Called(ctx, userID)
	var summary map[string]int
	if val := args.Get(0); val != nil {
		summary = val.(map[string]int)
	}
	return summary, args.Error(1)
}

func (m *unreadSourceMock) Marker(ctx context.Context, userID, conversationID string) (time.Time, error) {
	args := m.Called(ctx, userID, conversationID)
	var at time.Time
	if val := args.Get(0); val != nil {
		at = val.(time.Time)
	}
	return at, args.Error(1)
}

func setupUnreadRouter(handler *UnreadHandler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	})
	r.GET("/unread", handler.Summary)
	r.GET("/conversations/:conversation_id/marker", handler.Marker)
	return r
}

func TestUnreadSummarySuccess(t *testing.T) {
	tracker := new(unreadSourceMock)
	handler := NewUnreadHandler(tracker)
	router := setupUnreadRouter(handler, "u2")

	tracker.On("UnreadSummary", mock.Anything, "u2").Return(map[string]int{"c1": 3}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/unread", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Unread map[string]int `json:"unread"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, map[string]int{"c1": 3}, resp.Unread)

	tracker.AssertExpectations(t)
}

func TestUnreadSummaryMissingUser(t *testing.T) {
	tracker := new(unreadSourceMock)
	handler := NewUnreadHandler(tracker)
	router := setupUnreadRouter(handler, "")

	req := httptest.NewRequest(http.MethodGet, "/unread", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	tracker.AssertNotCalled(t, "UnreadSummary", mock.Anything, mock.Anything)
}

func TestMarkerReturned(t *testing.T) {
	tracker := new(unreadSourceMock)
	handler := NewUnreadHandler(tracker)
	router := setupUnreadRouter(handler, "u2")

	at := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	tracker.On("Marker", mock.Anything, "u2", "c1").Return(at, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/conversations/c1/marker", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		ConversationID string    `json:"conversation_id"`
		LastReadAt     time.Time `json:"last_read_at"`
		NeverRead      bool      `json:"never_read"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "c1", resp.ConversationID)
	require.True(t, at.Equal(resp.LastReadAt))
	require.False(t, resp.NeverRead)
}

func TestMarkerNeverRead(t *testing.T) {
	tracker := new(unreadSourceMock)
	handler := NewUnreadHandler(tracker)
	router := setupUnreadRouter(handler, "u2")

	tracker.On("Marker", mock.Anything, "u2", "c1").Return(time.Time{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/conversations/c1/marker", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		NeverRead bool `json:"never_read"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.NeverRead)
}

func TestUnreadSummaryTrackerError(t *testing.T) {
	tracker := new(unreadSourceMock)
	handler := NewUnreadHandler(tracker)
	router := setupUnreadRouter(handler, "u2")

	tracker.On("UnreadSummary", mock.Anything, "u2").Return(nil, errors.New("db down")).Once()

	req := httptest.NewRequest(http.MethodGet, "/unread", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
