package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// UnreadSource exposes a user's derived read state: unread counts and the
// committed read marker.
type UnreadSource interface {
	UnreadSummary(ctx context.Context, userID string) (map[string]int, error)
	Marker(ctx context.Context, userID, conversationID string) (time.Time, error)
}

// UnreadHandler serves the unread summary for the authenticated user.
type UnreadHandler struct {
	tracker UnreadSource
}

// NewUnreadHandler builds an UnreadHandler.
func NewUnreadHandler(tracker UnreadSource) *UnreadHandler {
	return &UnreadHandler{tracker: tracker}
}

// Summary returns per-conversation unread counts. Counts are derived from
// read markers at request time, never stored.
func (h *UnreadHandler) Summary(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
		return
	}

	summary, err := h.tracker.UnreadSummary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load unread summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": summary})
}

// Marker returns the committed read marker for one conversation. A zero
// marker means the conversation has never been read; unread counts then
// span its full history.
func (h *UnreadHandler) Marker(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
		return
	}

	conversationID := c.Param("conversation_id")
	marker, err := h.tracker.Marker(c.Request.Context(), userID, conversationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load read marker"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation_id": conversationID,
		"last_read_at":    marker,
		"never_read":      marker.IsZero(),
	})
}
