package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chat-delivery/internal/directory"
	"chat-delivery/internal/repositories"
	"chat-delivery/internal/telemetry"
)

/// RegisterDebugRoutes wires debug-only endpoints: the audit round-trip
// check, stored-message inspection (distribution acknowledgment state),
// and the directory's view of this process's sessions.
func RegisterDebugRoutes(router *gin.Engine, emitter *telemetry.AuditEmitter, messages repositories.MessageRepository, dir directory.Directory, processID string, enabled bool) {
	if !enabled {
		return
	}

	router.GET("/debug/audit-test", func(c *gin.Context) {
		if emitter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit emitter not configured"})
			return
		}
		emitter.Emit(c.Request.Context(), "INFO", "audit test", requestIDFromContext(c), userIDFromContext(c))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/debug/messages/:message_id", func(c *gin.Context) {
		msg, err := messages.Get(c.Request.Context(), c.Param("message_id"))
		if errors.Is(err, repositories.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load message"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": msg, "distributed": msg.DistributedAt != nil})
	})

	router.GET("/debug/sessions", func(c *gin.Context) {
		sessions, err := dir.ProcessSessions(c.Request.Context(), processID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sessions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"process_id": processID, "sessions": sessions})
	})
}
