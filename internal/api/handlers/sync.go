package handlers

import (
	"net/http"
	"strconv"

	"cataloger/internal/logger"
	"cataloger/internal/repository"
	"cataloger/internal/syncer"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	engine *syncer.Engine
	repo   *repository.Repository
	logger *logger.Logger
}

func NewSyncHandler(engine *syncer.Engine, repo *repository.Repository, logger *logger.Logger) *SyncHandler {
	return &SyncHandler{
		engine: engine,
		repo:   repo,
		logger: logger,
	}
}

func (h *SyncHandler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	posts, total, err := h.repo.FindPostsPaginated(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": posts,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// Sync runs a full post sync, streaming progress as `data: <json>` events.
// The terminal complete or error event ends the stream; a dropped
// connection surfaces as a write failure on the next event.
func (h *SyncHandler) Sync(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	h.engine.Run(c.Request.Context(), func(event syncer.Event) {
		if err := sse.Encode(c.Writer, sse.Event{Data: event}); err != nil {
			h.logger.Error("Failed to write progress event: %v", err)
			return
		}
		c.Writer.Flush()
	})
}
