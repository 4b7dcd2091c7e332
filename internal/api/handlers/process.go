package handlers

import (
	"net/http"
	"strconv"

	"cataloger/internal/logger"
	"cataloger/internal/process"
	"cataloger/internal/repository"

	"github.com/gin-gonic/gin"
)

type ProcessHandler struct {
	tracker *process.Tracker
	repo    *repository.Repository
	logger  *logger.Logger
}

func NewProcessHandler(tracker *process.Tracker, repo *repository.Repository, logger *logger.Logger) *ProcessHandler {
	return &ProcessHandler{
		tracker: tracker,
		repo:    repo,
		logger:  logger,
	}
}

type triggerRequest struct {
	Name     string                 `json:"name" binding:"required"`
	Workflow string                 `json:"workflow" binding:"required"`
	Input    map[string]interface{} `json:"input"`
	ActorID  *string                `json:"actor_id"`
}

// Trigger starts an external workflow run. A persist failure after a
// successful trigger is reported as a warning, not a failure: the workflow
// is already running.
func (h *ProcessHandler) Trigger(c *gin.Context) {
	var req triggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.tracker.Trigger(c.Request.Context(), req.Name, req.Workflow, req.Input, req.ActorID)
	if err != nil {
		if record != nil {
			c.JSON(http.StatusOK, gin.H{
				"data":    record,
				"warning": "workflow started but the execution record was not persisted",
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": record})
}

func (h *ProcessHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	records, total, err := h.repo.ListProcesses(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch processes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": records,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}
