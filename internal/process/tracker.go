package process

import (
	"context"
	"time"

	"cataloger/internal/logger"
	"cataloger/internal/models"
	"cataloger/internal/services/automation"

	"github.com/google/uuid"
)

type AutomationEngine interface {
	Trigger(ctx context.Context, name, workflowRef string, payload map[string]interface{}, correlationID string) (*automation.Execution, error)
}

type RecordStore interface {
	CreateProcess(ctx context.Context, record *models.ProcessRecord) error
}

// Tracker starts external workflow runs and records them as auditable rows.
type Tracker struct {
	engine AutomationEngine
	store  RecordStore
	logger *logger.Logger
}

func NewTracker(engine AutomationEngine, store RecordStore, logger *logger.Logger) *Tracker {
	return &Tracker{
		engine: engine,
		store:  store,
		logger: logger,
	}
}

// Trigger starts the workflow and persists a running record keyed by the
// returned execution id. A failed trigger persists nothing. A failed
// persist after a successful trigger returns the record together with the
// persistence error: the workflow is running with no local row, which the
// caller must surface as a warning rather than a failure.
func (t *Tracker) Trigger(ctx context.Context, name, workflowRef string, input map[string]interface{}, actorID *string) (*models.ProcessRecord, error) {
	correlationID := uuid.New().String()

	execution, err := t.engine.Trigger(ctx, name, workflowRef, input, correlationID)
	if err != nil {
		return nil, err
	}

	workflowID := execution.WorkflowID
	if workflowID == "" {
		workflowID = workflowRef
	}

	record := &models.ProcessRecord{
		WorkflowID:  workflowID,
		ExecutionID: execution.ExecutionID,
		Name:        name,
		Status:      models.ProcessRunning,
		Input:       input,
		TriggeredBy: actorID,
		StartedAt:   time.Now(),
	}

	if err := t.store.CreateProcess(ctx, record); err != nil {
		t.logger.Error("workflow execution %s started but record was not persisted: %v", execution.ExecutionID, err)
		return record, err
	}

	return record, nil
}
