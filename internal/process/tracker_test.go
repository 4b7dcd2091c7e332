package process

import (
	"context"
	"testing"

	"cataloger/internal/apperrors"
	"cataloger/internal/logger"
	"cataloger/internal/models"
	"cataloger/internal/services/automation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	execution *automation.Execution
	err       error
	called    bool
}

func (e *stubEngine) Trigger(ctx context.Context, name, workflowRef string, payload map[string]interface{}, correlationID string) (*automation.Execution, error) {
	e.called = true
	if e.err != nil {
		return nil, e.err
	}
	return e.execution, nil
}

type stubRecordStore struct {
	created *models.ProcessRecord
	err     error
}

func (s *stubRecordStore) CreateProcess(ctx context.Context, record *models.ProcessRecord) error {
	if s.err != nil {
		return s.err
	}
	s.created = record
	return nil
}

func TestTriggerPersistsRunningRecord(t *testing.T) {
	engine := &stubEngine{execution: &automation.Execution{ExecutionID: "exec-1", WorkflowID: "wf-9"}}
	store := &stubRecordStore{}
	tracker := NewTracker(engine, store, logger.New("error"))

	record, err := tracker.Trigger(context.Background(), "enrich", "wf-ref", map[string]interface{}{"k": "v"}, nil)
	require.NoError(t, err)

	require.NotNil(t, store.created)
	assert.Equal(t, "exec-1", record.ExecutionID)
	assert.Equal(t, "wf-9", record.WorkflowID)
	assert.Equal(t, models.ProcessRunning, record.Status)
	assert.False(t, record.StartedAt.IsZero())
}

func TestTriggerEngineFailurePersistsNothing(t *testing.T) {
	engine := &stubEngine{err: &apperrors.RemoteAPIError{Message: "webhook down", StatusCode: 503}}
	store := &stubRecordStore{}
	tracker := NewTracker(engine, store, logger.New("error"))

	record, err := tracker.Trigger(context.Background(), "enrich", "wf-ref", nil, nil)

	require.ErrorIs(t, err, engine.err)
	assert.Nil(t, record)
	assert.Nil(t, store.created)
}

func TestTriggerPersistFailureReturnsRecord(t *testing.T) {
	engine := &stubEngine{execution: &automation.Execution{ExecutionID: "exec-2"}}
	store := &stubRecordStore{err: &apperrors.PersistenceError{Op: "create process record"}}
	tracker := NewTracker(engine, store, logger.New("error"))

	record, err := tracker.Trigger(context.Background(), "enrich", "wf-ref", nil, nil)

	// The workflow is running remotely; the caller gets both the record
	// and the non-fatal persistence error.
	require.Error(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "exec-2", record.ExecutionID)
	assert.Equal(t, "wf-ref", record.WorkflowID, "workflow ref fills in when the engine omits the id")
}
