package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProcessStatus string

const (
	ProcessPending   ProcessStatus = "pending"
	ProcessRunning   ProcessStatus = "running"
	ProcessCompleted ProcessStatus = "completed"
	ProcessFailed    ProcessStatus = "failed"
	ProcessCancelled ProcessStatus = "cancelled"
)

// ProcessRecord tracks one execution of an external automation workflow.
// It is created at trigger time and only mutated by the workflow's own
// callback or poll path.
type ProcessRecord struct {
	ID           string                 `json:"id" gorm:"type:uuid;primary_key"`
	WorkflowID   string                 `json:"workflow_id" gorm:"not null"`
	ExecutionID  string                 `json:"execution_id" gorm:"uniqueIndex;not null"`
	Name         string                 `json:"name"`
	Status       ProcessStatus          `json:"status" gorm:"default:pending"`
	Input        map[string]interface{} `json:"input" gorm:"serializer:json"`
	Output       map[string]interface{} `json:"output" gorm:"serializer:json"`
	TriggeredBy  *string                `json:"triggered_by"`
	StartedAt    time.Time              `json:"started_at"`
	FinishedAt   *time.Time             `json:"finished_at"`
	ErrorMessage *string                `json:"error_message"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func (p *ProcessRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
