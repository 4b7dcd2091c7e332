package syncer

// Status discriminates progress events on a sync run.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusStarted  Status = "started"
	StatusProgress Status = "progress"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

// Event is one progress update. Events of a run arrive in strictly
// increasing processed order; complete or error is always last.
type Event struct {
	Status    Status `json:"status"`
	Total     int    `json:"total"`
	Processed int    `json:"processed"`
	Message   string `json:"message,omitempty"`
}
