package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cataloger/internal/apperrors"
	"cataloger/internal/logger"
)

// Execution is the automation engine's acknowledgement of a started
// workflow run.
type Execution struct {
	ExecutionID string `json:"execution_id"`
	WorkflowID  string `json:"workflow_id"`
	Name        string `json:"name"`
}

// Client starts workflow runs through the automation engine's webhook.
type Client struct {
	webhookURL string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(webhookURL string, logger *logger.Logger) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Trigger posts the input payload with a caller-supplied correlation id and
// returns the engine's execution reference.
func (c *Client) Trigger(ctx context.Context, name, workflowRef string, payload map[string]interface{}, correlationID string) (*Execution, error) {
	body := map[string]interface{}{
		"name":           name,
		"workflow":       workflowRef,
		"payload":        payload,
		"correlation_id": correlationID,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, &apperrors.RemoteAPIError{Message: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &apperrors.RemoteAPIError{Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.RemoteAPIError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &apperrors.RemoteAPIError{Message: string(respBody), StatusCode: resp.StatusCode}
	}

	var execution Execution
	if err := json.NewDecoder(resp.Body).Decode(&execution); err != nil {
		return nil, &apperrors.RemoteAPIError{Message: fmt.Sprintf("failed to decode response: %v", err)}
	}
	return &execution, nil
}
