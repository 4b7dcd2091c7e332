package watermark

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

type Request struct {
	ImageURL string  `json:"image_url"`
	Position string  `json:"position,omitempty"`
	Opacity  float64 `json:"opacity,omitempty"`
}

type Result struct {
	WatermarkedURL string `json:"watermarked_url"`
	OriginalURL    string `json:"original_url"`
}

// Client calls the watermark microservice.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(baseURL, apiKey string, logger *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) Apply(ctx context.Context, req Request) (*Result, error) {
	if req.ImageURL == "" {
		return nil, apperrors.NewValidation("image_url is required")
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, &apperrors.RemoteAPIError{Message: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/watermark", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &apperrors.RemoteAPIError{Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &apperrors.RemoteAPIError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiErr struct {
			Error string `json:"error"`
		}
		message := string(body)
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
			message = apiErr.Error
		}
		return nil, &apperrors.RemoteAPIError{Message: message, StatusCode: resp.StatusCode}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &apperrors.RemoteAPIError{Message: fmt.Sprintf("failed to decode response: %v", err)}
	}
	return &result, nil
}
