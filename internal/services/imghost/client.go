package imghost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"cataloger/internal/apperrors"
	"cataloger/internal/logger"
)

const (
	minExpiration = 60
	maxExpiration = 15552000
)

// UploadRequest carries either a base64 payload or a source URL, never both.
type UploadRequest struct {
	Base64     string
	SourceURL  string
	Name       string
	Expiration int // seconds; 0 means never expire
}

type UploadResult struct {
	URL        string `json:"url"`
	DisplayURL string `json:"display_url"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// Client uploads images to the hosting API via multipart form.
type Client struct {
	uploadURL  string
	apiKey     string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(uploadURL, apiKey string, logger *logger.Logger) *Client {
	return &Client{
		uploadURL: uploadURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if req.Base64 == "" && req.SourceURL == "" {
		return nil, apperrors.NewValidation("either a base64 payload or a source URL is required")
	}
	if req.Expiration != 0 && (req.Expiration < minExpiration || req.Expiration > maxExpiration) {
		return nil, apperrors.NewValidation("expiration must be between %d and %d seconds", minExpiration, maxExpiration)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	image := req.Base64
	if image == "" {
		image = req.SourceURL
	}
	writer.WriteField("image", image)
	if req.Name != "" {
		writer.WriteField("name", req.Name)
	}
	writer.Close()

	endpoint := fmt.Sprintf("%s?key=%s", c.uploadURL, c.apiKey)
	if req.Expiration != 0 {
		endpoint += "&expiration=" + strconv.Itoa(req.Expiration)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, &apperrors.RemoteAPIError{Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &apperrors.RemoteAPIError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &apperrors.RemoteAPIError{Message: string(respBody), StatusCode: resp.StatusCode}
	}

	var uploadResp struct {
		Data    UploadResult `json:"data"`
		Success bool         `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return nil, &apperrors.RemoteAPIError{Message: fmt.Sprintf("failed to decode response: %v", err)}
	}
	if !uploadResp.Success {
		return nil, &apperrors.RemoteAPIError{Message: "image host reported failure", StatusCode: resp.StatusCode}
	}

	return &uploadResp.Data, nil
}
