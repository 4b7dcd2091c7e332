package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cataloger/internal/apperrors"
	"cataloger/internal/logger"
)

// Post is the wire shape of a WordPress post, reduced to the fields the
// sync pipeline consumes.
type Post struct {
	ID       int64  `json:"id"`
	Date     string `json:"date_gmt"`
	Modified string `json:"modified_gmt"`
	Slug     string `json:"slug"`
	Status   string `json:"status"`
	Link     string `json:"link"`
	Title    struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Content struct {
		Rendered string `json:"rendered"`
	} `json:"content"`
	Excerpt struct {
		Rendered string `json:"rendered"`
	} `json:"excerpt"`
	Author        int64   `json:"author"`
	FeaturedMedia int64   `json:"featured_media"`
	Categories    []int64 `json:"categories"`
	Tags          []int64 `json:"tags"`
	YoastHead     *struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"yoast_head_json"`
	Embedded *struct {
		FeaturedMedia []struct {
			ID        int64  `json:"id"`
			SourceURL string `json:"source_url"`
			AltText   string `json:"alt_text"`
		} `json:"wp:featuredmedia"`
	} `json:"_embedded"`
}

// Client reads published posts from a WordPress site.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(baseURL string, logger *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// CountPublished returns the total number of published posts, read from the
// X-WP-Total header of a minimal list request.
func (c *Client) CountPublished(ctx context.Context) (int, error) {
	endpoint := fmt.Sprintf("%s/wp-json/wp/v2/posts", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, &apperrors.RemoteAPIError{Message: fmt.Sprintf("failed to create request: %v", err)}
	}

	q := req.URL.Query()
	q.Set("status", "publish")
	q.Set("per_page", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &apperrors.RemoteAPIError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return 0, &apperrors.RemoteAPIError{Message: "failed to count published posts", StatusCode: resp.StatusCode}
	}

	total, err := strconv.Atoi(resp.Header.Get("X-WP-Total"))
	if err != nil {
		return 0, &apperrors.RemoteAPIError{Message: "missing X-WP-Total header", StatusCode: resp.StatusCode}
	}
	return total, nil
}

// ListPosts fetches one page of published posts. A request past the last
// page answers 400 with rest_post_invalid_page_number; that maps to an
// empty page so callers can rely on the empty-page stop rule.
func (c *Client) ListPosts(ctx context.Context, page, perPage int) ([]Post, error) {
	endpoint := fmt.Sprintf("%s/wp-json/wp/v2/posts", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &apperrors.RemoteAPIError{Message: fmt.Sprintf("failed to create request: %v", err)}
	}

	q := url.Values{}
	q.Set("status", "publish")
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("_embed", "wp:featuredmedia")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.RemoteAPIError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiErr struct {
			Code string `json:"code"`
		}
		if resp.StatusCode == http.StatusBadRequest && page > 1 {
			if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code == "rest_post_invalid_page_number" {
				return []Post{}, nil
			}
		}
		return nil, &apperrors.RemoteAPIError{Message: string(body), StatusCode: resp.StatusCode}
	}

	var posts []Post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, &apperrors.RemoteAPIError{Message: fmt.Sprintf("failed to decode response: %v", err)}
	}
	return posts, nil
}
