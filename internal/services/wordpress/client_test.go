package wordpress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cataloger/internal/apperrors"
	"cataloger/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, logger.New("error"))
}

func TestCountPublishedReadsTotalHeader(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "publish", r.URL.Query().Get("status"))
		w.Header().Set("X-WP-Total", "132")
		w.Write([]byte("[]"))
	}))

	total, err := client.CountPublished(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 132, total)
}

func TestCountPublishedMissingHeader(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))

	_, err := client.CountPublished(context.Background())

	var remoteErr *apperrors.RemoteAPIError
	require.ErrorAs(t, err, &remoteErr)
}

func TestListPostsPastEndIsEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"code": "rest_post_invalid_page_number"})
	}))

	posts, err := client.ListPosts(context.Background(), 4, 20)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestListPostsOtherErrorsPropagate(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.ListPosts(context.Background(), 1, 20)

	var remoteErr *apperrors.RemoteAPIError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusInternalServerError, remoteErr.StatusCode)
}

func TestListPostsDecodesRenderedFields(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{
			"id": 9,
			"slug": "hello",
			"status": "publish",
			"title": {"rendered": "Hello"},
			"content": {"rendered": "<p>hi</p>"},
			"excerpt": {"rendered": "hi"},
			"author": 2,
			"categories": [1, 2],
			"yoast_head_json": {"title": "Hello SEO", "description": "greeting"}
		}]`))
	}))

	posts, err := client.ListPosts(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	post := posts[0]
	assert.Equal(t, "Hello", post.Title.Rendered)
	assert.Equal(t, []int64{1, 2}, post.Categories)
	require.NotNil(t, post.YoastHead)
	assert.Equal(t, "Hello SEO", post.YoastHead.Title)
}
