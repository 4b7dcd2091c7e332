package syncer

import (
	"context"
	"fmt"
	"testing"

	"cataloger/internal/apperrors"
	"cataloger/internal/logger"
	"cataloger/internal/models"
	"cataloger/internal/services/wordpress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves a fixed number of published posts in pages.
type fakeSource struct {
	total      int
	countErr   error
	pagesAsked []int
}

func (s *fakeSource) CountPublished(ctx context.Context) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.total, nil
}

func (s *fakeSource) ListPosts(ctx context.Context, page, perPage int) ([]wordpress.Post, error) {
	s.pagesAsked = append(s.pagesAsked, page)

	start := (page - 1) * perPage
	if start >= s.total {
		return []wordpress.Post{}, nil
	}
	end := start + perPage
	if end > s.total {
		end = s.total
	}

	posts := make([]wordpress.Post, 0, end-start)
	for i := start; i < end; i++ {
		post := wordpress.Post{ID: int64(i + 1), Slug: fmt.Sprintf("post-%d", i+1), Status: "publish"}
		post.Title.Rendered = fmt.Sprintf("Post %d", i+1)
		posts = append(posts, post)
	}
	return posts, nil
}

// fakeStore keeps rows keyed by external id, like the real upsert does.
// It can fail on the nth batch.
type fakeStore struct {
	rows      map[int64]models.SyncedPost
	batches   int
	failBatch int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[int64]models.SyncedPost)}
}

func (s *fakeStore) UpsertPosts(ctx context.Context, posts []models.SyncedPost) (int64, error) {
	s.batches++
	if s.failBatch > 0 && s.batches == s.failBatch {
		return 0, &apperrors.PersistenceError{Op: "upsert posts", Err: fmt.Errorf("disk full")}
	}
	for _, post := range posts {
		s.rows[post.WPID] = post
	}
	return int64(len(posts)), nil
}

func runEngine(source PostSource, store PostStore) []Event {
	engine := NewEngine(source, store, nil, logger.New("error"))
	var events []Event
	engine.Run(context.Background(), func(event Event) {
		events = append(events, event)
	})
	return events
}

func processedSequence(events []Event) []int {
	var seq []int
	for _, event := range events {
		if event.Status == StatusProgress {
			seq = append(seq, event.Processed)
		}
	}
	return seq
}

func TestRunEmitsExactProgressSequence(t *testing.T) {
	source := &fakeSource{total: 45}
	store := newFakeStore()

	events := runEngine(source, store)

	require.NotEmpty(t, events)
	assert.Equal(t, StatusStarted, events[0].Status)
	assert.Equal(t, []int{0, 20, 40, 45}, processedSequence(events))

	last := events[len(events)-1]
	assert.Equal(t, StatusComplete, last.Status)
	assert.Equal(t, 45, last.Total)
	assert.Equal(t, 45, last.Processed)

	assert.Len(t, store.rows, 45)
}

func TestRunStorageFailureStopsPaging(t *testing.T) {
	source := &fakeSource{total: 45}
	store := newFakeStore()
	store.failBatch = 2

	events := runEngine(source, store)

	assert.Equal(t, []int{0, 20}, processedSequence(events))

	last := events[len(events)-1]
	assert.Equal(t, StatusError, last.Status)
	assert.NotEmpty(t, last.Message)

	// The failed page was the last one fetched.
	assert.Equal(t, []int{1, 2}, source.pagesAsked)

	// The first page stays committed.
	assert.Len(t, store.rows, 20)
}

func TestRunCountFailure(t *testing.T) {
	source := &fakeSource{countErr: &apperrors.RemoteAPIError{Message: "unreachable"}}
	store := newFakeStore()

	events := runEngine(source, store)

	require.Len(t, events, 2)
	assert.Equal(t, StatusStarted, events[0].Status)
	assert.Equal(t, StatusError, events[1].Status)
	assert.Zero(t, store.batches)
}

// Two sequential runs against an unchanged source keep the local row count
// stable: upserts are keyed by the external id. Two *concurrent* runs have
// no such guarantee; interleaved batches for the same external id are an
// accepted limitation of the engine.
func TestRunTwiceIsIdempotent(t *testing.T) {
	source := &fakeSource{total: 45}
	store := newFakeStore()

	runEngine(source, store)
	first := len(store.rows)

	runEngine(source, store)

	assert.Equal(t, first, len(store.rows))
}

func TestTransformPostStampsSyncTime(t *testing.T) {
	post := wordpress.Post{ID: 9, Slug: "hello", Status: "publish", Date: "2024-03-01T08:30:00"}
	post.Title.Rendered = "Hello"

	row := transformPost(post, parseWPTime("2024-04-01T00:00:00"))

	assert.Equal(t, int64(9), row.WPID)
	assert.Equal(t, "Hello", row.Title)
	assert.Nil(t, row.FeaturedImage)
	assert.Nil(t, row.SEOTitle)
	assert.Equal(t, 2024, row.WPCreatedAt.Year())
	assert.Equal(t, 4, int(row.LastSyncedAt.Month()))
}
