package syncer

import (
	"context"
	"fmt"
	"time"

	"cataloger/internal/logger"
	"cataloger/internal/models"
	"cataloger/internal/services/wordpress"
)

// PageSize is the fixed page size of a sync run.
const PageSize = 20

type PostSource interface {
	CountPublished(ctx context.Context) (int, error)
	ListPosts(ctx context.Context, page, perPage int) ([]wordpress.Post, error)
}

type PostStore interface {
	UpsertPosts(ctx context.Context, posts []models.SyncedPost) (int64, error)
}

type EventPublisher interface {
	PublishSyncCompleted(ctx context.Context, total, processed int) error
}

// Engine performs a full-refresh sync of published posts into local
// storage, one page at a time. Each page is committed before progress is
// reported and before the next page is requested; a failed run leaves
// committed pages in place and is safe to re-invoke from page 1 because
// upserts are keyed by the external id.
type Engine struct {
	source PostSource
	store  PostStore
	events EventPublisher
	logger *logger.Logger
}

func NewEngine(source PostSource, store PostStore, events EventPublisher, logger *logger.Logger) *Engine {
	return &Engine{
		source: source,
		store:  store,
		events: events,
		logger: logger,
	}
}

// Run executes one sync pass, emitting every progress event through emit.
// No error escapes: any failure terminates the run with an error event.
func (e *Engine) Run(ctx context.Context, emit func(Event)) {
	emit(Event{Status: StatusStarted})

	total, err := e.source.CountPublished(ctx)
	if err != nil {
		e.logger.Error("post sync aborted: %v", err)
		emit(Event{Status: StatusError, Message: err.Error()})
		return
	}

	processed := 0
	emit(Event{Status: StatusProgress, Total: total, Processed: processed})

	for page := 1; ; page++ {
		posts, err := e.source.ListPosts(ctx, page, PageSize)
		if err != nil {
			e.logger.Error("post sync failed on page %d: %v", page, err)
			emit(Event{Status: StatusError, Message: err.Error()})
			return
		}
		if len(posts) == 0 {
			break
		}

		now := time.Now()
		rows := make([]models.SyncedPost, len(posts))
		for i, post := range posts {
			rows[i] = transformPost(post, now)
		}

		if _, err := e.store.UpsertPosts(ctx, rows); err != nil {
			e.logger.Error("post sync failed to store page %d: %v", page, err)
			emit(Event{Status: StatusError, Message: err.Error()})
			return
		}

		processed += len(posts)
		emit(Event{Status: StatusProgress, Total: total, Processed: processed})
	}

	emit(Event{
		Status:    StatusComplete,
		Total:     total,
		Processed: processed,
		Message:   fmt.Sprintf("synced %d of %d posts", processed, total),
	})

	if e.events != nil {
		if err := e.events.PublishSyncCompleted(ctx, total, processed); err != nil {
			e.logger.Error("failed to publish sync.completed: %v", err)
		}
	}
}

// transformPost maps the wire shape into the local row, defaulting missing
// optional fields to null and stamping the sync time.
func transformPost(post wordpress.Post, syncedAt time.Time) models.SyncedPost {
	row := models.SyncedPost{
		WPID:         post.ID,
		Title:        post.Title.Rendered,
		Slug:         post.Slug,
		Content:      post.Content.Rendered,
		Excerpt:      post.Excerpt.Rendered,
		Status:       post.Status,
		Link:         post.Link,
		WPCreatedAt:  parseWPTime(post.Date),
		WPModifiedAt: parseWPTime(post.Modified),
		AuthorID:     post.Author,
		CategoryIDs:  post.Categories,
		TagIDs:       post.Tags,
		LastSyncedAt: syncedAt,
	}

	if post.YoastHead != nil {
		if post.YoastHead.Title != "" {
			title := post.YoastHead.Title
			row.SEOTitle = &title
		}
		if post.YoastHead.Description != "" {
			description := post.YoastHead.Description
			row.SEODescription = &description
		}
	}

	if post.Embedded != nil && len(post.Embedded.FeaturedMedia) > 0 {
		media := post.Embedded.FeaturedMedia[0]
		row.FeaturedImage = &models.FeaturedImage{
			ID:  media.ID,
			URL: media.SourceURL,
			Alt: media.AltText,
		}
	}

	return row
}

// parseWPTime parses the zone-less GMT timestamps the content API returns.
func parseWPTime(raw string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", raw)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
