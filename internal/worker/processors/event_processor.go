package processors

import (
	"context"
	"time"

	"cataloger/internal/broker"
	"cataloger/internal/config"
	"cataloger/internal/logger"
	"cataloger/internal/services/imghost"
	"cataloger/internal/services/watermark"
)

// EventProcessor reacts to pipeline events. On product.published it runs
// the product's images through the watermark service and re-hosts the
// results; on sync.completed it records the run stats.
type EventProcessor struct {
	config    *config.Config
	logger    *logger.Logger
	watermark *watermark.Client
	imageHost *imghost.Client
}

func NewEventProcessor(cfg *config.Config, logger *logger.Logger) *EventProcessor {
	return &EventProcessor{
		config:    cfg,
		logger:    logger,
		watermark: watermark.NewClient(cfg.WatermarkURL, cfg.WatermarkAPIKey, logger),
		imageHost: imghost.NewClient(cfg.ImageHostURL, cfg.ImageHostAPIKey, logger),
	}
}

func (ep *EventProcessor) Process(event broker.Event) error {
	switch event.Type {
	case broker.EventProductPublished:
		return ep.processProductPublished(event)
	case broker.EventSyncCompleted:
		ep.logger.Info("Post sync completed: %v processed of %v total",
			event.Data["processed"], event.Data["total"])
		return nil
	default:
		ep.logger.Debug("Ignoring event type %s", event.Type)
		return nil
	}
}

// processProductPublished watermarks and re-hosts every image of the
// published product. A single failed image logs and moves on; the event is
// never retried for the remaining images' sake.
func (ep *EventProcessor) processProductPublished(event broker.Event) error {
	images, _ := event.Data["images"].([]interface{})
	if len(images) == 0 {
		ep.logger.Debug("Product %s published with no images", event.ProductID)
		return nil
	}

	title, _ := event.Data["title"].(string)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, raw := range images {
		imageURL, ok := raw.(string)
		if !ok || imageURL == "" {
			continue
		}

		marked, err := ep.watermark.Apply(ctx, watermark.Request{ImageURL: imageURL})
		if err != nil {
			ep.logger.Error("Watermark failed for %s: %v", imageURL, err)
			continue
		}

		hosted, err := ep.imageHost.Upload(ctx, imghost.UploadRequest{
			SourceURL: marked.WatermarkedURL,
			Name:      title,
		})
		if err != nil {
			ep.logger.Error("Re-hosting failed for %s: %v", marked.WatermarkedURL, err)
			continue
		}

		ep.logger.Info("Watermarked image hosted at %s", hosted.URL)
	}

	return nil
}
