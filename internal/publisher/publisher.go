package publisher

import (
	"context"
	"strings"
	"time"

	"cataloger/internal/apperrors"
	"cataloger/internal/logger"
	"cataloger/internal/models"
	"cataloger/internal/services/woocommerce"
)

// Uploader is the slice of the commerce client the state machine needs.
type Uploader interface {
	UploadProduct(ctx context.Context, product *models.Product, categoryIDs []int64, variants []woocommerce.UploadVariant) (*woocommerce.UploadResult, error)
}

type ProductStore interface {
	FindProductByID(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch map[string]interface{}) (*models.Product, error)
	UpdateProductStatus(ctx context.Context, id string, status models.ProductStatus, errMsg *string) error
}

type EventPublisher interface {
	PublishProductPublished(ctx context.Context, product *models.Product) error
}

// ConfirmRequest carries the final content payload of a confirmation action.
type ConfirmRequest struct {
	Title            string                      `json:"title"`
	MetaDescription  string                      `json:"meta_description"`
	ShortDescription string                      `json:"short_description"`
	Content          string                      `json:"content"`
	Keywords         []string                    `json:"keywords"`
	Price            *int                        `json:"price"`
	Categories       []models.CategoryRef        `json:"categories"`
	Variants         []woocommerce.UploadVariant `json:"variants"`
}

// Publisher drives a product through draft → processing → success/failed.
// Content is persisted before the upload call so a crash mid-flight leaves
// the record visibly processing instead of silently stale. Exactly one
// upload happens per confirmation; a failed product must be re-confirmed by
// hand to retry.
type Publisher struct {
	store    ProductStore
	uploader Uploader
	events   EventPublisher
	logger   *logger.Logger
}

func New(store ProductStore, uploader Uploader, events EventPublisher, logger *logger.Logger) *Publisher {
	return &Publisher{
		store:    store,
		uploader: uploader,
		events:   events,
		logger:   logger,
	}
}

// Confirm applies a confirmation action. It returns nil, nil when the
// product does not exist.
func (p *Publisher) Confirm(ctx context.Context, productID string, req ConfirmRequest) (*models.Product, error) {
	if err := validateConfirm(req); err != nil {
		return nil, err
	}

	product, err := p.store.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.Status == models.StatusProcessing {
		return nil, apperrors.NewValidation("product %s is already processing", productID)
	}

	now := time.Now()
	product, err = p.store.UpdateProduct(ctx, productID, map[string]interface{}{
		"title":             req.Title,
		"meta_description":  req.MetaDescription,
		"short_description": req.ShortDescription,
		"content":           req.Content,
		"keywords":          req.Keywords,
		"price":             req.Price,
		"categories":        req.Categories,
		"status":            models.StatusProcessing,
		"process_at":        now,
		"confirmed":         true,
		"error_message":     nil,
		"finished_at":       nil,
	})
	if err != nil {
		return nil, err
	}

	categoryIDs := make([]int64, len(req.Categories))
	for i, category := range req.Categories {
		categoryIDs[i] = category.ID
	}

	result, uploadErr := p.uploader.UploadProduct(ctx, product, categoryIDs, req.Variants)
	if uploadErr != nil {
		message := uploadErr.Error()
		if message == "" {
			message = "product upload failed"
		}
		// Best-effort failure write; the upload error stays the one
		// surfaced to the caller.
		if statusErr := p.store.UpdateProductStatus(ctx, productID, models.StatusFailed, &message); statusErr != nil {
			p.logger.Error("failed to mark product %s as failed: %v", productID, statusErr)
		}
		return nil, uploadErr
	}

	finished := time.Now()
	product, err = p.store.UpdateProduct(ctx, productID, map[string]interface{}{
		"status":      models.StatusSuccess,
		"woo_id":      result.ExternalID,
		"preview_url": result.PreviewURL,
		"finished_at": finished,
	})
	if err != nil {
		return nil, err
	}

	if p.events != nil {
		if err := p.events.PublishProductPublished(ctx, product); err != nil {
			p.logger.Error("failed to publish product.published for %s: %v", productID, err)
		}
	}

	return product, nil
}

func validateConfirm(req ConfirmRequest) error {
	var missing []string
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(req.MetaDescription) == "" {
		missing = append(missing, "meta_description")
	}
	if strings.TrimSpace(req.ShortDescription) == "" {
		missing = append(missing, "short_description")
	}
	if strings.TrimSpace(req.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return apperrors.NewValidation("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
