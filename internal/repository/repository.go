package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cataloger/internal/apperrors"
	"cataloger/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository owns all reads and writes for products, synced posts,
// categories, brands and process records. Every write is safe to repeat
// with the same logical input: upserts are keyed by the natural key of the
// row, so recovery after a partial failure is a plain re-run.
type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UpsertPosts inserts or replaces posts keyed by their external id.
// An empty batch returns 0 without touching the database.
func (r *Repository) UpsertPosts(ctx context.Context, posts []models.SyncedPost) (int64, error) {
	if len(posts) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wp_id"}},
		UpdateAll: true,
	}).Create(&posts)
	if res.Error != nil {
		return 0, &apperrors.PersistenceError{Op: "upsert posts", Err: res.Error}
	}
	return res.RowsAffected, nil
}

// UpsertCategories replaces categories wholesale, keyed by the platform id.
func (r *Repository) UpsertCategories(ctx context.Context, categories []models.Category) (int64, error) {
	if len(categories) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&categories)
	if res.Error != nil {
		return 0, &apperrors.PersistenceError{Op: "upsert categories", Err: res.Error}
	}
	return res.RowsAffected, nil
}

// UpsertBrands replaces brands wholesale, keyed by the platform id.
func (r *Repository) UpsertBrands(ctx context.Context, brands []models.Brand) (int64, error) {
	if len(brands) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&brands)
	if res.Error != nil {
		return 0, &apperrors.PersistenceError{Op: "upsert brands", Err: res.Error}
	}
	return res.RowsAffected, nil
}

func (r *Repository) FindPostsPaginated(ctx context.Context, page, pageSize int) ([]models.SyncedPost, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	query := r.db.WithContext(ctx).Model(&models.SyncedPost{})
	query.Count(&total)

	var posts []models.SyncedPost
	err := query.Order("wp_created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *Repository) FindProductsPaginated(ctx context.Context, page, pageSize int, status string) ([]models.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var products []models.Product
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// FindProductByID returns nil when the product does not exist.
func (r *Repository) FindProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return &apperrors.PersistenceError{Op: "create product", Err: err}
	}
	return nil
}

// UpdateProduct applies a column patch and returns the updated row.
func (r *Repository) UpdateProduct(ctx context.Context, id string, patch map[string]interface{}) (*models.Product, error) {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return nil, &apperrors.PersistenceError{Op: "update product", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return nil, &apperrors.PersistenceError{Op: "update product", Err: fmt.Errorf("product %s not found", id)}
	}
	return r.FindProductByID(ctx, id)
}

// UpdateProductStatus writes the lifecycle status and error message only.
func (r *Repository) UpdateProductStatus(ctx context.Context, id string, status models.ProductStatus, errMsg *string) error {
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        status,
		"error_message": errMsg,
		"updated_at":    time.Now(),
	}).Error
	if err != nil {
		return &apperrors.PersistenceError{Op: "update product status", Err: err}
	}
	return nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *Repository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	err := r.db.WithContext(ctx).Order("name ASC").Find(&brands).Error
	return brands, err
}

func (r *Repository) CreateProcess(ctx context.Context, record *models.ProcessRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return &apperrors.PersistenceError{Op: "create process record", Err: err}
	}
	return nil
}

func (r *Repository) ListProcesses(ctx context.Context, page, pageSize int) ([]models.ProcessRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	query := r.db.WithContext(ctx).Model(&models.ProcessRecord{})
	query.Count(&total)

	var records []models.ProcessRecord
	err := query.Order("started_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
