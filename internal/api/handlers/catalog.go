package handlers

import (
	"net/http"
	"strconv"
	"time"

	"cataloger/internal/aggregator"
	"cataloger/internal/logger"
	"cataloger/internal/models"
	"cataloger/internal/repository"
	"cataloger/internal/services/woocommerce"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	repo       *repository.Repository
	commerce   *woocommerce.Client
	aggregator *aggregator.Aggregator
	logger     *logger.Logger
}

func NewCatalogHandler(repo *repository.Repository, commerce *woocommerce.Client, aggregator *aggregator.Aggregator, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo:       repo,
		commerce:   commerce,
		aggregator: aggregator,
		logger:     logger,
	}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// RefreshCategories pulls the commerce category list and replaces the local
// rows wholesale.
func (h *CatalogHandler) RefreshCategories(c *gin.Context) {
	remote, err := h.commerce.ListCategories(c.Request.Context(), woocommerce.ListOptions{PerPage: 100})
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	rows := make([]models.Category, len(remote))
	for i, category := range remote {
		rows[i] = models.Category{
			ID:        strconv.FormatInt(category.ID, 10),
			Name:      category.Name,
			Slug:      category.Slug,
			UpdatedAt: now,
		}
	}

	count, err := h.repo.UpsertCategories(c.Request.Context(), rows)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"refreshed": count}})
}

func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.repo.ListBrands(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brands"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": brands})
}

// RefreshBrands pulls the brand attribute's terms and replaces the local
// rows wholesale.
func (h *CatalogHandler) RefreshBrands(c *gin.Context) {
	remote, err := h.commerce.ListBrands(c.Request.Context(), woocommerce.ListOptions{PerPage: 100})
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	rows := make([]models.Brand, len(remote))
	for i, brand := range remote {
		rows[i] = models.Brand{
			ID:        strconv.FormatInt(brand.ID, 10),
			Name:      brand.Name,
			Slug:      brand.Slug,
			UpdatedAt: now,
		}
	}

	count, err := h.repo.UpsertBrands(c.Request.Context(), rows)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"refreshed": count}})
}

func (h *CatalogHandler) ListAttributes(c *gin.Context) {
	attributes, err := h.commerce.ListAttributesWithTerms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": attributes})
}

type variantRequest struct {
	CategoryIDs []int64 `json:"category_ids" binding:"required"`
}

func (h *CatalogHandler) SuggestedVariants(c *gin.Context) {
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	variants, err := h.aggregator.SuggestedVariants(c.Request.Context(), req.CategoryIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": variants})
}

func (h *CatalogHandler) GroupedVariants(c *gin.Context) {
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	grouped, err := h.aggregator.GroupedOptions(c.Request.Context(), req.CategoryIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": grouped})
}
