package handlers

import (
	"net/http"

	"cataloger/internal/logger"
	"cataloger/internal/services/imghost"
	"cataloger/internal/services/watermark"

	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	imageHost *imghost.Client
	watermark *watermark.Client
	logger    *logger.Logger
}

func NewImageHandler(imageHost *imghost.Client, watermark *watermark.Client, logger *logger.Logger) *ImageHandler {
	return &ImageHandler{
		imageHost: imageHost,
		watermark: watermark,
		logger:    logger,
	}
}

type imageUploadRequest struct {
	Image      string  `json:"image"`
	SourceURL  string  `json:"source_url"`
	Name       string  `json:"name"`
	Expiration int     `json:"expiration"`
	Watermark  bool    `json:"watermark"`
	Position   string  `json:"position"`
	Opacity    float64 `json:"opacity"`
}

// Upload hosts an image, optionally running it through the watermark
// service first. Watermarking needs a source URL.
func (h *ImageHandler) Upload(c *gin.Context) {
	var req imageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sourceURL := req.SourceURL
	if req.Watermark {
		if sourceURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "watermarking requires a source_url"})
			return
		}
		marked, err := h.watermark.Apply(c.Request.Context(), watermark.Request{
			ImageURL: sourceURL,
			Position: req.Position,
			Opacity:  req.Opacity,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		sourceURL = marked.WatermarkedURL
	}

	result, err := h.imageHost.Upload(c.Request.Context(), imghost.UploadRequest{
		Base64:     req.Image,
		SourceURL:  sourceURL,
		Name:       req.Name,
		Expiration: req.Expiration,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
