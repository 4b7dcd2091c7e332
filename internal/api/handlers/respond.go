package handlers

import (
	"errors"
	"net/http"

	"cataloger/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP statuses: 400 for
// validation, 502 for remote failures, 500 for everything else. Raw stack
// traces never reach the client.
func respondError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	var remoteErr *apperrors.RemoteAPIError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &remoteErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": remoteErr.Message, "status": remoteErr.StatusCode})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
