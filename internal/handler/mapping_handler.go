package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pkitazos/url-shortener/internal/domain"
	"github.com/pkitazos/url-shortener/internal/service"
	"github.com/pkitazos/url-shortener/pkg/logger"
)

// MappingHandler exposes the three core operations over HTTP
type MappingHandler struct {
	service service.ShortenerService
	logger  *logger.Logger
}

// NewMappingHandler creates a new handler with dependencies
func NewMappingHandler(service service.ShortenerService, logger *logger.Logger) *MappingHandler {
	return &MappingHandler{
		service: service,
		logger:  logger,
	}
}

// Shorten handles POST /api/v1/shorten
func (h *MappingHandler) Shorten(c *gin.Context) {
	var req domain.ShortenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	resp, err := h.service.Shorten(c.Request.Context(), req.URL)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Redirect handles GET /:shortCode
func (h *MappingHandler) Redirect(c *gin.Context) {
	shortCode := c.Param("shortCode")

	longURL, err := h.service.Redirect(c.Request.Context(), shortCode)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// Codes are immutable once assigned, so a permanent redirect is safe
	c.Redirect(http.StatusMovedPermanently, longURL)
}

// Expand handles GET /api/v1/expand/:shortCode.
// Same resolution as Redirect, but the mapping is returned for inspection
// instead of being followed.
func (h *MappingHandler) Expand(c *gin.Context) {
	shortCode := c.Param("shortCode")

	longURL, err := h.service.Expand(c.Request.Context(), shortCode)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.ExpandResponse{
		ShortCode: shortCode,
		LongURL:   longURL,
	})
}

// handleError maps domain errors onto HTTP responses
func (h *MappingHandler) handleError(c *gin.Context, err error) {
	var appErr *domain.AppError

	switch {
	case errors.As(err, &appErr):
		if appErr.Internal {
			h.logger.Error("request failed", "error", appErr.Err)
			c.JSON(appErr.StatusCode, domain.ErrorResponse{
				Error:   "internal_error",
				Message: appErr.Message,
				Code:    appErr.StatusCode,
			})
		} else {
			c.JSON(appErr.StatusCode, domain.ErrorResponse{
				Error:   "client_error",
				Message: appErr.Message,
				Code:    appErr.StatusCode,
			})
		}

	case errors.Is(err, domain.ErrMappingNotFound):
		c.JSON(http.StatusNotFound, domain.ErrorResponse{
			Error:   "not_found",
			Message: "Short code not recognised",
			Code:    http.StatusNotFound,
		})

	case errors.Is(err, domain.ErrInvalidURL), errors.Is(err, domain.ErrInvalidShortCode):
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})

	case errors.Is(err, domain.ErrStoreUnavailable):
		h.logger.Error("store unavailable", "error", err)
		c.JSON(http.StatusServiceUnavailable, domain.ErrorResponse{
			Error:   "store_unavailable",
			Message: "Storage temporarily unavailable",
			Code:    http.StatusServiceUnavailable,
		})

	default:
		h.logger.Error("unexpected error", "error", err)
		c.JSON(http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "internal_error",
			Message: "An unexpected error occurred",
			Code:    http.StatusInternalServerError,
		})
	}
}
