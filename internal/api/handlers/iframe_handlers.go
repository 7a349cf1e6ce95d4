package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/loopcard/loop_service/internal/adapters/striga"
)

// IframeHandlers handles iframe embed URL requests
type IframeHandlers struct {
	iframes *striga.IframeService
	logger  *zap.Logger
}

// NewIframeHandlers creates new iframe handlers
func NewIframeHandlers(iframes *striga.IframeService, logger *zap.Logger) *IframeHandlers {
	return &IframeHandlers{
		iframes: iframes,
		logger:  logger,
	}
}

// GetIframeURL mints a fresh scoped token and returns the embed URL
// GET /api/v1/iframe/:kind/url?userUuid=...
func (h *IframeHandlers) GetIframeURL(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Query("userUuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_USER_ID", "message": "userUuid must be a UUID"})
		return
	}

	kind := striga.IframeKind(c.Param("kind"))
	url, err := h.iframes.GetIframeURL(c.Request.Context(), kind, userUUID.String())
	if err != nil {
		h.logger.Error("Failed to build iframe URL", zap.String("kind", string(kind)), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
