package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loopcard/loop_service/internal/adapters/striga"
)

// respondError maps adapter errors onto HTTP responses. Unsupported
// kinds are caller mistakes, provider errors keep their status, and a
// broken provider response is a bad gateway.
func respondError(c *gin.Context, err error) {
	var kindErr *striga.UnsupportedKindError
	if errors.As(err, &kindErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UNSUPPORTED_KIND", "message": kindErr.Error()})
		return
	}

	var apiErr *striga.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": "PROVIDER_ERROR", "message": apiErr.Message, "code": apiErr.Code})
		return
	}

	var protoErr *striga.ProtocolError
	if errors.As(err, &protoErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "PROVIDER_PROTOCOL_ERROR", "message": protoErr.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL_ERROR", "message": "Request failed"})
}
