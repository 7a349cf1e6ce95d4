package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/loopcard/loop_service/internal/adapters/striga"
)

// UserHandlers handles managed-user HTTP requests
type UserHandlers struct {
	identity *striga.IdentityService
	logger   *zap.Logger
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(identity *striga.IdentityService, logger *zap.Logger) *UserHandlers {
	return &UserHandlers{
		identity: identity,
		logger:   logger,
	}
}

type createUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type updateEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CreateUser creates a managed user held by the provider
// POST /api/v1/users
func (h *UserHandlers) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	user, err := h.identity.CreateManagedUser(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("Failed to create managed user", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateEmail updates the email on a managed user
// PUT /api/v1/users/:id/email
func (h *UserHandlers) UpdateEmail(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_USER_ID", "message": "User id must be a UUID"})
		return
	}

	var req updateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	user, err := h.identity.UpdateEmail(c.Request.Context(), userUUID.String(), req.Email)
	if err != nil {
		h.logger.Error("Failed to update managed user email", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser retrieves the provider's view of a managed user
// GET /api/v1/users/:id
func (h *UserHandlers) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_USER_ID", "message": "User id must be a UUID"})
		return
	}

	state, err := h.identity.GetUserState(c.Request.Context(), userID.String())
	if err != nil {
		h.logger.Error("Failed to get user state", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// ConnectGateway connects a managed user to a gateway. The response
// reports whether the user was also approved (sandbox only).
// POST /api/v1/users/:id/gateways/:gatewayId/connect
func (h *UserHandlers) ConnectGateway(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_USER_ID", "message": "User id must be a UUID"})
		return
	}

	gatewayUUID, err := uuid.Parse(c.Param("gatewayId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_GATEWAY_ID", "message": "Gateway id must be a UUID"})
		return
	}

	approved, err := h.identity.ConnectUserToGateway(c.Request.Context(), userUUID.String(), gatewayUUID.String())
	if err != nil {
		h.logger.Error("Failed to connect user to gateway", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"connected": true, "approved": approved})
}
