package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/loopcard/loop_service/internal/adapters/striga"
)

// CardHandlers handles card-related HTTP requests
type CardHandlers struct {
	cards  *striga.CardService
	logger *zap.Logger
}

// NewCardHandlers creates new card handlers
func NewCardHandlers(cards *striga.CardService, logger *zap.Logger) *CardHandlers {
	return &CardHandlers{
		cards:  cards,
		logger: logger,
	}
}

// GetProducts lists card products under our card application
// GET /api/v1/cards/products
func (h *CardHandlers) GetProducts(c *gin.Context) {
	products, err := h.cards.FetchCardApplicationProducts(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to fetch card products", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// CreateCustomer creates a card customer
// POST /api/v1/cards/customers
func (h *CardHandlers) CreateCustomer(c *gin.Context) {
	var req striga.CreateCardCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	customer, err := h.cards.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create card customer", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomerCards lists the cards issued to a customer
// GET /api/v1/cards/customers/:id/cards
func (h *CardHandlers) GetCustomerCards(c *gin.Context) {
	cards, err := h.cards.GetCardsByCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to get customer cards", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cards)
}

// GetCardDetails retrieves the sensitive payload of a card via the
// token-then-fetch flow
// POST /api/v1/cards/details
func (h *CardHandlers) GetCardDetails(c *gin.Context) {
	var req striga.CardDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_REQUEST", "message": err.Error()})
		return
	}
	if req.CardID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_REQUEST", "message": "cardId is required"})
		return
	}

	details, err := h.cards.GetCardDetails(c.Request.Context(), &req)
	if err != nil {
		// The error is logged without the intermediate token; the
		// transport never surfaces it.
		h.logger.Error("Failed to get card details", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}
