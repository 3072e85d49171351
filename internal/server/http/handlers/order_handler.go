package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// Save handles POST /save-order.
func (h *OrderHandler) Save(c *gin.Context) {
	var req dto.SaveOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}
	if len(req.Orders) == 0 {
		respondError(c, http.StatusBadRequest, "No orders received")
		return
	}

	items := make([]model.OrderItem, 0, len(req.Orders))
	for _, o := range req.Orders {
		items = append(items, model.OrderItem{Item: o.Item, Price: o.Price, Qty: o.Qty})
	}

	inserted, err := h.facade.SaveOrders(c.Request.Context(), items)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "No orders received")
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "save orders failed",
			slog.Int("items", len(items)), slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to save orders")
		return
	}

	c.JSON(http.StatusOK, dto.SaveOrdersResponse{Message: "Orders saved successfully", Inserted: inserted})
}

// List handles GET /orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "fetch orders failed", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}
