package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	procurementapp "github.com/smartbill/backend/internal/application/procurement"
	"github.com/smartbill/backend/internal/interfaces/http/middleware"
)

// PurchaseHandler handles supplier stock intake endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *procurementapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *procurementapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Record handles POST /purchases
func (h *PurchaseHandler) Record(c *gin.Context) {
	var req procurementapp.RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			middleware.HandleValidationError(c, err)
			return
		}
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.purchaseService.Record(c.Request.Context(), req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /purchases, optionally filtered by product_id
func (h *PurchaseHandler) List(c *gin.Context) {
	if productIDStr := c.Query("product_id"); productIDStr != "" {
		productID, err := uuid.Parse(productIDStr)
		if err != nil {
			h.BadRequest(c, "Invalid product_id")
			return
		}
		resp, err := h.purchaseService.ListByProduct(c.Request.Context(), productID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
		return
	}

	resp, err := h.purchaseService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID handles GET /purchases/:id
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	idStr, ok := h.bindID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.BadRequest(c, "Invalid id")
		return
	}

	resp, err := h.purchaseService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
