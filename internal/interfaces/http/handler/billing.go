package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	billingapp "github.com/smartbill/backend/internal/application/billing"
	"github.com/smartbill/backend/internal/interfaces/http/middleware"
)

// BillingHandler handles cart quoting and invoice settlement endpoints
type BillingHandler struct {
	BaseHandler
	settlementService *billingapp.SettlementService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(settlementService *billingapp.SettlementService) *BillingHandler {
	return &BillingHandler{settlementService: settlementService}
}

// Quote handles POST /billing/quote: cart totals without settling
func (h *BillingHandler) Quote(c *gin.Context) {
	var req billingapp.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			middleware.HandleValidationError(c, err)
			return
		}
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.settlementService.Quote(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Settle handles POST /billing/invoices: settles a cart into an invoice
func (h *BillingHandler) Settle(c *gin.Context) {
	var req billingapp.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			middleware.HandleValidationError(c, err)
			return
		}
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.settlementService.Settle(c.Request.Context(), req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /billing/invoices newest-first
func (h *BillingHandler) List(c *gin.Context) {
	resp, err := h.settlementService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID handles GET /billing/invoices/:id
func (h *BillingHandler) GetByID(c *gin.Context) {
	idStr, ok := h.bindID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.BadRequest(c, "Invalid id")
		return
	}

	resp, err := h.settlementService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByNumber handles GET /billing/invoices/number/:number
func (h *BillingHandler) GetByNumber(c *gin.Context) {
	resp, err := h.settlementService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
