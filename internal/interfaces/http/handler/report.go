package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	reportapp "github.com/smartbill/backend/internal/application/report"
)

// ReportHandler handles dashboard and aggregation endpoints
type ReportHandler struct {
	BaseHandler
	aggregationService *reportapp.AggregationService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(aggregationService *reportapp.AggregationService) *ReportHandler {
	return &ReportHandler{aggregationService: aggregationService}
}

// Dashboard handles GET /reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	resp, err := h.aggregationService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// TopSelling handles GET /reports/top-selling with an optional limit
func (h *ReportHandler) TopSelling(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	resp, err := h.aggregationService.TopSellingProducts(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// LowStock handles GET /reports/low-stock
func (h *ReportHandler) LowStock(c *gin.Context) {
	resp, err := h.aggregationService.LowStockProducts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Sales handles GET /reports/sales: today's and this month's totals
func (h *ReportHandler) Sales(c *gin.Context) {
	ctx := c.Request.Context()

	today, err := h.aggregationService.TodaySales(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	month, err := h.aggregationService.MonthSales(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"today_sales": today,
		"month_sales": month,
	})
}
