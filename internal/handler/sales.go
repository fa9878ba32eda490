package handler

import (
	"fmt"
	"net/http"
	"time"

	"retailpos/internal/dto"
	"retailpos/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	sales    service.SaleService
	reports  service.ReportService
	receipts service.ReceiptService
}

func NewSalesHandler(sales service.SaleService, reports service.ReportService, receipts service.ReceiptService) *SalesHandler {
	return &SalesHandler{sales: sales, reports: reports, receipts: receipts}
}

// Create godoc
// @Summary      Record a sale
// @Description  Prices every line from the catalog, skips unknown product ids and stores the sale with its items in one transaction.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateSaleRequest true "Cart"
// @Success      201  {object} dto.SaleResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /sales [post]
func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.sales.Create(c.Request.Context(), cashierID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get GET /sales/:id
func (h *SalesHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.sales.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History godoc
// @Summary      Sales history, newest first
// @Description  from and to are inclusive. Only from gives an open range; to without from is ignored.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "Start date or timestamp"
// @Param        to   query string false "End date or timestamp"
// @Success      200  {array}  dto.SaleResponse
// @Failure      400  {object} apierror.APIError
// @Router       /sales/history [get]
func (h *SalesHandler) History(c *gin.Context) {
	var filter dto.HistoryFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.reports.History(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportHistory GET /sales/history/export: same selection as History, as CSV.
func (h *SalesHandler) ExportHistory(c *gin.Context) {
	var filter dto.HistoryFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	csv, err := h.reports.ExportHistoryCSV(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	name := fmt.Sprintf("sales_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csv)
}

// Today godoc
// @Summary      Today's sales summary
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.TodaySummaryResponse
// @Router       /sales/dashboard/today [get]
func (h *SalesHandler) Today(c *gin.Context) {
	resp, err := h.reports.TodaySummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Receipt GET /sales/:id/receipt (PDF)
func (h *SalesHandler) Receipt(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	pdf, name, err := h.receipts.PDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// EmailReceipt POST /sales/:id/receipt/email
func (h *SalesHandler) EmailReceipt(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	to, err := h.receipts.Email(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent_to": to})
}
