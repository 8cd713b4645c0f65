package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Strife-cyber/agro/internal/dto"
	"github.com/Strife-cyber/agro/internal/middleware"
	"github.com/Strife-cyber/agro/internal/service"
)

type StocksHandler struct{ svc service.StockService }

func NewStocksHandler(svc service.StockService) *StocksHandler { return &StocksHandler{svc: svc} }

// Adjust godoc
// @Summary Apply a signed correction to a ledger entry
// @Description Locks the (product, warehouse) row and applies the delta. A delta that would drive the quantity negative is refused and nothing changes.
// @Tags stocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AdjustStockRequest true "Adjustment"
// @Success 200 {object} dto.StockEntryResponse
// @Failure 409 {object} apierror.Error
// @Router /v1/stocks/adjust [post]
func (h *StocksHandler) Adjust(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Adjust(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Transfer godoc
// @Summary Move quantity between warehouses
// @Description Atomically debits the source entry and credits (or creates) the destination entry at the source's unit price.
// @Tags stocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.TransferStockRequest true "Transfer"
// @Success 200 {object} dto.StockEntryResponse
// @Failure 409 {object} apierror.Error "insufficient stock at source"
// @Router /v1/stocks/transfer [post]
func (h *StocksHandler) Transfer(c *gin.Context) {
	var req dto.TransferStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Transfer(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Report godoc
// @Summary Aggregate inventory report
// @Description Totals, inventory value, low-stock entries, per-warehouse breakdown and recent stock activity. Read-only.
// @Tags stocks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StockReportResponse
// @Router /v1/stocks/report [get]
func (h *StocksHandler) Report(c *gin.Context) {
	resp, err := h.svc.Report(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alert godoc
// @Summary Check a product against a low-stock threshold
// @Description Compares the product's oldest ledger entry against the threshold. When low, notifies the caller and records the check in the audit log.
// @Tags stocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.StockAlertRequest true "Product and threshold"
// @Success 200 {object} dto.StockAlertResponse
// @Failure 404 {object} apierror.Error
// @Router /v1/stocks/alert [post]
func (h *StocksHandler) Alert(c *gin.Context) {
	var req dto.StockAlertRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Alert(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
