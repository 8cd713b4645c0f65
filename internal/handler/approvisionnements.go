package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Strife-cyber/agro/internal/dto"
	"github.com/Strife-cyber/agro/internal/middleware"
	"github.com/Strife-cyber/agro/internal/service"
)

type ApprovisionnementsHandler struct{ svc service.ApprovisionnementService }

func NewApprovisionnementsHandler(svc service.ApprovisionnementService) *ApprovisionnementsHandler {
	return &ApprovisionnementsHandler{svc: svc}
}

// Create godoc
// @Summary Submit a supply proposal
// @Description A supplier proposes a product delivery (quantity, price, date). The proposal starts pending and must pass business and stock validation before it credits the ledger.
// @Tags approvisionnements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateApprovisionnementRequest true "Proposal detail"
// @Success 201 {object} dto.ApprovisionnementResponse
// @Failure 422 {object} apierror.Error
// @Router /v1/approvisionnements [post]
func (h *ApprovisionnementsHandler) Create(c *gin.Context) {
	var req dto.CreateApprovisionnementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ValidateBD godoc
// @Summary Approve a pending proposal (business validation)
// @Tags approvisionnements
// @Produce json
// @Security BearerAuth
// @Param id path string true "Approvisionnement UUID"
// @Success 200 {object} dto.ApprovisionnementResponse
// @Failure 409 {object} apierror.Error
// @Router /v1/approvisionnements/{id}/validate [post]
func (h *ApprovisionnementsHandler) ValidateBD(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ValidateBD(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RejectBD godoc
// @Summary Reject a pending proposal (business validation)
// @Tags approvisionnements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Approvisionnement UUID"
// @Param body body dto.RejectApprovisionnementRequest false "Rejection reason"
// @Success 200 {object} dto.ApprovisionnementResponse
// @Failure 409 {object} apierror.Error
// @Router /v1/approvisionnements/{id}/reject [post]
func (h *ApprovisionnementsHandler) RejectBD(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.RejectApprovisionnementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RejectBD(c.Request.Context(), middleware.GetActor(c), id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReceiveStock godoc
// @Summary Confirm physical reception of a validated proposal
// @Description Atomically marks the proposal received, credits the stock ledger at the proposed price and opens a pending supplier payment.
// @Tags approvisionnements
// @Produce json
// @Security BearerAuth
// @Param id path string true "Approvisionnement UUID"
// @Success 200 {object} dto.ApprovisionnementResponse
// @Failure 409 {object} apierror.Error
// @Router /v1/approvisionnements/{id}/receive [post]
func (h *ApprovisionnementsHandler) ReceiveStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ReceiveStock(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RejectStock godoc
// @Summary Reject a validated proposal at reception
// @Tags approvisionnements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Approvisionnement UUID"
// @Param body body dto.RejectApprovisionnementRequest false "Rejection reason"
// @Success 200 {object} dto.ApprovisionnementResponse
// @Failure 409 {object} apierror.Error
// @Router /v1/approvisionnements/{id}/reject-stock [post]
func (h *ApprovisionnementsHandler) RejectStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.RejectApprovisionnementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RejectStock(c.Request.Context(), middleware.GetActor(c), id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Fetch one proposal
// @Tags approvisionnements
// @Produce json
// @Security BearerAuth
// @Param id path string true "Approvisionnement UUID"
// @Success 200 {object} dto.ApprovisionnementResponse
// @Failure 404 {object} apierror.Error
// @Router /v1/approvisionnements/{id} [get]
func (h *ApprovisionnementsHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary List proposals
// @Tags approvisionnements
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending | validated_bd | rejected | received"
// @Param supplier_id query string false "Filter by supplier UUID"
// @Param warehouse_id query string false "Filter by warehouse UUID"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Rows per page (default 50)"
// @Success 200 {object} dto.ApprovisionnementListResponse
// @Router /v1/approvisionnements [get]
func (h *ApprovisionnementsHandler) List(c *gin.Context) {
	filter := dto.ApprovisionnementFilter{
		SupplierID:  c.Query("supplier_id"),
		WarehouseID: c.Query("warehouse_id"),
		Status:      c.Query("status"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
