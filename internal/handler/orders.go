package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Strife-cyber/agro/internal/dto"
	"github.com/Strife-cyber/agro/internal/middleware"
	"github.com/Strife-cyber/agro/internal/service"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler { return &OrdersHandler{svc: svc} }

// Process godoc
// @Summary Place an order
// @Description One atomic transaction: validates every line, decrements the stock ledger, creates the order with its payment record and optional delivery. Any shortage rolls the whole order back.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ProcessOrderRequest true "Order detail"
// @Success 201 {object} dto.OrderResponse
// @Failure 409 {object} apierror.Error "insufficient stock or state conflict"
// @Router /v1/orders [post]
func (h *OrdersHandler) Process(c *gin.Context) {
	var req dto.ProcessOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ProcessOrder(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary Fetch one order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order UUID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} apierror.Error
// @Router /v1/orders/{id} [get]
func (h *OrdersHandler) Get(c *gin.Context) {
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
// @Summary List orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending | paid | delivered | cancelled"
// @Param client_id query string false "Filter by client UUID"
// @Param warehouse_id query string false "Filter by warehouse UUID"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Rows per page (default 50)"
// @Success 200 {object} dto.OrderListResponse
// @Router /v1/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	filter := dto.OrderFilter{
		ClientID:    c.Query("client_id"),
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
