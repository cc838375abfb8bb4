package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/http/handlers"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/dto"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/service"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/serviceerrors"
)

type OrderController struct {
	orderService *service.OrderService
}

type LineItemResponse struct {
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	Currency  string  `json:"currency"`
	Quantity  int     `json:"quantity"`
}

type OrderResponse struct {
	ID           string             `json:"id"`
	CustomerName string             `json:"customerName"`
	Date         time.Time          `json:"date"`
	Total        float64            `json:"total"`
	Items        []LineItemResponse `json:"items"`
}

func NewOrderResponse(order *domain.Order) OrderResponse {
	items := make([]LineItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = LineItemResponse{
			Title:     item.Title,
			UnitPrice: item.UnitPrice.Float64(),
			Currency:  item.Currency,
			Quantity:  item.Quantity,
		}
	}
	return OrderResponse{
		ID:           string(order.ID),
		CustomerName: order.CustomerName,
		Date:         order.Date,
		Total:        order.Total.Float64(),
		Items:        items,
	}
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// GetAll godoc
// @Summary     List orders
// @Description Returns all orders, most recent first
// @Tags        orders
// @Produce     json
// @Success     200 {array} OrderResponse
// @Failure     503 {object} handlers.ErrorResponse
// @Router      /api/v1/orders [get]
func (oc *OrderController) GetAll(c *gin.Context) {
	orders, err := oc.orderService.ListOrders(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	response := make([]OrderResponse, len(orders))
	for i := range orders {
		response[i] = NewOrderResponse(&orders[i])
	}
	c.JSON(http.StatusOK, response)
}

// PlaceOrder godoc
// @Summary     Place an order
// @Description Records the order, upserts the customer aggregate and persists both in one write
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header   string                 false "Idempotency key"
// @Param       request         body     dto.CreateOrderRequest true  "Order data"
// @Success     201 {object} OrderResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     422 {object} handlers.ErrorResponse
// @Failure     429 {object} handlers.ErrorResponse
// @Failure     503 {object} handlers.ErrorResponse
// @Router      /api/v1/orders [post]
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	var request dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	idempotencyKey := c.GetHeader("Idempotency-Key")
	order, err := oc.orderService.PlaceOrder(c.Request.Context(), idempotencyKey, &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewOrderResponse(order))
}
