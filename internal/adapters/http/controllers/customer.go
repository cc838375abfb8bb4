package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/http/handlers"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/domain"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/service"
)

type CustomerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	TotalOrders int    `json:"totalOrders"`
}

func NewCustomerResponse(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          string(customer.ID),
		Name:        customer.Name,
		Email:       customer.Email,
		TotalOrders: customer.TotalOrders,
	}
}

type CustomerController struct {
	customerService *service.CustomerService
}

func NewCustomerController(customerService *service.CustomerService) *CustomerController {
	return &CustomerController{customerService: customerService}
}

// GetAll godoc
// @Summary     List customers
// @Tags        customers
// @Produce     json
// @Success     200 {array} CustomerResponse
// @Failure     503 {object} handlers.ErrorResponse
// @Router      /api/v1/customers [get]
func (cc *CustomerController) GetAll(c *gin.Context) {
	customers, err := cc.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	response := make([]CustomerResponse, len(customers))
	for i := range customers {
		response[i] = NewCustomerResponse(&customers[i])
	}
	c.JSON(http.StatusOK, response)
}
