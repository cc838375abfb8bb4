package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/http/handlers"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/service"
)

type DashboardController struct {
	dashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Summary godoc
// @Summary     Dashboard summary
// @Description Returns revenue, entity counts and the recent sales series
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} dto.DashboardSummary
// @Failure     503 {object} handlers.ErrorResponse
// @Router      /api/v1/dashboard [get]
func (dc *DashboardController) Summary(c *gin.Context) {
	summary, err := dc.dashboardService.Summary(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
