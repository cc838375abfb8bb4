package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/adapters/http/handlers"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/dto"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/service"
	"github.com/pcremoremo-crypto/smoke-oasis-shop/internal/core/serviceerrors"
)

type LoginResponse struct {
	Token string `json:"token"`
}

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login godoc
// @Summary     Admin login
// @Description Exchanges the configured admin credentials for a bearer token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body     dto.LoginRequest true "Credentials"
// @Success     200     {object} LoginResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     401     {object} handlers.ErrorResponse
// @Router      /api/v1/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	token, err := ac.authService.Login(c.Request.Context(), request.Username, request.Password)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{Token: token})
}
