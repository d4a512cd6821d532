package controller

import (
	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// @Summary Register a new user
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body service.RegisterRequest true "registration data"
// @Success 201 {object} util.Response
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"userId": user.ID})
}

// @Summary Log in and receive a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} util.Response
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Username, req.Password)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, loginResponse{AccessToken: token, TokenType: "Bearer"})
}

// @Summary Return the authenticated user's profile
// @Tags Authentication
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}
