package controller

import (
	"strconv"

	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// @Summary List all users
// @Tags User Administration
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.UserService.ListUsers()
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// @Summary Get one user
// @Tags User Administration
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "user id"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	user, err := c.UserService.GetUser(uint(id))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary Update a user's mutable fields
// @Tags User Administration
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "user id"
// @Param body body service.UserUpdateRequest true "fields to change"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.UserUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateUser(uint(id), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary Delete a user
// @Tags User Administration
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "user id"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.UserService.DeleteUser(uint(id)); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
