package controller

import (
	"strconv"

	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// @Summary List known question categories
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/mcqs/types [get]
func (c *QuestionController) GetTypes(ctx *gin.Context) {
	types, err := c.QuestionService.DistinctTypes(ctx.Request.Context())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, types)
}

// @Summary Serve a page of questions, recording the attempt
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Param type query string false "question category"
// @Param page query int false "page number, 1-based"
// @Param page_size query int false "questions per page"
// @Success 200 {object} util.Response
// @Router /api/mcqs [get]
func (c *QuestionController) GetQuestions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	mcqType := ctx.Query("type")
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))

	result, err := c.QuestionService.GetQuestionPage(ctx.Request.Context(), user.UserID, mcqType, page, pageSize)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Create a question
// @Tags Question Administration
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.MCQCreateRequest true "question data"
// @Success 201 {object} util.Response
// @Router /api/admin/mcq [post]
func (c *QuestionController) CreateMCQ(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.MCQCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	mcq, err := c.QuestionService.CreateMCQ(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, mcq)
}

// @Summary Update a question
// @Tags Question Administration
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "mcq id"
// @Param body body service.MCQUpdateRequest true "fields to change"
// @Success 200 {object} util.Response
// @Router /api/admin/mcq/{id} [put]
func (c *QuestionController) UpdateMCQ(ctx *gin.Context) {
	var req service.MCQUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	mcq, err := c.QuestionService.UpdateMCQ(ctx.Param("id"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, mcq)
}

// @Summary Delete a question
// @Tags Question Administration
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "mcq id"
// @Success 200 {object} util.Response
// @Router /api/admin/mcq/{id} [delete]
func (c *QuestionController) DeleteMCQ(ctx *gin.Context) {
	if err := c.QuestionService.DeleteMCQ(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
