package controller

import (
	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService    *service.QuizService
	HistoryService *service.HistoryService
}

func NewQuizController(quizService *service.QuizService, historyService *service.HistoryService) *QuizController {
	return &QuizController{
		QuizService:    quizService,
		HistoryService: historyService,
	}
}

// @Summary Submit answers for scoring
// @Tags Quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmitRequest true "answers"
// @Success 200 {object} util.Response
// @Router /api/quiz/submit [post]
func (c *QuizController) SubmitAnswers(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.SubmitAnswers(user.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary List the caller's quiz history
// @Tags Quiz
// @Produce json
// @Security ApiKeyAuth
// @Param sort_by query string false "sortable column"
// @Param order query string false "asc or desc"
// @Success 200 {object} util.Response
// @Router /api/histories [get]
func (c *QuizController) ListHistories(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	sortBy := ctx.Query("sort_by")
	order := ctx.DefaultQuery("order", "asc")

	histories, err := c.HistoryService.ListByUser(user.UserID, sortBy, order)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, histories)
}

// @Summary View one scored attempt with per-question detail
// @Tags Quiz
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "history id"
// @Success 200 {object} util.Response
// @Router /api/histories/{id} [get]
func (c *QuizController) GetHistoryDetail(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.HistoryService.ViewParticularHistory(user.UserID, user.Role, ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
