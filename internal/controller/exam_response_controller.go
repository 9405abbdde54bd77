package controller

import (
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamResponseController struct {
	ResponseService *service.ExamResponseService
}

func NewExamResponseController(responseService *service.ExamResponseService) *ExamResponseController {
	return &ExamResponseController{ResponseService: responseService}
}

// Start godoc
// @Summary Start or resume an exam attempt
// @Description Returns the running attempt when one exists instead of creating another.
// @Tags exam-responses
// @Produce json
// @Security BearerAuth
// @Param examId path string true "exam id"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/exam-responses/start/{examId} [post]
func (c *ExamResponseController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.ResponseService.Start(ctx.Param("examId"), claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if result.Resumed {
		util.Success(ctx, "exam attempt resumed", result)
		return
	}
	util.Created(ctx, "exam attempt started", result)
}

// Answer godoc
// @Summary Save or replace the answer to one question
// @Tags exam-responses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param responseId path string true "response id"
// @Param body body service.AnswerReq true "answer"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/exam-responses/{responseId}/answer [post]
func (c *ExamResponseController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.AnswerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.ResponseService.Answer(ctx.Param("responseId"), claims.UserID, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "answer saved", answer)
}

// Submit godoc
// @Summary Submit the attempt for grading
// @Tags exam-responses
// @Produce json
// @Security BearerAuth
// @Param responseId path string true "response id"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/exam-responses/{responseId}/submit [post]
func (c *ExamResponseController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.ResponseService.Submit(ctx.Param("responseId"), claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "exam submitted", result)
}

// ListForStudent godoc
// @Summary List the authenticated student's finished attempts
// @Tags exam-responses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/exam-responses/student [get]
func (c *ExamResponseController) ListForStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	responses, err := c.ResponseService.ListForStudent(claims.UserID)
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, "exam responses listed", responses)
}

// Get godoc
// @Summary Get one attempt with its answers
// @Description Visible to the owning student and to the teacher who owns the exam.
// @Tags exam-responses
// @Produce json
// @Security BearerAuth
// @Param responseId path string true "response id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/exam-responses/{responseId} [get]
func (c *ExamResponseController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	response, exam, err := c.ResponseService.GetForUser(ctx.Param("responseId"), claims.UserID, claims.Role)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "exam response found", gin.H{"response": response, "exam": exam})
}

// Grade godoc
// @Summary Grade the manually scored answers of an attempt
// @Tags exam-responses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param responseId path string true "response id"
// @Param body body service.GradeReq true "per-question grades"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/exam-responses/{responseId}/grade [post]
func (c *ExamResponseController) Grade(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.GradeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ResponseService.Grade(ctx.Param("responseId"), claims.UserID, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "exam graded", result)
}
