package controller

import (
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// Create godoc
// @Summary Create an exam with its question bank
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ExamReq true "exam definition"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/v1/exams [post]
func (c *ExamController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.ExamReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.Create(claims.UserID, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, "exam created", exam)
}

// ListForTeacher godoc
// @Summary List the authenticated teacher's exams
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/exams/teacher [get]
func (c *ExamController) ListForTeacher(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	exams, err := c.ExamService.ListByTeacher(claims.UserID)
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, "exams listed", exams)
}

// ListForStudent godoc
// @Summary List open exams for the authenticated student's class
// @Description Each exam is annotated with the student's latest attempt status.
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/exams/student [get]
func (c *ExamController) ListForStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	views, err := c.ExamService.ListForStudent(claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "exams listed", views)
}

// Get godoc
// @Summary Get one exam with its questions
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path string true "exam id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/exams/{id} [get]
func (c *ExamController) Get(ctx *gin.Context) {
	exam, err := c.ExamService.GetByID(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "exam found", exam)
}

// Update godoc
// @Summary Replace an exam and its question bank
// @Description Fails once any student has started the exam.
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "exam id"
// @Param body body service.ExamReq true "exam definition"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/exams/{id} [put]
func (c *ExamController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.ExamReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.Update(ctx.Param("id"), claims.UserID, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "exam updated", exam)
}

// Delete godoc
// @Summary Delete an exam
// @Description Fails once any student has started the exam.
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path string true "exam id"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/exams/{id} [delete]
func (c *ExamController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	if err := c.ExamService.Delete(ctx.Param("id"), claims.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "exam deleted", nil)
}

// Results godoc
// @Summary Exam results with aggregate and per-question statistics
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path string true "exam id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/exams/{id}/results [get]
func (c *ExamController) Results(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	view, err := c.ExamService.Results(ctx.Param("id"), claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "exam results", view)
}
