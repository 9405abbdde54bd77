package controller

import (
	"strconv"

	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// Create godoc
// @Summary Create an assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AssignmentReq true "assignment"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/v1/assignments [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.AssignmentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.Create(claims.UserID, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, "assignment created", assignment)
}

// List godoc
// @Summary List assignments
// @Description Optional query filters: teacherId, classLevel, section.
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param teacherId query int false "filter by teacher"
// @Param classLevel query string false "filter by class level"
// @Param section query string false "filter by section"
// @Success 200 {object} util.Response
// @Router /api/v1/assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	var teacherID uint
	if raw := ctx.Query("teacherId"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			util.BadRequest(ctx, "invalid teacherId")
			return
		}
		teacherID = uint(value)
	}

	assignments, err := c.AssignmentService.List(teacherID, ctx.Query("classLevel"), ctx.Query("section"))
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, "assignments listed", assignments)
}

// Get godoc
// @Summary Get one assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "assignment id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/assignments/{id} [get]
func (c *AssignmentController) Get(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	assignment, err := c.AssignmentService.GetByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "assignment found", assignment)
}

// Update godoc
// @Summary Replace an assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "assignment id"
// @Param body body service.AssignmentReq true "assignment"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/assignments/{id} [put]
func (c *AssignmentController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	var req service.AssignmentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.Update(id, claims.UserID, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "assignment updated", assignment)
}

// Delete godoc
// @Summary Delete an assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "assignment id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/assignments/{id} [delete]
func (c *AssignmentController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.AssignmentService.Delete(id, claims.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "assignment deleted", nil)
}
