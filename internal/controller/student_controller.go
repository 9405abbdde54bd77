package controller

import (
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService *service.StudentService
}

func NewStudentController(studentService *service.StudentService) *StudentController {
	return &StudentController{StudentService: studentService}
}

// Register godoc
// @Summary Register a student account
// @Tags students
// @Accept json
// @Produce json
// @Param body body service.StudentRegisterReq true "student registration"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/v1/students/register [post]
func (c *StudentController) Register(ctx *gin.Context) {
	var req service.StudentRegisterReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, token, err := c.StudentService.Register(&req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, "student registered", gin.H{"student": student, "token": token})
}

// Login godoc
// @Summary Log a student in
// @Tags students
// @Accept json
// @Produce json
// @Param body body service.LoginReq true "credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/v1/students/login [post]
func (c *StudentController) Login(ctx *gin.Context) {
	var req service.LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, token, err := c.StudentService.Login(&req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "login successful", gin.H{"student": student, "token": token})
}

// List godoc
// @Summary List all students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/students [get]
func (c *StudentController) List(ctx *gin.Context) {
	students, err := c.StudentService.List()
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, "students listed", students)
}

// Get godoc
// @Summary Get one student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "student id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/students/{id} [get]
func (c *StudentController) Get(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	student, err := c.StudentService.GetByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "student found", student)
}

// Update godoc
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "student id"
// @Param body body service.StudentUpdateReq true "fields to change"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/students/{id} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	var req service.StudentUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.StudentService.Update(id, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "student updated", student)
}

// Delete godoc
// @Summary Delete a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "student id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/students/{id} [delete]
func (c *StudentController) Delete(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.StudentService.Delete(id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "student deleted", nil)
}
