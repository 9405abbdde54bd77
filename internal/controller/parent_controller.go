package controller

import (
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ParentController struct {
	ParentService *service.ParentService
}

func NewParentController(parentService *service.ParentService) *ParentController {
	return &ParentController{ParentService: parentService}
}

// Register godoc
// @Summary Register a parent account
// @Tags parents
// @Accept json
// @Produce json
// @Param body body service.ParentRegisterReq true "parent registration"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/v1/parents/register [post]
func (c *ParentController) Register(ctx *gin.Context) {
	var req service.ParentRegisterReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	parent, token, err := c.ParentService.Register(&req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, "parent registered", gin.H{"parent": parent, "token": token})
}

// Login godoc
// @Summary Log a parent in
// @Tags parents
// @Accept json
// @Produce json
// @Param body body service.LoginReq true "credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/v1/parents/login [post]
func (c *ParentController) Login(ctx *gin.Context) {
	var req service.LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	parent, token, err := c.ParentService.Login(&req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "login successful", gin.H{"parent": parent, "token": token})
}

// List godoc
// @Summary List all parents
// @Tags parents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/parents [get]
func (c *ParentController) List(ctx *gin.Context) {
	parents, err := c.ParentService.List()
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, "parents listed", parents)
}

// Get godoc
// @Summary Get one parent with their children
// @Tags parents
// @Produce json
// @Security BearerAuth
// @Param id path int true "parent id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/parents/{id} [get]
func (c *ParentController) Get(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	parent, err := c.ParentService.GetByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "parent found", parent)
}

// Update godoc
// @Summary Update a parent
// @Tags parents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "parent id"
// @Param body body service.ParentUpdateReq true "fields to change"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/parents/{id} [put]
func (c *ParentController) Update(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	var req service.ParentUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	parent, err := c.ParentService.Update(id, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "parent updated", parent)
}

// Delete godoc
// @Summary Delete a parent
// @Tags parents
// @Produce json
// @Security BearerAuth
// @Param id path int true "parent id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/parents/{id} [delete]
func (c *ParentController) Delete(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.ParentService.Delete(id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "parent deleted", nil)
}
