package controller

import (
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

// Create godoc
// @Summary Create a subject category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CategoryReq true "category"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/v1/categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	var req service.CategoryReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.CategoryService.Create(&req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, "category created", category)
}

// List godoc
// @Summary List subject categories
// @Tags categories
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/v1/categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.CategoryService.List()
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, "categories listed", categories)
}
