package controller

import (
	"path/filepath"

	"school_backend/internal/model"
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TeacherController struct {
	TeacherService *service.TeacherService
	StorageService *service.StorageService
	Logger         *zap.Logger
}

func NewTeacherController(teacherService *service.TeacherService, storageService *service.StorageService, logger *zap.Logger) *TeacherController {
	return &TeacherController{TeacherService: teacherService, StorageService: storageService, Logger: logger}
}

// Register godoc
// @Summary Register a teacher account
// @Tags teachers
// @Accept json
// @Produce json
// @Param body body service.TeacherRegisterReq true "teacher registration"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/v1/teachers/register [post]
func (c *TeacherController) Register(ctx *gin.Context) {
	var req service.TeacherRegisterReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	teacher, token, err := c.TeacherService.Register(&req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, "teacher registered", gin.H{"teacher": teacher, "token": token})
}

// Login godoc
// @Summary Log a teacher in
// @Tags teachers
// @Accept json
// @Produce json
// @Param body body service.LoginReq true "credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/v1/teachers/login [post]
func (c *TeacherController) Login(ctx *gin.Context) {
	var req service.LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	teacher, token, err := c.TeacherService.Login(&req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "login successful", gin.H{"teacher": teacher, "token": token})
}

// List godoc
// @Summary List all teachers
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/teachers [get]
func (c *TeacherController) List(ctx *gin.Context) {
	teachers, err := c.TeacherService.List()
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, "teachers listed", teachers)
}

// Get godoc
// @Summary Get one teacher
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param id path int true "teacher id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/teachers/{id} [get]
func (c *TeacherController) Get(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	teacher, err := c.TeacherService.GetByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "teacher found", teacher)
}

// Update godoc
// @Summary Update a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "teacher id"
// @Param body body service.TeacherUpdateReq true "fields to change"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/teachers/{id} [put]
func (c *TeacherController) Update(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	var req service.TeacherUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	teacher, err := c.TeacherService.Update(id, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "teacher updated", teacher)
}

// UploadProfileImage godoc
// @Summary Upload the authenticated teacher's profile image
// @Description Replaces the current image; the previous file is removed from storage.
// @Tags teachers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "image file"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/v1/teachers/profile-image [post]
func (c *TeacherController) UploadProfileImage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		util.BadRequest(ctx, "image file is required")
		return
	}

	// Sniff the real content type instead of trusting the header.
	probe, err := fileHeader.Open()
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	mimeType, err := util.ValidateProfileImage(fileHeader.Size, probe)
	probe.Close()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	defer src.Close()

	filename := "profiles/" + model.GenerateUUID() + filepath.Ext(fileHeader.Filename)
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, fileHeader.Size, mimeType)
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}

	oldFilename, err := c.TeacherService.ReplaceProfileImage(claims.UserID, url, filename)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if oldFilename != "" {
		if err := c.StorageService.Delete(ctx.Request.Context(), oldFilename); err != nil {
			c.Logger.Warn("failed to delete previous profile image",
				zap.String("filename", oldFilename), zap.Error(err))
		}
	}

	util.Success(ctx, "profile image updated", gin.H{"profileImageUrl": url})
}

// Delete godoc
// @Summary Delete a teacher
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param id path int true "teacher id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/teachers/{id} [delete]
func (c *TeacherController) Delete(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.TeacherService.Delete(id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "teacher deleted", nil)
}
