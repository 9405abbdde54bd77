package controller

import (
	"path/filepath"

	"school_backend/internal/model"
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LessonController struct {
	LessonService  *service.LessonService
	StorageService *service.StorageService
	Logger         *zap.Logger
}

func NewLessonController(lessonService *service.LessonService, storageService *service.StorageService, logger *zap.Logger) *LessonController {
	return &LessonController{LessonService: lessonService, StorageService: storageService, Logger: logger}
}

// Create godoc
// @Summary Create a lesson, optionally with a file attachment
// @Description Enrolls every student of the matching grade and section. Send multipart form data; the attachment field is "file".
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "title"
// @Param grade formData string true "grade"
// @Param section formData string true "section"
// @Param categoryId formData int true "category id"
// @Param file formData file false "attachment"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/v1/lessons [post]
func (c *LessonController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.LessonReq
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var file *service.LessonFile
	if fileHeader, err := ctx.FormFile("file"); err == nil {
		// Sniff the real content type instead of trusting the header.
		probe, err := fileHeader.Open()
		if err != nil {
			util.InternalServerError(ctx, err)
			return
		}
		mimeType, err := util.ValidateLessonFile(fileHeader.Filename, fileHeader.Size, probe)
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

		filename := "lessons/" + model.GenerateUUID() + filepath.Ext(fileHeader.Filename)
		url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, fileHeader.Size, mimeType)
		if err != nil {
			util.InternalServerError(ctx, err)
			return
		}
		file = &service.LessonFile{
			URL:  url,
			Name: filename,
			Type: mimeType,
			Size: fileHeader.Size,
		}
	}

	lesson, err := c.LessonService.Create(claims.UserID, &req, file)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, "lesson created", lesson)
}

// List godoc
// @Summary List all lessons
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/lessons [get]
func (c *LessonController) List(ctx *gin.Context) {
	lessons, err := c.LessonService.List()
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, "lessons listed", lessons)
}

// ListForTeacher godoc
// @Summary List the authenticated teacher's lessons
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/lessons/teacher [get]
func (c *LessonController) ListForTeacher(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	lessons, err := c.LessonService.ListByTeacher(claims.UserID)
	if err != nil {
		util.InternalServerError(ctx, err)
		return
	}
	util.Success(ctx, "lessons listed", lessons)
}

// Get godoc
// @Summary Get one lesson with students and topics
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/lessons/{id} [get]
func (c *LessonController) Get(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	lesson, err := c.LessonService.GetByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "lesson found", lesson)
}

// Update godoc
// @Summary Update a lesson's text fields
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "lesson id"
// @Param body body service.LessonUpdateReq true "fields to change"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/lessons/{id} [put]
func (c *LessonController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	var req service.LessonUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.Update(id, claims.UserID, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "lesson updated", lesson)
}

// Delete godoc
// @Summary Delete a lesson and its stored attachment
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/lessons/{id} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	fileName, err := c.LessonService.Delete(id, claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if fileName != "" {
		if err := c.StorageService.Delete(ctx.Request.Context(), fileName); err != nil {
			c.Logger.Warn("failed to delete lesson attachment",
				zap.String("filename", fileName), zap.Error(err))
		}
	}
	util.Success(ctx, "lesson deleted", nil)
}

// AddTopic godoc
// @Summary Add a topic to a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "lesson id"
// @Param body body service.LessonTopicReq true "topic"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/lessons/{id}/topics [post]
func (c *LessonController) AddTopic(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	var req service.LessonTopicReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.LessonService.AddTopic(id, claims.UserID, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, "topic added", topic)
}

// ListTopics godoc
// @Summary List the topics of a lesson
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/lessons/{id}/topics [get]
func (c *LessonController) ListTopics(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}
	topics, err := c.LessonService.ListTopics(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, "topics listed", topics)
}
