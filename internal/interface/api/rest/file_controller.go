package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-storage-api/internal/application/ports"
	"file-storage-api/internal/application/services"
	fileDB "file-storage-api/internal/infrastructure/db/postgres/file"
	"file-storage-api/internal/infrastructure/jwt"
	"file-storage-api/internal/interface/api/rest/dto/file"
	"file-storage-api/internal/interface/api/rest/middleware"
	"file-storage-api/internal/interface/api/rest/validator"
)

type FileController struct {
	fileService ports.FileService
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		logger:      logger,
	}

	authed := middleware.AuthMiddleware(jwtService)

	r.GET(RouteFiles, authed, fc.GetFilesHandler)
	r.POST(RouteFiles, authed, fc.UploadFileHandler)
	r.GET(RouteFile, authed, fc.GetFileHandler)
	r.PATCH(RouteFile, authed, fc.UpdateFileHandler)
	r.DELETE(RouteFile, authed, fc.DeleteFileHandler)
	r.GET(RouteFileDownload, authed, fc.DownloadFileHandler)

	return fc
}

func (fc *FileController) GetFilesHandler(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		return
	}

	files, err := fc.fileService.FindUserFiles(c.Request.Context(), actor)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get files"},
		)
		fc.logger.Error("FindUserFiles() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, file.ResponseData{
		Data: file.ToResponseFiles(files, fc.fileService.SizeOf),
	})
}

func (fc *FileController) UploadFileHandler(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	// no size gate: empty payloads are legitimate files and quota
	// enforcement is not this service's job
	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer src.Close()

	force := c.PostForm("force") != ""
	description := c.PostForm("description")

	f, err := fc.fileService.Upload(c.Request.Context(), actor, fh.Filename, src, description, force)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidName):
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid filename - '%s'", fh.Filename)})
		case errors.Is(err, fileDB.ErrNameAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("file '%s' already exists", fh.Filename)})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to upload a file"},
			)
			fc.logger.Error("Upload() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusCreated, file.ToResponseFile(*f, fc.fileService.SizeOf(f)))
}

func (fc *FileController) GetFileHandler(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		return
	}
	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id must be a valid UUID"})
		return
	}

	f, err := fc.fileService.GetFile(c.Request.Context(), actor, fileID)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a file"},
		)
		fc.logger.Error("GetFile() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFile(*f, fc.fileService.SizeOf(f)))
}

func (fc *FileController) UpdateFileHandler(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		return
	}
	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id must be a valid UUID"})
		return
	}

	var req file.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	var out *file.File

	if req.Filename != nil {
		renamed, err := fc.fileService.Rename(c.Request.Context(), actor, fileID, *req.Filename)
		if err != nil {
			fc.writeUpdateError(c, err, *req.Filename)
			return
		}
		r := file.ToResponseFile(*renamed, fc.fileService.SizeOf(renamed))
		out = &r
	}

	if req.Description != nil {
		described, err := fc.fileService.SetDescription(c.Request.Context(), actor, fileID, *req.Description)
		if err != nil {
			fc.writeUpdateError(c, err, "")
			return
		}
		r := file.ToResponseFile(*described, fc.fileService.SizeOf(described))
		out = &r
	}

	if out == nil {
		got, err := fc.fileService.GetFile(c.Request.Context(), actor, fileID)
		if err != nil {
			fc.writeUpdateError(c, err, "")
			return
		}
		r := file.ToResponseFile(*got, fc.fileService.SizeOf(got))
		out = &r
	}

	c.JSON(http.StatusOK, out)
}

func (fc *FileController) writeUpdateError(c *gin.Context, err error, name string) {
	switch {
	case errors.Is(err, services.ErrInvalidName):
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid filename - '%s'", name)})
	case errors.Is(err, fileDB.ErrNameAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("file '%s' already exists", name)})
	case errors.Is(err, services.ErrFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
	default:
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update a file"},
		)
		fc.logger.Error("UpdateFile() error", zap.Error(err))
	}
}

func (fc *FileController) DeleteFileHandler(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		return
	}
	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id must be a valid UUID"})
		return
	}

	err := fc.fileService.Delete(c.Request.Context(), actor, fileID)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete a file"},
		)
		fc.logger.Error("Delete() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (fc *FileController) DownloadFileHandler(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		return
	}
	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id must be a valid UUID"})
		return
	}

	rc, f, err := fc.fileService.Download(c.Request.Context(), actor, fileID)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to download a file"},
		)
		fc.logger.Error("Download() error", zap.Error(err))
		return
	}
	defer rc.Close()

	c.DataFromReader(
		http.StatusOK,
		fc.fileService.SizeOf(f),
		"application/octet-stream",
		rc,
		map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", f.Name),
		},
	)
}
