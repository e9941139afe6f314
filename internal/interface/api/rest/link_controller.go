package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-storage-api/internal/application/ports"
	"file-storage-api/internal/application/services"
	"file-storage-api/internal/infrastructure/jwt"
	"file-storage-api/internal/interface/api/rest/dto/link"
	"file-storage-api/internal/interface/api/rest/middleware"
	"file-storage-api/internal/interface/api/rest/validator"
)

type LinkController struct {
	linkService ports.LinkService
	logger      *zap.Logger
}

func NewLinkController(
	r *gin.Engine,
	linkService ports.LinkService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *LinkController {
	lc := &LinkController{
		linkService: linkService,
		logger:      logger,
	}

	authed := middleware.AuthMiddleware(jwtService)

	r.POST(RouteFileLinks, authed, lc.CreateLinkHandler)
	r.GET(RouteFileLinks, authed, lc.GetFileLinksHandler)
	r.DELETE(RouteLink, authed, lc.DeleteLinkHandler)

	// token possession is the credential, no auth middleware here
	r.GET(RouteLinkDownload, lc.DownloadByLinkHandler)

	return lc
}

func (lc *LinkController) CreateLinkHandler(c *gin.Context) {
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

	var req link.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	l, err := lc.linkService.CreateLink(c.Request.Context(), actor, fileID, req.Duration)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create a link"},
		)
		lc.logger.Error("CreateLink() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, link.ToResponseLink(*l, lc.linkService.ShareURL(l), lc.linkService.SizeOf(l)))
}

func (lc *LinkController) GetFileLinksHandler(c *gin.Context) {
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

	ls, err := lc.linkService.FindFileLinks(c.Request.Context(), actor, fileID)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get links"},
		)
		lc.logger.Error("FindFileLinks() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, link.ResponseData{
		Data: link.ToResponseLinks(ls, lc.linkService.ShareURL, lc.linkService.SizeOf),
	})
}

func (lc *LinkController) DeleteLinkHandler(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		return
	}

	err := lc.linkService.DeleteLink(c.Request.Context(), actor, c.Param("href"))
	if err != nil {
		if errors.Is(err, services.ErrLinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete a link"},
		)
		lc.logger.Error("DeleteLink() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (lc *LinkController) DownloadByLinkHandler(c *gin.Context) {
	href := c.Query("link")

	rc, l, err := lc.linkService.DownloadByLink(c.Request.Context(), href)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLinkNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid link"})
		case errors.Is(err, services.ErrLinkExpired):
			c.JSON(http.StatusGone, gin.H{"error": "link has expired"})
		case errors.Is(err, services.ErrFileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to download a file"},
			)
			lc.logger.Error("DownloadByLink() error", zap.Error(err))
		}
		return
	}
	defer rc.Close()

	c.DataFromReader(
		http.StatusOK,
		lc.linkService.SizeOf(l),
		"application/octet-stream",
		rc,
		map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", l.FileName),
		},
	)
}
