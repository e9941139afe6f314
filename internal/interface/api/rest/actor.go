package rest

import (
	"github.com/gin-gonic/gin"

	"file-storage-api/internal/domain/user"
	"file-storage-api/internal/interface/api/rest/middleware"
	"file-storage-api/internal/interface/api/rest/validator"
)

// actorFromCtx rebuilds the acting identity from claims stored by
// AuthMiddleware.
func actorFromCtx(c *gin.Context) (user.Actor, bool) {
	ok, id := validator.IsUUID(c.GetString(middleware.CtxUserID))
	if !ok {
		return user.Actor{}, false
	}

	return user.Actor{
		UUID: id,
		Role: c.GetString(middleware.CtxUserRole),
	}, true
}
