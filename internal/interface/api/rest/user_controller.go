package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-storage-api/internal/application/ports"
	"file-storage-api/internal/application/services"
	userDB "file-storage-api/internal/infrastructure/db/postgres/user"
	"file-storage-api/internal/infrastructure/jwt"
	"file-storage-api/internal/interface/api/rest/dto/user"
	"file-storage-api/internal/interface/api/rest/middleware"
	"file-storage-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	authed := middleware.AuthMiddleware(jwtService)
	admin := middleware.AdminOnly()

	r.POST(RouteUsers, uc.RegisterHandler)
	r.GET(RouteUsers, authed, admin, uc.GetUsersHandler)

	r.GET(RouteUserSelf, authed, uc.GetSelfHandler)
	r.PATCH(RouteUserSelf, authed, uc.UpdateSelfHandler)
	r.DELETE(RouteUserSelf, authed, uc.DeleteSelfHandler)

	r.GET(RouteUserByName, authed, admin, uc.GetUserHandler)
	r.DELETE(RouteUserByName, authed, admin, uc.DeleteUserHandler)

	return uc
}

func (uc *UserController) RegisterHandler(c *gin.Context) {
	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateRegister(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := uc.userService.Register(c.Request.Context(), user.ToDomainUser(req), req.Password)
	if err != nil {
		if errors.Is(err, userDB.ErrUsernameAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create a user"},
		)
		uc.logger.Error("Register() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(*u))
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	users, err := uc.userService.FindUsers(c.Request.Context(), page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get users"},
		)
		uc.logger.Error("FindUsers() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{Data: user.ToResponseUsers(users)})
}

func (uc *UserController) GetSelfHandler(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		return
	}

	u, err := uc.userService.FindUserByUUID(c.Request.Context(), actor.UUID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("FindUserByUUID() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) UpdateSelfHandler(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		return
	}

	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	current, err := uc.userService.FindUserByUUID(c.Request.Context(), actor.UUID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("FindUserByUUID() error", zap.Error(err))
		return
	}
	if current == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if req.Password != "" {
		if !validator.ValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "password must be at least 6 characters with an uppercase letter and a special character",
			})
			return
		}
		err = uc.userService.ChangePassword(c.Request.Context(), actor.UUID, req.OldPassword, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrWrongPassword) {
				c.JSON(http.StatusForbidden, gin.H{"error": "old password does not match"})
				return
			}
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to change password"},
			)
			uc.logger.Error("ChangePassword() error", zap.Error(err))
			return
		}
	}

	if username := strings.TrimSpace(req.Username); username != "" && username != current.Username {
		if !validator.ValidUsername(username) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "username must be 4-20 characters, start with a letter, letters and digits only",
			})
			return
		}
		current.Username = username
	}
	if req.Email != "" {
		current.Email = req.Email
	}
	if req.FirstName != "" {
		current.FirstName = req.FirstName
	}
	if req.LastName != "" {
		current.LastName = req.LastName
	}

	updated, err := uc.userService.UpdateUser(c.Request.Context(), *current)
	if err != nil {
		if errors.Is(err, userDB.ErrUsernameAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update a user"},
		)
		uc.logger.Error("UpdateUser() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*updated))
}

// DeleteSelfHandler removes the caller's account with everything it owns.
// The current password has to come with the request, a bearer token alone
// is not enough for something this destructive.
func (uc *UserController) DeleteSelfHandler(c *gin.Context) {
	actor, ok := actorFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		return
	}

	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if err := uc.userService.VerifyPassword(c.Request.Context(), actor.UUID, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			c.JSON(http.StatusForbidden, gin.H{"error": "password does not match"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to delete a user"},
			)
			uc.logger.Error("VerifyPassword() error", zap.Error(err))
		}
		return
	}

	if err := uc.userService.DeleteUser(c.Request.Context(), actor.UUID); err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete a user"},
		)
		uc.logger.Error("DeleteUser() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	u, err := uc.userService.FindUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("FindUserByUsername() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	u, err := uc.userService.FindUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("FindUserByUsername() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err = uc.userService.DeleteUser(c.Request.Context(), u.UUID); err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete a user"},
		)
		uc.logger.Error("DeleteUser() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}
