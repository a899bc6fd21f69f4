package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MikeMC777/valora-ecom/internal/auth"
	"github.com/MikeMC777/valora-ecom/internal/httpx"
	"github.com/MikeMC777/valora-ecom/internal/user"
)

// registerHandler godoc
// @Summary  Register a customer account
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body user.RegisterRequest true "account"
// @Success  201 {object} user.User
// @Failure  400 {object} httpx.HTTPError
// @Failure  409 {object} httpx.HTTPError
// @Router   /users/register [post]
func registerHandler(svc *user.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.RegisterRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, "username (3-50), valid email and password (min 8) are required")
			return
		}
		u, err := svc.Register(c.Request.Context(), in)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

// loginHandler godoc
// @Summary  Exchange credentials for a token
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body user.LoginRequest true "credentials"
// @Success  200 {object} user.LoginResponse
// @Failure  401 {object} httpx.HTTPError
// @Router   /users/login [post]
func loginHandler(svc *user.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.LoginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, "email and password are required")
			return
		}
		out, err := svc.Login(c.Request.Context(), in)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// meHandler godoc
// @Summary  Current user
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} user.User
// @Router   /users/me [get]
func meHandler(svc *user.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := auth.FromContext(c)
		u, err := svc.Get(c.Request.Context(), id.UserID)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// updateMeHandler godoc
// @Summary  Update own profile; empty fields are left unchanged
// @Tags     users
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body user.UpdateRequest true "fields to change"
// @Success  200 {object} user.User
// @Router   /users/me [put]
func updateMeHandler(svc *user.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.UpdateRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		id, _ := auth.FromContext(c)
		u, err := svc.Update(c.Request.Context(), id.UserID, in)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// assignRolesHandler godoc
// @Summary  Replace a user's roles
// @Tags     users
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string            true "user id"
// @Param    body body user.RolesRequest true "roles"
// @Success  200 {object} user.User
// @Router   /users/{id}/roles [put]
func assignRolesHandler(svc *user.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.RolesRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, "roles is required")
			return
		}
		u, err := svc.AssignRoles(c.Request.Context(), c.Param("id"), in.Roles)
		if err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// deleteUserHandler godoc
// @Summary  Delete a user
// @Tags     users
// @Security BearerAuth
// @Param    id path string true "user id"
// @Success  204
// @Router   /users/{id} [delete]
func deleteUserHandler(svc *user.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			httpx.Error(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
