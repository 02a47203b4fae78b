package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blogr/internal/api/middleware"
	"github.com/d60-Lab/blogr/internal/service"
	"github.com/d60-Lab/blogr/pkg/response"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required,notblank"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Image    string `json:"image" binding:"omitempty,url"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an author account.
// @Summary Register an author
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "account fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	author, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Image)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, author)
}

// Login verifies credentials and opens a session.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, id, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"token": token, "user": id})
}

// Logout revokes the current session.
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /api/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.TokenFrom(c)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// Me echoes the resolved identity.
// @Summary Current identity
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /api/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	response.Success(c, middleware.IdentityFrom(c))
}
