package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/d60-Lab/blogr/internal/api/middleware"
	"github.com/d60-Lab/blogr/pkg/response"
)

type createCommentRequest struct {
	Comment string `json:"comment" binding:"required,notblank"`
	ID      uint   `json:"id" binding:"required"`
}

// CreateComment attaches a comment to a post. The post id is not checked
// up front; an invalid reference is rejected by the store.
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param request body createCommentRequest true "comment text and target post id"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Security BearerAuth
// @Router /api/comment [post]
func (h *Handler) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	id := middleware.IdentityFrom(c)
	comment, err := h.commentService.Create(c.Request.Context(), id.Email, req.ID, req.Comment)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.BadRequest(c, "no author registered for session email")
			return
		}
		// Constraint violations (unknown post id) land here unmodified.
		response.InternalError(c, err)
		return
	}
	response.Success(c, comment)
}

// ListComments returns a post's comments, oldest first.
// @Summary List comments for a post
// @Tags comments
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} response.Response
// @Router /api/post/{id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	comments, err := h.commentService.ListByPost(c.Request.Context(), pathID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, comments)
}
