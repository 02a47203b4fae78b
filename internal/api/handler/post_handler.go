package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/d60-Lab/blogr/internal/api/middleware"
	"github.com/d60-Lab/blogr/internal/service"
	"github.com/d60-Lab/blogr/pkg/response"
)

type createPostRequest struct {
	Title   string `json:"title" binding:"required,notblank"`
	Content string `json:"content" binding:"required"`
}

// CreatePost creates a draft owned by the session's author.
// @Summary Create a draft post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body createPostRequest true "post fields"
// @Success 200 {object} response.Response{data=postDetail}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Security BearerAuth
// @Router /api/post [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	id := middleware.IdentityFrom(c)
	post, err := h.postService.Create(c.Request.Context(), id.Email, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.BadRequest(c, "no author registered for session email")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, toPostDetail(post))
}

// GetPost returns one post with its full author, or null when the id
// does not exist. Malformed ids behave exactly like missing ones.
// @Summary Fetch a single post
// @Tags posts
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} response.Response{data=postDetail}
// @Router /api/post/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.postService.Get(c.Request.Context(), pathID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.Success(c, nil)
		return
	}
	response.Success(c, toPostDetail(post))
}

// DeletePost removes a post the session owns and returns its prior state.
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} response.Response{data=postDetail}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/post/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	post, err := h.postService.Delete(c.Request.Context(), pathID(c), id.Email)
	if err != nil {
		h.postMutationError(c, err)
		return
	}
	response.Success(c, toPostDetail(post))
}

// PublishPost flips a draft to published.
// @Summary Publish a draft
// @Tags posts
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} response.Response{data=postDetail}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/publish/{id} [put]
func (h *Handler) PublishPost(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	post, err := h.postService.Publish(c.Request.Context(), pathID(c), id.Email)
	if err != nil {
		h.postMutationError(c, err)
		return
	}
	response.Success(c, toPostDetail(post))
}

// Feed lists published posts for everyone, newest first, author name only.
// @Summary Public feed
// @Tags posts
// @Produce json
// @Success 200 {object} response.Response{data=[]postItem}
// @Router /api/feed [get]
func (h *Handler) Feed(c *gin.Context) {
	posts, err := h.postService.Feed(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, toPostItems(posts))
}

// Drafts lists the requester's unpublished posts. An anonymous request
// gets a 403 with an empty list rather than a hard failure.
// @Summary List own drafts
// @Tags posts
// @Produce json
// @Success 200 {object} response.Response{data=[]postItem}
// @Failure 403 {object} response.Response{data=[]postItem}
// @Security BearerAuth
// @Router /api/drafts [get]
func (h *Handler) Drafts(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	if id == nil {
		response.Forbidden(c, "sign in to see drafts", []postItem{})
		return
	}
	posts, err := h.postService.Drafts(c.Request.Context(), id.Email)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, toPostItems(posts))
}

func (h *Handler) postMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error(), nil)
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(c, "post not found")
	default:
		response.InternalError(c, err)
	}
}
