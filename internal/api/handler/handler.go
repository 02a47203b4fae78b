package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blogr/internal/model"
	"github.com/d60-Lab/blogr/internal/service"
)

type Handler struct {
	authService    service.AuthService
	postService    service.PostService
	commentService service.CommentService
}

func New(auth service.AuthService, posts service.PostService, comments service.CommentService) *Handler {
	return &Handler{authService: auth, postService: posts, commentService: comments}
}

// pathID parses the :id segment. Non-numeric or missing input coerces to
// 0, an id that is never assigned, so malformed input takes the same
// not-found path as a missing row instead of failing the parse.
func pathID(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// The two author shapes: listings never expose the email.
type authorBrief struct {
	Name string `json:"name"`
}

type authorFull struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type postItem struct {
	ID        uint        `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Published bool        `json:"published"`
	CreatedAt time.Time   `json:"created_at"`
	Author    authorBrief `json:"author"`
}

type postDetail struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Published bool       `json:"published"`
	CreatedAt time.Time  `json:"created_at"`
	Author    authorFull `json:"author"`
}

func toPostItem(p *model.Post) postItem {
	item := postItem{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		CreatedAt: p.CreatedAt,
	}
	if p.Author != nil {
		item.Author = authorBrief{Name: p.Author.Name}
	}
	return item
}

func toPostItems(posts []*model.Post) []postItem {
	items := make([]postItem, len(posts))
	for i, p := range posts {
		items[i] = toPostItem(p)
	}
	return items
}

func toPostDetail(p *model.Post) postDetail {
	d := postDetail{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		CreatedAt: p.CreatedAt,
	}
	if p.Author != nil {
		d.Author = authorFull{Name: p.Author.Name, Email: p.Author.Email}
	}
	return d
}
