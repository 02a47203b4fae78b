package api

import (
	"fmt"
	"strings"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/blogr/docs"
	"github.com/d60-Lab/blogr/internal/api/handler"
	"github.com/d60-Lab/blogr/internal/api/middleware"
	"github.com/d60-Lab/blogr/internal/config"
	"github.com/d60-Lab/blogr/internal/session"
	"github.com/d60-Lab/blogr/pkg/response"
)

// NewRouter assembles the full middleware chain and route table.
func NewRouter(cfg *config.Config, h *handler.Handler, sessions *session.Manager) *gin.Engine {
	registerValidations()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware("blogr"))
	}

	// A known route hit with the wrong verb must fail loudly, never
	// fall through to a 404 or a silent no-op.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c, fmt.Sprintf("The HTTP %s method is not supported at this route", c.Request.Method))
	})

	r.GET("/healthz", func(c *gin.Context) { response.Success(c, gin.H{"status": "up"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api", middleware.Session(sessions))

	// Public reads.
	api.GET("/feed", h.Feed)
	api.GET("/post/:id", h.GetPost)
	api.GET("/post/:id/comments", h.ListComments)

	// Drafts resolve the session themselves: anonymous gets 403 plus an
	// empty list instead of the usual 401.
	api.GET("/drafts", h.Drafts)

	limited := middleware.RateLimit(cfg.Limit.RPS, cfg.Limit.Burst)

	auth := api.Group("/auth")
	auth.POST("/register", limited, h.Register)
	auth.POST("/login", limited, h.Login)
	auth.POST("/logout", middleware.RequireAuth(), h.Logout)
	auth.GET("/me", middleware.RequireAuth(), h.Me)

	writes := api.Group("", middleware.RequireAuth(), limited)
	writes.POST("/post", h.CreatePost)
	writes.DELETE("/post/:id", h.DeletePost)
	writes.PUT("/publish/:id", h.PublishPost)
	writes.POST("/comment", h.CreateComment)

	return r
}

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}
}
