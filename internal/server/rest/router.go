package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/storage"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// RouterConfig holds the HTTP-only settings.
type RouterConfig struct {
	AllowedOrigins []string
	// UploadsDir is served under storage.UploadsRoute when set.
	UploadsDir string
}

type handler struct {
	deps Deps
}

// NewRouter builds the gin engine with every route mounted under /api.
func NewRouter(deps Deps, cfg RouterConfig, l logging.Logger) *gin.Engine {
	h := &handler{deps: deps}

	r := gin.New()
	r.Use(recovery(l), requestLogger(l))
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(corsMiddleware(cfg.AllowedOrigins))
	}

	r.GET("/health", h.health)
	if cfg.UploadsDir != "" {
		r.Static(storage.UploadsRoute, cfg.UploadsDir)
	}

	auth := deps.Auth
	api := r.Group("/api")
	{
		api.POST("/auth/google", h.googleLogin)
		api.POST("/auth/login", h.login)
		api.GET("/auth/me", authed(auth, h.me))

		api.GET("/jobs", h.listJobs)
		api.GET("/jobs/admin/all", admin(auth, h.listAllJobs))
		api.GET("/jobs/:id", authed(auth, h.getJob))
		api.POST("/jobs", admin(auth, h.createJob))
		api.PUT("/jobs/:id", admin(auth, h.updateJob))
		api.PATCH("/jobs/:id/status", admin(auth, h.setJobStatus))
		api.DELETE("/jobs/:id", admin(auth, h.deleteJob))

		api.POST("/applications", authed(auth, h.submitApplication))
		api.GET("/applications/my-applications", authed(auth, h.myApplications))

		api.GET("/admin/users", admin(auth, h.adminUsers))
		api.GET("/admin/applications", admin(auth, h.adminApplications))
		api.GET("/admin/applications/:id/resume", admin(auth, h.adminResume))
		api.PATCH("/admin/applications/:id", admin(auth, h.updateApplicationStatus))
		api.GET("/admin/stats", admin(auth, h.adminStats))

		api.GET("/user/profile", authed(auth, h.getProfile))
		api.PUT("/user/profile", authed(auth, h.updateProfile))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return r
}

func (h *handler) health(c *gin.Context) {
	if h.deps.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := h.deps.DB.PingContext(ctx); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
