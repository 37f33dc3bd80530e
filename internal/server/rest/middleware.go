package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func requestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		}
		if len(c.Errors) > 0 {
			l.Error(c.Request.Context(), c.Errors.String(), args...)
		} else {
			l.Info(c.Request.Context(), "Request processed", args...)
		}
	}
}

// recovery turns a handler panic into a 500 and keeps the process alive.
func recovery(l logging.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		l.Error(c.Request.Context(), "panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": internalMessage})
	})
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", common.AuthorizationHeaderName},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cors.New(cfg)
}

// bearerToken extracts the token from "Authorization: Bearer <token>". The
// scheme is matched case-insensitively.
func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get(common.AuthorizationHeaderName))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, strings.TrimSpace(common.BearerPrefix)) {
		return ""
	}
	return strings.TrimSpace(token)
}

// principalHandler is a handler that runs on behalf of a verified caller.
type principalHandler func(c *gin.Context, p *models.Principal)

// authed resolves the bearer token and hands the principal to next.
func authed(svc AuthService, next principalHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Authenticate(c.Request.Context(), bearerToken(c.Request))
		if err != nil {
			fail(c, err)
			return
		}
		next(c, p)
	}
}

// admin is authed plus the admin role check.
func admin(svc AuthService, next principalHandler) gin.HandlerFunc {
	return authed(svc, func(c *gin.Context, p *models.Principal) {
		if !p.IsAdmin() {
			fail(c, common.NewError(common.ErrorForbidden, "Admin access required"))
			return
		}
		next(c, p)
	})
}
