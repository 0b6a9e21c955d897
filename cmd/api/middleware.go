package api

import (
	"slices"
	"time"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"summaryhub-backend/pkg/zlog"
)

// corsMiddleware allows the configured origins; "*" allows any origin
func corsMiddleware(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.ExposeHeaders = []string{"X-Summary-Persisted"}
	corsConfig.MaxAge = 12 * time.Hour
	return cors.New(corsConfig)
}

// securityHeaders sets the usual hardening headers. TLS is terminated upstream,
// so there is no HTTPS redirect.
func securityHeaders(development bool) gin.HandlerFunc {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "no-referrer",
		IsDevelopment:      development,
	})
	return func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			// Process has already written the response
			c.Abort()
			return
		}
		c.Next()
	}
}

// requestLogger writes one structured line per request
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			zlog.Error("request", fields...)
		case status >= 400:
			zlog.Warn("request", fields...)
		default:
			zlog.Info("request", fields...)
		}
	}
}
