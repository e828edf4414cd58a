package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"offboarding-service/internal/errs"
)

const (
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
	loggerKey    = "logger"
)

type Middleware struct {
	log            *zap.Logger
	allowedOrigins []string
}

func New(log *zap.Logger, allowedOrigins []string) *Middleware {
	return &Middleware{log: log, allowedOrigins: allowedOrigins}
}

// RequestID tags the request with the caller's X-Request-ID or a new uuid
// and stores a logger carrying it for later handlers.
func (m *Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Set(loggerKey, m.log.With(zap.String("request_id", requestID)))
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// AccessLog logs one line per request, at a level chosen by status class.
func (m *Middleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}

		log := GetLogger(c, m.log)
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("API", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("API", fields...)
		default:
			log.Info("API", fields...)
		}
	}
}

// Recovery turns a panic into a logged 500 with the generic error body.
func (m *Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				GetLogger(c, m.log).Error("panic recovered",
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, &errs.HTTPError{
					Status:  http.StatusInternalServerError,
					Message: errs.InternalMessage,
				})
			}
		}()
		c.Next()
	}
}

// CORS answers preflight requests and sets the allow headers for
// configured origins. "*" allows any origin.
func (m *Middleware) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed := m.allowOrigin(origin); allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
			c.Header("Access-Control-Expose-Headers", RequestIDHeader)
			if allowed != "*" {
				c.Header("Vary", "Origin")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (m *Middleware) allowOrigin(origin string) string {
	for _, o := range m.allowedOrigins {
		o = strings.TrimSpace(o)
		if o == "*" {
			return "*"
		}
		if origin != "" && strings.EqualFold(o, origin) {
			return origin
		}
	}
	return ""
}

// GetRequestID returns the id set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// GetLogger returns the request scoped logger, or fallback when RequestID
// did not run.
func GetLogger(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if log, ok := c.Get(loggerKey); ok {
		if l, ok := log.(*zap.Logger); ok {
			return l
		}
	}
	return fallback
}
