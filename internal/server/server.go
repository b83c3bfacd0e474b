package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leofalp/concertscout/providers/observability"
)

// NewServer creates a gin engine with all routes configured. The gin mode is
// left to the caller.
func NewServer(handler *Handler) *gin.Engine {
	r := gin.New()

	r.Use(requestLogger(handler.observer))
	r.Use(gin.Recovery())

	// CORS for browser clients
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)
	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	r.POST("/parse", handler.Parse)
	r.GET("/health", handler.Health)

	if handler.backend != nil {
		r.POST("/chat", handler.Chat)
		r.POST("/sessions", handler.CreateSession)
	}

	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"parse":  "POST /parse",
			"health": "GET /health",
		}
		if handler.backend != nil {
			endpoints["chat"] = "POST /chat"
			endpoints["sessions"] = "POST /sessions"
		}

		c.JSON(http.StatusOK, gin.H{
			"service":     serviceName,
			"description": "Extracts concert recommendations from agent responses",
			"endpoints":   endpoints,
		})
	})
}

// requestLogger logs one record per request through the observer.
func requestLogger(observer observability.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []observability.Attribute{
			observability.String(observability.AttrHTTPMethod, c.Request.Method),
			observability.String(observability.AttrHTTPURL, c.Request.URL.Path),
			observability.Int(observability.AttrHTTPStatusCode, c.Writer.Status()),
			observability.Duration(observability.AttrDuration, time.Since(start)),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, observability.String(observability.AttrError, c.Errors.String()))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			observer.Warn(c.Request.Context(), "HTTP request", attrs...)
			return
		}
		observer.Info(c.Request.Context(), "HTTP request", attrs...)
	}
}
