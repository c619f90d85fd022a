package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yt-insights/channel-explorer/internal/models"
)

// ChannelService is what the HTTP handlers need from the YouTube client
type ChannelService interface {
	Resolve(ctx context.Context, input string) (string, error)
	Aggregate(ctx context.Context, channelID string) (*models.AggregateView, error)
}

// Server represents the API server
type Server struct {
	router  *gin.Engine
	service ChannelService
}

// NewServer creates a new API server
func NewServer(service ChannelService, allowedOrigins []string) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	if len(allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "Pragma"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	server := &Server{
		router:  router,
		service: service,
	}
	server.setupRoutes()
	return server
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all the routes for the server
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	s.router.GET("/channel/resolve", s.resolveChannel)
	s.router.GET("/channel/url", s.getChannelByURL)
	s.router.GET("/channel/:id", s.getChannel)
}

// resolveChannel handles requests to turn a handle into a channel id
func (s *Server) resolveChannel(c *gin.Context) {
	input := strings.TrimSpace(c.Query("input"))
	if input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "input query parameter is required"})
		return
	}

	channelID, err := s.service.Resolve(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channelId": channelID})
}

// getChannel handles requests for the aggregate of a channel id or handle
func (s *Server) getChannel(c *gin.Context) {
	input := strings.TrimSpace(c.Param("id"))
	if input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Channel ID is required"})
		return
	}
	s.aggregate(c, input)
}

// getChannelByURL handles requests for the aggregate of a channel URL
func (s *Server) getChannelByURL(c *gin.Context) {
	channelURL := c.Query("url")
	if channelURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	input, err := ExtractChannelFromURL(channelURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid YouTube URL: " + err.Error()})
		return
	}
	s.aggregate(c, input)
}

func (s *Server) aggregate(c *gin.Context, input string) {
	ctx := c.Request.Context()

	channelID, err := s.service.Resolve(ctx, input)
	if err != nil {
		writeError(c, err)
		return
	}

	view, err := s.service.Aggregate(ctx, channelID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func writeError(c *gin.Context, err error) {
	c.JSON(StatusCode(err), gin.H{"error": err.Error()})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Handled request")
	}
}

// Start starts the server on the specified port
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}
