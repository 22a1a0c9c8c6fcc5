package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ykkmr/youtube-search-backend/internal/config"
	"github.com/ykkmr/youtube-search-backend/internal/search"
)

// Server HTTP server
type Server struct {
	config        *config.Config
	httpServer    *http.Server
	router        *gin.Engine
	searchService *search.Service
	log           *zap.Logger
}

// New creates the server and its routes
func New(cfg *config.Config, svc *search.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	srv := &Server{
		config:        cfg,
		searchService: svc,
		log:           log.Named("http"),
	}
	srv.router = srv.setupRouter()

	return srv
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts listening in the background
func (s *Server) Start() error {
	if !s.config.Server.Enabled {
		return errors.New("server is disabled")
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.log.Info("HTTP server listening", zap.Int("port", s.config.Server.Port))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Shutdown stops the server, waiting for in-flight requests up to the
// configured shutdown timeout
func (s *Server) Shutdown() error {
	if s.httpServer == nil {
		return nil
	}

	timeout := time.Duration(s.config.Server.ShutdownTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(s.config.Server.AllowedOrigins))
	r.Use(requestLogger(s.log))

	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/config", s.handleGetConfig)

		yt := api.Group("/youtube")
		yt.POST("/search", s.handleSearch)
		yt.GET("/search", s.handleSearch)
	}

	return r
}
