package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ykkmr/youtube-search-backend/internal/model"
)

var errBlankKeyword = errors.New("keyword must not be blank")

// handleHealth health check
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{
		Status:           "ok",
		APIKeyConfigured: s.config.YouTube.APIKeyConfigured(),
		Upstream:         s.config.YouTube.BaseURL,
	})
}

// handleSearch binds the query from the JSON body (POST) or the query
// string (GET) and runs it
func (s *Server) handleSearch(c *gin.Context) {
	var q model.SearchQuery

	var err error
	if c.Request.Method == http.MethodGet {
		err = c.ShouldBindQuery(&q)
	} else {
		err = c.ShouldBindJSON(&q)
	}
	if err == nil && strings.TrimSpace(q.Keyword) == "" {
		err = errBlankKeyword
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	result, err := s.searchService.Search(c.Request.Context(), &q)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// fail reports any search failure as 400 SEARCH_FAILED
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, model.ErrorResponse{
		Error:   model.ErrSearchFailed,
		Message: err.Error(),
	})
}

// handleGetConfig non-secret runtime settings
func (s *Server) handleGetConfig(c *gin.Context) {
	yt := s.config.YouTube

	c.JSON(http.StatusOK, model.ConfigResponse{
		Server: gin.H{
			"port":             s.config.Server.Port,
			"allowed_origins":  s.config.Server.AllowedOrigins,
			"shutdown_timeout": s.config.Server.ShutdownTimeout,
		},
		YouTube: gin.H{
			"base_url":            yt.BaseURL,
			"timeout":             yt.Timeout,
			"requests_per_second": yt.RequestsPerSecond,
			"api_key_configured":  yt.APIKeyConfigured(),
			"proxy_enabled":       yt.Proxy != "",
		},
		Search: gin.H{
			"default_max_results": s.config.Search.DefaultMaxResults,
		},
	})
}
