// Package httpapi exposes the question-answering service over HTTP.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
	"github.com/veritas-labs/paperchat-cli/internal/core/ports/driving"
)

// askRequest is the POST /ask body.
type askRequest struct {
	Query  string `json:"query" binding:"required"`
	Length string `json:"length"`
}

// askResponse is the successful POST /ask body.
type askResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// Server wires the query service into a gin router.
type Server struct {
	bot           driving.QueryService
	defaultLength string
}

// NewServer creates the HTTP API server. defaultLength is applied when a
// request omits the length field.
func NewServer(bot driving.QueryService, defaultLength string) *Server {
	return &Server{bot: bot, defaultLength: defaultLength}
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.handleHealth)
	router.POST("/ask", s.handleAsk)
	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAsk(c *gin.Context) {
	if s.bot == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error_code": "not_ready",
			"message":    "Query service is not available",
		})
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    "Request must be JSON with a non-empty 'query' field",
		})
		return
	}

	length := req.Length
	if length == "" {
		length = s.defaultLength
	}

	answer, err := s.bot.Ask(c.Request.Context(), req.Query, length)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAnswerLength) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error_code": "invalid_length",
				"message":    err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error_code": "internal_error",
			"message":    "Failed to answer the question",
		})
		return
	}

	c.JSON(http.StatusOK, askResponse{
		Answer:  answer.Text,
		Sources: answer.Sources,
	})
}
