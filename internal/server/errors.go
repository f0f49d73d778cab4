package server

import (
	"errors"
	"net/http"

	"github.com/agusespa/testsmith/internal/llm"
	"github.com/agusespa/testsmith/internal/templates"
	"github.com/agusespa/testsmith/internal/tools"
	"github.com/agusespa/testsmith/internal/utils"
	"github.com/agusespa/testsmith/pkg/config"
	"github.com/gin-gonic/gin"
)

const (
	KindConfiguration   = "configuration"
	KindTransport       = "transport"
	KindMalformedOutput = "malformed_output"
	KindNotFound        = "not_found"
	KindBadRequest      = "bad_request"
	KindUpstream        = "upstream"
	KindInternal        = "internal"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	RequestID string `json:"request_id,omitempty"`
}

func classify(err error) (int, string) {
	var unknown *templates.UnknownTemplateError
	var ghErr *tools.GithubError

	switch {
	case config.IsConfigError(err):
		return http.StatusInternalServerError, KindConfiguration
	case utils.IsMalformedOutput(err):
		return http.StatusBadGateway, KindMalformedOutput
	case llm.IsTransient(err):
		return http.StatusBadGateway, KindTransport
	case errors.As(err, &unknown):
		return http.StatusNotFound, KindNotFound
	case errors.Is(err, tools.ErrInvalidPath):
		return http.StatusBadRequest, KindBadRequest
	case errors.As(err, &ghErr):
		return http.StatusBadGateway, KindUpstream
	}
	return http.StatusInternalServerError, KindInternal
}

func (s *Server) fail(c *gin.Context, err error) {
	status, kind := classify(err)
	s.logger.Warn("request failed", "path", c.Request.URL.Path, "kind", kind, "error", err, "request_id", c.GetString(requestIDKey))
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error(), Kind: kind, RequestID: c.GetString(requestIDKey)})
}

func (s *Server) badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindBadRequest, RequestID: c.GetString(requestIDKey)})
}
