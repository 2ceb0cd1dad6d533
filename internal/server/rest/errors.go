package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorMapping struct {
	kind   error
	status int
	code   string
}

// errorMappings is matched in order. ErrAlreadySignedOut also matches
// ErrNotSignedIn and must come first.
var errorMappings = []errorMapping{
	{common.ErrUsernameTaken, http.StatusConflict, "SGR-001"},
	{common.ErrEmailTaken, http.StatusConflict, "SGR-002"},
	{common.ErrUserNotFound, http.StatusUnauthorized, "ATH-001"},
	{common.ErrBadPassword, http.StatusUnauthorized, "ATH-002"},
	{common.ErrInvalidCredentialsHeader, http.StatusBadRequest, "ATH-003"},
	{common.ErrAlreadySignedOut, http.StatusForbidden, "ATHR-002"},
	{common.ErrNotSignedIn, http.StatusForbidden, "ATHR-001"},
	{common.ErrForbidden, http.StatusForbidden, "ATHR-003"},
	{common.ErrNoActiveSession, http.StatusUnauthorized, "SGO-001"},
	{common.ErrUserProfileNotFound, http.StatusNotFound, "USR-001"},
	{common.ErrQuestionNotFound, http.StatusNotFound, "QUES-001"},
	{common.ErrAnswerNotFound, http.StatusNotFound, "ANS-001"},
}

const (
	codeBadRequest = "REQ-001"
	codeInternal   = "INTERNAL"
)

func (s *Server) respondError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			c.AbortWithStatusJSON(m.status, errorResponse{Code: m.code, Message: err.Error()})
			return
		}
	}

	if !errors.Is(err, common.ErrorInternal) {
		s.logger.Error(c.Request.Context(), "unmapped error", "request_id", c.GetString(requestIDKey), "error", err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Code: codeInternal, Message: "internal error"})
}

func (s *Server) respondBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Code: codeBadRequest, Message: err.Error()})
}
