package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/smartirrigation/internal/common"
	"github.com/gin-gonic/gin"
)

type messageResponse struct {
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, messageResponse{Message: msg})
}

func abortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, messageResponse{Message: msg})
}

// fail maps a service error to a response. Unknown errors are logged and
// answered with internalMsg only.
func (s *HTTPServer) fail(c *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		respondError(c, http.StatusBadRequest, "User already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, common.ErrorForbidden):
		respondError(c, http.StatusForbidden, "You can only delete your own proposals")
	case errors.Is(err, common.ErrorNotFound):
		respondError(c, http.StatusNotFound, "Proposal not found")
	default:
		s.logger.Error(c.Request.Context(), internalMsg, "error", err, "path", c.Request.URL.Path)
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, internalMsg)
	}
}

// bindJSON decodes the body into dst, answering 400 on malformed input.
// An empty body leaves dst zero so that required-field checks report it.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
