package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courtside/courtside/internal/errs"
)

// All responses share the {success, message, data} envelope; error responses
// populate message and omit data.

func respondOK(c *gin.Context, message string, data gin.H) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func (s *Server) respondErr(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), "%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	respondError(c, errs.HTTPStatus(err), err.Error())
}
