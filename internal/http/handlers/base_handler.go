// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartride/internal/modules/fare"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

func writeFareError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, fare.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusBadGateway, "distance lookup failed")
	}
}
