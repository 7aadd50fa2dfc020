// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripsmith/internal/modules/history"
	"tripsmith/internal/modules/planner"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, planner.ErrSessionNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, planner.ErrRefineFailed):
		writeError(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, history.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, history.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
