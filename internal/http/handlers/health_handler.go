// README: Health handlers (liveness plus model reachability probe).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripsmith/internal/ai"
)

// Healthchecker reports whether the configured model backend is reachable.
type Healthchecker interface {
	Healthcheck(ctx context.Context) ai.Health
}

type HealthHandler struct {
	model Healthchecker
}

func NewHealthHandler(model Healthchecker) *HealthHandler {
	return &HealthHandler{model: model}
}

// Model handles GET /api/model/health.
func (h *HealthHandler) Model(c *gin.Context) {
	if h.model == nil {
		writeError(c, http.StatusServiceUnavailable, "model healthcheck not available")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()
	writeJSON(c, http.StatusOK, h.model.Healthcheck(ctx))
}
