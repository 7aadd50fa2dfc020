// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripsmith/internal/http/handlers"
	"tripsmith/internal/http/middleware"
	"tripsmith/internal/modules/history"
	"tripsmith/internal/modules/planner"
)

type RouterDeps struct {
	Planner *planner.Service
	Store   planner.Store
	History *history.Service
	Model   handlers.Healthchecker
}

func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	sessionHandler := handlers.NewSessionHandler(deps.Planner, deps.Store)
	r.POST("/api/sessions", sessionHandler.Create)
	r.GET("/api/sessions/:id", sessionHandler.Get)

	planHandler := handlers.NewPlanHandler(deps.Planner, deps.Store)
	r.POST("/api/sessions/:id/plan", planHandler.Generate)
	r.POST("/api/sessions/:id/refine", planHandler.Refine)
	r.GET("/api/sessions/:id/plan", planHandler.Get)

	exportHandler := handlers.NewExportHandler(deps.Store)
	r.GET("/api/sessions/:id/export/markdown", exportHandler.Markdown)
	r.GET("/api/sessions/:id/export/ics", exportHandler.ICS)

	if deps.History != nil {
		historyHandler := handlers.NewHistoryHandler(deps.History, deps.Store)
		r.POST("/api/sessions/:id/save", historyHandler.Save)
		r.GET("/api/plans", historyHandler.List)
		r.GET("/api/plans/:id", historyHandler.Get)
	}

	healthHandler := handlers.NewHealthHandler(deps.Model)
	r.GET("/api/model/health", healthHandler.Model)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
