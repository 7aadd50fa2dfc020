// README: Export handlers for Markdown and ICS itinerary downloads.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripsmith/internal/modules/itinerary"
	"tripsmith/internal/modules/planner"
	"tripsmith/internal/types"
)

type ExportHandler struct {
	store planner.Store
}

func NewExportHandler(store planner.Store) *ExportHandler {
	return &ExportHandler{store: store}
}

func (h *ExportHandler) plan(c *gin.Context) *itinerary.Itinerary {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing session id")
		return nil
	}
	st, err := h.store.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return nil
	}
	if st.Plan == nil {
		writeError(c, http.StatusNotFound, "no plan generated yet")
		return nil
	}
	return st.Plan
}

// Markdown handles GET /api/sessions/:id/export/markdown.
func (h *ExportHandler) Markdown(c *gin.Context) {
	plan := h.plan(c)
	if plan == nil {
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(itinerary.Markdown(plan)))
}

// ICS handles GET /api/sessions/:id/export/ics.
func (h *ExportHandler) ICS(c *gin.Context) {
	plan := h.plan(c)
	if plan == nil {
		return
	}
	c.Header("Content-Disposition", `attachment; filename="itinerary.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(itinerary.ICS(plan)))
}
