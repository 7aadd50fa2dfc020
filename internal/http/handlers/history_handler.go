// README: History handlers for saving and browsing past plans.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripsmith/internal/modules/history"
	"tripsmith/internal/modules/planner"
	"tripsmith/internal/types"
)

type HistoryHandler struct {
	history *history.Service
	store   planner.Store
}

func NewHistoryHandler(svc *history.Service, store planner.Store) *HistoryHandler {
	return &HistoryHandler{history: svc, store: store}
}

// Save handles POST /api/sessions/:id/save.
func (h *HistoryHandler) Save(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing session id")
		return
	}
	st, err := h.store.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	rec, err := h.history.SavePlan(c.Request.Context(), st.ID, st.Plan)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{"plan_id": rec.ID})
}

// List handles GET /api/plans.
func (h *HistoryHandler) List(c *gin.Context) {
	recs, err := h.history.ListRecent(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	type item struct {
		ID        types.ID `json:"id"`
		City      string   `json:"city"`
		Country   string   `json:"country"`
		StartDate string   `json:"start_date"`
		EndDate   string   `json:"end_date"`
		Pace      string   `json:"pace"`
	}
	items := make([]item, 0, len(recs))
	for _, r := range recs {
		items = append(items, item{
			ID:        r.ID,
			City:      r.City,
			Country:   r.Country,
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
			Pace:      r.Pace,
		})
	}
	writeJSON(c, http.StatusOK, map[string]any{"plans": items})
}

// Get handles GET /api/plans/:id.
func (h *HistoryHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing plan id")
		return
	}
	rec, err := h.history.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rec)
}
