// README: Plan handlers for generate/refine/get itinerary.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tripsmith/internal/modules/planner"
	"tripsmith/internal/types"
)

// generateTimeout bounds one full grounding + model round trip.
const generateTimeout = 120 * time.Second

type PlanHandler struct {
	planner *planner.Service
	store   planner.Store
}

func NewPlanHandler(svc *planner.Service, store planner.Store) *PlanHandler {
	return &PlanHandler{planner: svc, store: store}
}

type generateReq struct {
	Origin      string   `json:"origin"`
	Dest        string   `json:"dest"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Budget      string   `json:"budget"`
	Vibe        []string `json:"vibe"`
	Description string   `json:"description"`
}

// Generate handles POST /api/sessions/:id/plan.
func (h *PlanHandler) Generate(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing session id")
		return
	}
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	st, err := h.store.Get(ctx, types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	intent := planner.Intent{
		Origin:      strings.TrimSpace(req.Origin),
		Dest:        strings.TrimSpace(req.Dest),
		Start:       strings.TrimSpace(req.Start),
		End:         strings.TrimSpace(req.End),
		Budget:      strings.TrimSpace(req.Budget),
		Vibe:        req.Vibe,
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.planner.Generate(ctx, st, intent); err != nil {
		writeServiceError(c, err)
		return
	}
	if err := h.store.Put(ctx, st); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"session_id": st.ID, "plan": st.Plan})
}

type refineReq struct {
	Request string `json:"request"`
}

// Refine handles POST /api/sessions/:id/refine.
func (h *PlanHandler) Refine(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing session id")
		return
	}
	var req refineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.Request = strings.TrimSpace(req.Request)
	if req.Request == "" {
		writeError(c, http.StatusBadRequest, "missing request")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	st, err := h.store.Get(ctx, types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	applied, err := h.planner.Refine(ctx, st, req.Request)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if applied {
		if err := h.store.Put(ctx, st); err != nil {
			writeServiceError(c, err)
			return
		}
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"session_id": st.ID,
		"applied":    applied,
		"plan":       st.Plan,
	})
}

// Get handles GET /api/sessions/:id/plan.
func (h *PlanHandler) Get(c *gin.Context) {
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
	if st.Plan == nil {
		writeError(c, http.StatusNotFound, "no plan generated yet")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"session_id": st.ID, "plan": st.Plan})
}
