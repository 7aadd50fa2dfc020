// README: Session handlers for create/get conversation state.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripsmith/internal/modules/planner"
	"tripsmith/internal/types"
)

type SessionHandler struct {
	planner *planner.Service
	store   planner.Store
}

func NewSessionHandler(svc *planner.Service, store planner.Store) *SessionHandler {
	return &SessionHandler{planner: svc, store: store}
}

func (h *SessionHandler) Create(c *gin.Context) {
	st := h.planner.NewSession()
	if err := h.store.Put(c.Request.Context(), st); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{"session_id": st.ID})
}

func (h *SessionHandler) Get(c *gin.Context) {
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
	writeJSON(c, http.StatusOK, map[string]any{
		"session_id": st.ID,
		"messages":   len(st.Messages),
		"intent":     st.Intent,
		"has_plan":   st.Plan != nil,
		"created_at": st.CreatedAt,
	})
}
