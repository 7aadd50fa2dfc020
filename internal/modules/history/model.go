// README: Saved trip plans; lets users keep itineraries beyond session TTL.
package history

import (
	"errors"
	"time"

	"tripsmith/internal/modules/itinerary"
	"tripsmith/internal/types"
)

var (
	ErrNotFound   = errors.New("saved plan not found")
	ErrBadRequest = errors.New("invalid save request")
)

// Record is a persisted itinerary snapshot.
type Record struct {
	ID         types.ID             `json:"id"`
	SessionID  types.ID             `json:"session_id"`
	City       string               `json:"city"`
	Country    string               `json:"country"`
	StartDate  string               `json:"start_date"`
	EndDate    string               `json:"end_date"`
	Pace       string               `json:"pace"`
	EstCostGBP float64              `json:"est_cost_gbp"`
	Plan       *itinerary.Itinerary `json:"plan,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}
