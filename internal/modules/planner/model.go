// README: Conversation state and trip intent for the planning pipeline.
package planner

import (
	"time"

	"tripsmith/internal/ai"
	"tripsmith/internal/modules/itinerary"
	"tripsmith/internal/types"
)

// Intent holds the free-form trip parameters supplied fresh on each
// generate call. No field is required.
type Intent struct {
	Origin      string   `json:"origin"`
	Dest        string   `json:"dest"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Budget      string   `json:"budget"`
	Vibe        []string `json:"vibe"`
	Description string   `json:"description"`
}

// State is the unit of continuity across turns of one planning session.
// Messages grow monotonically; Intent is overwritten per generate call;
// Plan holds the last successfully validated itinerary.
//
// No locking: the design assumes single-session, single-writer access.
// Concurrent Generate/Refine against the same State is undefined.
type State struct {
	ID        types.ID             `json:"id"`
	Messages  []ai.Message         `json:"messages"`
	Intent    Intent               `json:"intent"`
	Plan      *itinerary.Itinerary `json:"plan,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// NewState creates a session state whose transcript opens with the persona
// system instruction.
func NewState(id types.ID, persona string) *State {
	return &State{
		ID:        id,
		Messages:  []ai.Message{{Role: "system", Content: personaPrompt(persona)}},
		CreatedAt: time.Now().UTC(),
	}
}

// POIHint is an ephemeral name+coordinate pair passed into the model prompt
// as grounding context. Never persisted.
type POIHint struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}
