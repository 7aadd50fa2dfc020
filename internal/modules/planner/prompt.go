package planner

import (
	"fmt"

	"tripsmith/internal/maps"
	"tripsmith/internal/modules/itinerary"
)

// Persona selectors. The persona is injected at Service construction so the
// system prompt is a testable dependency rather than a global flag.
const (
	PersonaPrecise = "precise"
	PersonaChaotic = "chaotic"
)

func personaPrompt(persona string) string {
	switch persona {
	case PersonaChaotic:
		return "You are Big Ears, an eccentric travel planner with chaotic taste who delights in odd detours. You still follow formatting instructions to the letter."
	default:
		return "You are Big Ears, a precise travel-planning agent. Return compact, realistic itineraries."
	}
}

// schemaInstruction is the fixed system message pinning the itinerary JSON
// contract. Sent before every generation and repair attempt.
const schemaInstruction = `Return STRICT JSON that validates against this schema:
{
  "destination": {"city": "...", "country": "...", "lat": 0, "lon": 0},
  "date_range": {"start": "YYYY-MM-DD", "end": "YYYY-MM-DD"},
  "daily_plan": [
    {"date":"YYYY-MM-DD","theme":"...",
     "items":[{"time":"09:00","name":"...","type":"sight|food|activity|transfer",
               "lat":0,"lon":0,"duration_min":90,"notes":"...","booking_url":null}]}
  ],
  "summary": {"pace":"relaxed|moderate|packed","est_cost_gbp":0,"warnings":[]}
}
Only output JSON - no markdown or commentary.
Keep walking distances reasonable and stay within the same city.`

// groundingPayload is the structured context embedded in the generate
// prompt: everything the model needs to anchor the itinerary in reality.
type groundingPayload struct {
	Origin      string                `json:"origin"`
	Destination itinerary.Destination `json:"destination"`
	Start       string                `json:"start"`
	End         string                `json:"end"`
	Budget      string                `json:"budget"`
	Vibe        []string              `json:"vibe"`
	Description string                `json:"description,omitempty"`
	Weather     []maps.ForecastDay    `json:"weather,omitempty"`
	POIHint     []POIHint             `json:"poi_hint"`
}

func generatePrompt(payloadJSON []byte) string {
	return fmt.Sprintf(`Create a realistic day-by-day travel itinerary based on these details:
%s

If no destination is provided, choose a suitable city and country that match the travel vibe, origin, and budget.
Always include the chosen destination name and coordinates in the JSON output.`, payloadJSON)
}

func repairPrompt(raw string) string {
	return fmt.Sprintf("Fix this text so it is strictly valid JSON per schema and return JSON only: ```%s```", raw)
}

func refinePrompt(request string, planJSON []byte) string {
	return fmt.Sprintf(`Refine the existing itinerary below according to this user request:
%q

Current plan JSON:
%s

Rules:
- Keep JSON valid and strict per schema.
- Preserve the same destination and general structure.
- Only adjust content consistent with the request.
Return JSON only.`, request, planJSON)
}
