// README: The plan generation and repair pipeline: grounding, model call,
// validate, repair once, fallback, prune, commit.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"tripsmith/internal/ai"
	"tripsmith/internal/maps"
	"tripsmith/internal/modules/itinerary"
	"tripsmith/internal/types"
)

const (
	// Grounding caps and knobs.
	poiRadiusM    = 4000
	poiFetchLimit = 40
	maxPOIHints   = 20

	// The serialized plan appended as the assistant turn is truncated to
	// bound transcript growth.
	maxAssistantTurnChars = 3000

	defaultTemperature = 0.4
)

// ErrRefineFailed marks a refinement that the model could not complete or
// whose output did not validate. The previous plan is kept either way.
var ErrRefineFailed = errors.New("refinement failed")

// WeatherSource resolves a daily forecast for a coordinate and date window.
// Satisfied by *maps.WeatherClient.
type WeatherSource interface {
	DailyForecast(ctx context.Context, lat, lon float64, start, end string) (*maps.Forecast, error)
}

// Service orchestrates the grounding collaborators and the model client
// into the Generate and Refine operations.
type Service struct {
	chat        ai.ChatClient
	geocoder    maps.Geocoder
	weather     WeatherSource
	pois        maps.POIFinder
	persona     string
	temperature float64
}

// NewService wires the pipeline. weather and pois may be nil, in which case
// the corresponding grounding steps are skipped entirely.
func NewService(chat ai.ChatClient, geocoder maps.Geocoder, weather WeatherSource, pois maps.POIFinder, persona string) *Service {
	return &Service{
		chat:        chat,
		geocoder:    geocoder,
		weather:     weather,
		pois:        pois,
		persona:     persona,
		temperature: defaultTemperature,
	}
}

// NewSession creates a fresh conversation state with the service's persona.
func (s *Service) NewSession() *State {
	return NewState(types.ID(uuid.NewString()), s.persona)
}

// Generate grounds the intent, prompts the model, validates (repairing
// once), prunes, and commits the plan into the state. It always terminates
// with a structurally valid plan; the only error it can return is the
// caller's own context cancellation.
func (s *Service) Generate(ctx context.Context, st *State, intent Intent) error {
	st.Intent = intent

	// Destination resolution. Geocoder failures and not-found results
	// degrade to an all-null placeholder: the model is then asked to choose
	// a destination itself.
	dest := itinerary.Destination{}
	if intent.Dest != "" {
		info, err := s.geocoder.FindCityCenter(ctx, intent.Dest)
		if err == nil && info != nil {
			dest = destinationFrom(info)
		}
	}

	// Weather, best-effort, only when a city was resolved.
	var forecast []maps.ForecastDay
	if s.weather != nil && dest.City != nil && dest.Lat != nil && dest.Lon != nil {
		fc, err := s.weather.DailyForecast(ctx, *dest.Lat, *dest.Lon, intent.Start, intent.End)
		if err != nil {
			log.Printf("planner: weather lookup failed (ignored): %v", err)
		} else if fc != nil {
			forecast = fc.Days
		}
	}

	// POI hints, best-effort, only when coordinates are known.
	var hints []POIHint
	if s.pois != nil && dest.Lat != nil && dest.Lon != nil {
		pois, err := s.pois.FindNearby(ctx, *dest.Lat, *dest.Lon, poiRadiusM, poiFetchLimit)
		if err != nil {
			log.Printf("planner: poi lookup failed (ignored): %v", err)
		} else {
			named := lo.Filter(pois, func(p maps.POI, _ int) bool { return p.Name != "" })
			hints = lo.Map(lo.Slice(named, 0, maxPOIHints), func(p maps.POI, _ int) POIHint {
				return POIHint{Name: p.Name, Lat: p.Lat, Lon: p.Lon}
			})
		}
	}

	payload := groundingPayload{
		Origin:      intent.Origin,
		Destination: dest,
		Start:       intent.Start,
		End:         intent.End,
		Budget:      intent.Budget,
		Vibe:        intent.Vibe,
		Description: intent.Description,
		Weather:     forecast,
		POIHint:     hints,
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal grounding payload: %w", err)
	}

	messages := append(cloneMessages(st.Messages),
		ai.Message{Role: "system", Content: schemaInstruction},
		ai.Message{Role: "user", Content: generatePrompt(payloadJSON)},
	)

	plan := s.generatePlan(ctx, messages, dest, intent)
	if err := ctx.Err(); err != nil {
		return err
	}

	itinerary.Prune(plan)

	st.Plan = plan
	st.Messages = append(messages, assistantTurn(plan))
	return nil
}

// generatePlan runs the model call / validate / repair-once / fallback
// chain and always returns a valid itinerary.
func (s *Service) generatePlan(ctx context.Context, messages []ai.Message, dest itinerary.Destination, intent Intent) *itinerary.Itinerary {
	content, err := s.chat.Chat(ctx, messages, s.temperature)
	if err != nil {
		log.Printf("planner: model call failed, substituting fallback plan: %v", err)
		return FallbackPlan(dest, intent.Start, intent.End)
	}

	plan, parseErr := parsePlan(content)
	if parseErr == nil {
		return plan
	}
	log.Printf("planner: model output invalid (%v), attempting repair round", parseErr)

	// Exactly one repair round: a standalone message pair asking the model
	// to coerce its previous output into valid JSON.
	repair := []ai.Message{
		{Role: "system", Content: schemaInstruction},
		{Role: "user", Content: repairPrompt(content)},
	}
	fixed, err := s.chat.Chat(ctx, repair, s.temperature)
	if err != nil {
		log.Printf("planner: repair call failed, substituting fallback plan: %v", err)
		return FallbackPlan(dest, intent.Start, intent.End)
	}

	plan, parseErr = parsePlan(fixed)
	if parseErr == nil {
		return plan
	}
	log.Printf("planner: repair round failed (%v), substituting fallback plan", parseErr)
	return FallbackPlan(dest, intent.Start, intent.End)
}

// Refine asks the model to adjust the current plan per the free-text
// request. With no plan to refine it is a no-op reporting (false, nil).
// Unlike Generate there is no repair round: any failure leaves the state
// untouched and is returned to the caller.
func (s *Service) Refine(ctx context.Context, st *State, request string) (bool, error) {
	if st.Plan == nil {
		return false, nil
	}

	planJSON, err := json.Marshal(st.Plan)
	if err != nil {
		return false, fmt.Errorf("marshal current plan: %w", err)
	}

	messages := append(cloneMessages(st.Messages),
		ai.Message{Role: "system", Content: schemaInstruction},
		ai.Message{Role: "user", Content: refinePrompt(request, planJSON)},
	)

	content, err := s.chat.Chat(ctx, messages, s.temperature)
	if err != nil {
		return false, fmt.Errorf("%w: model call: %v", ErrRefineFailed, err)
	}

	plan, err := parsePlan(content)
	if err != nil {
		return false, fmt.Errorf("%w: output invalid: %v", ErrRefineFailed, err)
	}

	// Reapplied after refinement so the jump invariant holds for every
	// committed plan, not just generated ones.
	itinerary.Prune(plan)

	st.Plan = plan
	st.Messages = append(messages, assistantTurn(plan))
	return true, nil
}

func parsePlan(content string) (*itinerary.Itinerary, error) {
	cleaned := ai.ExtractJSON(content)
	if cleaned == "" {
		return nil, fmt.Errorf("no JSON object in model output")
	}
	return itinerary.Parse([]byte(cleaned))
}

func assistantTurn(plan *itinerary.Itinerary) ai.Message {
	data, err := json.Marshal(plan)
	if err != nil {
		return ai.Message{Role: "assistant", Content: "{}"}
	}
	content := string(data)
	if runes := []rune(content); len(runes) > maxAssistantTurnChars {
		content = string(runes[:maxAssistantTurnChars])
	}
	return ai.Message{Role: "assistant", Content: content}
}

func destinationFrom(info *maps.CityInfo) itinerary.Destination {
	city := info.City
	country := info.Country
	lat := info.Lat
	lon := info.Lon
	return itinerary.Destination{City: &city, Country: &country, Lat: &lat, Lon: &lon}
}

func cloneMessages(msgs []ai.Message) []ai.Message {
	out := make([]ai.Message, len(msgs))
	copy(out, msgs)
	return out
}
