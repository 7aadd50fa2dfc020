package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tripsmith/internal/modules/itinerary"
	"tripsmith/internal/types"
)

const defaultListLimit = 50

// Service builds records from validated itineraries and delegates to the
// store.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// SavePlan snapshots the session's current plan and returns the new record.
func (s *Service) SavePlan(ctx context.Context, sessionID types.ID, plan *itinerary.Itinerary) (*Record, error) {
	if plan == nil {
		return nil, ErrBadRequest
	}

	rec := &Record{
		ID:         types.ID(uuid.NewString()),
		SessionID:  sessionID,
		StartDate:  plan.DateRange.Start,
		EndDate:    plan.DateRange.End,
		Pace:       plan.Summary.Pace,
		EstCostGBP: plan.Summary.EstCostGBP,
		Plan:       plan,
		CreatedAt:  time.Now().UTC(),
	}
	if plan.Destination.City != nil {
		rec.City = *plan.Destination.City
	}
	if plan.Destination.Country != nil {
		rec.Country = *plan.Destination.Country
	}

	if err := s.store.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Record, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListRecent(ctx context.Context) ([]*Record, error) {
	return s.store.ListRecent(ctx, defaultListLimit)
}
