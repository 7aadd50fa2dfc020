// README: Saved plan store backed by PostgreSQL.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripsmith/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Schema reference (migrations are applied out of band):
//
//	CREATE TABLE trip_plans (
//	    id            TEXT PRIMARY KEY,
//	    session_id    TEXT NOT NULL,
//	    city          TEXT NOT NULL DEFAULT '',
//	    country       TEXT NOT NULL DEFAULT '',
//	    start_date    TEXT NOT NULL DEFAULT '',
//	    end_date      TEXT NOT NULL DEFAULT '',
//	    pace          TEXT NOT NULL DEFAULT '',
//	    est_cost_gbp  DOUBLE PRECISION NOT NULL DEFAULT 0,
//	    plan          JSONB NOT NULL,
//	    created_at    TIMESTAMPTZ NOT NULL
//	);

func (s *Store) Save(ctx context.Context, r *Record) error {
	planJSON, err := json.Marshal(r.Plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO trip_plans (
			id, session_id, city, country, start_date, end_date,
			pace, est_cost_gbp, plan, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		string(r.ID),
		string(r.SessionID),
		r.City,
		r.Country,
		r.StartDate,
		r.EndDate,
		r.Pace,
		r.EstCostGBP,
		planJSON,
		r.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Record, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, session_id, city, country, start_date, end_date,
		       pace, est_cost_gbp, plan, created_at
		FROM trip_plans
		WHERE id = $1`, string(id),
	)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]*Record, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, session_id, city, country, start_date, end_date,
		       pace, est_cost_gbp, plan, created_at
		FROM trip_plans
		ORDER BY created_at DESC
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var id, sessionID string
	var planJSON []byte
	var createdAt time.Time

	err := row.Scan(
		&id, &sessionID, &rec.City, &rec.Country, &rec.StartDate, &rec.EndDate,
		&rec.Pace, &rec.EstCostGBP, &planJSON, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	rec.ID = types.ID(id)
	rec.SessionID = types.ID(sessionID)
	rec.CreatedAt = createdAt
	if err := json.Unmarshal(planJSON, &rec.Plan); err != nil {
		return nil, fmt.Errorf("corrupt plan for %s: %w", id, err)
	}
	return &rec, nil
}
