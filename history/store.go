package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/r3labs/sse/v2"
)

type Store struct {
	db        *sqlx.DB
	publisher Publisher
	now       func() time.Time
}

// NewStore records lookups into db. publisher may be nil, in which case
// nothing is broadcast.
func NewStore(db *sqlx.DB, publisher Publisher) *Store {
	return &Store{
		db:        db,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *Store) Record(ctx context.Context, lookup Lookup) (Lookup, error) {
	if lookup.Kind != KindSearch && lookup.Kind != KindEpisodes {
		return lookup, fmt.Errorf("unknown lookup kind %q", lookup.Kind)
	}
	lookup.ID = uuid.NewString()
	lookup.Key = GenerateLookupKey(&lookup)
	lookup.CreatedAt = s.now().UTC()

	_, err := s.db.ExecContext(ctx, `
	  INSERT INTO lookups
	  (id, lookup_key, kind, query, show_id, show_name, result_count, total_seasons, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lookup.ID, lookup.Key, string(lookup.Kind), lookup.Query, lookup.ShowID, lookup.ShowName,
		lookup.ResultCount, lookup.TotalSeasons, lookup.CreatedAt)
	if err != nil {
		return lookup, fmt.Errorf("failed to insert lookup: %w", err)
	}

	slog.Debug("Recorded lookup",
		slog.String("id", lookup.ID),
		slog.String("kind", string(lookup.Kind)),
		slog.String("key", lookup.Key))

	s.broadcastEvent(lookup)
	return lookup, nil
}

// Just enough for a client to append the lookup to its list without refetching
func (s *Store) broadcastEvent(lookup Lookup) {
	if s.publisher == nil {
		return
	}
	data, err := json.Marshal(lookup)
	if err != nil {
		slog.Error("Failed to encode lookup event", slog.String("error", err.Error()))
		return
	}
	s.publisher.Publish(Stream, &sse.Event{ID: []byte(lookup.ID), Data: data})
}

func (s *Store) Recent(ctx context.Context, limit int) ([]Lookup, error) {
	results := []Lookup{}

	if limit <= 0 {
		return results, fmt.Errorf("must request at least one lookup")
	}

	err := s.db.SelectContext(ctx, &results, `
	  SELECT id, lookup_key, kind, query, show_id, show_name, result_count, total_seasons, created_at
	  FROM lookups
	  ORDER BY created_at DESC
	  LIMIT ?`, limit)

	return results, err
}

// Prune deletes lookups recorded before cutoff and reports how many went.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lookups WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune lookups: %w", err)
	}
	return res.RowsAffected()
}
