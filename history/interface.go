package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/r3labs/sse/v2"
)

// Stream is the SSE stream new lookups are published to
const Stream = "lookups"

type Recorder interface {
	Record(ctx context.Context, lookup Lookup) (Lookup, error)
	Recent(ctx context.Context, limit int) ([]Lookup, error)
}

// Publisher is satisfied by *sse.Server
type Publisher interface {
	Publish(id string, event *sse.Event)
}

type Kind string

const (
	KindSearch   Kind = "search"
	KindEpisodes Kind = "episodes"
)

// Lookup is one search or episode fetch made on behalf of a user. Repeating the
// same search produces a new Lookup with the same Key.
type Lookup struct {
	ID           string    `db:"id" json:"id"`
	Key          string    `db:"lookup_key" json:"key"`
	Kind         Kind      `db:"kind" json:"kind"`
	Query        string    `db:"query" json:"query,omitempty"`
	ShowID       int       `db:"show_id" json:"show_id,omitempty"`
	ShowName     string    `db:"show_name" json:"show_name,omitempty"`
	ResultCount  int       `db:"result_count" json:"result_count"`
	TotalSeasons int       `db:"total_seasons" json:"total_seasons,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// GenerateLookupKey is deterministic for a given kind and target so repeat
// lookups can be grouped. Searches are keyed case-insensitively.
func GenerateLookupKey(l *Lookup) string {
	var target string
	switch l.Kind {
	case KindEpisodes:
		target = fmt.Sprintf("%d", l.ShowID)
	default:
		target = strings.ToLower(strings.TrimSpace(l.Query))
	}
	return fmt.Sprintf("%s:%d", l.Kind, xxhash.Sum64String(target))
}
