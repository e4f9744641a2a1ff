package history

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/r3labs/sse/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-crane/showscout/db"
)

type fakePublisher struct {
	m      sync.Mutex
	events map[string][]*sse.Event
}

func (p *fakePublisher) Publish(id string, event *sse.Event) {
	p.m.Lock()
	defer p.m.Unlock()
	if p.events == nil {
		p.events = map[string][]*sse.Event{}
	}
	p.events[id] = append(p.events[id], event)
}

func setupTestDB(t *testing.T) *sqlx.DB {
	database, err := db.OpenAndMigrate(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// Each call moves the clock forward an hour so ordering is deterministic
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(time.Hour)
		return now
	}
}

func TestStore_RecordAndRecent(t *testing.T) {
	database := setupTestDB(t)
	start := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(database, nil)
	store.now = steppingClock(start)
	ctx := context.Background()

	search, err := store.Record(ctx, Lookup{Kind: KindSearch, Query: "Girls", ResultCount: 4})
	require.NoError(t, err)
	assert.NotEmpty(t, search.ID)
	assert.Equal(t, GenerateLookupKey(&Lookup{Kind: KindSearch, Query: "girls"}), search.Key)
	assert.True(t, start.Equal(search.CreatedAt))

	episodes, err := store.Record(ctx, Lookup{Kind: KindEpisodes, ShowID: 139, ShowName: "Girls", ResultCount: 62, TotalSeasons: 6})
	require.NoError(t, err)

	recent, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// 1. Newest first
	assert.Equal(t, episodes.ID, recent[0].ID)
	assert.Equal(t, KindEpisodes, recent[0].Kind)
	assert.Equal(t, 139, recent[0].ShowID)
	assert.Equal(t, "Girls", recent[0].ShowName)
	assert.Equal(t, 62, recent[0].ResultCount)
	assert.Equal(t, 6, recent[0].TotalSeasons)
	assert.True(t, start.Add(time.Hour).Equal(recent[0].CreatedAt))

	// 2. Then the search
	assert.Equal(t, search.ID, recent[1].ID)
	assert.Equal(t, "Girls", recent[1].Query)
	assert.Equal(t, 4, recent[1].ResultCount)

	// 3. Limit is respected
	recent, err = store.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestStore_RecentRequiresPositiveLimit(t *testing.T) {
	store := NewStore(setupTestDB(t), nil)
	_, err := store.Recent(context.Background(), 0)
	assert.Error(t, err)
}

func TestStore_RecordRejectsUnknownKind(t *testing.T) {
	store := NewStore(setupTestDB(t), nil)
	_, err := store.Record(context.Background(), Lookup{Kind: "bogus"})
	assert.Error(t, err)
}

func TestStore_RecordPublishesEvent(t *testing.T) {
	publisher := &fakePublisher{}
	store := NewStore(setupTestDB(t), publisher)

	recorded, err := store.Record(context.Background(), Lookup{Kind: KindSearch, Query: "house"})
	require.NoError(t, err)

	require.Len(t, publisher.events[Stream], 1)
	event := publisher.events[Stream][0]
	assert.Equal(t, recorded.ID, string(event.ID))

	var got Lookup
	require.NoError(t, json.Unmarshal(event.Data, &got))
	assert.Equal(t, "house", got.Query)
	assert.Equal(t, recorded.Key, got.Key)
}

func TestStore_Prune(t *testing.T) {
	database := setupTestDB(t)
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	store := NewStore(database, nil)
	store.now = steppingClock(start)
	ctx := context.Background()

	for _, q := range []string{"a", "b", "c"} {
		_, err := store.Record(ctx, Lookup{Kind: KindSearch, Query: q})
		require.NoError(t, err)
	}

	// Records sit at 00:00, 01:00 and 02:00 so this removes the first two
	removed, err := store.Prune(ctx, start.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	recent, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "c", recent[0].Query)
}

func TestStore_RecordDatabaseError(t *testing.T) {
	t.Parallel()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer mockDB.Close()

	mock.ExpectExec("INSERT INTO lookups").WillReturnError(errors.New("disk full"))

	publisher := &fakePublisher{}
	store := NewStore(sqlx.NewDb(mockDB, "sqlmock"), publisher)
	_, err = store.Record(context.Background(), Lookup{Kind: KindSearch, Query: "x"})
	assert.ErrorContains(t, err, "disk full")
	assert.Empty(t, publisher.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RecentDatabaseError(t *testing.T) {
	t.Parallel()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer mockDB.Close()

	mock.ExpectQuery("SELECT (.+) FROM lookups").WillReturnError(errors.New("locked"))

	store := NewStore(sqlx.NewDb(mockDB, "sqlmock"), nil)
	_, err = store.Recent(context.Background(), 5)
	assert.ErrorContains(t, err, "locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateLookupKey(t *testing.T) {
	t.Parallel()
	a := GenerateLookupKey(&Lookup{Kind: KindSearch, Query: "The Office"})
	b := GenerateLookupKey(&Lookup{Kind: KindSearch, Query: "  the office "})
	c := GenerateLookupKey(&Lookup{Kind: KindEpisodes, ShowID: 526})
	d := GenerateLookupKey(&Lookup{Kind: KindEpisodes, ShowID: 526, ShowName: "The Office"})

	assert.Equal(t, a, b)
	assert.Equal(t, c, d)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^search:\d+$`, a)
	assert.Regexp(t, `^episodes:\d+$`, c)
}
