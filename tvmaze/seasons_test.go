package tvmaze

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func flatten(groups []SeasonGroup) []Episode {
	var out []Episode
	for _, group := range groups {
		out = append(out, group.Episodes...)
	}
	return out
}

func TestGroupBySeason_TwoSeasons(t *testing.T) {
	t.Parallel()
	episodes := []Episode{
		{Season: 1, Number: 1, Name: "A"},
		{Season: 1, Number: 2, Name: "B"},
		{Season: 2, Number: 1, Name: "C"},
	}
	want := []SeasonGroup{
		{Season: 1, Episodes: []Episode{episodes[0], episodes[1]}},
		{Season: 2, Episodes: []Episode{episodes[2]}},
	}
	got := GroupBySeason(episodes, 2)
	if !cmp.Equal(want, got) {
		t.Error(cmp.Diff(want, got))
	}
}

func TestGroupBySeason_EmptySeasonStillPresent(t *testing.T) {
	t.Parallel()
	episodes := []Episode{
		{Season: 1, Number: 1, Name: "A"},
		{Season: 3, Number: 1, Name: "C"},
	}
	got := GroupBySeason(episodes, 3)
	assert.Len(t, got, 3)
	assert.Equal(t, 2, got[1].Season)
	assert.NotNil(t, got[1].Episodes)
	assert.Empty(t, got[1].Episodes)
}

func TestGroupBySeason_KeepsInputOrderWithinSeason(t *testing.T) {
	t.Parallel()
	// Not sorted by number on purpose: grouping must not reorder
	episodes := []Episode{
		{ID: 1, Season: 1, Number: 3},
		{ID: 2, Season: 2, Number: 1},
		{ID: 3, Season: 1, Number: 1},
		{ID: 4, Season: 1, Number: 2},
	}
	got := GroupBySeason(episodes, 2)
	want := []Episode{episodes[0], episodes[2], episodes[3]}
	if !cmp.Equal(want, got[0].Episodes) {
		t.Error(cmp.Diff(want, got[0].Episodes))
	}
}

func TestGroupBySeason_NoSeasons(t *testing.T) {
	t.Parallel()
	assert.Empty(t, GroupBySeason(nil, 0))
	assert.Empty(t, GroupBySeason([]Episode{{Season: 1}}, -1))
}

func TestGroupBySeason_OutOfRangeSeasonsAreDropped(t *testing.T) {
	t.Parallel()
	episodes := []Episode{
		{ID: 1, Season: 0, Name: "Special"},
		{ID: 2, Season: 1, Name: "Pilot"},
		{ID: 3, Season: 5, Name: "Future"},
	}
	got := GroupBySeason(episodes, 2)
	want := []SeasonGroup{
		{Season: 1, Episodes: []Episode{episodes[1]}},
		{Season: 2, Episodes: []Episode{}},
	}
	if !cmp.Equal(want, got) {
		t.Error(cmp.Diff(want, got))
	}
}

// Checks the grouping invariants over random inputs: contiguous season
// numbers, every episode in exactly the group matching its season, stable
// order within a group, and no episodes lost when flattening back out.
func TestGroupBySeason_Invariants(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		count := r.Intn(40) + 1
		episodes := make([]Episode, count)
		for i := range episodes {
			episodes[i] = Episode{ID: i, Season: r.Intn(6) + 1, Number: r.Intn(20) + 1}
		}
		total := MaxSeason(episodes)
		groups := GroupBySeason(episodes, total)

		if len(groups) != total {
			t.Fatalf("round %d: want %d groups, got %d", round, total, len(groups))
		}
		lastIDBySeason := map[int]int{}
		for idx, group := range groups {
			if group.Season != idx+1 {
				t.Fatalf("round %d: group %d numbered %d", round, idx, group.Season)
			}
			lastIDBySeason[group.Season] = -1
			for _, episode := range group.Episodes {
				if episode.Season != group.Season {
					t.Fatalf("round %d: episode %d in season %d group", round, episode.ID, group.Season)
				}
				if episode.ID <= lastIDBySeason[group.Season] {
					t.Fatalf("round %d: order not preserved in season %d", round, group.Season)
				}
				lastIDBySeason[group.Season] = episode.ID
			}
		}
		if got := len(flatten(groups)); got != count {
			t.Fatalf("round %d: flattened %d episodes, want %d", round, got, count)
		}
	}
}

func TestMaxSeasonAndLastSeason(t *testing.T) {
	t.Parallel()
	sorted := []Episode{{Season: 1}, {Season: 2}, {Season: 2}}
	unsorted := []Episode{{Season: 3}, {Season: 1}}

	assert.Equal(t, 2, MaxSeason(sorted))
	assert.Equal(t, 2, LastSeason(sorted))
	assert.Equal(t, 3, MaxSeason(unsorted))
	assert.Equal(t, 1, LastSeason(unsorted))
	assert.Equal(t, 0, MaxSeason(nil))
	assert.Equal(t, 0, LastSeason(nil))
}
