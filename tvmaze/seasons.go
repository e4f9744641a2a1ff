package tvmaze

type SeasonGroup struct {
	Season   int       `json:"season"`
	Episodes []Episode `json:"episodes"`
}

// GroupBySeason partitions episodes into seasons 1..totalSeasons, keeping the
// order they were given in. Seasons without episodes are still present with an
// empty slice. Episodes outside that range are dropped.
func GroupBySeason(episodes []Episode, totalSeasons int) []SeasonGroup {
	if totalSeasons <= 0 {
		return []SeasonGroup{}
	}
	groups := make([]SeasonGroup, totalSeasons)
	for i := range groups {
		groups[i] = SeasonGroup{Season: i + 1, Episodes: []Episode{}}
	}
	for _, episode := range episodes {
		if episode.Season < 1 || episode.Season > totalSeasons {
			continue
		}
		idx := episode.Season - 1
		groups[idx].Episodes = append(groups[idx].Episodes, episode)
	}
	return groups
}

// MaxSeason is the highest season number seen, regardless of ordering.
func MaxSeason(episodes []Episode) int {
	highest := 0
	for _, episode := range episodes {
		if episode.Season > highest {
			highest = episode.Season
		}
	}
	return highest
}

// LastSeason returns the season of the final episode. It only matches
// MaxSeason when TVMaze returns episodes sorted by season.
func LastSeason(episodes []Episode) int {
	if len(episodes) == 0 {
		return 0
	}
	return episodes[len(episodes)-1].Season
}
