package tvmaze

const (
	PlaceholderImage   = "https://static.vecteezy.com/system/resources/previews/005/337/799/original/icon-image-not-found-free-vector.jpg"
	PlaceholderSummary = "No Summary was found for this title."
)

// Show is a search result after image and summary defaulting. Summary may
// contain markup straight from TVMaze.
type Show struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Image   string `json:"image"`
}

type Episode struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Number int    `json:"number"`
}

type EpisodeList struct {
	Episodes     []Episode `json:"episodes"`
	TotalSeasons int       `json:"total_seasons"`
}

type SearchResult struct {
	Score float64  `json:"score"`
	Show  *RawShow `json:"show"`
}

// RawShow mirrors the subset of the TVMaze show object we read. Nullable
// fields are pointers so absent and null can be told apart from empty.
type RawShow struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Summary *string   `json:"summary"`
	Image   *RawImage `json:"image"`
}

type RawImage struct {
	Medium   *string `json:"medium"`
	Original *string `json:"original"`
}

type RawEpisode struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Number int    `json:"number"`
}
