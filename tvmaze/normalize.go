package tvmaze

// NormalizeShow fills in the placeholder image and summary for shows that
// don't carry them.
func NormalizeShow(raw RawShow) Show {
	return Show{
		ID:      raw.ID,
		Name:    raw.Name,
		Summary: showSummary(raw),
		Image:   showImage(raw),
	}
}

func showImage(raw RawShow) string {
	if raw.Image == nil || raw.Image.Original == nil || *raw.Image.Original == "" {
		return PlaceholderImage
	}
	return *raw.Image.Original
}

func showSummary(raw RawShow) string {
	if raw.Summary == nil {
		return PlaceholderSummary
	}
	return *raw.Summary
}

func NormalizeEpisode(raw RawEpisode) Episode {
	return Episode{
		ID:     raw.ID,
		Name:   raw.Name,
		Season: raw.Season,
		Number: raw.Number,
	}
}
