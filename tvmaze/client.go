package tvmaze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/marcus-crane/showscout/utils"
)

const (
	DefaultBaseURL = "https://api.tvmaze.com"

	searchEndpoint   = "/search/shows"
	episodesEndpoint = "/shows/%d/episodes"
)

// Client talks to the TVMaze API. It holds no state between calls and is safe
// for concurrent use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: utils.NewHTTPClient(timeout),
	}
}

func (c *Client) buildURL(endpoint string, query url.Values) string {
	u := c.BaseURL + endpoint
	if query != nil {
		u = u + "?" + query.Encode()
	}
	return u
}

// SearchShows looks up shows matching query. The query is sent as-is, so an
// empty query is still a request. No matches is an empty slice, not an error.
func (c *Client) SearchShows(ctx context.Context, query string) ([]Show, error) {
	endpoint := c.buildURL(searchEndpoint, url.Values{"q": []string{query}})

	var results []SearchResult
	if err := c.getJSON(ctx, endpoint, &results); err != nil {
		return nil, err
	}
	if results == nil {
		return nil, &InvalidResponseError{URL: endpoint, Err: errors.New("expected a JSON array of search results")}
	}

	shows := make([]Show, 0, len(results))
	for idx, result := range results {
		if result.Show == nil {
			return nil, &InvalidResponseError{URL: endpoint, Err: fmt.Errorf("search result %d has no show", idx)}
		}
		shows = append(shows, NormalizeShow(*result.Show))
	}
	return shows, nil
}

// GetEpisodes fetches every episode of a show. TotalSeasons is the highest
// season number seen rather than the season of the last episode, so it holds
// even if TVMaze ever returns episodes out of order.
func (c *Client) GetEpisodes(ctx context.Context, showID int) (EpisodeList, error) {
	endpoint := c.buildURL(fmt.Sprintf(episodesEndpoint, showID), nil)

	var rawEpisodes []RawEpisode
	if err := c.getJSON(ctx, endpoint, &rawEpisodes); err != nil {
		return EpisodeList{}, err
	}
	if rawEpisodes == nil {
		return EpisodeList{}, &InvalidResponseError{URL: endpoint, Err: errors.New("expected a JSON array of episodes")}
	}
	if len(rawEpisodes) == 0 {
		return EpisodeList{}, &EmptyShowError{ShowID: showID}
	}

	episodes := make([]Episode, 0, len(rawEpisodes))
	for _, raw := range rawEpisodes {
		episodes = append(episodes, NormalizeEpisode(raw))
	}
	return EpisodeList{
		Episodes:     episodes,
		TotalSeasons: MaxSeason(episodes),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &NetworkError{URL: endpoint, Err: err}
	}
	req.Header = http.Header{
		"Accept":     []string{"application/json"},
		"User-Agent": []string{utils.UserAgent},
	}
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return &NetworkError{URL: endpoint, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return &NetworkError{URL: endpoint, Err: err}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &InvalidResponseError{URL: endpoint, StatusCode: res.StatusCode, Err: errors.New(res.Status)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &InvalidResponseError{URL: endpoint, Err: err}
	}
	return nil
}
