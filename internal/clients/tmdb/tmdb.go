// Package tmdb adapts the TMDB HTTP API to the catalog's flat Movie shape.
// All requests are GETs authenticated with an api_key query parameter; there
// is no retry policy.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/fields"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/models"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/metrics"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	imageBaseURL   = "https://image.tmdb.org/t/p/w500"
	language       = "es-ES"

	listPosterPlaceholder   = "https://via.placeholder.com/100x150?text=No+Image"
	detailPosterPlaceholder = "https://via.placeholder.com/300x450?text=No+Image"

	maxCastMembers = 5
)

type Client struct {
	log        *slog.Logger
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func New(log *slog.Logger, apiKey string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewWithBaseURL is used by tests to point the client at a stub server.
func NewWithBaseURL(log *slog.Logger, apiKey, baseURL string, timeout time.Duration) *Client {
	c := New(log, apiKey, timeout)
	c.baseURL = baseURL
	return c
}

// SearchParams selects between search mode (non-empty Search after
// trimming) and discover mode (non-empty GenreID, a comma-joined TMDB genre
// id list). When neither is set no request is issued.
type SearchParams struct {
	Search  string
	Page    int
	GenreID string
}

type movieItem struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"release_date"`
	PosterPath  string   `json:"poster_path"`
	Overview    string   `json:"overview"`
	Runtime     int32    `json:"runtime"`
	VoteAverage *float64 `json:"vote_average"` // null when the provider omits it
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
}

type creditsResponse struct {
	Cast []struct {
		Name        string `json:"name"`
		Character   string `json:"character"`
		ProfilePath string `json:"profile_path"`
	} `json:"cast"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	} `json:"crew"`
}

type videosResponse struct {
	Results []struct {
		Key string `json:"key"`
	} `json:"results"`
}

// SearchMovies returns one page of list-shape movies. With an empty query
// surface it returns an empty slice without touching the network. Transport
// and decode failures are returned to the caller; the pagination layer
// decides how to degrade.
func (c *Client) SearchMovies(ctx context.Context, params SearchParams) ([]models.Movie, error) {
	const op = "tmdb.Client.SearchMovies"
	log := c.log.With("op", op, "search", params.Search, "page", params.Page, "genre_id", params.GenreID)

	page := params.Page
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", language)
	q.Set("page", strconv.Itoa(page))

	var path, mode string
	switch {
	case strings.TrimSpace(params.Search) != "":
		q.Set("query", params.Search)
		path, mode = "/search/movie", "search"
	case params.GenreID != "":
		q.Set("with_genres", params.GenreID)
		path, mode = "/discover/movie", "discover"
	default:
		return []models.Movie{}, nil
	}

	var payload struct {
		Results []movieItem `json:"results"`
	}
	if err := c.get(ctx, path+"?"+q.Encode(), &payload); err != nil {
		metrics.CatalogFetches.WithLabelValues(mode, "error").Inc()
		log.Error("search request failed", "errMsg", err.Error())
		return nil, err
	}
	if len(payload.Results) == 0 {
		metrics.CatalogFetches.WithLabelValues(mode, "empty").Inc()
	} else {
		metrics.CatalogFetches.WithLabelValues(mode, "ok").Inc()
	}

	movies := make([]models.Movie, 0, len(payload.Results))
	for _, item := range payload.Results {
		movies = append(movies, models.Movie{
			ID:     strconv.Itoa(item.ID),
			Title:  item.Title,
			Year:   yearOf(item.ReleaseDate),
			Poster: posterOf(item.PosterPath, listPosterPlaceholder),
		})
	}
	return movies, nil
}

// GetMovieByID merges the detail, videos and credits responses into one
// extended Movie. Unlike SearchMovies, any failure propagates to the caller.
func (c *Client) GetMovieByID(ctx context.Context, id string) (*models.Movie, error) {
	const op = "tmdb.Client.GetMovieByID"
	log := c.log.With("op", op, "id", id)

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", language)
	query := q.Encode()

	var detail movieItem
	if err := c.get(ctx, fmt.Sprintf("/movie/%s?%s", id, query), &detail); err != nil {
		log.Error("detail request failed", "errMsg", err.Error())
		return nil, err
	}

	var videos videosResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%s/videos?%s", id, query), &videos); err != nil {
		log.Error("videos request failed", "errMsg", err.Error())
		return nil, err
	}

	var credits creditsResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%s/credits?%s", id, query), &credits); err != nil {
		log.Error("credits request failed", "errMsg", err.Error())
		return nil, err
	}

	movie := &models.Movie{
		ID:          strconv.Itoa(detail.ID),
		Title:       detail.Title,
		Year:        yearOf(detail.ReleaseDate),
		Poster:      posterOf(detail.PosterPath, detailPosterPlaceholder),
		Genre:       genreOf(detail),
		Director:    directorOf(credits),
		Cast:        castOf(credits),
		Runtime:     fields.MovieRuntime(detail.Runtime),
		Plot:        detail.Overview,
		VoteAverage: detail.VoteAverage,
	}
	if movie.Plot == "" {
		movie.Plot = fields.Unavailable
	}
	if len(videos.Results) > 0 {
		key := videos.Results[0].Key
		movie.TrailerKey = &key
	}
	return movie, nil
}

func yearOf(releaseDate string) string {
	year, _, _ := strings.Cut(releaseDate, "-")
	if year == "" {
		return fields.Unavailable
	}
	return year
}

func posterOf(posterPath, placeholder string) string {
	if posterPath == "" {
		return placeholder
	}
	return imageBaseURL + posterPath
}

func genreOf(detail movieItem) string {
	if len(detail.Genres) == 0 {
		return fields.Unavailable
	}
	names := make([]string, 0, len(detail.Genres))
	for _, g := range detail.Genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

func directorOf(credits creditsResponse) string {
	for _, member := range credits.Crew {
		if member.Job == "Director" {
			return member.Name
		}
	}
	return fields.Unavailable
}

func castOf(credits creditsResponse) []models.CastMember {
	n := len(credits.Cast)
	if n > maxCastMembers {
		n = maxCastMembers
	}
	cast := make([]models.CastMember, 0, n)
	for _, actor := range credits.Cast[:n] {
		member := models.CastMember{
			Name:      actor.Name,
			Character: actor.Character,
		}
		if actor.ProfilePath != "" {
			member.ImageURL = imageBaseURL + actor.ProfilePath
		}
		cast = append(cast, member)
	}
	return cast
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("tmdb: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb: HTTP %d for %s", resp.StatusCode, req.URL.Path)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("tmdb: decode response: %w", err)
	}
	return nil
}
