// Package catalog drives the browse screen's query state machine: paged,
// filtered, debounced search and discover queries against the remote
// catalog client, exposing a single accumulated result list.
package catalog

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/clients/tmdb"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/genres"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/models"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/lib/debounce"
)

// State is the explicit query state. There are no free-floating loading or
// hasMore booleans, so contradictory combinations cannot be represented.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoadingMore
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoadingMore:
		return "loadingMore"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Fetcher is the slice of the remote catalog client the controller needs.
type Fetcher interface {
	SearchMovies(ctx context.Context, params tmdb.SearchParams) ([]models.Movie, error)
}

const (
	DefaultDebounceDelay = 500 * time.Millisecond
	defaultFetchTimeout  = 10 * time.Second
)

// Session coordinates one user's catalog queries.
//
// Fetch policy: a non-empty (trimmed) search term selects search mode,
// otherwise a non-empty genre selection selects discover mode, otherwise
// the result set is empty without a remote call. An empty successful
// response marks the query exhausted until the query surface changes. A
// failed fetch is logged and leaves the accumulated results and the
// exhausted flag untouched.
//
// Every fetch carries a sequence number; a completion whose number is older
// than the last applied one is discarded, so overlapping fetches cannot
// append stale pages after newer ones.
type Session struct {
	log          *slog.Logger
	fetcher      Fetcher
	debouncer    *debounce.Debouncer
	fetchTimeout time.Duration

	mu         sync.Mutex
	searchTerm string
	genres     []string
	page       int
	results    []models.Movie
	state      State
	seq        uint64 // last issued fetch
	applied    uint64 // last applied fetch
}

func NewSession(log *slog.Logger, fetcher Fetcher, debounceDelay time.Duration) *Session {
	if debounceDelay <= 0 {
		debounceDelay = DefaultDebounceDelay
	}
	return &Session{
		log:          log,
		fetcher:      fetcher,
		debouncer:    debounce.New(debounceDelay),
		fetchTimeout: defaultFetchTimeout,
		page:         1,
		state:        StateIdle,
	}
}

// Snapshot is the read model the UI renders from.
type Snapshot struct {
	Results    []models.Movie `json:"results"`
	State      State          `json:"state"`
	SearchTerm string         `json:"searchTerm"`
	Genres     []string       `json:"genres"`
	Page       int            `json:"page"`
	HasMore    bool           `json:"hasMore"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]models.Movie, len(s.results))
	copy(results, s.results)
	genreList := make([]string, len(s.genres))
	copy(genreList, s.genres)
	return Snapshot{
		Results:    results,
		State:      s.state,
		SearchTerm: s.searchTerm,
		Genres:     genreList,
		Page:       s.page,
		HasMore:    s.state != StateExhausted,
	}
}

// SetSearchTerm stores the term, resets pagination and schedules a
// debounced re-fetch. Only the last call within the debounce window fires;
// superseded calls are cancelled, not queued.
func (s *Session) SetSearchTerm(term string) {
	s.mu.Lock()
	s.searchTerm = term
	s.page = 1
	s.mu.Unlock()
	s.debouncer.Trigger(func() { s.fetch(true) })
}

// SetGenres replaces the active filter, resets pagination and re-fetches
// immediately.
func (s *Session) SetGenres(labels []string) {
	s.mu.Lock()
	s.genres = append([]string(nil), labels...)
	s.page = 1
	s.mu.Unlock()
	s.fetch(true)
}

// ApplyFilters commits a genre selection and re-runs from page 1.
func (s *Session) ApplyFilters(labels []string) {
	s.SetGenres(labels)
}

// ClearFilters drops the genre selection and the search term and re-runs
// from page 1 (which, with an empty query surface, yields an empty result
// set without a remote call).
func (s *Session) ClearFilters() {
	s.debouncer.Stop()
	s.mu.Lock()
	s.genres = nil
	s.searchTerm = ""
	s.page = 1
	s.mu.Unlock()
	s.fetch(true)
}

// LoadMore fetches the next page and appends it. It is a no-op while a load
// is in flight or the current query is exhausted.
func (s *Session) LoadMore() {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return
	}
	s.page++
	s.mu.Unlock()
	s.fetch(false)
}

// Close cancels any pending debounced fetch. In-flight requests run to
// completion; there is no mid-request abort.
func (s *Session) Close() {
	s.debouncer.Stop()
}

// fetch runs one query round. reset selects between replacing the
// accumulated results (new query surface) and appending (load more).
func (s *Session) fetch(reset bool) {
	const op = "catalog.Session.fetch"

	s.mu.Lock()
	prevState := s.state
	if reset {
		// A changed query surface clears a previous exhaustion.
		prevState = StateIdle
		s.state = StateLoading
	} else {
		s.state = StateLoadingMore
	}
	s.seq++
	seq := s.seq
	params := tmdb.SearchParams{
		Search:  s.searchTerm,
		Page:    s.page,
		GenreID: genres.IDsFor(s.genres),
	}
	s.mu.Unlock()

	log := s.log.With("op", op, "seq", seq, "page", params.Page, "search", params.Search)

	var (
		results []models.Movie
		err     error
	)
	if strings.TrimSpace(params.Search) == "" && params.GenreID == "" {
		results = []models.Movie{}
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
		defer cancel()
		results, err = s.fetcher.SearchMovies(ctx, params)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.applied {
		log.Debug("discarding stale fetch response")
		return
	}
	s.applied = seq

	if err != nil {
		// No results added this round; accumulated results and the
		// exhausted flag stay as they were.
		log.Error("fetch failed", "errMsg", err.Error())
		s.state = prevState
		if !reset {
			// the failed page stays next in line for the next LoadMore
			s.page = params.Page - 1
		}
		return
	}

	if reset {
		s.results = results
	} else {
		s.results = append(s.results, results...)
	}
	if len(results) == 0 {
		s.state = StateExhausted
		return
	}
	s.state = StateIdle
}

// Registry hands out one browse session per user, created lazily.
type Registry struct {
	log           *slog.Logger
	fetcher       Fetcher
	debounceDelay time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(log *slog.Logger, fetcher Fetcher, debounceDelay time.Duration) *Registry {
	return &Registry{
		log:           log,
		fetcher:       fetcher,
		debounceDelay: debounceDelay,
		sessions:      make(map[string]*Session),
	}
}

func (r *Registry) For(userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[userID]
	if !ok {
		session = NewSession(r.log, r.fetcher, r.debounceDelay)
		r.sessions[userID] = session
	}
	return session
}
