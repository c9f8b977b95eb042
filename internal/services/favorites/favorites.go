// Package favorites holds the in-memory favorite-movie store. State lives
// for the process lifetime only and starts empty; it is never persisted.
package favorites

import (
	"log/slog"
	"sync"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/models"
)

// Store is the single source of truth for one user's favorites. It is an
// explicit, injectable object owned by the application root; consumers get
// change notifications through Subscribe instead of polling.
//
// Add enforces set-by-id semantics: adding an id that is already present is
// a no-op. Insertion order is preserved otherwise.
type Store struct {
	log *slog.Logger

	mu        sync.Mutex
	items     []models.Favorite
	nextSubID int
	subs      map[int]func()
}

func NewStore(log *slog.Logger) *Store {
	return &Store{
		log:  log,
		subs: make(map[int]func()),
	}
}

// Add appends the movie to the sequence. Returns false when the id was
// already present and nothing changed.
func (s *Store) Add(fav models.Favorite) bool {
	const op = "favorites.Store.Add"
	s.mu.Lock()
	for _, existing := range s.items {
		if existing.ID == fav.ID {
			s.mu.Unlock()
			s.log.Debug("favorite already present", "op", op, "id", fav.ID)
			return false
		}
	}
	s.items = append(s.items, fav)
	s.mu.Unlock()
	s.notify()
	return true
}

// Remove deletes the entry with the given id. Absence is not an error.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	removed := false
	kept := s.items[:0]
	for _, fav := range s.items {
		if fav.ID == id {
			removed = true
			continue
		}
		kept = append(kept, fav)
	}
	s.items = kept
	s.mu.Unlock()
	if removed {
		s.notify()
	}
	return removed
}

// Reset clears the sequence. Caller-side confirmation is a UI concern.
func (s *Store) Reset() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	s.notify()
}

// List returns a copy of the current ordered sequence.
func (s *Store) List() []models.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Favorite, len(s.items))
	copy(out, s.items)
	return out
}

// Contains reports membership by id; the detail screen derives its
// favorite toggle from this.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fav := range s.items {
		if fav.ID == id {
			return true
		}
	}
	return false
}

// Subscribe registers fn to run after every mutation. The returned function
// unsubscribes; calling it more than once is harmless.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Registry hands out one Store per user, created lazily. It is owned by the
// application root and passed down by reference.
type Registry struct {
	log *slog.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		log:    log,
		stores: make(map[string]*Store),
	}
}

func (r *Registry) For(userID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.stores[userID]
	if !ok {
		store = NewStore(r.log)
		r.stores[userID] = store
	}
	return store
}
