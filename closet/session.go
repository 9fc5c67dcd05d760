package closet

import (
	"sync"
	"time"

	"github.com/raushankrgupta/virtual-closet/models"
)

// RecentWindow is how far back an item counts as recently added
const RecentWindow = 7 * 24 * time.Hour

// Session is the closet state of one signed-in user
type Session struct {
	Wardrobe *Wardrobe
	Canvas   *Canvas
	Archive  *Archive
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{
		Wardrobe: NewWardrobe(),
		Canvas:   NewCanvas(),
		Archive:  NewArchive(),
	}
}

// PlaceItem copies a wardrobe item onto the canvas
func (s *Session) PlaceItem(itemID string) (models.PlacedItem, bool) {
	item, ok := s.Wardrobe.Get(itemID)
	if !ok {
		return models.PlacedItem{}, false
	}
	return s.Canvas.AddToCanvas(item), true
}

// SaveOutfit archives the current canvas composition
func (s *Session) SaveOutfit(name, occasion, season string) (models.Outfit, error) {
	return s.Archive.Save(name, s.Canvas.Snapshot(), occasion, season)
}

// LoadOutfit replaces the canvas with the placements of a saved outfit
func (s *Session) LoadOutfit(id string) ([]models.PlacedItem, bool) {
	items, ok := s.Archive.Load(id)
	if !ok {
		return nil, false
	}
	s.Canvas.Replace(items)
	return s.Canvas.Items(), true
}

// Stats summarizes the session for the dashboard
func (s *Session) Stats(now time.Time) models.ClosetStats {
	items := s.Wardrobe.List()
	stats := models.ClosetStats{
		TotalItems:   len(items),
		TotalOutfits: s.Archive.Len(),
	}
	for _, it := range items {
		if it.Favorite {
			stats.FavoriteItems++
		}
		if now.Sub(it.CreatedAt) <= RecentWindow {
			stats.RecentlyAdded++
		}
	}
	return stats
}

// Registry keeps one session per user. Sessions live for the process lifetime.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*lockedSession
	init     func(*Session)
}

type lockedSession struct {
	mu      sync.Mutex
	session *Session
}

// NewRegistry creates a registry. init, when non-nil, runs once on every new session.
func NewRegistry(init func(*Session)) *Registry {
	return &Registry{
		sessions: make(map[string]*lockedSession),
		init:     init,
	}
}

// With runs fn against the user's session while holding that session's lock
func (r *Registry) With(userID string, fn func(*Session)) {
	ls := r.get(userID)
	ls.mu.Lock()
	defer ls.mu.Unlock()
	fn(ls.session)
}

func (r *Registry) get(userID string) *lockedSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	ls, ok := r.sessions[userID]
	if !ok {
		ls = &lockedSession{session: NewSession()}
		if r.init != nil {
			r.init(ls.session)
		}
		r.sessions[userID] = ls
	}
	return ls
}
