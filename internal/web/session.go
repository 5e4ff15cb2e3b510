package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/abhisek/courtside/internal/form"
	"github.com/abhisek/courtside/internal/interview"
	"github.com/abhisek/courtside/internal/questionnaire"
)

const (
	cookieName = "courtside_session"

	// DefaultMaxSessions bounds the number of live browser sessions.
	DefaultMaxSessions = 256
)

// entry is one browser's state. mu serialises requests from the same
// browser so a driver never sees two turns at once. guard protects driver
// and evicted, which eviction reads without waiting on mu.
type entry struct {
	mu            sync.Mutex
	driver        *interview.Driver
	form          *form.Form
	questionnaire *questionnaire.Questionnaire

	guard   sync.Mutex
	evicted bool
}

// setDriver binds d to the entry. If the entry was already evicted, d is
// abandoned and false is returned. Callers hold mu.
func (e *entry) setDriver(d *interview.Driver) bool {
	e.guard.Lock()
	defer e.guard.Unlock()
	e.driver = d
	if e.evicted {
		d.Abandon()
		return false
	}
	return true
}

// release marks the entry evicted and abandons anything still in flight.
func (e *entry) release() {
	e.guard.Lock()
	e.evicted = true
	d := e.driver
	e.guard.Unlock()
	if d != nil {
		d.Abandon()
	}
}

// sessions is a bounded LRU of browser sessions keyed by cookie value.
// Evicted entries are released.
type sessions struct {
	cache *lru.Cache[string, *entry]
}

func newSessions(size int) (*sessions, error) {
	if size <= 0 {
		size = DefaultMaxSessions
	}
	cache, err := lru.NewWithEvict[string, *entry](size, func(_ string, e *entry) {
		e.release()
	})
	if err != nil {
		return nil, err
	}
	return &sessions{cache: cache}, nil
}

// get returns the caller's entry, or nil.
func (s *sessions) get(r *http.Request) (string, *entry) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return "", nil
	}
	e, ok := s.cache.Get(c.Value)
	if !ok {
		return c.Value, nil
	}
	return c.Value, e
}

// create starts a fresh entry for the caller, dropping any previous one,
// and sets the cookie.
func (s *sessions) create(w http.ResponseWriter, r *http.Request) *entry {
	if id, _ := s.get(r); id != "" {
		s.cache.Remove(id)
	}
	id := uuid.NewString()
	e := &entry{}
	s.cache.Add(id, e)
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((12 * time.Hour).Seconds()),
	})
	return e
}

// drop removes the caller's entry.
func (s *sessions) drop(r *http.Request) {
	if id, _ := s.get(r); id != "" {
		s.cache.Remove(id)
	}
}

func (s *sessions) len() int { return s.cache.Len() }
