package service

import (
	"sync"

	"github.com/campuspulse/console/internal/models"
)

type View string

const (
	ViewAnalytics  View = "analytics"
	ViewOperations View = "operations"
)

func (v View) Valid() bool {
	return v == ViewAnalytics || v == ViewOperations
}

type LinkStatus string

const (
	LinkOK    LinkStatus = "ok"
	LinkError LinkStatus = "error"
)

// RoleSuperAdmin sees every category; any other role is scoped to the
// category of the same name.
const RoleSuperAdmin = "SuperAdmin"

// Session is the single live view state of the console. The snapshot and
// link fields are written only by the Poller; search, role and view only by
// the HTTP layer. The snapshot is always replaced wholesale, never patched,
// so readers can never observe a torn mix of old and new fields.
type Session struct {
	mu        sync.RWMutex
	snapshot  *models.Snapshot
	link      LinkStatus
	lastError string
	loading   bool
	search    string
	role      string
	view      View
}

func NewSession() *Session {
	return &Session{
		link: LinkOK,
		role: RoleSuperAdmin,
		view: ViewAnalytics,
	}
}

func (s *Session) SetLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// ApplySnapshot stores a fresh snapshot and clears the connectivity error.
func (s *Session) ApplySnapshot(snap models.Snapshot) {
	s.mu.Lock()
	s.snapshot = &snap
	s.link = LinkOK
	s.lastError = ""
	s.loading = false
	s.mu.Unlock()
}

// MarkFetchFailed flags the upstream link as broken. The last good snapshot
// is kept so the console can keep showing stale data alongside the error.
func (s *Session) MarkFetchFailed(err error) {
	s.mu.Lock()
	s.link = LinkError
	s.lastError = err.Error()
	s.loading = false
	s.mu.Unlock()
}

// Snapshot returns the current snapshot and whether one has ever been
// loaded. The returned value shares the stored slices, which is safe
// because a stored snapshot is never mutated in place.
func (s *Session) Snapshot() (models.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return models.Snapshot{}, false
	}
	return *s.snapshot, true
}

func (s *Session) SetSearch(term string) {
	s.mu.Lock()
	s.search = term
	s.mu.Unlock()
}

func (s *Session) SetRole(role string) {
	s.mu.Lock()
	s.role = role
	s.mu.Unlock()
}

func (s *Session) SetView(v View) error {
	if !v.Valid() {
		return &ValidationError{Reason: "unknown view: " + string(v)}
	}
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
	return nil
}

func (s *Session) Filters() (search string, role string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search, s.role
}

// State is the session view state as reported to the operator UI.
type State struct {
	Link       LinkStatus `json:"link"`
	LastError  string     `json:"last_error,omitempty"`
	Loading    bool       `json:"loading"`
	HasData    bool       `json:"has_data"`
	SearchTerm string     `json:"search_term"`
	Role       string     `json:"role"`
	View       View       `json:"view"`
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Link:       s.link,
		LastError:  s.lastError,
		Loading:    s.loading,
		HasData:    s.snapshot != nil,
		SearchTerm: s.search,
		Role:       s.role,
		View:       s.view,
	}
}
