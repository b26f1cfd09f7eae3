package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"docmap/internal/domain"
	"docmap/internal/review"
)

// Session is the explicit state of one review wizard run: the uploaded
// document, the chosen partner, template and rule set, and the parsed output
// under review.
type Session struct {
	ID                uuid.UUID              `json:"id"`
	Document          *domain.SourceDocument `json:"document,omitempty"`
	ViewURL           string                 `json:"view_url,omitempty"`
	Partner           *domain.Partner        `json:"partner,omitempty"`
	PartnerIdentified bool                   `json:"partner_identified"`
	TemplateID        string                 `json:"template_id,omitempty"`
	RuleSetID         string                 `json:"rule_set_id,omitempty"`
	Output            *domain.ParsedOutput   `json:"output,omitempty"`
	Summary           *review.Summary        `json:"summary,omitempty"`
	Triggers          []domain.TriggerRecord `json:"triggers"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// clone copies the session. Output is shared because it is only ever
// replaced, never modified in place.
func (s *Session) clone() *Session {
	cp := *s
	cp.Triggers = append([]domain.TriggerRecord{}, s.Triggers...)
	if s.Output != nil {
		sum := review.Summarize(*s.Output)
		cp.Summary = &sum
	} else {
		cp.Summary = nil
	}
	return &cp
}

// clearTemplate drops the template and everything selected after it.
func (s *Session) clearTemplate() {
	s.TemplateID = ""
	s.clearRuleSet()
}

func (s *Session) clearRuleSet() {
	s.RuleSetID = ""
	s.Output = nil
}

type sessionEntry struct {
	mu      sync.Mutex
	session Session
}

// SessionRegistry owns all live sessions. Each session is guarded by its own
// mutex so work on one session never blocks another.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry
	now      func() time.Time
}

// NewSessionRegistry creates an empty SessionRegistry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[uuid.UUID]*sessionEntry),
		now:      time.Now,
	}
}

// Create registers a new session and returns a snapshot of it.
func (r *SessionRegistry) Create(doc *domain.SourceDocument, viewURL string) *Session {
	now := r.now().UTC()
	e := &sessionEntry{session: Session{
		ID:        uuid.New(),
		Document:  doc,
		ViewURL:   viewURL,
		Triggers:  []domain.TriggerRecord{},
		CreatedAt: now,
		UpdatedAt: now,
	}}
	r.mu.Lock()
	r.sessions[e.session.ID] = e
	r.mu.Unlock()
	return e.session.clone()
}

// Get returns a snapshot of the session.
func (r *SessionRegistry) Get(id uuid.UUID) (*Session, error) {
	e, err := r.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.clone(), nil
}

// Update runs fn on a working copy of the session while holding its lock.
// The copy is committed only when fn returns nil, so a failed step leaves the
// session exactly as it was.
func (r *SessionRegistry) Update(id uuid.UUID, fn func(s *Session) error) (*Session, error) {
	e, err := r.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	work := e.session.clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	work.Summary = nil
	work.UpdatedAt = r.now().UTC()
	e.session = *work
	return e.session.clone(), nil
}

// Delete removes a session.
func (r *SessionRegistry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *SessionRegistry) entry(id uuid.UUID) (*sessionEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return e, nil
}
