// Package alerts holds the in-memory alert list and its derived views.
package alerts

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mr1hm/go-emergency-prep/internal/models"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidType  = errors.New("invalid alert type")
	ErrDuplicateID  = errors.New("could not allocate a unique alert id")
)

const maxIDAttempts = 5

// Model is the alert list, newest first. All methods are safe for
// concurrent use and return copies, never views into internal state.
type Model struct {
	mu     sync.RWMutex
	alerts []models.Alert
	now    func() time.Time
	newID  func() string
}

type Option func(*Model)

func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(m *Model) { m.newID = newID }
}

// New returns a model seeded with alerts, which must already be ordered
// newest first.
func New(seed []models.Alert, opts ...Option) *Model {
	m := &Model{
		alerts: append([]models.Alert(nil), seed...),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Validate reports why a draft cannot become an alert. Types match case
// insensitively and an empty type defaults to info.
func Validate(draft models.AlertDraft) (models.AlertDraft, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Message = strings.TrimSpace(draft.Message)
	draft.Location = strings.TrimSpace(draft.Location)

	if strings.TrimSpace(string(draft.Type)) == "" {
		draft.Type = models.AlertTypeInfo
	}
	t, ok := models.ParseAlertType(string(draft.Type))
	if !ok {
		return draft, fmt.Errorf("%w: %q", ErrInvalidType, draft.Type)
	}
	draft.Type = t
	if draft.Title == "" {
		return draft, fmt.Errorf("%w: title", ErrMissingField)
	}
	if draft.Message == "" {
		return draft, fmt.Errorf("%w: message", ErrMissingField)
	}
	return draft, nil
}

// Create validates the draft and prepends a new active alert. On error the
// list is left untouched.
func (m *Model) Create(draft models.AlertDraft) (models.Alert, error) {
	draft, err := Validate(draft)
	if err != nil {
		return models.Alert{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.allocateID()
	if err != nil {
		return models.Alert{}, err
	}

	a := models.Alert{
		ID:          id,
		Type:        draft.Type,
		Title:       draft.Title,
		Message:     draft.Message,
		Timestamp:   m.now(),
		IsActive:    true,
		Location:    draft.Location,
		Source:      draft.Source,
		ExternalRef: draft.ExternalRef,
	}

	m.alerts = append([]models.Alert{a}, m.alerts...)
	return a, nil
}

// caller must hold m.mu
func (m *Model) allocateID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := m.newID()
		if id != "" && m.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", ErrDuplicateID
}

// Deactivate marks the alert inactive. It reports false when the id is
// unknown or the alert was already inactive.
func (m *Model) Deactivate(id string) (models.Alert, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 || !m.alerts[i].IsActive {
		return models.Alert{}, false
	}
	m.alerts[i].IsActive = false
	return m.alerts[i], true
}

// Dismiss removes the alert, keeping the order of the rest.
func (m *Model) Dismiss(id string) (models.Alert, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return models.Alert{}, false
	}
	removed := m.alerts[i]
	m.alerts = append(m.alerts[:i:i], m.alerts[i+1:]...)
	return removed, true
}

func (m *Model) Get(id string) (models.Alert, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return models.Alert{}, false
	}
	return m.alerts[i], true
}

func (m *Model) All() []models.Alert {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Alert, 0, len(m.alerts))
	return append(out, m.alerts...)
}

func (m *Model) Active() []models.Alert {
	return m.filter(func(a models.Alert) bool { return a.IsActive }, 0)
}

// Recent returns inactive alerts, newest first, capped to limit when
// limit > 0.
func (m *Model) Recent(limit int) []models.Alert {
	return m.filter(func(a models.Alert) bool { return !a.IsActive }, limit)
}

func (m *Model) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.alerts)
}

func (m *Model) Stats() models.AlertStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := models.AlertStats{ByType: make(map[models.AlertType]int, len(models.AlertTypes))}
	for _, t := range models.AlertTypes {
		stats.ByType[t] = 0
	}
	for _, a := range m.alerts {
		if !a.IsActive {
			continue
		}
		stats.Active++
		stats.ByType[a.Type]++
	}
	return stats
}

func (m *Model) filter(keep func(models.Alert) bool, limit int) []models.Alert {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Alert, 0)
	for _, a := range m.alerts {
		if !keep(a) {
			continue
		}
		out = append(out, a)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (m *Model) indexOf(id string) int {
	for i := range m.alerts {
		if m.alerts[i].ID == id {
			return i
		}
	}
	return -1
}
