// Package training tracks lesson progress for the emergency training
// modules. Module progress is always derived from the module's session.
package training

import (
	"fmt"
	"math"

	"github.com/mr1hm/go-emergency-prep/internal/models"
)

// Module is a read-only view of a module and its derived progress.
type Module struct {
	models.ModuleDefinition
	CompletedLessons int `json:"completed_lessons"`
}

// Progress is the completed share in percent, at full precision.
func (m Module) Progress() float64 {
	if len(m.Lessons) == 0 {
		return 0
	}
	return float64(m.CompletedLessons) / float64(len(m.Lessons)) * 100
}

// RoundedProgress is Progress rounded for display.
func (m Module) RoundedProgress() int {
	return int(math.Round(m.Progress()))
}

func (m Module) IsCompleted() bool {
	return len(m.Lessons) > 0 && m.CompletedLessons == len(m.Lessons)
}

type Summary struct {
	CompletedModules int                  `json:"completed_modules"`
	TotalModules     int                  `json:"total_modules"`
	MeanProgress     float64              `json:"mean_progress"`
	Achievements     []models.Achievement `json:"achievements"`
}

// Seed is the initial state of one module.
type Seed struct {
	Module      models.ModuleDefinition
	Achievement models.Achievement
	Completed   []int
}

type entry struct {
	def         models.ModuleDefinition
	achievement models.Achievement
	session     *Session
}

// Catalog is the ordered set of training modules. The catalog itself never
// changes after construction; progress moves through each module's Session.
type Catalog struct {
	entries []entry
	byType  map[models.ModuleType]int
}

func NewCatalog(seeds []Seed) (*Catalog, error) {
	c := &Catalog{
		entries: make([]entry, 0, len(seeds)),
		byType:  make(map[models.ModuleType]int, len(seeds)),
	}
	for _, s := range seeds {
		if !s.Module.Type.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownModule, s.Module.Type)
		}
		if _, dup := c.byType[s.Module.Type]; dup {
			return nil, fmt.Errorf("duplicate module type %q", s.Module.Type)
		}
		session, err := NewSession(s.Module.TotalLessons(), s.Completed)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", s.Module.Type, err)
		}
		achievement := s.Achievement
		achievement.Module = s.Module.Type

		c.byType[s.Module.Type] = len(c.entries)
		c.entries = append(c.entries, entry{def: s.Module, achievement: achievement, session: session})
	}
	return c, nil
}

func (c *Catalog) Types() []models.ModuleType {
	types := make([]models.ModuleType, len(c.entries))
	for i, e := range c.entries {
		types[i] = e.def.Type
	}
	return types
}

func (c *Catalog) Modules() []Module {
	out := make([]Module, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.view()
	}
	return out
}

func (c *Catalog) Module(t models.ModuleType) (Module, error) {
	e, err := c.lookup(t)
	if err != nil {
		return Module{}, err
	}
	return e.view(), nil
}

func (c *Catalog) Session(t models.ModuleType) (*Session, error) {
	e, err := c.lookup(t)
	if err != nil {
		return nil, err
	}
	return e.session, nil
}

// Summary aggregates completion over all modules. It is recomputed on
// every call.
func (c *Catalog) Summary() Summary {
	s := Summary{
		TotalModules: len(c.entries),
		Achievements: make([]models.Achievement, 0, len(c.entries)),
	}
	var total float64
	for _, e := range c.entries {
		m := e.view()
		if m.IsCompleted() {
			s.CompletedModules++
		}
		total += m.Progress()

		a := e.achievement
		a.Earned = m.IsCompleted()
		s.Achievements = append(s.Achievements, a)
	}
	if len(c.entries) > 0 {
		s.MeanProgress = total / float64(len(c.entries))
	}
	return s
}

func (c *Catalog) lookup(t models.ModuleType) (*entry, error) {
	i, ok := c.byType[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, t)
	}
	return &c.entries[i], nil
}

func (e *entry) view() Module {
	return Module{
		ModuleDefinition: e.def,
		CompletedLessons: e.session.State().CompletedLessons(),
	}
}
