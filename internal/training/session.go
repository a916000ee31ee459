package training

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	ErrLessonOutOfRange = errors.New("lesson index out of range")
	ErrUnknownModule    = errors.New("unknown module")
	ErrNoLessons        = errors.New("module has no lessons")
)

// SessionState is a snapshot of a learning session.
type SessionState struct {
	TotalLessons       int   `json:"total_lessons"`
	CurrentLessonIndex int   `json:"current_lesson_index"`
	CompletedIndices   []int `json:"completed_indices"`
	Complete           bool  `json:"complete"`
}

func (s SessionState) CompletedLessons() int {
	return len(s.CompletedIndices)
}

// Session is the lesson cursor and completed-lesson set of one module.
// Out-of-range selections are rejected, never clamped or wrapped.
type Session struct {
	mu        sync.Mutex
	total     int
	current   int
	completed map[int]struct{}
}

// NewSession starts at lesson 0 with the given lessons already completed.
func NewSession(total int, completed []int) (*Session, error) {
	if total <= 0 {
		return nil, ErrNoLessons
	}
	s := &Session{
		total:     total,
		completed: make(map[int]struct{}, total),
	}
	for _, i := range completed {
		if err := s.checkRange(i); err != nil {
			return nil, err
		}
		s.completed[i] = struct{}{}
	}
	return s, nil
}

// Restore replaces the session state wholesale, validating every index.
func (s *Session) Restore(current int, completed []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRange(current); err != nil {
		return err
	}
	set := make(map[int]struct{}, len(completed))
	for _, i := range completed {
		if err := s.checkRange(i); err != nil {
			return err
		}
		set[i] = struct{}{}
	}
	s.current = current
	s.completed = set
	return nil
}

func (s *Session) SelectLesson(i int) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRange(i); err != nil {
		return s.stateLocked(), err
	}
	s.current = i
	return s.stateLocked(), nil
}

// CompleteLesson marks the current lesson completed and moves to the next
// one unless the current lesson is the last.
func (s *Session) CompleteLesson() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.completed[s.current] = struct{}{}
	if s.current < s.total-1 {
		s.current++
	}
	return s.stateLocked()
}

func (s *Session) Next() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current < s.total-1 {
		s.current++
	}
	return s.stateLocked()
}

func (s *Session) Previous() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current > 0 {
		s.current--
	}
	return s.stateLocked()
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() SessionState {
	completed := make([]int, 0, len(s.completed))
	for i := range s.completed {
		completed = append(completed, i)
	}
	slices.Sort(completed)

	return SessionState{
		TotalLessons:       s.total,
		CurrentLessonIndex: s.current,
		CompletedIndices:   completed,
		Complete:           len(completed) == s.total,
	}
}

func (s *Session) checkRange(i int) error {
	if i < 0 || i >= s.total {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrLessonOutOfRange, i, s.total)
	}
	return nil
}
