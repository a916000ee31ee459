package models

import (
	"strings"
	"time"
)

type ModuleType string

const (
	ModuleTypeFire       ModuleType = "fire"
	ModuleTypeEarthquake ModuleType = "earthquake"
	ModuleTypeFlood      ModuleType = "flood"
	ModuleTypeMedical    ModuleType = "medical"
)

func (t ModuleType) Valid() bool {
	switch t {
	case ModuleTypeFire, ModuleTypeEarthquake, ModuleTypeFlood, ModuleTypeMedical:
		return true
	}
	return false
}

func ParseModuleType(s string) (ModuleType, bool) {
	t := ModuleType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

type LessonType string

const (
	LessonTypeVideo       LessonType = "video"
	LessonTypeInteractive LessonType = "interactive"
	LessonTypePractice    LessonType = "practice"
	LessonTypeReading     LessonType = "reading"
	LessonTypeQuiz        LessonType = "quiz"
)

func (t LessonType) Valid() bool {
	switch t {
	case LessonTypeVideo, LessonTypeInteractive, LessonTypePractice, LessonTypeReading, LessonTypeQuiz:
		return true
	}
	return false
}

// Label is the heading shown above a lesson of this type.
func (t LessonType) Label() string {
	switch t {
	case LessonTypeVideo:
		return "Video Lesson"
	case LessonTypeInteractive:
		return "Interactive Exercise"
	case LessonTypePractice:
		return "Hands-on Practice"
	case LessonTypeReading:
		return "Reading Material"
	case LessonTypeQuiz:
		return "Knowledge Assessment"
	}
	return ""
}

type Lesson struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Duration    string     `json:"duration"`
	Type        LessonType `json:"type"`
	Description string     `json:"description"`
}

// ModuleDefinition is the static part of a training module. Progress is
// never stored here; it is derived from the module's learning session.
type ModuleDefinition struct {
	ID            string     `json:"id"`
	Type          ModuleType `json:"type"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	EstimatedTime string     `json:"estimated_time"`
	Lessons       []Lesson   `json:"lessons"`
}

func (m ModuleDefinition) TotalLessons() int {
	return len(m.Lessons)
}

type Achievement struct {
	Module      ModuleType `json:"module"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Earned      bool       `json:"earned"`
}

// LessonProgress is the persisted form of a module's learning session.
type LessonProgress struct {
	Module             ModuleType `json:"module"`
	CurrentLessonIndex int        `json:"current_lesson_index"`
	CompletedIndices   []int      `json:"completed_indices"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
