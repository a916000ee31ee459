package api

import (
	"github.com/mr1hm/go-emergency-prep/internal/models"
	"github.com/mr1hm/go-emergency-prep/internal/training"
)

type ModuleResponse struct {
	models.ModuleDefinition
	TotalLessons     int                    `json:"total_lessons"`
	CompletedLessons int                    `json:"completed_lessons"`
	Progress         float64                `json:"progress"`
	RoundedProgress  int                    `json:"rounded_progress"`
	IsCompleted      bool                   `json:"is_completed"`
	Session          *training.SessionState `json:"session,omitempty"`
}

type AlertListResponse struct {
	Alerts []models.Alert `json:"alerts"`
	Count  int            `json:"count"`
}

func toModuleResponse(m training.Module) ModuleResponse {
	return ModuleResponse{
		ModuleDefinition: m.ModuleDefinition,
		TotalLessons:     m.TotalLessons(),
		CompletedLessons: m.CompletedLessons,
		Progress:         m.Progress(),
		RoundedProgress:  m.RoundedProgress(),
		IsCompleted:      m.IsCompleted(),
	}
}

func toModuleList(modules []training.Module) []ModuleResponse {
	out := make([]ModuleResponse, 0, len(modules))
	for _, m := range modules {
		out = append(out, toModuleResponse(m))
	}
	return out
}
