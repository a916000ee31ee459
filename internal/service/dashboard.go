package service

import (
	"github.com/mr1hm/go-emergency-prep/internal/models"
)

type Dashboard struct {
	CompletedModules int               `json:"completed_modules"`
	TotalModules     int               `json:"total_modules"`
	MeanProgress     float64           `json:"mean_progress"`
	ActiveAlerts     int               `json:"active_alerts"`
	AlertStats       models.AlertStats `json:"alert_stats"`
	LatestAlerts     []models.Alert    `json:"latest_alerts"`
}

// BuildDashboard gathers the landing-page aggregates. latest caps the
// number of active alerts included.
func BuildDashboard(a *AlertService, t *TrainingService, latest int) Dashboard {
	summary := t.Summary()
	stats := a.Stats()

	active := a.Active()
	if latest > 0 && len(active) > latest {
		active = active[:latest]
	}

	return Dashboard{
		CompletedModules: summary.CompletedModules,
		TotalModules:     summary.TotalModules,
		MeanProgress:     summary.MeanProgress,
		ActiveAlerts:     stats.Active,
		AlertStats:       stats,
		LatestAlerts:     active,
	}
}
