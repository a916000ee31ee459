// Package seed holds the content the service starts with on first boot.
package seed

import (
	"time"

	"github.com/mr1hm/go-emergency-prep/internal/models"
)

const Source = "seed"

// Alerts returns the initial alert list, newest first, timestamped
// relative to now.
func Alerts(now time.Time) []models.Alert {
	return []models.Alert{
		{
			ID:        "1",
			Type:      models.AlertTypeCritical,
			Title:     "Fire Alarm - Building A",
			Message:   "Fire alarm activated in Building A, second floor. All personnel must evacuate immediately via nearest emergency exit.",
			Timestamp: now.Add(-15 * time.Minute),
			IsActive:  true,
			Location:  "Building A - 2nd Floor",
			Source:    Source,
		},
		{
			ID:        "2",
			Type:      models.AlertTypeWarning,
			Title:     "Severe Weather Alert",
			Message:   "Tornado watch issued for the area. Move to designated storm shelters and avoid windows.",
			Timestamp: now.Add(-45 * time.Minute),
			IsActive:  true,
			Location:  "All Buildings",
			Source:    Source,
		},
		{
			ID:        "3",
			Type:      models.AlertTypeInfo,
			Title:     "Scheduled Fire Drill",
			Message:   "Monthly fire drill scheduled for tomorrow at 10:00 AM. Please review evacuation procedures.",
			Timestamp: now.Add(-2 * time.Hour),
			IsActive:  true,
			Location:  "All Buildings",
			Source:    Source,
		},
		{
			ID:        "4",
			Type:      models.AlertTypeSuccess,
			Title:     "All Clear - Building A",
			Message:   "Fire department has cleared Building A. Normal operations may resume.",
			Timestamp: now.Add(-3 * time.Hour),
			IsActive:  false,
			Location:  "Building A",
			Source:    Source,
		},
	}
}
