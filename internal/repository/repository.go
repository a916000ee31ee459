package repository

import (
	"context"

	"github.com/mr1hm/go-emergency-prep/internal/models"
)

type AlertRepository interface {
	// SaveAlert inserts or updates an alert. New alerts sort before all
	// existing ones in ListAlerts.
	SaveAlert(ctx context.Context, a *models.Alert) error
	DeleteAlert(ctx context.Context, id string) error
	// ListAlerts returns every alert, newest first.
	ListAlerts(ctx context.Context) ([]models.Alert, error)
	// RecordFeedItem remembers a feed item reference and reports whether
	// it was seen for the first time.
	RecordFeedItem(ctx context.Context, ref string) (bool, error)
	// ForgetFeedItem drops a recorded reference so the item can be
	// ingested again.
	ForgetFeedItem(ctx context.Context, ref string) error
}

type ProgressRepository interface {
	SaveProgress(ctx context.Context, p *models.LessonProgress) error
	ListProgress(ctx context.Context) ([]models.LessonProgress, error)
}
