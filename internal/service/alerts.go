// Package service persists and publishes the changes made to the in-memory
// alert and training models.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mr1hm/go-emergency-prep/internal/alerts"
	"github.com/mr1hm/go-emergency-prep/internal/metrics"
	"github.com/mr1hm/go-emergency-prep/internal/models"
	"github.com/mr1hm/go-emergency-prep/internal/repository"
)

// Publisher receives every alert change after it is persisted.
type Publisher interface {
	Broadcast(e *models.AlertEvent)
}

type AlertService struct {
	model *alerts.Model
	repo  repository.AlertRepository
	pub   Publisher

	// serializes mutate-then-persist so the stored order matches the model
	mu sync.Mutex
}

// LoadAlertService restores the alert list from repo. On first boot (empty
// repository) the seed list, newest first, is stored and used instead.
func LoadAlertService(ctx context.Context, repo repository.AlertRepository, pub Publisher, seed []models.Alert, opts ...alerts.Option) (*AlertService, error) {
	stored, err := repo.ListAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading alerts: %w", err)
	}

	initial := stored
	if len(stored) == 0 {
		for i := len(seed) - 1; i >= 0; i-- {
			if err := repo.SaveAlert(ctx, &seed[i]); err != nil {
				return nil, fmt.Errorf("error seeding alerts: %w", err)
			}
		}
		initial = seed
		slog.Info("seeded alerts", "count", len(seed))
	} else {
		slog.Info("restored alerts", "count", len(stored))
	}

	return &AlertService{
		model: alerts.New(initial, opts...),
		repo:  repo,
		pub:   pub,
	}, nil
}

func (s *AlertService) Create(ctx context.Context, draft models.AlertDraft) (models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.model.Create(draft)
	if err != nil {
		return models.Alert{}, err
	}
	if err := s.repo.SaveAlert(ctx, &a); err != nil {
		s.model.Dismiss(a.ID)
		return models.Alert{}, err
	}

	slog.Info("alert created", "id", a.ID, "type", a.Type, "source", a.Source)
	s.publish(models.AlertEventCreated, a)
	return a, nil
}

// Deactivate is a no-op for unknown or already inactive alerts. The change
// is stored before the model sees it, so a failed save leaves both as they
// were.
func (s *AlertService) Deactivate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.model.Get(id)
	if !ok || !a.IsActive {
		return nil
	}
	a.IsActive = false
	if err := s.repo.SaveAlert(ctx, &a); err != nil {
		return err
	}

	a, _ = s.model.Deactivate(id)
	slog.Info("alert deactivated", "id", id)
	s.publish(models.AlertEventDeactivated, a)
	return nil
}

// Dismiss is a no-op for unknown alerts.
func (s *AlertService) Dismiss(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.model.Get(id); !ok {
		return nil
	}
	if err := s.repo.DeleteAlert(ctx, id); err != nil {
		return err
	}

	a, _ := s.model.Dismiss(id)
	slog.Info("alert dismissed", "id", id)
	s.publish(models.AlertEventDismissed, a)
	return nil
}

func (s *AlertService) Get(id string) (models.Alert, bool) {
	return s.model.Get(id)
}

func (s *AlertService) All() []models.Alert {
	return s.model.All()
}

func (s *AlertService) Active() []models.Alert {
	return s.model.Active()
}

func (s *AlertService) Recent(limit int) []models.Alert {
	return s.model.Recent(limit)
}

func (s *AlertService) Stats() models.AlertStats {
	return s.model.Stats()
}

func (s *AlertService) publish(kind models.AlertEventKind, a models.Alert) {
	metrics.AlertEvents.WithLabelValues(string(kind), string(a.Type)).Inc()
	if s.pub != nil {
		s.pub.Broadcast(&models.AlertEvent{Kind: kind, Alert: a})
	}
}
