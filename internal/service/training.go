package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mr1hm/go-emergency-prep/internal/metrics"
	"github.com/mr1hm/go-emergency-prep/internal/models"
	"github.com/mr1hm/go-emergency-prep/internal/repository"
	"github.com/mr1hm/go-emergency-prep/internal/training"
)

type TrainingService struct {
	catalog *training.Catalog
	repo    repository.ProgressRepository
	now     func() time.Time
	mu      sync.Mutex
}

// LoadTrainingService builds the catalog from seeds and applies any stored
// session progress on top. Stored rows that no longer fit the catalog are
// skipped with a warning.
func LoadTrainingService(ctx context.Context, repo repository.ProgressRepository, seeds []training.Seed) (*TrainingService, error) {
	catalog, err := training.NewCatalog(seeds)
	if err != nil {
		return nil, fmt.Errorf("error building catalog: %w", err)
	}

	stored, err := repo.ListProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading progress: %w", err)
	}
	for _, p := range stored {
		session, err := catalog.Session(p.Module)
		if err != nil {
			slog.Warn("skipping stored progress", "module", p.Module, "error", err)
			continue
		}
		if err := session.Restore(p.CurrentLessonIndex, p.CompletedIndices); err != nil {
			slog.Warn("skipping stored progress", "module", p.Module, "error", err)
			continue
		}
	}
	if len(stored) > 0 {
		slog.Info("restored training progress", "modules", len(stored))
	}

	return &TrainingService{
		catalog: catalog,
		repo:    repo,
		now:     time.Now,
	}, nil
}

func (s *TrainingService) Modules() []training.Module {
	return s.catalog.Modules()
}

func (s *TrainingService) Module(t models.ModuleType) (training.Module, error) {
	return s.catalog.Module(t)
}

func (s *TrainingService) Summary() training.Summary {
	return s.catalog.Summary()
}

func (s *TrainingService) Session(t models.ModuleType) (training.SessionState, error) {
	session, err := s.catalog.Session(t)
	if err != nil {
		return training.SessionState{}, err
	}
	return session.State(), nil
}

func (s *TrainingService) SelectLesson(ctx context.Context, t models.ModuleType, i int) (training.SessionState, error) {
	return s.apply(ctx, t, func(session *training.Session) (training.SessionState, error) {
		return session.SelectLesson(i)
	})
}

func (s *TrainingService) CompleteLesson(ctx context.Context, t models.ModuleType) (training.SessionState, error) {
	state, err := s.apply(ctx, t, func(session *training.Session) (training.SessionState, error) {
		return session.CompleteLesson(), nil
	})
	if err == nil {
		metrics.LessonsCompleted.WithLabelValues(string(t)).Inc()
	}
	return state, err
}

func (s *TrainingService) Next(ctx context.Context, t models.ModuleType) (training.SessionState, error) {
	return s.apply(ctx, t, func(session *training.Session) (training.SessionState, error) {
		return session.Next(), nil
	})
}

func (s *TrainingService) Previous(ctx context.Context, t models.ModuleType) (training.SessionState, error) {
	return s.apply(ctx, t, func(session *training.Session) (training.SessionState, error) {
		return session.Previous(), nil
	})
}

func (s *TrainingService) apply(ctx context.Context, t models.ModuleType, op func(*training.Session) (training.SessionState, error)) (training.SessionState, error) {
	session, err := s.catalog.Session(t)
	if err != nil {
		return training.SessionState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := session.State()
	state, err := op(session)
	if err != nil {
		return state, err
	}

	err = s.repo.SaveProgress(ctx, &models.LessonProgress{
		Module:             t,
		CurrentLessonIndex: state.CurrentLessonIndex,
		CompletedIndices:   state.CompletedIndices,
		UpdatedAt:          s.now(),
	})
	if err != nil {
		if rerr := session.Restore(before.CurrentLessonIndex, before.CompletedIndices); rerr != nil {
			slog.Error("error rolling back session", "module", t, "error", rerr)
		}
		return before, fmt.Errorf("error saving progress: %w", err)
	}
	return state, nil
}
