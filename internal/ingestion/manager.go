package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mr1hm/go-emergency-prep/internal/alerts"
	"github.com/mr1hm/go-emergency-prep/internal/config"
	"github.com/mr1hm/go-emergency-prep/internal/metrics"
	"github.com/mr1hm/go-emergency-prep/internal/models"
	"github.com/mr1hm/go-emergency-prep/internal/worker"
)

const (
	sourceUSGS  = "usgs"
	sourceGDACS = "gdacs"
)

// AlertCreator raises alerts from feed items.
type AlertCreator interface {
	Create(ctx context.Context, draft models.AlertDraft) (models.Alert, error)
}

// FeedLog remembers which feed items were already turned into alerts.
type FeedLog interface {
	RecordFeedItem(ctx context.Context, ref string) (bool, error)
	ForgetFeedItem(ctx context.Context, ref string) error
}

type Manager struct {
	cfg    *config.Config
	alerts AlertCreator
	seen   FeedLog
	client *http.Client
	pool   *worker.Pool[models.AlertDraft]
	wg     sync.WaitGroup
}

func NewManager(cfg *config.Config, alerts AlertCreator, seen FeedLog) *Manager {
	return &Manager{
		cfg:    cfg,
		alerts: alerts,
		seen:   seen,
		client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
	}
}

func (m *Manager) Start(ctx context.Context) {
	m.pool = worker.NewPool("ingestion", m.cfg.Worker.Count, m.cfg.Worker.BufferSize, m.process)
	m.pool.Start(ctx)

	if m.cfg.Sources.USGSEnabled {
		m.wg.Add(1)
		go m.runPoller(ctx, sourceUSGS, m.cfg.Sources.USGSURL, m.cfg.Sources.USGSPollInterval)
	}

	if m.cfg.Sources.GDACSEnabled {
		m.wg.Add(1)
		go m.runPoller(ctx, sourceGDACS, m.cfg.Sources.GDACSURL, m.cfg.Sources.GDACSPollInterval)
	}
}

func (m *Manager) process(ctx context.Context, draft models.AlertDraft) error {
	fresh, err := m.seen.RecordFeedItem(ctx, draft.ExternalRef)
	if err != nil {
		slog.Error("error recording feed item", "ref", draft.ExternalRef, "error", err)
		metrics.FeedItems.WithLabelValues("error").Inc()
		return err
	}
	if !fresh {
		metrics.FeedItems.WithLabelValues("duplicate").Inc()
		return nil
	}

	a, err := m.alerts.Create(ctx, draft)
	if err != nil {
		if errors.Is(err, alerts.ErrMissingField) || errors.Is(err, alerts.ErrInvalidType) {
			slog.Warn("feed item rejected", "ref", draft.ExternalRef, "error", err)
			metrics.FeedItems.WithLabelValues("rejected").Inc()
			return err
		}

		// retried on the next poll
		slog.Error("error creating alert from feed", "ref", draft.ExternalRef, "error", err)
		metrics.FeedItems.WithLabelValues("error").Inc()
		if ferr := m.seen.ForgetFeedItem(ctx, draft.ExternalRef); ferr != nil {
			slog.Error("error forgetting feed item", "ref", draft.ExternalRef, "error", ferr)
		}
		return err
	}

	metrics.FeedItems.WithLabelValues("created").Inc()
	slog.Info("alert raised from feed", "id", a.ID, "ref", draft.ExternalRef, "source", draft.Source)
	return nil
}

func (m *Manager) runPoller(ctx context.Context, source, url string, interval time.Duration) {
	defer m.wg.Done()
	slog.Info("starting poller", "source", source, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Initial poll
	m.poll(ctx, source, url)

	for {
		select {
		case <-ctx.Done():
			slog.Info("poller shutting down", "source", source)
			return
		case <-ticker.C:
			m.poll(ctx, source, url)
		}
	}
}

func (m *Manager) poll(ctx context.Context, source, url string) {
	slog.Debug("polling", "source", source)

	var (
		drafts []models.AlertDraft
		err    error
	)

	switch source {
	case sourceUSGS:
		drafts, err = m.pollUSGS(ctx, url)
	case sourceGDACS:
		drafts, err = m.pollGDACS(ctx, url)
	}
	if err != nil {
		slog.Error("poll failed", "source", source, "error", err)
		return
	}

	for _, d := range drafts {
		if err := m.pool.Submit(ctx, d); err != nil {
			return
		}
	}

	slog.Debug("poll complete", "source", source, "count", len(drafts))
}

func (m *Manager) Stop() {
	m.wg.Wait()
	m.pool.Stop()
	m.client.CloseIdleConnections()
	slog.Info("ingestion manager stopped")
}
