package ingestion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/mr1hm/go-emergency-prep/internal/alerts"
	"github.com/mr1hm/go-emergency-prep/internal/config"
	"github.com/mr1hm/go-emergency-prep/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockCreator struct {
	mu     sync.Mutex
	drafts []models.AlertDraft
	err    error
}

func (m *mockCreator) Create(ctx context.Context, d models.AlertDraft) (models.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.Alert{}, m.err
	}
	m.drafts = append(m.drafts, d)
	return models.Alert{ID: fmt.Sprintf("a%d", len(m.drafts)), Type: d.Type, Title: d.Title}, nil
}

func (m *mockCreator) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.drafts)
}

func (m *mockCreator) snapshot() []models.AlertDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.AlertDraft(nil), m.drafts...)
}

type mockFeedLog struct {
	mu   sync.Mutex
	seen map[string]bool
	err  error
}

func newMockFeedLog() *mockFeedLog {
	return &mockFeedLog{seen: make(map[string]bool)}
}

func (m *mockFeedLog) RecordFeedItem(ctx context.Context, ref string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if m.seen[ref] {
		return false, nil
	}
	m.seen[ref] = true
	return true, nil
}

func (m *mockFeedLog) ForgetFeedItem(ctx context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.seen, ref)
	return nil
}

func (m *mockFeedLog) has(ref string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seen[ref]
}

func testConfig() *config.Config {
	return &config.Config{
		Worker: config.WorkerConfig{Count: 2, BufferSize: 10},
		Sources: config.SourcesConfig{
			USGSPollInterval:  time.Minute,
			GDACSPollInterval: time.Minute,
			USGSMinMagnitude:  4.5,
		},
	}
}

func waitForCount(t *testing.T, c *mockCreator, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.count() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d alerts, got %d", want, c.count())
}

const usgsBody = `{
  "features": [
    {"id": "us1", "properties": {"mag": 6.4, "place": "10 km N of Ridgecrest, CA", "time": 1700000000000, "title": "M 6.4 - 10 km N of Ridgecrest, CA", "tsunami": 0}},
    {"id": "us2", "properties": {"mag": 4.8, "place": "Offshore Oregon", "time": 1700000000000, "title": "M 4.8 - Offshore Oregon", "tsunami": 0}},
    {"id": "us3", "properties": {"mag": 2.1, "place": "Somewhere small", "time": 1700000000000, "title": "M 2.1 - Somewhere small", "tsunami": 0}}
  ]
}`

const gdacsBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss xmlns:gdacs="http://www.gdacs.org" version="2.0">
  <channel>
    <item>
      <title>Red flood alert in Bangladesh</title>
      <description>Severe flooding along the river basin.</description>
      <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
      <gdacs:eventtype>FL</gdacs:eventtype>
      <gdacs:alertlevel>Red</gdacs:alertlevel>
      <gdacs:eventid>1001</gdacs:eventid>
      <gdacs:country>Bangladesh</gdacs:country>
    </item>
    <item>
      <title>Green tropical cyclone</title>
      <description></description>
      <gdacs:eventtype>TC</gdacs:eventtype>
      <gdacs:alertlevel>Green</gdacs:alertlevel>
      <gdacs:eventid>1002</gdacs:eventid>
    </item>
    <item>
      <title>No id</title>
      <gdacs:alertlevel>Orange</gdacs:alertlevel>
    </item>
  </channel>
</rss>`

func serve(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
}

func TestManager_StartStop(t *testing.T) {
	mgr := NewManager(testConfig(), &mockCreator{}, newMockFeedLog())

	ctx, cancel := context.WithCancel(context.Background())
	mgr.Start(ctx)

	time.Sleep(20 * time.Millisecond)

	cancel()
	mgr.Stop()
}

func TestManager_PollsUSGS(t *testing.T) {
	srv := serve(usgsBody)
	defer srv.Close()

	cfg := testConfig()
	cfg.Sources.USGSEnabled = true
	cfg.Sources.USGSURL = srv.URL

	creator := &mockCreator{}
	mgr := NewManager(cfg, creator, newMockFeedLog())

	ctx, cancel := context.WithCancel(context.Background())
	mgr.Start(ctx)
	waitForCount(t, creator, 2)
	cancel()
	mgr.Stop()

	byRef := make(map[string]models.AlertDraft)
	for _, d := range creator.snapshot() {
		byRef[d.ExternalRef] = d
	}
	if len(byRef) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(byRef))
	}

	big, ok := byRef["usgs_us1"]
	if !ok {
		t.Fatal("missing usgs_us1")
	}
	if big.Type != models.AlertTypeCritical {
		t.Errorf("expected critical, got %s", big.Type)
	}
	if big.Location != "10 km N of Ridgecrest, CA" || big.Source != "usgs" {
		t.Errorf("unexpected draft: %+v", big)
	}
	if byRef["usgs_us2"].Type != models.AlertTypeWarning {
		t.Errorf("expected warning, got %s", byRef["usgs_us2"].Type)
	}
	if _, ok := byRef["usgs_us3"]; ok {
		t.Error("below-threshold quake should be skipped")
	}
}

func TestManager_PollsGDACS(t *testing.T) {
	srv := serve(gdacsBody)
	defer srv.Close()

	cfg := testConfig()
	cfg.Sources.GDACSEnabled = true
	cfg.Sources.GDACSURL = srv.URL

	creator := &mockCreator{}
	mgr := NewManager(cfg, creator, newMockFeedLog())

	ctx, cancel := context.WithCancel(context.Background())
	mgr.Start(ctx)
	waitForCount(t, creator, 2)
	cancel()
	mgr.Stop()

	byRef := make(map[string]models.AlertDraft)
	for _, d := range creator.snapshot() {
		byRef[d.ExternalRef] = d
	}

	flood := byRef["gdacs_fl_1001"]
	if flood.Type != models.AlertTypeCritical {
		t.Errorf("expected critical, got %s", flood.Type)
	}
	if flood.Location != "Bangladesh" {
		t.Errorf("expected Bangladesh, got %q", flood.Location)
	}
	if flood.Message != "Severe flooding along the river basin." {
		t.Errorf("unexpected message %q", flood.Message)
	}

	cyclone := byRef["gdacs_tc_1002"]
	if cyclone.Type != models.AlertTypeInfo {
		t.Errorf("expected info, got %s", cyclone.Type)
	}
	if cyclone.Message != "Green tropical cyclone" {
		t.Errorf("empty description should fall back to title, got %q", cyclone.Message)
	}
}

func TestManager_PollErrorIsNotFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	mgr := NewManager(testConfig(), &mockCreator{}, newMockFeedLog())
	if _, err := mgr.pollUSGS(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 503")
	}
	if _, err := mgr.pollGDACS(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 503")
	}
	mgr.client.CloseIdleConnections()
}

func TestManager_ProcessSkipsDuplicates(t *testing.T) {
	creator := &mockCreator{}
	mgr := NewManager(testConfig(), creator, newMockFeedLog())

	draft := models.AlertDraft{Title: "t", Message: "m", ExternalRef: "usgs_x"}
	ctx := context.Background()

	if err := mgr.process(ctx, draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.process(ctx, draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creator.count() != 1 {
		t.Errorf("expected 1 alert, got %d", creator.count())
	}
}

func TestManager_ProcessErrors(t *testing.T) {
	ctx := context.Background()
	draft := models.AlertDraft{Title: "t", Message: "m", ExternalRef: "ref"}

	log := newMockFeedLog()
	log.err = errors.New("db down")
	mgr := NewManager(testConfig(), &mockCreator{}, log)
	if err := mgr.process(ctx, draft); err == nil {
		t.Error("expected feed log error")
	}

	creator := &mockCreator{err: alerts.ErrMissingField}
	seen := newMockFeedLog()
	mgr = NewManager(testConfig(), creator, seen)
	if err := mgr.process(ctx, draft); !errors.Is(err, alerts.ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
	if !seen.has(draft.ExternalRef) {
		t.Error("invalid feed item should stay recorded")
	}
}

func TestManager_ProcessRetriesAfterStorageError(t *testing.T) {
	ctx := context.Background()
	draft := models.AlertDraft{Title: "t", Message: "m", ExternalRef: "usgs_retry"}

	creator := &mockCreator{err: errors.New("disk full")}
	seen := newMockFeedLog()
	mgr := NewManager(testConfig(), creator, seen)

	if err := mgr.process(ctx, draft); err == nil {
		t.Fatal("expected create error")
	}
	if seen.has(draft.ExternalRef) {
		t.Error("failed feed item should be forgotten")
	}

	creator.mu.Lock()
	creator.err = nil
	creator.mu.Unlock()

	if err := mgr.process(ctx, draft); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if creator.count() != 1 {
		t.Errorf("expected 1 alert after retry, got %d", creator.count())
	}
}

func TestAlertLevelMapping(t *testing.T) {
	tests := []struct {
		level string
		want  models.AlertType
	}{
		{"Red", models.AlertTypeCritical},
		{"orange", models.AlertTypeWarning},
		{"Green", models.AlertTypeInfo},
		{"", models.AlertTypeInfo},
	}
	for _, tt := range tests {
		if got := mapGDACSAlertLevel(tt.level); got != tt.want {
			t.Errorf("mapGDACSAlertLevel(%q) = %s, want %s", tt.level, got, tt.want)
		}
	}

	quakes := []struct {
		mag     float64
		tsunami bool
		want    models.AlertType
	}{
		{7.1, false, models.AlertTypeCritical},
		{5.0, true, models.AlertTypeCritical},
		{5.0, false, models.AlertTypeWarning},
		{3.0, false, models.AlertTypeInfo},
	}
	for _, tt := range quakes {
		if got := earthquakeAlertType(tt.mag, tt.tsunami); got != tt.want {
			t.Errorf("earthquakeAlertType(%v, %v) = %s, want %s", tt.mag, tt.tsunami, got, tt.want)
		}
	}
}
