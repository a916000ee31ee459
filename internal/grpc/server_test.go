package grpc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mr1hm/go-emergency-prep/internal/alerts"
	"github.com/mr1hm/go-emergency-prep/internal/models"
)

// modelBook adapts alerts.Model to AlertBook for testing
type modelBook struct {
	*alerts.Model
}

func (b modelBook) Create(ctx context.Context, draft models.AlertDraft) (models.Alert, error) {
	return b.Model.Create(draft)
}

func newTestServer() (*Server, *Broadcaster) {
	now := time.Now()
	book := modelBook{alerts.New([]models.Alert{
		{ID: "1", Type: models.AlertTypeCritical, Title: "Fire", Message: "m", Timestamp: now, IsActive: true},
		{ID: "2", Type: models.AlertTypeWarning, Title: "Weather", Message: "m", Timestamp: now, IsActive: true},
		{ID: "3", Type: models.AlertTypeSuccess, Title: "Clear", Message: "m", Timestamp: now},
	})}
	b := NewBroadcaster()
	return NewServer(book, b), b
}

// fakeStream records sent events
type fakeStream struct {
	ctx  context.Context
	mu   sync.Mutex
	sent []*models.AlertEvent
	got  chan struct{}
}

func (f *fakeStream) Send(e *models.AlertEvent) error {
	f.mu.Lock()
	f.sent = append(f.sent, e)
	f.mu.Unlock()
	f.got <- struct{}{}
	return nil
}

func (f *fakeStream) Context() context.Context {
	return f.ctx
}

func TestServer_ListAlerts(t *testing.T) {
	s, _ := newTestServer()
	ctx := context.Background()

	tests := []struct {
		req  ListAlertsRequest
		want int
	}{
		{ListAlertsRequest{}, 3},
		{ListAlertsRequest{Status: "active"}, 2},
		{ListAlertsRequest{Status: "recent"}, 1},
		{ListAlertsRequest{Status: "active", Type: "critical"}, 1},
		{ListAlertsRequest{Limit: 2}, 2},
	}
	for _, tt := range tests {
		resp, err := s.ListAlerts(ctx, &tt.req)
		if err != nil {
			t.Fatalf("ListAlerts(%+v) failed: %v", tt.req, err)
		}
		if len(resp.Alerts) != tt.want {
			t.Errorf("ListAlerts(%+v): expected %d alerts, got %d", tt.req, tt.want, len(resp.Alerts))
		}
	}

	_, err := s.ListAlerts(ctx, &ListAlertsRequest{Status: "archived"})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}

func TestServer_CreateAlert(t *testing.T) {
	s, _ := newTestServer()
	ctx := context.Background()

	a, err := s.CreateAlert(ctx, &CreateAlertRequest{Type: "Warning", Title: "Ice", Message: "Slippery paths"})
	if err != nil {
		t.Fatalf("CreateAlert failed: %v", err)
	}
	if a.Type != models.AlertTypeWarning || !a.IsActive {
		t.Errorf("unexpected alert: %+v", a)
	}

	_, err = s.CreateAlert(ctx, &CreateAlertRequest{Title: "No message"})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}

func TestServer_StreamAlertsFiltersByType(t *testing.T) {
	s, b := newTestServer()

	ctx, cancel := context.WithCancel(context.Background())
	stream := &fakeStream{ctx: ctx, got: make(chan struct{}, 10)}

	done := make(chan error, 1)
	go func() {
		done <- s.StreamAlerts(&StreamAlertsRequest{Types: []string{"critical"}}, stream)
	}()

	// Wait for the subscription
	deadline := time.After(time.Second)
	for b.SubscriberCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("stream never subscribed")
		case <-time.After(time.Millisecond):
		}
	}

	b.Broadcast(event("info_1", models.AlertTypeInfo))
	b.Broadcast(event("crit_1", models.AlertTypeCritical))

	select {
	case <-stream.got:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for streamed event")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("expected clean stream exit, got %v", err)
	}

	stream.mu.Lock()
	defer stream.mu.Unlock()
	if len(stream.sent) != 1 || stream.sent[0].Alert.ID != "crit_1" {
		t.Errorf("expected only crit_1, got %+v", stream.sent)
	}
	if b.SubscriberCount() != 0 {
		t.Errorf("expected stream to unsubscribe, got %d subscribers", b.SubscriberCount())
	}
}

func TestServer_StreamAlertsRejectsUnknownType(t *testing.T) {
	s, b := newTestServer()
	stream := &fakeStream{ctx: context.Background(), got: make(chan struct{}, 1)}

	err := s.StreamAlerts(&StreamAlertsRequest{Types: []string{"meteor"}}, stream)
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
	if b.SubscriberCount() != 0 {
		t.Error("rejected stream must not subscribe")
	}
}

func TestServer_StreamAlertsEndsOnBroadcasterClose(t *testing.T) {
	s, b := newTestServer()
	stream := &fakeStream{ctx: context.Background(), got: make(chan struct{}, 1)}

	done := make(chan error, 1)
	go func() {
		done <- s.StreamAlerts(&StreamAlertsRequest{}, stream)
	}()

	for b.SubscriberCount() == 0 {
		time.Sleep(time.Millisecond)
	}
	b.Close()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("stream did not exit after broadcaster close")
	}
}

func TestJSONCodec_RoundTrip(t *testing.T) {
	c := jsonCodec{}
	data, err := c.Marshal(&ListAlertsRequest{Status: "active", Limit: 3})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var got ListAlertsRequest
	if err := c.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Status != "active" || got.Limit != 3 {
		t.Errorf("unexpected decode: %+v", got)
	}
	if c.Name() != "json" {
		t.Errorf("expected codec name json, got %s", c.Name())
	}
}
