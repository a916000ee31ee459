package grpc

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mr1hm/go-emergency-prep/internal/alerts"
	"github.com/mr1hm/go-emergency-prep/internal/models"
)

// AlertBook is the part of the alert service the gRPC server needs.
type AlertBook interface {
	Create(ctx context.Context, draft models.AlertDraft) (models.Alert, error)
	All() []models.Alert
	Active() []models.Alert
	Recent(limit int) []models.Alert
}

type Server struct {
	alerts      AlertBook
	broadcaster *Broadcaster
	grpcServer  *grpc.Server
}

func NewServer(book AlertBook, broadcaster *Broadcaster) *Server {
	s := &Server{
		alerts:      book,
		broadcaster: broadcaster,
		grpcServer:  grpc.NewServer(),
	}
	RegisterAlertServiceServer(s.grpcServer, s)
	return s
}

// Start blocks serving on addr until Stop is called.
func (s *Server) Start(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	slog.Info("gRPC server listening", "addr", addr)
	return s.grpcServer.Serve(lis)
}

func (s *Server) Stop() {
	s.grpcServer.GracefulStop()
}

func (s *Server) ListAlerts(ctx context.Context, req *ListAlertsRequest) (*ListAlertsResponse, error) {
	var list []models.Alert
	switch strings.ToLower(req.Status) {
	case "", "all":
		list = s.alerts.All()
	case "active":
		list = s.alerts.Active()
	case "recent":
		list = s.alerts.Recent(0)
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown status: %s", req.Status)
	}

	if req.Type != "" {
		t, ok := models.ParseAlertType(req.Type)
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "unknown alert type: %s", req.Type)
		}
		filtered := make([]models.Alert, 0, len(list))
		for _, a := range list {
			if a.Type == t {
				filtered = append(filtered, a)
			}
		}
		list = filtered
	}

	if req.Limit > 0 && len(list) > req.Limit {
		list = list[:req.Limit]
	}
	return &ListAlertsResponse{Alerts: list}, nil
}

func (s *Server) CreateAlert(ctx context.Context, req *CreateAlertRequest) (*models.Alert, error) {
	a, err := s.alerts.Create(ctx, models.AlertDraft{
		Type:     models.AlertType(req.Type),
		Title:    req.Title,
		Message:  req.Message,
		Location: req.Location,
		Source:   "grpc",
	})
	if err != nil {
		if errors.Is(err, alerts.ErrMissingField) || errors.Is(err, alerts.ErrInvalidType) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "failed to create alert: %v", err)
	}
	return &a, nil
}

func (s *Server) StreamAlerts(req *StreamAlertsRequest, stream AlertStream) error {
	types := make([]models.AlertType, 0, len(req.Types))
	for _, name := range req.Types {
		t, ok := models.ParseAlertType(name)
		if !ok {
			return status.Errorf(codes.InvalidArgument, "unknown alert type: %s", name)
		}
		types = append(types, t)
	}

	id, ch := s.broadcaster.Subscribe(types...)
	defer s.broadcaster.Unsubscribe(id)

	slog.Info("client subscribed to alert stream", "subscriber_id", id)

	for {
		select {
		case <-stream.Context().Done():
			slog.Info("client disconnected from alert stream", "subscriber_id", id)
			return nil
		case e, ok := <-ch:
			if !ok {
				return nil
			}
			if err := stream.Send(e); err != nil {
				slog.Error("failed to send alert event to stream", "error", err, "subscriber_id", id)
				return err
			}
		}
	}
}
