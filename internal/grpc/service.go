package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/mr1hm/go-emergency-prep/internal/models"
)

const serviceName = "preparedness.v1.AlertService"

type ListAlertsRequest struct {
	Status string `json:"status,omitempty"` // active, recent or all
	Type   string `json:"type,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type ListAlertsResponse struct {
	Alerts []models.Alert `json:"alerts"`
}

type CreateAlertRequest struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

type StreamAlertsRequest struct {
	Types []string `json:"types,omitempty"`
}

// AlertServiceServer is implemented by Server.
type AlertServiceServer interface {
	ListAlerts(context.Context, *ListAlertsRequest) (*ListAlertsResponse, error)
	CreateAlert(context.Context, *CreateAlertRequest) (*models.Alert, error)
	StreamAlerts(*StreamAlertsRequest, AlertStream) error
}

// AlertStream is the server side of StreamAlerts.
type AlertStream interface {
	Send(*models.AlertEvent) error
	Context() context.Context
}

type alertStream struct {
	grpc.ServerStream
}

func (s *alertStream) Send(e *models.AlertEvent) error {
	return s.ServerStream.SendMsg(e)
}

func RegisterAlertServiceServer(s grpc.ServiceRegistrar, srv AlertServiceServer) {
	s.RegisterService(&alertServiceDesc, srv)
}

func listAlertsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListAlertsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AlertServiceServer).ListAlerts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/ListAlerts",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AlertServiceServer).ListAlerts(ctx, req.(*ListAlertsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func createAlertHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateAlertRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AlertServiceServer).CreateAlert(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/CreateAlert",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AlertServiceServer).CreateAlert(ctx, req.(*CreateAlertRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func streamAlertsHandler(srv any, stream grpc.ServerStream) error {
	in := new(StreamAlertsRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(AlertServiceServer).StreamAlerts(in, &alertStream{stream})
}

var alertServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*AlertServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListAlerts", Handler: listAlertsHandler},
		{MethodName: "CreateAlert", Handler: createAlertHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "StreamAlerts", Handler: streamAlertsHandler, ServerStreams: true},
	},
	Metadata: "preparedness/v1/alerts",
}
