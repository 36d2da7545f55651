// Package grpcsvc serves raw ledger object reads over gRPC. Requests carry
// the object's 32-byte key directly and the stored binary encoding is
// returned unchanged.
package grpcsvc

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"ledgerd/codec"
	"ledgerd/core/types"
	"ledgerd/ledger"
	"ledgerd/observability"
	"ledgerd/rpc/ledgerentry"
)

// Server implements LedgerServiceServer over a ledger resolver.
type Server struct {
	resolver ledger.Resolver
	encoder  ledgerentry.Encoder
	logger   *slog.Logger
}

// ServerOption mutates server defaults during construction.
type ServerOption func(*Server)

// WithEncoder replaces the binary encoder.
func WithEncoder(enc ledgerentry.Encoder) ServerOption {
	return func(s *Server) {
		if enc != nil {
			s.encoder = enc
		}
	}
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer constructs the service backed by resolver.
func NewServer(resolver ledger.Resolver, opts ...ServerOption) *Server {
	srv := &Server{resolver: resolver, encoder: codec.Binary{}, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(srv)
		}
	}
	return srv
}

// GetLedgerEntry reads the object stored under the request's key, without a
// type check, from the ledger the request names.
func (s *Server) GetLedgerEntry(_ context.Context, req *GetLedgerEntryRequest) (*GetLedgerEntryResponse, error) {
	if s == nil || s.resolver == nil {
		return nil, status.Error(codes.Unavailable, "ledger service not initialised")
	}
	sel, err := ledger.SelectorFromWire(req.Ledger.Hash, req.Ledger.Sequence, req.Ledger.Shortcut)
	if err != nil {
		return nil, ledgerStatus(err)
	}
	snap, err := s.resolver.Resolve(sel)
	if err != nil {
		return nil, ledgerStatus(err)
	}
	key, ok := types.Hash256FromBytes(req.Key)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "index malformed")
	}
	entry, err := snap.Read(key)
	if err != nil {
		s.logger.Error("ledger object read failed",
			slog.String("component", "grpcsvc"),
			slog.String("index", key.String()),
			slog.Any("error", err))
		return nil, status.Error(codes.Internal, "ledger read failed")
	}
	if entry == nil {
		return nil, status.Error(codes.NotFound, "object not found")
	}
	data, err := s.encoder.Encode(entry)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &GetLedgerEntryResponse{
		LedgerObject: RawLedgerObject{Key: req.Key, Data: data},
		Ledger:       req.Ledger,
	}, nil
}

// ledgerStatus maps a ledger selection failure: malformed parameters are the
// caller's fault, anything else means the ledger is not available.
func ledgerStatus(err error) error {
	message := err.Error()
	var lookupErr *ledger.LookupError
	if errors.As(err, &lookupErr) {
		message = lookupErr.Message
	}
	if errors.Is(err, ledger.ErrInvalidParams) {
		return status.Error(codes.InvalidArgument, message)
	}
	return status.Error(codes.NotFound, message)
}

// NewGRPCServer builds a gRPC server carrying the ledger service and the
// standard health service, instrumented with OpenTelemetry and Prometheus.
func NewGRPCServer(svc LedgerServiceServer, opts ...grpc.ServerOption) *grpc.Server {
	options := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			otelgrpc.UnaryServerInterceptor(),
			metricsInterceptor(observability.GRPC()),
		),
	}
	options = append(options, opts...)
	server := grpc.NewServer(options...)
	RegisterLedgerServiceServer(server, svc)
	healthServer := health.NewServer()
	healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)
	return server
}

func metricsInterceptor(m *observability.GRPCMetrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		m.Observe(path.Base(info.FullMethod), status.Code(err).String(), time.Since(start))
		return resp, err
	}
}
