// Package grpc serves the RecordStore service of the development replica.
package grpc

import (
	"context"
	"crypto/ed25519"
	"net"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/logging"
	"github.com/dmitrijs2005/cvboard/internal/models"
	"github.com/dmitrijs2005/cvboard/internal/rpc"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
)

type recordService interface {
	Add(ctx context.Context, owner string, sub models.Submission) (models.Record, error)
	List(ctx context.Context) ([]models.Record, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type GRPCServer struct {
	rpc.UnimplementedRecordStoreServer
	address        string
	records        recordService
	logger         logging.Logger
	identitySecret []byte
	rootKey        ed25519.PrivateKey
	now            func() time.Time
}

func NewGRPCServer(a string, l logging.Logger, rs recordService, identitySecret string, rootKey ed25519.PrivateKey) *GRPCServer {
	return &GRPCServer{
		address:        a,
		logger:         l.With("module", "grpc_server"),
		records:        rs,
		identitySecret: []byte(identitySecret),
		rootKey:        rootKey,
		now:            time.Now,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.identityInterceptor, s.certificateInterceptor),
	)
	rpc.RegisterRecordStoreServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
