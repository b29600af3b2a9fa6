// Package agent is the configured client handle to the remote record store.
//
// An Agent owns the gRPC connection, attaches the caller identity to every
// call, and refuses certified responses it cannot verify against the root
// key fetched with FetchRootKey.
package agent

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/cvboard/internal/common"
	"github.com/dmitrijs2005/cvboard/internal/logging"
	"github.com/dmitrijs2005/cvboard/internal/models"
	"github.com/dmitrijs2005/cvboard/internal/rpc"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
)

type Agent struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.RecordStoreClient
	logger      logging.Logger

	principal string
	token     string

	pinnedRootKey ed25519.PublicKey
	dialOptions   []grpc.DialOption

	mu      sync.RWMutex
	rootKey ed25519.PublicKey
}

type Option func(*Agent)

// WithIdentity binds the agent to principal, presenting token as bearer.
// An empty token sends no authorization header.
func WithIdentity(principal, token string) Option {
	return func(a *Agent) {
		a.principal = principal
		a.token = token
	}
}

// WithPinnedRootKey makes FetchRootKey fail unless the store presents key.
func WithPinnedRootKey(key ed25519.PublicKey) Option {
	return func(a *Agent) { a.pinnedRootKey = key }
}

func WithLogger(l logging.Logger) Option {
	return func(a *Agent) { a.logger = l }
}

// WithDialOptions appends extra gRPC dial options.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(a *Agent) { a.dialOptions = append(a.dialOptions, opts...) }
}

// New creates an Agent for the store at endpointURL. It does not connect
// until the first call.
func New(endpointURL string, opts ...Option) (*Agent, error) {
	a := &Agent{
		endpointURL: endpointURL,
		principal:   common.AnonymousPrincipal,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("module", "agent")

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithUnaryInterceptor(a.unaryInterceptor),
	}, a.dialOptions...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	a.conn = conn
	a.client = rpc.NewRecordStoreClient(conn)
	return a, nil
}

// Principal returns the principal the agent calls as.
func (a *Agent) Principal() string {
	return a.principal
}

// RootKey returns the fetched root key, or nil before FetchRootKey.
func (a *Agent) RootKey() ed25519.PublicKey {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.rootKey
}

// FetchRootKey retrieves the store's root key. Certified calls fail with
// common.ErrUntrusted until it succeeds.
func (a *Agent) FetchRootKey(ctx context.Context) error {
	resp, err := a.client.Status(ctx, &emptypb.Empty{})
	if err != nil {
		return a.mapError(err)
	}

	key := ed25519.PublicKey(resp.GetValue())
	if len(key) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: root key has %d bytes", common.ErrUntrusted, len(key))
	}
	if a.pinnedRootKey != nil && !a.pinnedRootKey.Equal(key) {
		return common.ErrRootKeyMismatch
	}

	a.mu.Lock()
	a.rootKey = key
	a.mu.Unlock()

	a.logger.Debug(ctx, "root key fetched", "endpoint", a.endpointURL)
	return nil
}

// AddCV submits sub. It returns nil, without error, when the caller already
// owns a record.
func (a *Agent) AddCV(ctx context.Context, sub models.Submission) (*models.Record, error) {
	req, err := rpc.EncodeSubmission(sub)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.AddCV(ctx, req)
	if err != nil {
		return nil, a.mapError(err)
	}

	return rpc.DecodeOptionalRecord(resp)
}

func (a *Agent) GetAllCVs(ctx context.Context) ([]models.Record, error) {
	resp, err := a.client.GetAllCVs(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, a.mapError(err)
	}
	return rpc.DecodeRecordList(resp)
}

func (a *Agent) DeleteAllRecords(ctx context.Context) error {
	if _, err := a.client.DeleteAllRecords(ctx, &emptypb.Empty{}); err != nil {
		return a.mapError(err)
	}
	return nil
}

func (a *Agent) Close() error {
	return a.conn.Close()
}
