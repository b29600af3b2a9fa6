package grpc

import (
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/certificate"
	"github.com/dmitrijs2005/cvboard/internal/common"
	"github.com/dmitrijs2005/cvboard/internal/rpc"
	"github.com/dmitrijs2005/cvboard/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type fakeTransportStream struct {
	trailer metadata.MD
}

func (f *fakeTransportStream) Method() string {
	return ""
}
func (f *fakeTransportStream) SetHeader(metadata.MD) error {
	return nil
}
func (f *fakeTransportStream) SendHeader(metadata.MD) error {
	return nil
}
func (f *fakeTransportStream) SetTrailer(md metadata.MD) error {
	f.trailer = metadata.Join(f.trailer, md)
	return nil
}

func principalOf(t *testing.T, s *GRPCServer, md metadata.MD) (string, error) {
	t.Helper()

	ctx := context.Background()
	if md != nil {
		ctx = metadata.NewIncomingContext(ctx, md)
	}
	info := &grpc.UnaryServerInfo{FullMethod: rpc.RecordStore_GetAllCVs_FullMethodName}

	var got string
	_, err := s.identityInterceptor(ctx, nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		got = principalFromContext(ctx)
		return "ok", nil
	})
	return got, err
}

func TestIdentityInterceptor_AnonymousWithoutHeader(t *testing.T) {
	s := newServer(&fakeRecords{})

	p, err := principalOf(t, s, nil)
	require.NoError(t, err)
	assert.Equal(t, common.AnonymousPrincipal, p)
}

func TestIdentityInterceptor_BearerToken(t *testing.T) {
	s := newServer(&fakeRecords{})

	tok, err := auth.IssueToken("principal-a", []byte("identity-secret"), time.Minute)
	require.NoError(t, err)

	p, err := principalOf(t, s, metadata.Pairs(common.AuthorizationHeaderName, "Bearer "+tok))
	require.NoError(t, err)
	assert.Equal(t, "principal-a", p)
}

func TestIdentityInterceptor_Rejects(t *testing.T) {
	s := newServer(&fakeRecords{})

	foreign, err := auth.IssueToken("principal-a", []byte("other"), time.Minute)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"no bearer prefix": foreign,
		"foreign secret":   "Bearer " + foreign,
		"garbage":          "Bearer not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := principalOf(t, s, metadata.Pairs(common.AuthorizationHeaderName, header))
			assert.Equal(t, codes.Unauthenticated, status.Code(err))
		})
	}
}

func TestCertificateInterceptor_SignsCertifiedMethods(t *testing.T) {
	s := newServer(&fakeRecords{})
	s.now = func() time.Time { return time.Unix(1_700_000_000, 0) }

	stream := &fakeTransportStream{}
	ctx := grpc.NewContextWithServerTransportStream(context.Background(), stream)
	info := &grpc.UnaryServerInfo{FullMethod: rpc.RecordStore_DeleteAllRecords_FullMethodName}

	resp, err := s.certificateInterceptor(ctx, nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return &emptypb.Empty{}, nil
	})
	require.NoError(t, err)

	certs := stream.trailer.Get(common.CertificateTrailerName)
	require.Len(t, certs, 1)

	pub := ed25519.NewKeyFromSeed(testSeed).Public().(ed25519.PublicKey)
	require.NoError(t, certificate.Verify(certs[0], pub, info.FullMethod, resp.(*emptypb.Empty)))
}

func TestCertificateInterceptor_SkipsStatusAndErrors(t *testing.T) {
	s := newServer(&fakeRecords{})

	stream := &fakeTransportStream{}
	ctx := grpc.NewContextWithServerTransportStream(context.Background(), stream)

	_, err := s.certificateInterceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: rpc.RecordStore_Status_FullMethodName},
		func(ctx context.Context, req interface{}) (interface{}, error) {
			return wrapperspb.Bytes([]byte("k")), nil
		})
	require.NoError(t, err)

	_, err = s.certificateInterceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: rpc.RecordStore_AddCV_FullMethodName},
		func(ctx context.Context, req interface{}) (interface{}, error) {
			return nil, status.Error(codes.Internal, "boom")
		})
	assert.Equal(t, codes.Internal, status.Code(err))

	assert.Empty(t, stream.trailer.Get(common.CertificateTrailerName))
}
