package grpc

import (
	"context"
	"crypto/ed25519"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/certificate"
	"github.com/dmitrijs2005/cvboard/internal/common"
	"github.com/dmitrijs2005/cvboard/internal/rpc"
	"github.com/dmitrijs2005/cvboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/cvboard/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
)

func startBufServer(t *testing.T) rpc.RecordStoreClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := newServer(services.NewRecordService(repomanager.NewMemoryRepositoryManager()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})

	return rpc.NewRecordStoreClient(conn)
}

func TestServe_RoundTripWithCertificates(t *testing.T) {
	client := startBufServer(t)
	ctx := context.Background()

	st, err := rpc.EncodeSubmission(sampleSubmission())
	require.NoError(t, err)

	var trailer metadata.MD
	v, err := client.AddCV(ctx, st, grpc.Trailer(&trailer))
	require.NoError(t, err)

	pub := ed25519.NewKeyFromSeed(testSeed).Public().(ed25519.PublicKey)
	certs := trailer.Get(common.CertificateTrailerName)
	require.Len(t, certs, 1)
	require.NoError(t, certificate.Verify(certs[0], pub, rpc.RecordStore_AddCV_FullMethodName, v))

	rec, err := rpc.DecodeOptionalRecord(v)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, common.AnonymousPrincipal, rec.Owner)

	v, err = client.AddCV(ctx, st)
	require.NoError(t, err)
	dup, err := rpc.DecodeOptionalRecord(v)
	require.NoError(t, err)
	assert.Nil(t, dup, "second submission by the same owner yields null")

	list, err := client.GetAllCVs(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Len(t, list.GetValues(), 1)

	status, err := client.Status(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, []byte(pub), status.GetValue())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := newServer(&fakeRecords{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err, "Run returned error on graceful stop")
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", newServer(&fakeRecords{}).logger, &fakeRecords{}, "secret", nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, srv.Run(ctx))
}
