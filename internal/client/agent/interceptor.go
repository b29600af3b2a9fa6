package agent

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cvboard/internal/certificate"
	"github.com/dmitrijs2005/cvboard/internal/common"
	"github.com/dmitrijs2005/cvboard/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/proto"
)

func withBearerToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, "Bearer "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

// unaryInterceptor attaches the identity and verifies the certificate of
// certified responses.
func (a *Agent) unaryInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if a.token != "" {
		ctx = withBearerToken(ctx, a.token)
	}

	if !rpc.IsCertified(method) {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	rootKey := a.RootKey()
	if rootKey == nil {
		return fmt.Errorf("%w: root key not fetched", common.ErrUntrusted)
	}

	var trailer metadata.MD
	opts = append(opts, grpc.Trailer(&trailer))

	if err := invoker(ctx, method, req, reply, cc, opts...); err != nil {
		return err
	}

	msg, ok := reply.(proto.Message)
	if !ok {
		return fmt.Errorf("%w: reply is not a protobuf message", common.ErrUntrusted)
	}

	var cert string
	if values := trailer.Get(common.CertificateTrailerName); len(values) > 0 {
		cert = values[0]
	}

	if err := certificate.Verify(cert, rootKey, method, msg); err != nil {
		a.logger.Warn(ctx, "response rejected", "method", method, "error", err)
		return err
	}
	return nil
}
