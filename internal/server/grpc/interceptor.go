package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/cvboard/internal/certificate"
	"github.com/dmitrijs2005/cvboard/internal/common"
	"github.com/dmitrijs2005/cvboard/internal/rpc"
	"github.com/dmitrijs2005/cvboard/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
)

type ctxKey string

const principalKey ctxKey = "principal"

const bearerPrefix = "Bearer "

// principalFromContext returns the caller principal set by
// identityInterceptor, or the anonymous principal.
func principalFromContext(ctx context.Context) string {
	if p, ok := ctx.Value(principalKey).(string); ok && p != "" {
		return p
	}
	return common.AnonymousPrincipal
}

// identityInterceptor resolves the caller principal from the bearer token.
// A call without one is anonymous; a call with an unusable one is rejected.
func (s *GRPCServer) identityInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AuthorizationHeaderName)
		if len(values) > 0 {
			header = values[0]
		}
	}

	principal := common.AnonymousPrincipal
	if header != "" {
		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "malformed authorization header")
		}
		p, err := auth.PrincipalFromToken(token, s.identitySecret)
		if err != nil {
			s.logger.Warn(ctx, "rejected identity token", "method", info.FullMethod, "error", err)
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		principal = p
	}

	return handler(context.WithValue(ctx, principalKey, principal), req)
}

// certificateInterceptor attaches a certificate over the response to the
// call's trailer.
func (s *GRPCServer) certificateInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	resp, err := handler(ctx, req)
	if err != nil || !rpc.IsCertified(info.FullMethod) {
		return resp, err
	}

	msg, ok := resp.(proto.Message)
	if !ok {
		return nil, status.Error(codes.Internal, "response is not a protobuf message")
	}

	cert, err := certificate.Sign(s.rootKey, info.FullMethod, msg, s.now())
	if err != nil {
		s.logger.Error(ctx, "certificate signing failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	if err := grpc.SetTrailer(ctx, metadata.Pairs(common.CertificateTrailerName, cert)); err != nil {
		s.logger.Error(ctx, "set trailer failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return resp, nil
}
