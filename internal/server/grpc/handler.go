package grpc

import (
	"context"
	"crypto/ed25519"
	"errors"

	"github.com/dmitrijs2005/cvboard/internal/common"
	"github.com/dmitrijs2005/cvboard/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func (s *GRPCServer) AddCV(ctx context.Context, req *structpb.Struct) (*structpb.Value, error) {
	owner := principalFromContext(ctx)

	sub, err := rpc.DecodeSubmission(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	rec, err := s.records.Add(ctx, owner, sub)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicate):
			s.logger.Info(ctx, "Duplicate submission", "owner", owner)
			return rpc.EncodeOptionalRecord(nil)
		case errors.Is(err, common.ErrValidation):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		default:
			s.logger.Error(ctx, err.Error())
			return nil, status.Error(codes.Internal, "internal error")
		}
	}

	s.logger.Info(ctx, "Record added", "owner", owner)

	v, err := rpc.EncodeOptionalRecord(&rec)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return v, nil
}

func (s *GRPCServer) GetAllCVs(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	list, err := s.records.List(ctx)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}

	out, err := rpc.EncodeRecordList(list)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// DeleteAllRecords wipes the store. Any caller may, anonymous included.
func (s *GRPCServer) DeleteAllRecords(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	n, err := s.records.DeleteAll(ctx)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "All records deleted", "caller", principalFromContext(ctx), "count", n)
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Status(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	if len(s.rootKey) != ed25519.PrivateKeySize {
		return nil, status.Error(codes.Internal, "root key unavailable")
	}
	return wrapperspb.Bytes(s.rootKey.Public().(ed25519.PublicKey)), nil
}
