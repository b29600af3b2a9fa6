// Package rpc defines the wire contract of the remote record store:
// the gRPC service descriptor, its client stub and server registration,
// and the mapping between records and self-describing protobuf values.
//
// Messages are protobuf well-known types (structpb, emptypb, wrapperspb),
// so the contract needs no generated message code. The stub below follows
// the shape protoc-gen-go-grpc emits.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "cvboard.v1.RecordStore"

const (
	RecordStore_AddCV_FullMethodName            = "/cvboard.v1.RecordStore/AddCV"
	RecordStore_GetAllCVs_FullMethodName        = "/cvboard.v1.RecordStore/GetAllCVs"
	RecordStore_DeleteAllRecords_FullMethodName = "/cvboard.v1.RecordStore/DeleteAllRecords"
	RecordStore_Status_FullMethodName           = "/cvboard.v1.RecordStore/Status"
)

// IsCertified reports whether responses of method carry a certificate.
// Status is the bootstrap call that hands out the root key, so it cannot be.
func IsCertified(method string) bool {
	return method != RecordStore_Status_FullMethodName
}

// RecordStoreClient is the client API for the RecordStore service.
type RecordStoreClient interface {
	// AddCV returns the created record, or a null value when the caller
	// already owns a record.
	AddCV(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Value, error)
	GetAllCVs(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
	DeleteAllRecords(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	// Status returns the store's root public key.
	Status(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type recordStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewRecordStoreClient(cc grpc.ClientConnInterface) RecordStoreClient {
	return &recordStoreClient{cc}
}

func (c *recordStoreClient) AddCV(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Value, error) {
	out := new(structpb.Value)
	if err := c.cc.Invoke(ctx, RecordStore_AddCV_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *recordStoreClient) GetAllCVs(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, RecordStore_GetAllCVs_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *recordStoreClient) DeleteAllRecords(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, RecordStore_DeleteAllRecords_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *recordStoreClient) Status(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, RecordStore_Status_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordStoreServer is the server API for the RecordStore service.
// Implementations should embed UnimplementedRecordStoreServer.
type RecordStoreServer interface {
	AddCV(context.Context, *structpb.Struct) (*structpb.Value, error)
	GetAllCVs(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	DeleteAllRecords(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Status(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error)
}

type UnimplementedRecordStoreServer struct{}

func (UnimplementedRecordStoreServer) AddCV(context.Context, *structpb.Struct) (*structpb.Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AddCV not implemented")
}
func (UnimplementedRecordStoreServer) GetAllCVs(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAllCVs not implemented")
}
func (UnimplementedRecordStoreServer) DeleteAllRecords(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteAllRecords not implemented")
}
func (UnimplementedRecordStoreServer) Status(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Status not implemented")
}

func RegisterRecordStoreServer(s grpc.ServiceRegistrar, srv RecordStoreServer) {
	s.RegisterService(&RecordStore_ServiceDesc, srv)
}

func _RecordStore_AddCV_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecordStoreServer).AddCV(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RecordStore_AddCV_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RecordStoreServer).AddCV(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _RecordStore_GetAllCVs_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecordStoreServer).GetAllCVs(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RecordStore_GetAllCVs_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RecordStoreServer).GetAllCVs(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _RecordStore_DeleteAllRecords_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecordStoreServer).DeleteAllRecords(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RecordStore_DeleteAllRecords_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RecordStoreServer).DeleteAllRecords(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _RecordStore_Status_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecordStoreServer).Status(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RecordStore_Status_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RecordStoreServer).Status(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// RecordStore_ServiceDesc is the grpc.ServiceDesc for the RecordStore service.
var RecordStore_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RecordStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddCV", Handler: _RecordStore_AddCV_Handler},
		{MethodName: "GetAllCVs", Handler: _RecordStore_GetAllCVs_Handler},
		{MethodName: "DeleteAllRecords", Handler: _RecordStore_DeleteAllRecords_Handler},
		{MethodName: "Status", Handler: _RecordStore_Status_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cvboard/v1/record_store",
}
