package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName полное имя gRPC сервиса.
const ServiceName = "filmorate.FilmInterService"

// Полные имена методов, как их видит gRPC.
const (
	MethodCheckFilmExists    = "/" + ServiceName + "/CheckFilmExists"
	MethodCheckUserExists    = "/" + ServiceName + "/CheckUserExists"
	MethodGetFilmInfo        = "/" + ServiceName + "/GetFilmInfo"
	MethodGetPopularFilms    = "/" + ServiceName + "/GetPopularFilms"
	MethodGetRecommendations = "/" + ServiceName + "/GetRecommendations"
)

// FilmInterServiceServer серверная сторона FilmInterService.
// Сообщения взяты из well-known типов protobuf, поэтому .proto и кодогенерация не нужны.
type FilmInterServiceServer interface {
	CheckFilmExists(context.Context, *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error)
	CheckUserExists(context.Context, *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error)
	GetFilmInfo(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	GetPopularFilms(context.Context, *wrapperspb.Int32Value) (*structpb.ListValue, error)
	GetRecommendations(context.Context, *structpb.Struct) (*structpb.ListValue, error)
}

// FilmInterServiceDesc описание сервиса для grpc.Server.
var FilmInterServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FilmInterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CheckFilmExists", MethodCheckFilmExists, newInt64, FilmInterServiceServer.CheckFilmExists),
		unary("CheckUserExists", MethodCheckUserExists, newInt64, FilmInterServiceServer.CheckUserExists),
		unary("GetFilmInfo", MethodGetFilmInfo, newInt64, FilmInterServiceServer.GetFilmInfo),
		unary("GetPopularFilms", MethodGetPopularFilms, func() *wrapperspb.Int32Value { return &wrapperspb.Int32Value{} }, FilmInterServiceServer.GetPopularFilms),
		unary("GetRecommendations", MethodGetRecommendations, func() *structpb.Struct { return &structpb.Struct{} }, FilmInterServiceServer.GetRecommendations),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "filmorate/film_inter_service.proto",
}

// RegisterFilmInterServiceServer регистрирует реализацию на сервере.
func RegisterFilmInterServiceServer(s grpc.ServiceRegistrar, srv FilmInterServiceServer) {
	s.RegisterService(&FilmInterServiceDesc, srv)
}

func newInt64() *wrapperspb.Int64Value { return &wrapperspb.Int64Value{} }

// unary собирает MethodDesc так же, как это делает protoc-gen-go-grpc.
func unary[Req proto.Message, Resp proto.Message](
	name, fullMethod string,
	newReq func() Req,
	call func(FilmInterServiceServer, context.Context, Req) (Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(FilmInterServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(FilmInterServiceServer), ctx, req.(Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// FilmInterServiceClient клиентская сторона FilmInterService.
type FilmInterServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewFilmInterServiceClient создает клиент поверх соединения.
func NewFilmInterServiceClient(cc grpc.ClientConnInterface) *FilmInterServiceClient {
	return &FilmInterServiceClient{cc: cc}
}

func (c *FilmInterServiceClient) CheckFilmExists(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, MethodCheckFilmExists, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FilmInterServiceClient) CheckUserExists(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, MethodCheckUserExists, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FilmInterServiceClient) GetFilmInfo(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodGetFilmInfo, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FilmInterServiceClient) GetPopularFilms(ctx context.Context, in *wrapperspb.Int32Value, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, MethodGetPopularFilms, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FilmInterServiceClient) GetRecommendations(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, MethodGetRecommendations, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
