package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName              = "idlink.Triggers"
	PreSignUpMethod          = "/" + ServiceName + "/PreSignUp"
	PostAuthenticationMethod = "/" + ServiceName + "/PostAuthentication"
)

// TriggersServer is the server API for the idlink.Triggers service.
type TriggersServer interface {
	PreSignUp(ctx context.Context, req *PreSignUpRequest) (*PreSignUpResponse, error)
	PostAuthentication(ctx context.Context, req *PostAuthenticationRequest) (*PostAuthenticationResponse, error)
}

// RegisterTriggersServer registers srv on s.
func RegisterTriggersServer(s grpc.ServiceRegistrar, srv TriggersServer) {
	s.RegisterService(&triggersServiceDesc, srv)
}

var triggersServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TriggersServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PreSignUp", Handler: preSignUpHandler},
		{MethodName: "PostAuthentication", Handler: postAuthenticationHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "idlink/triggers",
}

func preSignUpHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PreSignUpRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TriggersServer).PreSignUp(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PreSignUpMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TriggersServer).PreSignUp(ctx, req.(*PreSignUpRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func postAuthenticationHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PostAuthenticationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TriggersServer).PostAuthentication(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PostAuthenticationMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TriggersServer).PostAuthentication(ctx, req.(*PostAuthenticationRequest))
	}
	return interceptor(ctx, in, info, handler)
}
