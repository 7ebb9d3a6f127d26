package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Client calls the idlink.Triggers service.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a Client over conn.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) PreSignUp(ctx context.Context, in *PreSignUpRequest, opts ...grpc.CallOption) (*PreSignUpResponse, error) {
	out := new(PreSignUpResponse)
	if err := c.conn.Invoke(ctx, PreSignUpMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PostAuthentication(ctx context.Context, in *PostAuthenticationRequest, opts ...grpc.CallOption) (*PostAuthenticationResponse, error) {
	out := new(PostAuthenticationResponse)
	if err := c.conn.Invoke(ctx, PostAuthenticationMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

// BearerToken attaches a caller token to every call.
type BearerToken string

// GetRequestMetadata implements credentials.PerRPCCredentials.
func (t BearerToken) GetRequestMetadata(_ context.Context, _ ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer " + string(t)}, nil
}

// RequireTransportSecurity implements credentials.PerRPCCredentials. Tokens are
// allowed over plaintext for in-cluster sidecar deployments.
func (t BearerToken) RequireTransportSecurity() bool {
	return false
}
