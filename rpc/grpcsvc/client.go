package grpcsvc

import (
	"context"
	"fmt"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client is a convenience wrapper around the ledger service.
type Client struct {
	conn *grpc.ClientConn
}

// Dial initialises a client against target. Without options the connection
// is plaintext.
func Dial(ctx context.Context, target string, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	opts = append(opts, grpc.WithUnaryInterceptor(otelgrpc.UnaryClientInterceptor()))
	conn, err := grpc.DialContext(ctx, target, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Close tears down the client connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// GetLedgerEntry fetches the raw object stored under req.Key.
func (c *Client) GetLedgerEntry(ctx context.Context, req *GetLedgerEntryRequest, opts ...grpc.CallOption) (*GetLedgerEntryResponse, error) {
	if c == nil || c.conn == nil {
		return nil, fmt.Errorf("ledger client not initialised")
	}
	out := new(GetLedgerEntryResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.conn.Invoke(ctx, getLedgerEntryMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
