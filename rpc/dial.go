package rpc

import (
	"context"
	"crypto/tls"
	"net"
	"strings"
	"time"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// cosmos messages are gogoproto generated, so calls must go through the cosmos proto codec.
var protoCodec = codec.NewProtoCodec(codectypes.NewInterfaceRegistry())

// ParseEndpoint returns the dial target of the given endpoint and whether TLS is required.
//
// TLS is used when the endpoint starts with "https://" or ends with ":443".
func ParseEndpoint(endpoint string) (target string, secure bool) {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		target = strings.TrimSuffix(strings.TrimPrefix(endpoint, "https://"), "/")
		if _, _, err := net.SplitHostPort(target); err != nil {
			target += ":443"
		}
		return target, true
	case strings.HasSuffix(endpoint, ":443"):
		return strings.TrimPrefix(endpoint, "http://"), true
	default:
		return strings.TrimSuffix(strings.TrimPrefix(endpoint, "http://"), "/"), false
	}
}

// Dial connects to the given gRPC endpoint, and blocks until the connection is established or
// the timeout elapsed. Zero timeout means to wait until the context is done.
func Dial(ctx context.Context, endpoint string, timeout time.Duration) (*grpc.ClientConn, error) {
	if len(endpoint) == 0 {
		return nil, errors.New("no grpc endpoint provided")
	}

	target, secure := ParseEndpoint(endpoint)

	var opts []grpc.DialOption
	if secure {
		opts = append(opts, grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{})))
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	opts = append(opts, grpc.WithDefaultCallOptions(grpc.ForceCodec(protoCodec.GRPCCodec())))

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	conn, err := connect(ctx, target, opts...)
	rpcMetrics.Dial(err == nil).UpdateSince(start)
	if err != nil {
		return nil, errors.WithMessagef(err, "Failed to dial grpc endpoint %v", target)
	}

	logrus.WithFields(logrus.Fields{
		"target": target,
		"tls":    secure,
	}).Debug("Connected to grpc endpoint")

	return conn, nil
}

// connect creates a client connection and waits until it is ready or the context is done.
func connect(ctx context.Context, target string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}

	conn.Connect()

	for {
		state := conn.GetState()
		if state == connectivity.Ready {
			return conn, nil
		}

		if state == connectivity.Shutdown || !conn.WaitForStateChange(ctx, state) {
			conn.Close()

			if err := ctx.Err(); err != nil {
				return nil, err
			}

			return nil, errors.Errorf("Connection %v", state)
		}
	}
}

// withTimeout derives a context with the given timeout if it is positive.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, timeout)
}
