package rpc

import (
	"context"
	"time"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
)

var _ TxQuerier = (*TxClient)(nil)

// TxConfig holds the configurations of the transaction query service.
type TxConfig struct {
	// gRPC endpoint of the full node, e.g. https://grpc.juno.example.com or localhost:9090.
	Endpoint string

	// PageBase is added to the 0-based page before it is sent to the node.
	PageBase uint64 `default:"1"`

	DialTimeout  time.Duration `default:"10s"`
	QueryTimeout time.Duration
}

func DefaultTxConfig() (config TxConfig) {
	defaults.SetDefaults(&config)
	return
}

// TxClient queries transactions via the cosmos tx service.
type TxClient struct {
	TxConfig

	conn  *grpc.ClientConn
	inner txtypes.ServiceClient
}

// NewTxClient connects to the tx service of the configured endpoint.
func NewTxClient(ctx context.Context, config TxConfig) (*TxClient, error) {
	conn, err := Dial(ctx, config.Endpoint, config.DialTimeout)
	if err != nil {
		return nil, errors.WithMessage(err, "Failed to connect to tx service")
	}

	return NewTxClientWithConn(conn, config), nil
}

// NewTxClientWithConn creates a tx client on an established connection.
func NewTxClientWithConn(conn *grpc.ClientConn, config TxConfig) *TxClient {
	return &TxClient{
		TxConfig: config,
		conn:     conn,
		inner:    txtypes.NewServiceClient(conn),
	}
}

// String returns the endpoint of tx service.
func (c *TxClient) String() string {
	return c.Endpoint
}

// QueryTxsByEvent implements the TxQuerier interface.
//
// The query is sent in both the legacy events field and the query field, so that nodes before
// and after cosmos-sdk v0.50 accept it.
func (c *TxClient) QueryTxsByEvent(ctx context.Context, query string, page, limit uint64) (*TxPage, error) {
	ctx, cancel := withTimeout(ctx, c.QueryTimeout)
	defer cancel()

	start := time.Now()
	resp, err := c.inner.GetTxsEvent(ctx, &txtypes.GetTxsEventRequest{
		Events:  []string{query},
		Query:   query,
		OrderBy: txtypes.OrderBy_ORDER_BY_UNSPECIFIED,
		Page:    page + c.PageBase,
		Limit:   limit,
	})
	rpcMetrics.Latency("getTxsEvent", err == nil).UpdateSince(start)
	if err != nil {
		return nil, errors.WithMessagef(err, "Failed to query txs of page %v", page)
	}

	if resp == nil {
		return &TxPage{}, nil
	}

	rpcMetrics.NumTxs().Update(int64(len(resp.TxResponses)))

	return &TxPage{
		Txs:   resp.TxResponses,
		Total: resp.Total,
	}, nil
}

// Close closes the underlying connection.
func (c *TxClient) Close() error {
	return c.conn.Close()
}
