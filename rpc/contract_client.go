package rpc

import (
	"context"
	"time"

	"github.com/Conflux-Chain/wasm-contract-indexer/types"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	"google.golang.org/grpc"
)

var _ ContractQuerier = (*ContractClient)(nil)

// ContractClient queries contract metadata via the wasm query service.
type ContractClient struct {
	conn         *grpc.ClientConn
	inner        wasmtypes.QueryClient
	queryTimeout time.Duration
}

// NewContractClient creates a wasm query client on an established connection, which is closed
// along with the client.
func NewContractClient(conn *grpc.ClientConn, queryTimeout time.Duration) *ContractClient {
	return &ContractClient{
		conn:         conn,
		inner:        wasmtypes.NewQueryClient(conn),
		queryTimeout: queryTimeout,
	}
}

// ContractInfo implements the ContractQuerier interface.
func (c *ContractClient) ContractInfo(ctx context.Context, address string) (*types.ContractRecord, error) {
	ctx, cancel := withTimeout(ctx, c.queryTimeout)
	defer cancel()

	start := time.Now()
	resp, err := c.inner.ContractInfo(ctx, &wasmtypes.QueryContractInfoRequest{Address: address})
	rpcMetrics.Latency("contractInfo", err == nil).UpdateSince(start)
	if err != nil {
		return nil, err
	}

	if resp == nil || isEmptyContractInfo(&resp.ContractInfo) {
		return nil, nil
	}

	record := ConvertContractInfo(&resp.ContractInfo)

	return &record, nil
}

// Close closes the underlying connection.
func (c *ContractClient) Close() error {
	return c.conn.Close()
}

func isEmptyContractInfo(info *wasmtypes.ContractInfo) bool {
	return info.CodeID == 0 && len(info.Creator) == 0
}
