package rpc

import (
	"context"
	"io"

	"github.com/Conflux-Chain/wasm-contract-indexer/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// TxPage is a page of transactions matched by an event query.
type TxPage struct {
	Txs []*sdk.TxResponse

	// Total number of matched transactions across all pages.
	Total uint64
}

// TxQuerier queries transactions by event.
type TxQuerier interface {
	// QueryTxsByEvent returns the 0-based page of transactions that match the given query.
	QueryTxsByEvent(ctx context.Context, query string, page, limit uint64) (*TxPage, error)
}

// ContractQuerier queries the metadata of wasm contracts.
type ContractQuerier interface {
	io.Closer

	// ContractInfo returns the metadata of the given contract address. If not found, returns nil.
	ContractInfo(ctx context.Context, address string) (*types.ContractRecord, error)
}
