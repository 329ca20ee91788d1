package rpc

import (
	"testing"

	"github.com/Conflux-Chain/wasm-contract-indexer/types"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/stretchr/testify/assert"
)

func TestConvertContractInfo(t *testing.T) {
	info := wasmtypes.ContractInfo{
		CodeID:    42,
		Creator:   "juno1creator",
		Admin:     "juno1admin",
		Label:     "cw20",
		IBCPortID: "wasm.juno1contract",
	}

	record := ConvertContractInfo(&info)
	assert.Equal(t, uint64(42), record.CodeID)
	assert.Equal(t, "juno1creator", record.Creator)
	assert.Equal(t, "juno1admin", record.Admin)
	assert.Equal(t, "cw20", record.Label)
	assert.Equal(t, "wasm.juno1contract", record.IBCPortID)
	assert.False(t, record.Created.IsSet())
	assert.False(t, record.Extension.IsSet())

	info.Created = &wasmtypes.AbsoluteTxPosition{BlockHeight: 100, TxIndex: 2}
	info.Extension = &codectypes.Any{TypeUrl: "/cosmos.gov.v1beta1.TextProposal", Value: []byte{1, 2, 3}}

	record = ConvertContractInfo(&info)

	created, ok := record.Created.Get()
	assert.True(t, ok)
	assert.Equal(t, types.AbsoluteTxPosition{BlockHeight: 100, TxIndex: 2}, created)

	extension, ok := record.Extension.Get()
	assert.True(t, ok)
	assert.Equal(t, "/cosmos.gov.v1beta1.TextProposal", extension.TypeUrl)
	assert.Equal(t, types.Bytes{1, 2, 3}, extension.Value)
}

func TestIsEmptyContractInfo(t *testing.T) {
	assert.True(t, isEmptyContractInfo(&wasmtypes.ContractInfo{}))
	assert.False(t, isEmptyContractInfo(&wasmtypes.ContractInfo{CodeID: 1}))
	assert.False(t, isEmptyContractInfo(&wasmtypes.ContractInfo{Creator: "juno1creator"}))
}
