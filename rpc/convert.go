package rpc

import (
	"github.com/Conflux-Chain/wasm-contract-indexer/types"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
)

// ConvertContractInfo converts the wasm contract info into a contract record.
//
// Optional fields missing from the response are left absent rather than null.
func ConvertContractInfo(info *wasmtypes.ContractInfo) types.ContractRecord {
	record := types.ContractRecord{
		CodeID:    info.CodeID,
		Creator:   info.Creator,
		Admin:     info.Admin,
		Label:     info.Label,
		IBCPortID: info.IBCPortID,
	}

	if info.Created != nil {
		record.Created = types.Some(types.AbsoluteTxPosition{
			BlockHeight: info.Created.BlockHeight,
			TxIndex:     info.Created.TxIndex,
		})
	}

	if info.Extension != nil {
		record.Extension = types.Some(types.Extension{
			TypeUrl: info.Extension.TypeUrl,
			Value:   types.Bytes(info.Extension.Value),
		})
	}

	return record
}
