package types

// ContractMention is a contract reference extracted from the logs of an instantiation transaction,
// which is not resolved yet.
type ContractMention struct {
	ContractAddress string `json:"contract_address"`
	CodeID          string `json:"code_id"`
}

// AbsoluteTxPosition is the block height and in-block transaction index at which a contract was created.
type AbsoluteTxPosition struct {
	BlockHeight uint64 `json:"block_height"`
	TxIndex     uint64 `json:"tx_index"`
}

// Extension is a contract extension payload, which is a type url along with the encoded value.
type Extension struct {
	TypeUrl string `json:"type_url"`
	Value   Bytes  `json:"value"`
}

// ContractRecord is the resolved metadata of a contract.
type ContractRecord struct {
	CodeID    uint64                       `json:"code_id"`
	Creator   string                       `json:"creator"`
	Admin     string                       `json:"admin"`
	Label     string                       `json:"label"`
	Created   Nullable[AbsoluteTxPosition] `json:"created,omitzero"`
	IBCPortID string                       `json:"ibc_port_id"`
	Extension Nullable[Extension]          `json:"extension,omitzero"`
}
