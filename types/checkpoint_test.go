package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func createTestRecords() []ContractRecord {
	return []ContractRecord{
		{
			// optional fields absent
			CodeID:  1,
			Creator: "juno1creator",
			Label:   "absent",
		},
		{
			// optional fields present but empty
			CodeID:    2,
			Creator:   "juno1creator",
			Admin:     "juno1admin",
			Label:     "null",
			Created:   Null[AbsoluteTxPosition](),
			Extension: Null[Extension](),
		},
		{
			// optional fields fully populated
			CodeID:    3,
			Creator:   "juno1creator",
			Admin:     "juno1admin",
			Label:     "populated",
			Created:   Some(AbsoluteTxPosition{BlockHeight: 4567, TxIndex: 2}),
			IBCPortID: "wasm.juno1contract",
			Extension: Some(Extension{TypeUrl: "/cosmos.gov.v1beta1.TextProposal", Value: Bytes{10, 3, 'a', 'b', 'c'}}),
		},
	}
}

func TestCheckpointStateRoundTrip(t *testing.T) {
	state := NewCheckpointState()
	assert.Nil(t, state.Advance(3, createTestRecords()...))

	encoded, err := json.Marshal(state)
	assert.Nil(t, err)

	var raw struct {
		LastPage uint64                       `json:"last_page"`
		Data     []map[string]json.RawMessage `json:"data"`
	}
	assert.Nil(t, json.Unmarshal(encoded, &raw))
	assert.Equal(t, uint64(3), raw.LastPage)
	assert.Len(t, raw.Data, 3)

	// absent
	assert.NotContains(t, raw.Data[0], "created")
	assert.NotContains(t, raw.Data[0], "extension")

	// present but null
	assert.Equal(t, "null", string(raw.Data[1]["created"]))
	assert.Equal(t, "null", string(raw.Data[1]["extension"]))

	// populated
	assert.JSONEq(t, `{"block_height":4567,"tx_index":2}`, string(raw.Data[2]["created"]))
	assert.JSONEq(t, `{"type_url":"/cosmos.gov.v1beta1.TextProposal","value":[10,3,97,98,99]}`, string(raw.Data[2]["extension"]))

	var decoded CheckpointState
	assert.Nil(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, *state, decoded)
}

func TestCheckpointStateAdvance(t *testing.T) {
	state := NewCheckpointState()
	assert.Equal(t, uint64(0), state.LastPage)
	assert.Equal(t, 0, state.Len())

	records := createTestRecords()

	assert.Nil(t, state.Advance(1, records[0]))
	assert.Nil(t, state.Advance(2))
	assert.Nil(t, state.Advance(3, records[1:]...))
	assert.Equal(t, uint64(3), state.LastPage)
	assert.Equal(t, records, state.Data)

	// cannot stay or move backwards
	assert.Error(t, state.Advance(3, records[0]))
	assert.Error(t, state.Advance(1))
	assert.Equal(t, uint64(3), state.LastPage)
	assert.Equal(t, 3, state.Len())
}

func TestCheckpointStateNormalize(t *testing.T) {
	var state CheckpointState
	assert.Nil(t, json.Unmarshal([]byte(`{"last_page":5,"data":null}`), &state))
	assert.Nil(t, state.Data)

	state.Normalize()
	assert.NotNil(t, state.Data)
	assert.Equal(t, uint64(5), state.LastPage)
}
