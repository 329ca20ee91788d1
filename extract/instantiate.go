package extract

import (
	"github.com/Conflux-Chain/wasm-contract-indexer/types"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	abci "github.com/cometbft/cometbft/abci/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ParseInstantiations extracts the instantiated contracts from the logs of a transaction.
//
// Each event of type "instantiate" yields exactly one mention. Missing attributes result in empty fields
// rather than errors, since the log format varies across chain versions. If there are duplicated
// attribute keys in an event, the last one wins.
//
// Transactions of chains that no longer populate logs (cosmos-sdk v0.50 and later) are parsed from the
// transaction level events instead.
func ParseInstantiations(tx *sdk.TxResponse) []types.ContractMention {
	if tx == nil {
		return nil
	}

	events := tx.Events
	if len(tx.Logs) > 0 {
		events = logEvents(tx.Logs)
	}

	var mentions []types.ContractMention

	for _, event := range events {
		if event.Type != wasmtypes.EventTypeInstantiate {
			continue
		}

		var mention mentionBuilder
		for _, attr := range event.Attributes {
			mention.apply(attr.Key, attr.Value)
		}

		mentions = append(mentions, mention.ContractMention)
	}

	parserMetrics.Mentions().Update(int64(len(mentions)))

	return mentions
}

// logEvents flattens the events of all messages in order. Events of the same type are not merged.
func logEvents(logs sdk.ABCIMessageLogs) []abci.Event {
	var events []abci.Event

	for _, log := range logs {
		for _, event := range log.Events {
			attrs := make([]abci.EventAttribute, 0, len(event.Attributes))
			for _, attr := range event.Attributes {
				attrs = append(attrs, abci.EventAttribute{Key: attr.Key, Value: attr.Value})
			}

			events = append(events, abci.Event{Type: event.Type, Attributes: attrs})
		}
	}

	return events
}

type mentionBuilder struct {
	types.ContractMention
}

func (b *mentionBuilder) apply(key, value string) {
	switch key {
	case wasmtypes.AttributeKeyContractAddr:
		b.ContractAddress = value
	case wasmtypes.AttributeKeyCodeID:
		b.CodeID = value
	}
}
