package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/Conflux-Chain/wasm-contract-indexer/extract"
	"github.com/Conflux-Chain/wasm-contract-indexer/resolve"
	"github.com/Conflux-Chain/wasm-contract-indexer/rpc"
	"github.com/Conflux-Chain/wasm-contract-indexer/store"
	"github.com/Conflux-Chain/wasm-contract-indexer/types"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// InstantiateQuery is the event query that matches all contract instantiation transactions.
var InstantiateQuery = fmt.Sprintf("message.action='%v'", sdk.MsgTypeURL(&wasmtypes.MsgInstantiateContract{}))

type Config struct {
	// Number of transactions to query for each page
	PageSize uint64 `default:"100"`
}

func DefaultConfig() (config Config) {
	defaults.SetDefaults(&config)
	return
}

// MetadataResolver resolves contract metadata in batch.
type MetadataResolver interface {
	// Resolve returns exactly one outcome for each of the given addresses.
	Resolve(ctx context.Context, addresses []string) []resolve.Outcome
}

// Summary is the statistics of a discovery run.
type Summary struct {
	StartPage uint64
	NextPage  uint64
	Pages     int
	Txs       int
	Mentions  int
	Resolved  int
	Failed    int
}

// Discovery scans contract instantiation transactions page by page, resolves the instantiated
// contracts and saves a checkpoint after each page, so that a new run resumes from the page
// next to the last saved one.
type Discovery struct {
	config   Config
	txs      rpc.TxQuerier
	resolver MetadataResolver
	store    store.Store
}

func NewDiscovery(config Config, txs rpc.TxQuerier, resolver MetadataResolver, store store.Store) (*Discovery, error) {
	if config.PageSize == 0 {
		return nil, errors.New("page size should be greater than 0")
	}

	return &Discovery{
		config:   config,
		txs:      txs,
		resolver: resolver,
		store:    store,
	}, nil
}

// Run scans pages from the last checkpoint until a page has no transaction or all pages scanned.
//
// Any error to query transactions or access checkpoint aborts the run, in which case the last saved
// checkpoint is still valid to resume from.
func (d *Discovery) Run(ctx context.Context) (Summary, error) {
	state, err := d.store.Load(ctx)
	if err != nil {
		return Summary{}, errors.WithMessage(err, "Failed to load checkpoint")
	}

	summary := Summary{StartPage: state.LastPage, NextPage: state.LastPage}

	logrus.WithFields(logrus.Fields{
		"page":    state.LastPage,
		"records": state.Len(),
	}).Info("Start to discover contracts")

	for {
		done, err := d.discoverOnce(ctx, state, &summary)
		if err != nil {
			return summary, err
		}

		if done {
			break
		}
	}

	logrus.WithFields(logrus.Fields{
		"pages":    summary.Pages,
		"nextPage": summary.NextPage,
		"resolved": summary.Resolved,
		"failed":   summary.Failed,
		"records":  state.Len(),
	}).Info("Contract discovery completed")

	return summary, nil
}

// discoverOnce processes the page of checkpoint, and returns true if no more page to process.
func (d *Discovery) discoverOnce(ctx context.Context, state *types.CheckpointState, summary *Summary) (bool, error) {
	start := time.Now()
	currentPage := state.LastPage

	page, err := d.txs.QueryTxsByEvent(ctx, InstantiateQuery, currentPage, d.config.PageSize)
	if err != nil {
		return false, errors.WithMessagef(err, "Failed to query instantiation txs of page %v", currentPage)
	}

	if len(page.Txs) == 0 {
		logrus.WithField("page", currentPage).Info("No more instantiation txs to process")
		return true, nil
	}

	currentPage++
	totalPages := (page.Total + d.config.PageSize - 1) / d.config.PageSize

	var addresses []string
	for _, tx := range page.Txs {
		for _, mention := range extract.ParseInstantiations(tx) {
			addresses = append(addresses, mention.ContractAddress)
		}
	}

	outcomes := d.resolver.Resolve(ctx, addresses)

	// an interrupted batch leaves the checkpoint at the current page
	if err = ctx.Err(); err != nil {
		return false, errors.WithMessagef(err, "Discovery interrupted at page %v", state.LastPage)
	}

	records := make([]types.ContractRecord, 0, len(outcomes))
	for _, v := range outcomes {
		if v.Err == nil && v.Record == nil {
			v.Err = resolve.ErrContractNotFound
		}

		if v.Err != nil {
			logrus.WithError(v.Err).WithFields(logrus.Fields{
				"page":    currentPage,
				"address": v.Address,
				"kind":    resolve.Kind(v.Err),
			}).Warn("Failed to resolve contract")
			continue
		}

		records = append(records, *v.Record)
	}

	if err = state.Advance(currentPage, records...); err != nil {
		return false, err
	}

	if err = d.store.Save(ctx, state); err != nil {
		return false, errors.WithMessagef(err, "Failed to save checkpoint of page %v", currentPage)
	}

	summary.NextPage = currentPage
	summary.Pages++
	summary.Txs += len(page.Txs)
	summary.Mentions += len(addresses)
	summary.Resolved += len(records)
	summary.Failed += len(outcomes) - len(records)

	syncMetrics.Page().UpdateSince(start)
	syncMetrics.LastPage().Update(int64(currentPage))
	syncMetrics.CheckpointSize().Update(int64(types.SizeOf(state)))

	logrus.WithFields(logrus.Fields{
		"page":       currentPage,
		"totalPages": totalPages,
		"txs":        len(page.Txs),
		"mentions":   len(addresses),
		"resolved":   len(records),
		"failed":     len(outcomes) - len(records),
		"records":    state.Len(),
	}).Info("Page processed")

	return currentPage >= totalPages, nil
}
