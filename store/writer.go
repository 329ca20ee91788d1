package store

import (
	"context"
	"time"

	"github.com/Conflux-Chain/go-conflux-util/ctxutil"
	"github.com/Conflux-Chain/go-conflux-util/health"
	"github.com/Conflux-Chain/wasm-contract-indexer/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var _ Store = (*Writer)(nil)

type WriteOption struct {
	RetryInterval time.Duration `default:"3s"`

	// Maximum number of retries before the write fails.
	MaxRetries int `default:"3"`

	Health health.TimedCounterConfig
}

// Writer saves checkpoints with a bounded number of retries.
type Writer struct {
	option WriteOption
	store  Store
	health *health.TimedCounter
}

func NewWriter(store Store, option WriteOption) *Writer {
	return &Writer{
		option: option,
		store:  store,
		health: health.NewTimedCounter(option.Health),
	}
}

// Load implements the Store interface.
func (writer *Writer) Load(ctx context.Context) (*types.CheckpointState, error) {
	return writer.store.Load(ctx)
}

// Save implements the Store interface. It returns error if all the retries failed or the context done.
func (writer *Writer) Save(ctx context.Context, state *types.CheckpointState) error {
	for retries := 0; ; retries++ {
		start := time.Now()
		err := writer.store.Save(ctx, state)

		writer.health.LogOnError(err, "Save checkpoint")

		if err == nil {
			storeMetrics.Save().UpdateSince(start)
			storeMetrics.LastPage().Update(int64(state.LastPage))

			logrus.WithFields(logrus.Fields{
				"page":    state.LastPage,
				"records": state.Len(),
			}).Debug("Succeeded to save checkpoint")

			return nil
		}

		if retries >= writer.option.MaxRetries {
			return errors.WithMessagef(err, "Failed to save checkpoint after %v retries", retries)
		}

		if err := ctxutil.Sleep(ctx, writer.option.RetryInterval); err != nil {
			return errors.WithMessage(err, "Failed to save checkpoint")
		}
	}
}

// Close implements the Store interface.
func (writer *Writer) Close() error {
	return writer.store.Close()
}
