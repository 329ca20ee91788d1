package resolve

import (
	"context"

	"github.com/Conflux-Chain/go-conflux-util/parallel"
	"github.com/sirupsen/logrus"
)

var _ parallel.Interface[Outcome] = (*resolveWorker)(nil)

// resolveWorker queries one address per task. Query failures are carried in outcomes rather than
// returned, so that a failed address never terminates the batch.
type resolveWorker struct {
	addresses []string
	pool      *connPool
	outcomes  []Outcome
}

func newResolveWorker(addresses []string, pool *connPool) *resolveWorker {
	return &resolveWorker{
		addresses: addresses,
		pool:      pool,
		outcomes:  make([]Outcome, 0, len(addresses)),
	}
}

// ParallelDo implements parallel.Interface.
func (w *resolveWorker) ParallelDo(ctx context.Context, routine, task int) (Outcome, error) {
	address := w.addresses[task]

	record, err := w.pool.get(routine).contractInfo(ctx, address)
	if err == nil && record == nil {
		err = ErrContractNotFound
	} else {
		err = classify(err)
	}

	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"address": address,
			"routine": routine,
			"task":    task,
		}).Debug("Failed to resolve contract")

		return Outcome{Address: address, Err: err}, nil
	}

	return Outcome{Address: address, Record: record}, nil
}

// ParallelCollect implements parallel.Interface.
func (w *resolveWorker) ParallelCollect(ctx context.Context, result *parallel.Result[Outcome]) error {
	w.outcomes = append(w.outcomes, result.Value)
	return result.Err
}
