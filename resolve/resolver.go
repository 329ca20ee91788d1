package resolve

import (
	"context"
	"sync"
	"time"

	"github.com/Conflux-Chain/go-conflux-util/parallel"
	"github.com/Conflux-Chain/wasm-contract-indexer/rpc"
	"github.com/Conflux-Chain/wasm-contract-indexer/types"
	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config holds the configurations to resolve contract metadata.
type Config struct {
	// gRPC endpoint of the wasm query service.
	Endpoint string

	// Number of connections dialed for each batch. Queries on the same connection are serialized.
	Connections int `default:"1"`

	// Number of concurrent query routines.
	Routines int `default:"8"`

	// Maximum number of outcomes buffered to be collected in order.
	Window int `default:"64"`

	DialTimeout  time.Duration `default:"10s"`
	QueryTimeout time.Duration
}

func DefaultConfig() (config Config) {
	defaults.SetDefaults(&config)
	return
}

// Outcome is the resolution result of a contract address. Either Record or Err is set.
type Outcome struct {
	Address string
	Record  *types.ContractRecord
	Err     error
}

// Connector dials a new connection to the wasm query service.
type Connector func(ctx context.Context) (rpc.ContractQuerier, error)

// NewGrpcConnector returns a connector to dial the configured gRPC endpoint.
func NewGrpcConnector(config Config) Connector {
	return func(ctx context.Context) (rpc.ContractQuerier, error) {
		conn, err := rpc.Dial(ctx, config.Endpoint, config.DialTimeout)
		if err != nil {
			return nil, err
		}

		return rpc.NewContractClient(conn, config.QueryTimeout), nil
	}
}

// Resolver resolves contract metadata in batch.
type Resolver struct {
	config  Config
	connect Connector
}

// NewResolver creates a resolver that queries the configured gRPC endpoint.
func NewResolver(config Config) (*Resolver, error) {
	if len(config.Endpoint) == 0 {
		return nil, errors.New("no resolver endpoint provided")
	}

	return NewResolverWithConnector(config, NewGrpcConnector(config)), nil
}

// NewResolverWithConnector creates a resolver with the given connector.
func NewResolverWithConnector(config Config, connect Connector) *Resolver {
	config.Connections = max(config.Connections, 1)
	config.Routines = max(config.Routines, 1)
	config.Window = max(config.Window, config.Routines)

	return &Resolver{
		config:  config,
		connect: connect,
	}
}

// Resolve queries the metadata of all the given addresses, and returns exactly one outcome for each
// address in the same order. Duplicated addresses are queried independently, and failures are never
// retried.
//
// If the metadata service cannot be connected, all addresses fail with the same ErrConnection error.
func (r *Resolver) Resolve(ctx context.Context, addresses []string) []Outcome {
	if len(addresses) == 0 {
		return []Outcome{}
	}

	start := time.Now()
	defer resolverMetrics.Batch().UpdateSince(start)

	pool, err := r.dial(ctx)
	if err != nil {
		logrus.WithError(err).WithField("addresses", len(addresses)).Warn("Failed to connect to metadata service")
		return failAll(addresses, tagError(ErrConnection, err))
	}
	defer pool.close()

	worker := newResolveWorker(addresses, pool)

	option := parallel.SerialOption{
		Routines: min(r.config.Routines, len(addresses)),
		Window:   r.config.Window,
	}

	if err := parallel.Serial(ctx, worker, len(addresses), option); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"addresses": len(addresses),
			"collected": len(worker.outcomes),
		}).Warn("Resolution of contract batch interrupted")
	}

	// interrupted tasks fail with the cause, so that every address is accounted for
	for i := len(worker.outcomes); i < len(addresses); i++ {
		cause := ctx.Err()
		if cause == nil {
			cause = errors.New("resolution interrupted")
		}

		worker.outcomes = append(worker.outcomes, Outcome{
			Address: addresses[i],
			Err:     tagError(ErrTransport, cause),
		})
	}

	updateOutcomeMetrics(worker.outcomes)

	return worker.outcomes
}

// dial connects all pooled connections, and fails if any one fails.
func (r *Resolver) dial(ctx context.Context) (*connPool, error) {
	pool := &connPool{}

	for i := 0; i < r.config.Connections; i++ {
		querier, err := r.connect(ctx)
		if err != nil {
			pool.close()
			return nil, err
		}

		pool.conns = append(pool.conns, &lockedQuerier{querier: querier})
	}

	return pool, nil
}

func failAll(addresses []string, err error) []Outcome {
	outcomes := make([]Outcome, 0, len(addresses))

	for _, addr := range addresses {
		outcomes = append(outcomes, Outcome{Address: addr, Err: err})
	}

	updateOutcomeMetrics(outcomes)

	return outcomes
}

func updateOutcomeMetrics(outcomes []Outcome) {
	counts := make(map[string]int64)
	for _, outcome := range outcomes {
		counts[Kind(outcome.Err)]++
	}

	for kind, count := range counts {
		resolverMetrics.Outcomes(kind).Update(count)
	}
}

// lockedQuerier allows only one query in flight at a time.
type lockedQuerier struct {
	mu      sync.Mutex
	querier rpc.ContractQuerier
}

func (q *lockedQuerier) contractInfo(ctx context.Context, address string) (*types.ContractRecord, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.querier.ContractInfo(ctx, address)
}

type connPool struct {
	conns []*lockedQuerier
}

// get returns the connection of the given routine.
func (p *connPool) get(routine int) *lockedQuerier {
	return p.conns[routine%len(p.conns)]
}

func (p *connPool) close() {
	for _, conn := range p.conns {
		if err := conn.querier.Close(); err != nil {
			logrus.WithError(err).Debug("Failed to close metadata service connection")
		}
	}
}
