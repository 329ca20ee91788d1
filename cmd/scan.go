package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	viperUtil "github.com/Conflux-Chain/go-conflux-util/viper"
	"github.com/Conflux-Chain/wasm-contract-indexer/resolve"
	"github.com/Conflux-Chain/wasm-contract-indexer/rpc"
	"github.com/Conflux-Chain/wasm-contract-indexer/store"
	dataSync "github.com/Conflux-Chain/wasm-contract-indexer/sync"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan contract instantiations from the last checkpoint until no more transactions",
	Run:   scan,
}

func init() {
	scanCmd.Flags().String("tx-endpoint", "", "gRPC endpoint of the tx query service")
	viper.BindPFlag("tx.endpoint", scanCmd.Flag("tx-endpoint"))

	scanCmd.Flags().String("resolver-endpoint", "", "gRPC endpoint of the wasm query service, defaults to the tx endpoint")
	viper.BindPFlag("resolver.endpoint", scanCmd.Flag("resolver-endpoint"))

	scanCmd.Flags().Uint64("page-size", dataSync.DefaultConfig().PageSize, "Number of transactions per page")
	viper.BindPFlag("sync.pageSize", scanCmd.Flag("page-size"))

	rootCmd.AddCommand(scanCmd)
}

func scan(*cobra.Command, []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	txConfig := rpc.DefaultTxConfig()
	viperUtil.MustUnmarshalKey("tx", &txConfig)

	resolverConfig := resolve.DefaultConfig()
	viperUtil.MustUnmarshalKey("resolver", &resolverConfig)
	if len(resolverConfig.Endpoint) == 0 {
		resolverConfig.Endpoint = txConfig.Endpoint
	}

	syncConfig := dataSync.DefaultConfig()
	viperUtil.MustUnmarshalKey("sync", &syncConfig)

	storeConfig := mustLoadStoreConfig()

	// open checkpoint store
	checkpoints := mustOpenStore(ctx, storeConfig)
	defer checkpoints.Close()

	// connect to tx query service
	txClient, err := rpc.NewTxClient(ctx, txConfig)
	fatalOnErr(err, "Failed to create tx client", logrus.Fields{"endpoint": txConfig.Endpoint})
	defer txClient.Close()

	resolver, err := resolve.NewResolver(resolverConfig)
	fatalOnErr(err, "Failed to create metadata resolver")

	discovery, err := dataSync.NewDiscovery(syncConfig, txClient, resolver, store.NewWriter(checkpoints, storeConfig.Writer))
	fatalOnErr(err, "Failed to create contract discovery")

	summary, err := discovery.Run(ctx)
	fatalOnErr(err, "Failed to discover contracts", logrus.Fields{
		"startPage": summary.StartPage,
		"nextPage":  summary.NextPage,
	})

	logrus.WithFields(logrus.Fields{
		"startPage": summary.StartPage,
		"nextPage":  summary.NextPage,
		"pages":     summary.Pages,
		"txs":       summary.Txs,
		"mentions":  summary.Mentions,
		"resolved":  summary.Resolved,
		"failed":    summary.Failed,
	}).Info("Scan completed")
}
