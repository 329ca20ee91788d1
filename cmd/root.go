package cmd

import (
	"github.com/Conflux-Chain/go-conflux-util/config"
	"github.com/Conflux-Chain/go-conflux-util/log"
	"github.com/Conflux-Chain/wasm-contract-indexer/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "wasm-contract-indexer",
	Short: "Discover CosmWasm contract instantiations and resolve contract metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	cobra.OnInitialize(func() {
		config.MustInit("WCI")
	})

	log.BindFlags(rootCmd)

	storeConfig := store.DefaultConfig()

	rootCmd.PersistentFlags().String("store-type", storeConfig.Type, "Checkpoint store type, one of file, leveldb, redis and postgres")
	viper.BindPFlag("store.type", rootCmd.PersistentFlags().Lookup("store-type"))

	rootCmd.PersistentFlags().String("store-file", storeConfig.File.Path, "Checkpoint file path of file store")
	viper.BindPFlag("store.file.path", rootCmd.PersistentFlags().Lookup("store-file"))
}

// Execute is the command line entrypoint.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Fatal("Failed to execute command")
	}
}
