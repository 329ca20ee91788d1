package cmd

import (
	"context"

	viperUtil "github.com/Conflux-Chain/go-conflux-util/viper"
	"github.com/Conflux-Chain/wasm-contract-indexer/store"
	"github.com/sirupsen/logrus"
)

func fatalOnErr(err error, msg string, fields ...logrus.Fields) {
	if err == nil {
		return
	}

	logger := logrus.WithError(err)
	if len(fields) > 0 {
		logger = logger.WithFields(fields[0])
	}

	logger.Fatal(msg)
}

func mustLoadStoreConfig() store.Config {
	config := store.DefaultConfig()
	viperUtil.MustUnmarshalKey("store", &config)
	return config
}

// mustOpenStore opens the checkpoint store of given type, which overrides the configured type if specified.
func mustOpenStore(ctx context.Context, config store.Config, storeType ...string) store.Store {
	if len(storeType) > 0 && len(storeType[0]) > 0 {
		config.Type = storeType[0]
	}

	s, err := store.NewStore(ctx, config)
	fatalOnErr(err, "Failed to open checkpoint store", logrus.Fields{"type": config.Type})

	logrus.WithField("type", config.Type).Debug("Checkpoint store opened")

	return s
}
