package cmd

import (
	"context"

	"github.com/Conflux-Chain/wasm-contract-indexer/store"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	migrateCmdArgs struct {
		from  string
		to    string
		force bool
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Copy the checkpoint from one store to another, e.g. import cached_data.json into LevelDB",
		Run:   migrate,
	}
)

func init() {
	migrateCmd.Flags().StringVar(&migrateCmdArgs.from, "from", store.TypeFile, "Source store type")
	migrateCmd.Flags().StringVar(&migrateCmdArgs.to, "to", "", "Target store type")
	migrateCmd.Flags().BoolVar(&migrateCmdArgs.force, "force", false, "Overwrite the existing checkpoint in target store")
	migrateCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(migrateCmd)
}

func migrate(*cobra.Command, []string) {
	if migrateCmdArgs.from == migrateCmdArgs.to {
		logrus.WithField("type", migrateCmdArgs.from).Fatal("Source and target stores are the same")
	}

	ctx := context.Background()
	config := mustLoadStoreConfig()

	source := mustOpenStore(ctx, config, migrateCmdArgs.from)
	defer source.Close()

	target := mustOpenStore(ctx, config, migrateCmdArgs.to)
	defer target.Close()

	err := migrateCheckpoint(ctx, source, store.NewWriter(target, config.Writer), migrateCmdArgs.force)
	fatalOnErr(err, "Failed to migrate checkpoint", logrus.Fields{
		"from": migrateCmdArgs.from,
		"to":   migrateCmdArgs.to,
	})
}

func migrateCheckpoint(ctx context.Context, source, target store.Store, force bool) error {
	state, err := source.Load(ctx)
	if err != nil {
		return errors.WithMessage(err, "Failed to load source checkpoint")
	}

	existing, err := target.Load(ctx)
	if err != nil {
		return errors.WithMessage(err, "Failed to load target checkpoint")
	}

	if !force && (existing.LastPage > 0 || existing.Len() > 0) {
		return errors.Errorf("Target checkpoint already exists, page = %v, records = %v", existing.LastPage, existing.Len())
	}

	if err = target.Save(ctx, state); err != nil {
		return errors.WithMessage(err, "Failed to save target checkpoint")
	}

	logrus.WithFields(logrus.Fields{
		"page":    state.LastPage,
		"records": state.Len(),
	}).Info("Checkpoint migrated")

	return nil
}
