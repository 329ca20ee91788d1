package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/Conflux-Chain/wasm-contract-indexer/types"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the checkpoint of contract discovery",
	Run:   status,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type checkpointStats struct {
	NextPage      uint64
	Records       int
	CodeIDs       []uint64
	WithCreated   int
	WithExtension int
	WithAdmin     int
	WithIBCPortID int
	NullCreated   int
	NullExtension int
	MemorySize    int
}

func newCheckpointStats(state *types.CheckpointState) checkpointStats {
	stats := checkpointStats{
		NextPage:   state.LastPage,
		Records:    state.Len(),
		MemorySize: types.SizeOf(state),
	}

	codeIDs := make(map[uint64]struct{})

	for _, v := range state.Data {
		codeIDs[v.CodeID] = struct{}{}

		if v.Created.IsNull() {
			stats.NullCreated++
		} else if v.Created.IsSet() {
			stats.WithCreated++
		}

		if v.Extension.IsNull() {
			stats.NullExtension++
		} else if v.Extension.IsSet() {
			stats.WithExtension++
		}

		if len(v.Admin) > 0 {
			stats.WithAdmin++
		}

		if len(v.IBCPortID) > 0 {
			stats.WithIBCPortID++
		}
	}

	for id := range codeIDs {
		stats.CodeIDs = append(stats.CodeIDs, id)
	}

	slices.Sort(stats.CodeIDs)

	return stats
}

func (stats checkpointStats) print(w io.Writer) {
	fmt.Fprintf(w, "Next page:       %v\n", stats.NextPage)
	fmt.Fprintf(w, "Contracts:       %v\n", stats.Records)
	fmt.Fprintf(w, "Code ids:        %v\n", len(stats.CodeIDs))
	fmt.Fprintf(w, "With admin:      %v\n", stats.WithAdmin)
	fmt.Fprintf(w, "With IBC port:   %v\n", stats.WithIBCPortID)
	fmt.Fprintf(w, "Created:         %v (null %v)\n", stats.WithCreated, stats.NullCreated)
	fmt.Fprintf(w, "Extension:       %v (null %v)\n", stats.WithExtension, stats.NullExtension)
	fmt.Fprintf(w, "Memory size:     %v bytes\n", stats.MemorySize)
}

func status(*cobra.Command, []string) {
	ctx := context.Background()

	checkpoints := mustOpenStore(ctx, mustLoadStoreConfig())
	defer checkpoints.Close()

	state, err := checkpoints.Load(ctx)
	fatalOnErr(err, "Failed to load checkpoint")

	newCheckpointStats(state).print(os.Stdout)
}
