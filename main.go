package main

import "github.com/Conflux-Chain/wasm-contract-indexer/cmd"

func main() {
	cmd.Execute()
}
