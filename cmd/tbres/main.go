// main is the entry point for the tbres CLI.
package main

import (
	"github.com/inzamam-khan123/tbres/cmd"
	"github.com/inzamam-khan123/tbres/internal/contract"
	"github.com/inzamam-khan123/tbres/internal/history"
)

func main() {
	defer history.CloseStores()

	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
