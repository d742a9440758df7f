package main

import (
	"os"
	"path/filepath"

	svrcmd "github.com/cosmos/cosmos-sdk/server/cmd"
)

var defaultPooldHome string

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	defaultPooldHome = filepath.Join(home, ".poold")
}

func main() {
	rootCmd := newRootCmd()
	if err := svrcmd.Execute(rootCmd, "POOLD", defaultPooldHome); err != nil {
		os.Exit(1)
	}
}
