package main

import (
	"os"

	"github.com/natindo/ParcelBot/cmd/ParcelBot/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
