package main

import (
	"os"

	"github.com/woozymasta/texview/cmd/texview/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
