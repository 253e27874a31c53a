package main

import (
	"os"

	"funnelzip-demo/cmd/democtl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
