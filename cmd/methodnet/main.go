package main

import (
	"fmt"
	"os"

	"github.com/ackbas/methodnet/cmd/methodnet/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "methodnet: %v\n", err)
		os.Exit(1)
	}
}
