// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// terry converts natural language into tracker tickets and guarantees
// no ticket is lost while the tracker is down.
package main

import (
	"fmt"
	"os"

	"github.com/mesh-intelligence/terry/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
