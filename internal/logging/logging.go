// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package logging provides the process-wide diagnostic logger: plain
// prefixed lines on stderr, gated by verbosity, with an optional file
// sink that always receives every line.
package logging

import (
	"fmt"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	verbose bool
	sink    *os.File
)

// SetVerbose enables or disables stderr output. The file sink is
// unaffected.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// OpenSink starts appending every log line to the file at path.
func OpenSink(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log sink: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if sink != nil {
		sink.Close()
	}
	sink = f
	return nil
}

// CloseSink stops file logging.
func CloseSink() {
	mu.Lock()
	defer mu.Unlock()
	if sink != nil {
		sink.Close()
		sink = nil
	}
}

// Logf writes one diagnostic line. Lines go to stderr when verbose is
// set and to the sink when one is open.
func Logf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	line := fmt.Sprintf("terry: "+format+"\n", args...)
	if verbose {
		fmt.Fprint(os.Stderr, line)
	}
	if sink != nil {
		fmt.Fprintf(sink, "%s %s", time.Now().Format("2006-01-02 15:04:05"), line)
	}
}
