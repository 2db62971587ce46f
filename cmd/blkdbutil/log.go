// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/blkdaemon/blkdb/blockchain"
	"github.com/blkdaemon/blkdb/journal"
	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// logRotator rotates the log file the backend writes to, the same
// logWriter/rotator pairing the teacher's own log.go sets up.
var logRotator *rotator.Rotator

// logWriter implements io.Writer and plugs the rotator in as the
// destination for a slog.Backend, mirroring the teacher's own logWriter.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	logRotator.Write(p)
	return len(p), nil
}

// backend is the shared slog backend every package-level logger is
// derived from.
var backend = slog.NewBackend(logWriter{})

var log = backend.Logger("UTIL")

// initLogRotator initializes the logging rotator to write logs to
// logFile and create roll files in the same directory. It must be called
// before the package-level log rotator is used.
func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return err
	}

	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return err
	}
	logRotator = r
	return nil
}

// setLogLevels wires the shared backend into every package that exposes
// a UseLogger hook, and applies the requested level uniformly — the same
// pattern the teacher's own setLogLevels applies across its much longer
// subsystem list.
func setLogLevels(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	log.SetLevel(level)

	blockchainLog := backend.Logger("BLKC")
	blockchainLog.SetLevel(level)
	blockchain.UseLogger(blockchainLog)

	journalLog := backend.Logger("JRNL")
	journalLog.SetLevel(level)
	journal.UseLogger(journalLog)
}
