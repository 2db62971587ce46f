// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "blkdbutil.conf"
	defaultJournalFile    = "journal.dat"
	defaultNetwork        = "mainnet"
	defaultLogFilename    = "blkdbutil.log"
)

var (
	defaultHomeDir   = appDataDir("blkdbutil", false)
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFilename)
	defaultJournalDir = defaultHomeDir
	defaultLogDir     = filepath.Join(defaultHomeDir, "logs")
)

// config defines the configuration options for blkdbutil, following the
// teacher's own config.go convention: a struct of go-flags-tagged fields,
// parsed first from an ini file (if present) and then from the command
// line, command-line flags taking precedence.
type config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	HomeDir    string `short:"A" long:"appdata" description:"Application data directory"`

	JournalFile string `long:"journal" description:"Path to the journal file to open or create"`
	Network     string `long:"network" description:"Network to use {mainnet, testnet, simnet}"`
	SyncWrite   bool   `long:"syncwrite" description:"fdatasync the journal file after every append"`

	LogDir     string `long:"logdir" description:"Directory to log output"`
	Verbose    bool   `short:"v" long:"verbose" description:"Enable verbose (debug-level) logging"`

	Append string `long:"append" description:"Hex-encoded block to append to the journal, then exit"`
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it. It mirrors the
// teacher's own cleanAndExpandPath helper in config.go exactly.
func cleanAndExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir := filepath.Dir(defaultHomeDir)
		path = filepath.Join(homeDir, path[1:])
	}

	return filepath.Clean(os.ExpandEnv(path))
}

// loadConfig parses os.Args (and, if present, a config file) into a
// config, applying defaults for anything left unset. This is a much
// thinner version of the teacher's own loadConfig: no net-params
// plumbing beyond selecting one of chaincfg's three Params by name, no
// peer/RPC options, since none of those subsystems exist in this module.
func loadConfig() (*config, []string, error) {
	cfg := config{
		HomeDir:     defaultHomeDir,
		ConfigFile:  defaultConfigFile,
		JournalFile: filepath.Join(defaultJournalDir, defaultJournalFile),
		Network:     defaultNetwork,
		LogDir:      defaultLogDir,
	}

	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.HelpFlag|flags.PassDoubleDash)
	_, err := preParser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
	}

	if preCfg.ConfigFile != defaultConfigFile {
		cfg.ConfigFile = cleanAndExpandPath(preCfg.ConfigFile)
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := os.Stat(cfg.ConfigFile); err == nil {
		if err := flags.NewIniParser(parser).ParseFile(cfg.ConfigFile); err != nil {
			if _, ok := err.(*os.PathError); !ok {
				return nil, nil, fmt.Errorf("error parsing config file: %w", err)
			}
		}
	}

	remainingArgs, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, nil, err
	}

	cfg.HomeDir = cleanAndExpandPath(cfg.HomeDir)
	cfg.JournalFile = cleanAndExpandPath(cfg.JournalFile)
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)

	switch cfg.Network {
	case "mainnet", "testnet", "simnet":
	default:
		return nil, nil, fmt.Errorf("unknown network %q", cfg.Network)
	}

	return &cfg, remainingArgs, nil
}
