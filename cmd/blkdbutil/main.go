// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command blkdbutil is a minimal operator CLI over the index/journal
// pair: it opens (creating if absent) a journal file, replays it into an
// in-memory Index, reports the resulting best-chain hash/height/work, and
// optionally appends one new block before exiting.
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blkdaemon/blkdb/blockchain"
	"github.com/blkdaemon/blkdb/chaincfg"
	"github.com/blkdaemon/blkdb/journal"
	"github.com/blkdaemon/blkdb/wire"
)

func netParams(name string) chaincfg.Params {
	switch name {
	case "testnet":
		return chaincfg.TestNetParams
	case "simnet":
		return chaincfg.SimNetParams
	default:
		return chaincfg.MainNetParams
	}
}

func run() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	if err := initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename)); err != nil {
		return fmt.Errorf("init log rotator: %w", err)
	}
	setLogLevels(cfg.Verbose)

	params := netParams(cfg.Network)

	idx := blockchain.NewIndex(params.Net, params.GenesisHash)

	j, err := journal.Read(cfg.JournalFile, params.Net, cfg.SyncWrite, idx)
	if err != nil {
		log.Warnf("journal replay ended early: %v", err)
	}
	defer j.Close()

	idx.AttachJournal(j)

	if idx.Len() == 0 {
		genesis := blockchain.NewBlockInfo(params.GenesisBlock)
		if _, err := idx.Add(genesis); err != nil {
			return fmt.Errorf("seed genesis: %w", err)
		}
	}

	if cfg.Append != "" {
		raw, err := hex.DecodeString(cfg.Append)
		if err != nil {
			return fmt.Errorf("decode --append payload: %w", err)
		}

		var blk wire.Block
		if err := blk.Deserialize(bytes.NewReader(raw)); err != nil {
			return fmt.Errorf("decode block: %w", err)
		}

		node := blockchain.NewBlockInfo(blk)
		delta, err := idx.Add(node)
		if err != nil {
			return fmt.Errorf("append block: %w", err)
		}
		if delta != nil {
			fmt.Printf("reorg: disconnected=%d connected=%d\n", delta.Disconnected, delta.Connected)
		}
	}

	best := idx.BestChain()
	fmt.Printf("network: %s\n", params.Name)
	fmt.Printf("blocks indexed: %d\n", idx.Len())
	fmt.Printf("best hash: %s\n", best.Hash)
	fmt.Printf("best height: %d\n", best.Height)
	var workBytes [32]byte
	best.Work.PutBytesLE(workBytes[:])
	fmt.Printf("best work: %x\n", workBytes)

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
