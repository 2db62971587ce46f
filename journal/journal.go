// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package journal implements the index's crash-safe append-only record
// log (spec.md §4.6, C6): a sequence of framed "rec" messages, each
// holding a self-authenticating (hash, block) pair, that can rehydrate an
// Index on restart. It is grounded directly on
// original_source/lib/blkdb.c's blkdb_read/blkdb_read_rec/blkdb_add/
// blkdb_ser_rec.
package journal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/blkdaemon/blkdb/blockchain"
	"github.com/blkdaemon/blkdb/chainhash"
	"github.com/blkdaemon/blkdb/wire"
	"github.com/decred/slog"
	"golang.org/x/sys/unix"
)

// log is the package-level logger; see blockchain.UseLogger for the same
// convention applied here.
var log = slog.Disabled

// UseLogger sets the logger used by this package.
func UseLogger(logger slog.Logger) {
	log = logger
}

const recordCommand = "rec"

var (
	// ErrWriteFailed is returned by AppendRecord when the OS write call
	// fails or returns fewer bytes than the record's length (spec.md §7).
	// The caller's in-memory state is left untouched.
	ErrWriteFailed = errors.New("journal: short write")

	// ErrSyncFailed is returned by AppendRecord when sync-on-write is enabled
	// and the fdatasync call fails.
	ErrSyncFailed = errors.New("journal: fdatasync failed")

	// ErrHashMismatch is returned by Read when a record's recomputed
	// sha256d(header) does not equal its stored hash (spec.md §7). Replay
	// aborts at this record, preserving whatever was accumulated so far.
	ErrHashMismatch = errors.New("journal: record hash does not match recomputed block hash")
)

// Journal is the append-only record file backing an Index. It owns the
// underlying file descriptor exclusively while open (spec.md §5).
type Journal struct {
	file      *os.File
	netMagic  [4]byte
	syncWrite bool

	// lastCleanOffset mirrors wire.Reader's field of the same purpose: the
	// byte offset in the file immediately following the last record Read
	// replayed successfully. A caller may use it to truncate a torn tail.
	lastCleanOffset int64
}

// Open opens path for append (creating it if absent) without replaying
// it. Most callers want Read, which opens, replays into an index, and
// leaves the Journal ready for further appends; Open by itself is useful
// for tests and for writing a brand-new journal from scratch.
func Open(path string, netMagic [4]byte, syncOnWrite bool) (*Journal, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	return &Journal{file: f, netMagic: netMagic, syncWrite: syncOnWrite}, nil
}

// Close closes the underlying file descriptor. It is a no-op if j is nil
// or already closed.
func (j *Journal) Close() error {
	if j == nil || j.file == nil {
		return nil
	}
	err := j.file.Close()
	j.file = nil
	return err
}

// LastCleanOffset returns the offset of the last record Read replayed
// successfully.
func (j *Journal) LastCleanOffset() int64 {
	return j.lastCleanOffset
}

// recordPayload returns the serialized (hash, block) payload a "rec"
// message carries, mirroring the source's ser_blkinfo.
func recordPayload(hash chainhash.Hash, block wire.Block) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.Write(hash[:]); err != nil {
		return nil, err
	}
	if err := block.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// AppendRecord serializes (hash, block) as a framed "rec" message and
// writes it to the journal file, implementing blockchain.RecordAppender
// so an Index can be wired directly to a Journal via Index.AttachJournal.
// It performs the write before any caller-side mutation — spec.md §4.5
// step 1's ordering. A short write or a failed sync is reported as an
// error and nothing further is attempted for this record; any bytes a
// short write did put in the file stay there.
func (j *Journal) AppendRecord(hash chainhash.Hash, block wire.Block) error {
	payload, err := recordPayload(hash, block)
	if err != nil {
		return err
	}

	data := wire.MessageBytes(j.netMagic, recordCommand, payload)

	n, err := j.file.Write(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if n != len(data) {
		return fmt.Errorf("%w: wrote %d of %d bytes", ErrWriteFailed, n, len(data))
	}

	if j.syncWrite {
		if err := unix.Fdatasync(int(j.file.Fd())); err != nil {
			return fmt.Errorf("%w: %v", ErrSyncFailed, err)
		}
	}

	return nil
}

// Read opens path sequentially, replays every record it contains into
// idx by calling idx.Add (if idx already has a journal attached, each
// replayed record is appended to it again), and returns the opened
// Journal positioned for further appends. A final record cut short by the
// end of the file (a torn write) ends replay without an error: the file is
// truncated to the last clean offset. Any other failure within a record
// aborts the remaining replay and returns the error, preserving whatever
// state was connected up to that point — spec.md §4.6/§7.
func Read(path string, netMagic [4]byte, syncOnWrite bool, idx *blockchain.Index) (*Journal, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}

	j := &Journal{file: f, netMagic: netMagic, syncWrite: syncOnWrite}

	reader := wire.NewReader(f, netMagic)
	for {
		payload, err := wire.ReadRecordMessage(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			log.Warnf("journal: replay stopped at offset %d: %v", reader.LastCleanOffset(), err)
			j.lastCleanOffset = reader.LastCleanOffset()
			if errors.Is(err, wire.ErrTruncated) {
				// Torn final write: keep what replayed and truncate below.
				break
			}
			return j, fmt.Errorf("journal: replay: %w", err)
		}

		hash, block, err := decodeRecord(payload)
		if err != nil {
			return j, fmt.Errorf("journal: decode record: %w", err)
		}

		recomputed := block.BlockHash()
		if recomputed != hash {
			return j, fmt.Errorf("journal: record at offset %d: %w", j.lastCleanOffset, ErrHashMismatch)
		}

		node := blockchain.NewBlockInfo(block)
		if _, err := idx.Add(node); err != nil {
			return j, fmt.Errorf("journal: connect record at offset %d: %w", j.lastCleanOffset, err)
		}

		j.lastCleanOffset = reader.LastCleanOffset()
	}

	// Position the file for appends: since it was opened O_RDWR without
	// O_APPEND (so replay could use the same descriptor for both seqread
	// and later append), seek explicitly to the last clean offset rather
	// than trusting wherever the torn tail, if any, left the cursor.
	if _, err := f.Seek(j.lastCleanOffset, os.SEEK_SET); err != nil {
		return j, fmt.Errorf("journal: seek to last clean offset: %w", err)
	}
	if err := f.Truncate(j.lastCleanOffset); err != nil {
		return j, fmt.Errorf("journal: truncate torn tail: %w", err)
	}

	return j, nil
}

func decodeRecord(payload []byte) (chainhash.Hash, wire.Block, error) {
	r := bytes.NewReader(payload)

	var hash chainhash.Hash
	if _, err := io.ReadFull(r, hash[:]); err != nil {
		return chainhash.Hash{}, wire.Block{}, fmt.Errorf("journal: record hash: %w", err)
	}

	var block wire.Block
	if err := block.Deserialize(r); err != nil {
		return chainhash.Hash{}, wire.Block{}, err
	}

	return hash, block, nil
}
