// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/blkdaemon/blkdb/chainhash"
)

// CADDR_TIME_VERSION is the protocol version at and after which an Address
// carries an nTime field.
const CADDR_TIME_VERSION = 31402

var littleEndian = binary.LittleEndian
var bigEndian = binary.BigEndian

// No buffer free list is kept; reads/writes in this package work directly
// against small stack buffers since messages here are never large enough
// to justify a pool (the densest caller, block deserialization, already
// amortizes its own buffer across an entire transaction list).

// readElement reads a single fixed-width wire primitive into element,
// dispatching on its concrete type. It is the decode half of the
// readElements/writeElements pair that every core type's deserializer is
// built from.
func readElement(r io.Reader, element interface{}) error {
	var buf [8]byte

	switch e := element.(type) {
	case *uint8:
		if _, err := io.ReadFull(r, buf[:1]); err != nil {
			return newReadError("uint8", err)
		}
		*e = buf[0]
		return nil

	case *uint16:
		if _, err := io.ReadFull(r, buf[:2]); err != nil {
			return newReadError("uint16", err)
		}
		*e = littleEndian.Uint16(buf[:2])
		return nil

	case *uint16be:
		if _, err := io.ReadFull(r, buf[:2]); err != nil {
			return newReadError("uint16be", err)
		}
		*e = uint16be(bigEndian.Uint16(buf[:2]))
		return nil

	case *int32:
		if _, err := io.ReadFull(r, buf[:4]); err != nil {
			return newReadError("int32", err)
		}
		*e = int32(littleEndian.Uint32(buf[:4]))
		return nil

	case *uint32:
		if _, err := io.ReadFull(r, buf[:4]); err != nil {
			return newReadError("uint32", err)
		}
		*e = littleEndian.Uint32(buf[:4])
		return nil

	case *int64:
		if _, err := io.ReadFull(r, buf[:8]); err != nil {
			return newReadError("int64", err)
		}
		*e = int64(littleEndian.Uint64(buf[:8]))
		return nil

	case *uint64:
		if _, err := io.ReadFull(r, buf[:8]); err != nil {
			return newReadError("uint64", err)
		}
		*e = littleEndian.Uint64(buf[:8])
		return nil

	case *chainhash.Hash:
		var tmp chainhash.Hash
		if _, err := io.ReadFull(r, tmp[:]); err != nil {
			return newReadError("chainhash.Hash", err)
		}
		*e = tmp
		return nil

	case *[16]byte:
		var tmp [16]byte
		if _, err := io.ReadFull(r, tmp[:]); err != nil {
			return newReadError("[16]byte", err)
		}
		*e = tmp
		return nil
	}

	return fmt.Errorf("wire: readElement called with unhandled type %T", element)
}

// writeElement is the encode half of readElement.
func writeElement(w io.Writer, element interface{}) error {
	var buf [8]byte

	switch e := element.(type) {
	case uint8:
		buf[0] = e
		_, err := w.Write(buf[:1])
		return err

	case uint16:
		littleEndian.PutUint16(buf[:2], e)
		_, err := w.Write(buf[:2])
		return err

	case uint16be:
		bigEndian.PutUint16(buf[:2], uint16(e))
		_, err := w.Write(buf[:2])
		return err

	case int32:
		littleEndian.PutUint32(buf[:4], uint32(e))
		_, err := w.Write(buf[:4])
		return err

	case uint32:
		littleEndian.PutUint32(buf[:4], e)
		_, err := w.Write(buf[:4])
		return err

	case int64:
		littleEndian.PutUint64(buf[:8], uint64(e))
		_, err := w.Write(buf[:8])
		return err

	case uint64:
		littleEndian.PutUint64(buf[:8], e)
		_, err := w.Write(buf[:8])
		return err

	case chainhash.Hash:
		_, err := w.Write(e[:])
		return err

	case [16]byte:
		_, err := w.Write(e[:])
		return err
	}

	return fmt.Errorf("wire: writeElement called with unhandled type %T", element)
}

// readElements reads multiple primitives, short-circuiting on the first
// error. It generalizes the teacher's readBlockHeader-style field-by-field
// dispatch to an arbitrary field list.
func readElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		if err := readElement(r, element); err != nil {
			return err
		}
	}
	return nil
}

// writeElements is the encode half of readElements.
func writeElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		if err := writeElement(w, element); err != nil {
			return err
		}
	}
	return nil
}

// uint16be is a uint16 that readElement/writeElement encode big-endian.
// Address.Port is the sole field in this codec using it.
type uint16be uint16

// ReadVarInt reads a variable-length integer using the P2P convention:
// values below 0xfd are a single byte; 0xfd/0xfe/0xff prefix a following
// 2/4/8-byte little-endian value.
func ReadVarInt(r io.Reader) (uint64, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, newReadError("varint discriminant", err)
	}

	switch b[0] {
	case 0xff:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, newReadError("varint(8)", err)
		}
		return littleEndian.Uint64(buf[:]), nil

	case 0xfe:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, newReadError("varint(4)", err)
		}
		return uint64(littleEndian.Uint32(buf[:])), nil

	case 0xfd:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, newReadError("varint(2)", err)
		}
		return uint64(littleEndian.Uint16(buf[:])), nil

	default:
		return uint64(b[0]), nil
	}
}

// WriteVarInt writes val using the shortest encoding the P2P convention
// permits for its magnitude.
func WriteVarInt(w io.Writer, val uint64) error {
	switch {
	case val < 0xfd:
		_, err := w.Write([]byte{byte(val)})
		return err

	case val <= 0xffff:
		buf := make([]byte, 3)
		buf[0] = 0xfd
		littleEndian.PutUint16(buf[1:], uint16(val))
		_, err := w.Write(buf)
		return err

	case val <= 0xffffffff:
		buf := make([]byte, 5)
		buf[0] = 0xfe
		littleEndian.PutUint32(buf[1:], uint32(val))
		_, err := w.Write(buf)
		return err

	default:
		buf := make([]byte, 9)
		buf[0] = 0xff
		littleEndian.PutUint64(buf[1:], val)
		_, err := w.Write(buf)
		return err
	}
}

// VarIntSerializeSize returns the number of bytes WriteVarInt would write
// for val. Exercised by the codec boundary property in the test suite
// (1/1/3/3/5/5 bytes for {0, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff}).
func VarIntSerializeSize(val uint64) int {
	switch {
	case val < 0xfd:
		return 1
	case val <= 0xffff:
		return 3
	case val <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// ReadVarBytes reads a varint length prefix followed by that many raw
// bytes — the "varstr" framing spec.md §4.1 describes. maxAllowed guards
// against a corrupt or adversarial length prefix driving an enormous
// allocation; callers pass the maximum plausible size for the field being
// decoded (e.g. a script or a whole block payload).
func ReadVarBytes(r io.Reader, maxAllowed uint64, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxAllowed {
		return nil, fmt.Errorf("%s: %w (%d > max %d)", fieldName, ErrTruncated, count, maxAllowed)
	}

	b := make([]byte, count)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, newReadError(fieldName, err)
	}
	return b, nil
}

// WriteVarBytes writes b as a varint length prefix followed by its bytes.
func WriteVarBytes(w io.Writer, b []byte) error {
	if err := WriteVarInt(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}
