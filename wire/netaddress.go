// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// Address is a peer network address, as carried in addr messages. Per
// spec.md §3, nTime is only present on the wire when the negotiated
// protocol version is at least CADDR_TIME_VERSION, Port is encoded
// big-endian unlike every other integer field in the codec, and IP is
// always carried in its 16-byte (IPv4-mapped IPv6) form.
type Address struct {
	NTime     uint32
	NServices uint64
	IP        [16]byte
	Port      uint16
}

// BtcDecode decodes r, which holds the bytes of an Address encoded with
// protocol version pver, into addr.
func (addr *Address) BtcDecode(r io.Reader, pver uint32) error {
	var nTime uint32
	if pver >= CADDR_TIME_VERSION {
		if err := readElement(r, &nTime); err != nil {
			return err
		}
	}

	var nServices uint64
	var ip [16]byte
	var port uint16be
	if err := readElements(r, &nServices, &ip); err != nil {
		return err
	}
	if err := readElement(r, &port); err != nil {
		return err
	}

	addr.NTime = nTime
	addr.NServices = nServices
	addr.IP = ip
	addr.Port = uint16(port)
	return nil
}

// BtcEncode encodes addr into w using protocol version pver.
func (addr *Address) BtcEncode(w io.Writer, pver uint32) error {
	if pver >= CADDR_TIME_VERSION {
		if err := writeElement(w, addr.NTime); err != nil {
			return err
		}
	}

	if err := writeElements(w, addr.NServices, addr.IP); err != nil {
		return err
	}
	return writeElement(w, uint16be(addr.Port))
}
