// Copyright 2026 SEQSENSE, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	oggPageHeaderSize = 27
	oggCRCPolynomial  = 0x04C11DB7

	oggHeaderTypeContinued = 0x01
	oggHeaderTypeEOS       = 0x04

	// oggNoGranule marks a page on which no packet completes.
	oggNoGranule = ^uint64(0)
)

var (
	oggPageSignature = []byte("OggS")

	errOggSignature = errors.New("invalid Ogg page signature")
	errOggChecksum  = errors.New("Ogg page checksum mismatch")
)

var oggCRCTable = func() [256]uint32 {
	var table [256]uint32
	for i := range table {
		r := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if r&0x80000000 != 0 {
				r = r<<1 ^ oggCRCPolynomial
			} else {
				r <<= 1
			}
		}
		table[i] = r
	}
	return table
}()

type oggPage struct {
	headerType byte
	granule    uint64
	segments   []byte
	payload    []byte
}

func readOggPage(r io.Reader) (*oggPage, error) {
	h := make([]byte, oggPageHeaderSize)
	if _, err := io.ReadFull(r, h); err != nil {
		return nil, err
	}
	if !bytes.Equal(h[:4], oggPageSignature) {
		return nil, errOggSignature
	}
	segments := make([]byte, h[26])
	if _, err := io.ReadFull(r, segments); err != nil {
		return nil, unexpectedEOF(err)
	}
	var size int
	for _, l := range segments {
		size += int(l)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, unexpectedEOF(err)
	}

	expected := binary.LittleEndian.Uint32(h[22:26])
	h[22], h[23], h[24], h[25] = 0, 0, 0, 0
	var crc uint32
	for _, b := range [][]byte{h, segments, payload} {
		for _, v := range b {
			crc = crc<<8 ^ oggCRCTable[byte(crc>>24)^v]
		}
	}
	if crc != expected {
		return nil, fmt.Errorf("%w: 0x%08x, expected 0x%08x", errOggChecksum, crc, expected)
	}

	return &oggPage{
		headerType: h[5],
		granule:    binary.LittleEndian.Uint64(h[6:14]),
		segments:   segments,
		payload:    payload,
	}, nil
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// oggPacketReader reassembles packets from the lacing values of
// consecutive pages.
type oggPacketReader struct {
	r       io.Reader
	partial []byte
	pending bool

	lastHeaderType byte
}

// nextPage returns the packets completed on the next page and the page
// granule position. A packet continued on a following page is kept until
// its last segment is read.
func (p *oggPacketReader) nextPage() ([][]byte, uint64, error) {
	page, err := readOggPage(p.r)
	if err != nil {
		if errors.Is(err, io.EOF) && p.pending {
			return nil, 0, io.ErrUnexpectedEOF
		}
		return nil, 0, err
	}
	p.lastHeaderType = page.headerType
	if p.pending && page.headerType&oggHeaderTypeContinued == 0 {
		// The continued packet was lost; drop it.
		p.partial, p.pending = nil, false
	}

	var packets [][]byte
	var off int
	for _, l := range page.segments {
		p.partial = append(p.partial, page.payload[off:off+int(l)]...)
		p.pending = true
		off += int(l)
		if l < 255 {
			packets = append(packets, p.partial)
			p.partial, p.pending = nil, false
		}
	}
	return packets, page.granule, nil
}
