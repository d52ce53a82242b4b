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
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadOggPage(t *testing.T) {
	valid := oggPacketPage(0x00, 960, 2, []byte{0xFC, 0x01, 0x02})
	corrupted := append([]byte{}, valid...)
	corrupted[len(corrupted)-1] ^= 0xFF
	signature := append([]byte{}, valid...)
	signature[0] = 'X'

	testCases := map[string]struct {
		input []byte
		err   error
	}{
		"Valid":            {valid, nil},
		"Empty":            {nil, io.EOF},
		"BadChecksum":      {corrupted, errOggChecksum},
		"BadSignature":     {signature, errOggSignature},
		"TruncatedHeader":  {valid[:10], io.ErrUnexpectedEOF},
		"TruncatedLacing":  {valid[:oggPageHeaderSize], io.ErrUnexpectedEOF},
		"TruncatedPayload": {valid[:len(valid)-1], io.ErrUnexpectedEOF},
	}
	for name, c := range testCases {
		c := c
		t.Run(name, func(t *testing.T) {
			page, err := readOggPage(bytes.NewReader(c.input))
			if !errors.Is(err, c.err) {
				t.Fatalf("Expected error %v, got %v", c.err, err)
			}
			if err != nil {
				return
			}
			if page.granule != 960 {
				t.Errorf("Expected granule 960, got %d", page.granule)
			}
			if diff := cmp.Diff([]byte{0xFC, 0x01, 0x02}, page.payload); diff != "" {
				t.Errorf("Unexpected payload (-expected +actual):\n%s", diff)
			}
		})
	}
}

func TestOggPacketReader(t *testing.T) {
	long := bytes.Repeat([]byte{0xAA}, 510)

	type page struct {
		Packets [][]byte
		Granule uint64
	}
	testCases := map[string]struct {
		input    []byte
		expected []page
		err      error
	}{
		"MultiplePackets": {
			input: oggPacketPage(0x00, 1920, 0, []byte{1, 2}, []byte{3}),
			expected: []page{
				{[][]byte{{1, 2}, {3}}, 1920},
			},
		},
		"ExactMultipleOf255": {
			input: oggPacketPage(0x00, 960, 0, long),
			expected: []page{
				{[][]byte{long}, 960},
			},
		},
		"Continued": {
			input: append(
				oggPageWithLacing(0x00, ^uint64(0), 0, []byte{255}, long[:255]),
				oggPageWithLacing(0x01, 960, 1, []byte{255, 0, 1}, append(long[255:], 7))...,
			),
			expected: []page{
				{nil, ^uint64(0)},
				{[][]byte{long, {7}}, 960},
			},
		},
		"LostContinuation": {
			input: append(
				oggPageWithLacing(0x00, ^uint64(0), 0, []byte{255}, long[:255]),
				oggPacketPage(0x00, 960, 1, []byte{7})...,
			),
			expected: []page{
				{nil, ^uint64(0)},
				{[][]byte{{7}}, 960},
			},
		},
		"TruncatedPacket": {
			input: oggPageWithLacing(0x00, ^uint64(0), 0, []byte{255}, long[:255]),
			expected: []page{
				{nil, ^uint64(0)},
			},
			err: io.ErrUnexpectedEOF,
		},
	}
	for name, c := range testCases {
		c := c
		t.Run(name, func(t *testing.T) {
			r := &oggPacketReader{r: bytes.NewReader(c.input)}
			var pages []page
			var err error
			for {
				var p page
				p.Packets, p.Granule, err = r.nextPage()
				if err != nil {
					break
				}
				pages = append(pages, p)
			}
			if c.err == nil {
				c.err = io.EOF
			}
			if !errors.Is(err, c.err) {
				t.Fatalf("Expected error %v, got %v", c.err, err)
			}
			if diff := cmp.Diff(c.expected, pages); diff != "" {
				t.Errorf("Unexpected pages (-expected +actual):\n%s", diff)
			}
		})
	}
}
