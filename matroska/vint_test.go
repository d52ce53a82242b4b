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

package matroska

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeSize(t *testing.T) {
	testCases := map[string]struct {
		input    uint64
		expected []byte
	}{
		"Zero":              {0, []byte{0x80}},
		"OneByte":           {0x7E, []byte{0xFE}},
		"OneByteMax":        {0x7F, []byte{0xFF}},
		"PrependedTwoBytes": {0x80, []byte{0x40, 0x80}},
		"PrependedFF":       {0xFF, []byte{0x40, 0xFF}},
		"TwoBytes":          {0x0100, []byte{0x41, 0x00}},
		"TwoBytesMax":       {0x3FFF, []byte{0x7F, 0xFF}},
		"PrependedThree":    {0x4000, []byte{0x20, 0x40, 0x00}},
		"ThreeBytes":        {0x010000, []byte{0x21, 0x00, 0x00}},
		"FourBytes":         {0x01000000, []byte{0x11, 0x00, 0x00, 0x00}},
		"PrependedFive":     {0x7FFFFFFF, []byte{0x08, 0x7F, 0xFF, 0xFF, 0xFF}},
		"SevenBytes":        {0x00FFFFFFFFFFFFFF, []byte{0x01, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
	}
	for name, c := range testCases {
		c := c
		t.Run(name, func(t *testing.T) {
			b, err := EncodeSize(c.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if diff := cmp.Diff(c.expected, b); diff != "" {
				t.Errorf("Unexpected encoding (-expected +actual):\n%s", diff)
			}
			n, err := SizeLen(c.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if n != len(b) {
				t.Errorf("SizeLen expected to be %d, got %d", len(b), n)
			}
		})
	}
}

func TestEncodeSize_Overflow(t *testing.T) {
	for _, v := range []uint64{1 << 56, 0xFFFFFFFFFFFFFFFF} {
		if _, err := EncodeSize(v); !errors.Is(err, ErrSizeOverflow) {
			t.Errorf("Expected ErrSizeOverflow for 0x%x, got %v", v, err)
		}
		if _, err := SizeLen(v); !errors.Is(err, ErrSizeOverflow) {
			t.Errorf("Expected ErrSizeOverflow from SizeLen for 0x%x, got %v", v, err)
		}
	}
}

func TestSizeRoundTrip(t *testing.T) {
	check := func(t *testing.T, n uint64) {
		b, err := EncodeSize(n)
		if err != nil {
			t.Fatalf("Failed to encode %d: %v", n, err)
		}
		v, l, err := DecodeSize(b)
		if err != nil {
			t.Fatalf("Failed to decode %d (%x): %v", n, b, err)
		}
		if v != int64(n) || l != len(b) {
			t.Fatalf("Round trip of %d failed: got (%d, %d), encoded %x", n, v, l, b)
		}
	}
	for n := uint64(0); n < 0x20000; n++ {
		check(t, n)
	}
	for n := uint64(0x20000); n <= 0x7FFFFFFF; n += 0x1003 {
		check(t, n)
	}
	for _, n := range []uint64{0xFFFFFF, 0x1000000, 0x0FFFFFFF, 0x10000000, 0x7FFFFFFF} {
		check(t, n)
	}
}

func TestSizeLenMonotonic(t *testing.T) {
	prev := 0
	for n := uint64(0); n <= 0x7FFFFFFF; n += 0x3F1 {
		l, err := SizeLen(n)
		if err != nil {
			t.Fatal(err)
		}
		if n <= 127 && l != 1 {
			t.Fatalf("Values up to 127 must be 1 byte, %d is %d bytes", n, l)
		}
		if l < prev {
			t.Fatalf("Length decreased at %d: %d < %d", n, l, prev)
		}
		prev = l
	}
}

func TestDecodeSize(t *testing.T) {
	testCases := map[string]struct {
		input    []byte
		value    int64
		consumed int
		err      error
	}{
		"OneByte":     {[]byte{0x81, 0xAA}, 1, 1, nil},
		"TwoBytes":    {[]byte{0x40, 0xFF}, 255, 2, nil},
		"EightBytes":  {[]byte{0x01, 0, 0, 0, 0, 0, 0x01, 0x00}, 256, 8, nil},
		"Unknown":     {[]byte{0x1F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}, SizeUnknown, 8, nil},
		"Empty":       {nil, 0, 0, io.ErrUnexpectedEOF},
		"NoMarker":    {[]byte{0x00, 0x01}, 0, 0, ErrInvalidSize},
		"Truncated":   {[]byte{0x20, 0x01}, 0, 0, io.ErrUnexpectedEOF},
		"FourByteMax": {[]byte{0x1F, 0xFF, 0xFF, 0xFF}, 0x0FFFFFFF, 4, nil},
	}
	for name, c := range testCases {
		c := c
		t.Run(name, func(t *testing.T) {
			v, l, err := DecodeSize(c.input)
			if !errors.Is(err, c.err) {
				t.Fatalf("Expected error '%v', got '%v'", c.err, err)
			}
			if v != c.value || l != c.consumed {
				t.Errorf("Expected (%d, %d), got (%d, %d)", c.value, c.consumed, v, l)
			}
		})
	}
}

func TestUint(t *testing.T) {
	testCases := map[string]struct {
		input    uint64
		expected []byte
	}{
		"Zero":      {0, []byte{0x00}},
		"OneByte":   {0xFF, []byte{0xFF}},
		"TwoBytes":  {0x100, []byte{0x01, 0x00}},
		"Timescale": {1000000, []byte{0x0F, 0x42, 0x40}},
		"Max":       {0xFFFFFFFFFFFFFFFF, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
	}
	for name, c := range testCases {
		c := c
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(c.expected, Uint(c.input)); diff != "" {
				t.Errorf("Unexpected bytes (-expected +actual):\n%s", diff)
			}
		})
	}
	if diff := cmp.Diff([]byte{0xFF, 0xFE}, Int16(-2)); diff != "" {
		t.Errorf("Unexpected Int16 bytes (-expected +actual):\n%s", diff)
	}
	if diff := cmp.Diff([]byte{0x47, 0x3B, 0x80, 0x00}, Float32(48000)); diff != "" {
		t.Errorf("Unexpected Float32 bytes (-expected +actual):\n%s", diff)
	}
}
