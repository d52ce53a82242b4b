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

// Package matroska implements the subset of EBML needed to write WebM files.
package matroska

import (
	"bytes"
	"errors"
	"io"
)

// SizeUnknown is returned by DecodeSize for the unknown-size sentinel.
const SizeUnknown int64 = -1

// UnknownSize is the DataSize sentinel meaning "length unknown".
// It is recognized on decode but never produced by EncodeSize.
var UnknownSize = []byte{0x1F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

var (
	// ErrSizeOverflow means the value does not fit in an 8 byte DataSize.
	ErrSizeOverflow = errors.New("data size overflows 8 byte vint")
	// ErrInvalidSize means the first byte carries no length marker.
	ErrInvalidSize = errors.New("invalid vint length marker")
)

// sizeMarkers[i] is the length marker of a (i+1) byte DataSize.
var sizeMarkers = [8]byte{0x80, 0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x01}

// EncodeSize encodes n as EBML DataSize.
//
// The marker bit is OR'd into the minimal big-endian representation of n when
// it fits. Otherwise a byte holding the next length marker is prepended,
// so the result may be one byte longer than the shortest legal encoding.
func EncodeSize(n uint64) ([]byte, error) {
	b := Uint(n)
	k := len(b)
	if b[0] < sizeMarkers[k-1] {
		b[0] |= sizeMarkers[k-1]
		return b, nil
	}
	if k == len(sizeMarkers) {
		return nil, ErrSizeOverflow
	}
	return append([]byte{sizeMarkers[k]}, b...), nil
}

// SizeLen returns the length of EncodeSize(n).
func SizeLen(n uint64) (int, error) {
	k := uintLen(n)
	if byte(n>>(8*(k-1))) < sizeMarkers[k-1] {
		return k, nil
	}
	if k == len(sizeMarkers) {
		return 0, ErrSizeOverflow
	}
	return k + 1, nil
}

// DecodeSize decodes the DataSize at the head of b.
// It returns the value and the number of bytes consumed.
func DecodeSize(b []byte) (int64, int, error) {
	if len(b) == 0 {
		return 0, 0, io.ErrUnexpectedEOF
	}
	if bytes.HasPrefix(b, UnknownSize) {
		return SizeUnknown, len(UnknownSize), nil
	}
	l := 0
	for i, m := range sizeMarkers {
		if b[0]&m != 0 {
			l = i + 1
			break
		}
	}
	if l == 0 {
		return 0, 0, ErrInvalidSize
	}
	if len(b) < l {
		return 0, 0, io.ErrUnexpectedEOF
	}
	v := uint64(b[0] &^ sizeMarkers[l-1])
	for _, c := range b[1:l] {
		v = v<<8 | uint64(c)
	}
	return int64(v), l, nil
}
