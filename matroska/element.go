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
	"io"
)

// Element is an EBML element. Data holds the payload, which for parent
// elements is the concatenation of the serialized children.
type Element struct {
	ID   ID
	Data []byte
}

// NewBinary returns an element holding b as is.
func NewBinary(id ID, b []byte) Element {
	return Element{ID: id, Data: b}
}

// NewUint returns an unsigned integer element.
func NewUint(id ID, v uint64) Element {
	return Element{ID: id, Data: Uint(v)}
}

// NewString returns an ASCII string element.
func NewString(id ID, s string) Element {
	return Element{ID: id, Data: []byte(s)}
}

// NewFloat returns a 4 byte float element.
func NewFloat(id ID, f float32) Element {
	return Element{ID: id, Data: Float32(f)}
}

// NewMaster serializes children into the payload of a new parent element.
func NewMaster(id ID, children ...Element) (Element, error) {
	var data []byte
	for _, c := range children {
		b, err := c.Marshal()
		if err != nil {
			return Element{}, err
		}
		data = append(data, b...)
	}
	return Element{ID: id, Data: data}, nil
}

// Marshal returns ID ‖ DataSize ‖ Data.
func (e Element) Marshal() ([]byte, error) {
	size, err := EncodeSize(uint64(len(e.Data)))
	if err != nil {
		return nil, err
	}
	id := e.ID.Bytes()
	b := make([]byte, 0, len(id)+len(size)+len(e.Data))
	b = append(b, id...)
	b = append(b, size...)
	return append(b, e.Data...), nil
}

// Size returns the length of Marshal() without serializing.
func (e Element) Size() (uint64, error) {
	return ElementSize(e.ID, uint64(len(e.Data)))
}

// ElementSize returns the serialized length of an element with the given ID
// and payload length.
func ElementSize(id ID, dataSize uint64) (uint64, error) {
	n, err := SizeLen(dataSize)
	if err != nil {
		return 0, err
	}
	return uint64(len(id.Bytes())+n) + dataSize, nil
}

// WriteHeader writes ID ‖ DataSize. The caller writes the payload.
func WriteHeader(w io.Writer, id ID, dataSize uint64) error {
	size, err := EncodeSize(dataSize)
	if err != nil {
		return err
	}
	if _, err := w.Write(id.Bytes()); err != nil {
		return err
	}
	_, err = w.Write(size)
	return err
}
