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
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestElement(t *testing.T) {
	video, err := NewMaster(IDVideo,
		NewUint(IDPixelWidth, 1280),
		NewUint(IDPixelHeight, 720),
	)
	if err != nil {
		t.Fatal(err)
	}
	entry, err := NewMaster(IDTrackEntry,
		NewUint(IDTrackNumber, 2),
		NewString(IDCodecID, "V_VP9"),
		video,
	)
	if err != nil {
		t.Fatal(err)
	}

	expected := []byte{
		0xAE, 0x94,
		0xD7, 0x81, 0x02,
		0x86, 0x85, 'V', '_', 'V', 'P', '9',
		0xE0, 0x88,
		0xB0, 0x82, 0x05, 0x00,
		0xBA, 0x82, 0x02, 0xD0,
	}
	b, err := entry.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(expected, b); diff != "" {
		t.Errorf("Unexpected TrackEntry (-expected +actual):\n%s", diff)
	}

	size, err := EncodeSize(uint64(len(entry.Data)))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(IDTrackEntry.Bytes()) + len(size) + len(entry.Data); n != len(b) {
		t.Errorf("Serialized length expected to be %d, got %d", n, len(b))
	}
	if s, err := entry.Size(); err != nil || s != uint64(len(b)) {
		t.Errorf("Size expected to be %d, got %d (err: %v)", len(b), s, err)
	}
}

func TestElementSize(t *testing.T) {
	for _, d := range []int{0, 1, 126, 127, 128, 255, 256, 0x3FFF, 0x4000, 100000} {
		e := NewBinary(IDSimpleBlock, make([]byte, d))
		b, err := e.Marshal()
		if err != nil {
			t.Fatal(err)
		}
		s, err := ElementSize(IDSimpleBlock, uint64(d))
		if err != nil {
			t.Fatal(err)
		}
		if s != uint64(len(b)) {
			t.Errorf("ElementSize(%d) expected to be %d, got %d", d, len(b), s)
		}
	}
}

func TestWriteHeader(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteHeader(buf, IDCluster, 300); err != nil {
		t.Fatal(err)
	}
	expected := []byte{0x1F, 0x43, 0xB6, 0x75, 0x41, 0x2C}
	if diff := cmp.Diff(expected, buf.Bytes()); diff != "" {
		t.Errorf("Unexpected header (-expected +actual):\n%s", diff)
	}
}

func TestSchema(t *testing.T) {
	seen := make(map[string]ID)
	for id := ID(0); id < numIDs; id++ {
		if len(id.Bytes()) == 0 {
			t.Errorf("%s has no ID bytes", id)
		}
		if prev, ok := seen[string(id.Bytes())]; ok {
			t.Errorf("%s and %s share the same ID bytes", prev, id)
		}
		seen[string(id.Bytes())] = id
		if p, ok := id.Parent(); ok && !p.IsParent() {
			t.Errorf("Parent %s of %s must be a parent element", p, id)
		}
	}
	for _, id := range []ID{IDEBML, IDSegment} {
		if _, ok := id.Parent(); ok {
			t.Errorf("%s must be top-level", id)
		}
	}
	if s := ID(-3).String(); s != "Unknown" {
		t.Errorf("Expected Unknown, got %s", s)
	}
}
