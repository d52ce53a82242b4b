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

const (
	vp9FrameMarker = 0x2

	av1OBUSequenceHeader = 1
)

// isVP9Keyframe reads the uncompressed header of the first frame.
func isVP9Keyframe(b []byte) bool {
	if len(b) == 0 || b[0]>>6 != vp9FrameMarker {
		return false
	}
	profile := (b[0]>>5)&1 | ((b[0]>>4)&1)<<1
	bit := 4
	if profile == 3 {
		// reserved_zero
		bit++
	}
	showExistingFrame := b[0]>>(7-bit)&1 == 1
	if showExistingFrame {
		return false
	}
	bit++
	return b[0]>>(7-bit)&1 == 0
}

// isAV1Keyframe reports whether the temporal unit carries a sequence header OBU.
func isAV1Keyframe(b []byte) bool {
	for len(b) > 0 {
		header := b[0]
		obuType := (header >> 3) & 0xF
		if obuType == av1OBUSequenceHeader {
			return true
		}
		n := 1
		if header&0x04 != 0 {
			// extension header
			n++
		}
		if header&0x02 == 0 {
			// The last OBU fills the rest of the unit.
			return false
		}
		if len(b) < n {
			return false
		}
		size, l, ok := readLEB128(b[n:])
		if !ok {
			return false
		}
		n += l
		if uint64(len(b)-n) < size {
			return false
		}
		b = b[n+int(size):]
	}
	return false
}

func readLEB128(b []byte) (uint64, int, bool) {
	var v uint64
	for i := 0; i < 8 && i < len(b); i++ {
		v |= uint64(b[i]&0x7F) << (7 * i)
		if b[i]&0x80 == 0 {
			return v, i + 1, true
		}
	}
	return 0, 0, false
}
