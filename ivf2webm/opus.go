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
	"errors"
)

var errInvalidOpusPacket = errors.New("invalid Opus packet")

// Frame durations in 48kHz samples indexed by the TOC configuration number.
var opusFrameSamples = [32]int64{
	// SILK NB, MB, WB
	480, 960, 1920, 2880,
	480, 960, 1920, 2880,
	480, 960, 1920, 2880,
	// Hybrid SWB, FB
	480, 960,
	480, 960,
	// CELT NB, WB, SWB, FB
	120, 240, 480, 960,
	120, 240, 480, 960,
	120, 240, 480, 960,
	120, 240, 480, 960,
}

// opusPacketSamples returns the duration of an Opus packet in 48kHz samples.
func opusPacketSamples(b []byte) (int64, error) {
	if len(b) == 0 {
		return 0, errInvalidOpusPacket
	}
	frameSamples := opusFrameSamples[b[0]>>3]
	var frames int64
	switch b[0] & 0x03 {
	case 0:
		frames = 1
	case 1, 2:
		frames = 2
	default:
		if len(b) < 2 {
			return 0, errInvalidOpusPacket
		}
		frames = int64(b[1] & 0x3F)
	}
	// At most 120 ms per packet.
	if n := frameSamples * frames; n <= 5760 {
		return n, nil
	}
	return 0, errInvalidOpusPacket
}
