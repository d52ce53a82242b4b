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
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pion/webrtc/v4/pkg/media/oggreader"

	"github.com/seqsense/webmmuxer"
)

// Opus granule positions always count 48kHz samples.
const opusGranuleRate = 48000

var opusTagsSignature = []byte("OpusTags")

type audioSource struct {
	packets *oggPacketReader
	header  *oggreader.OggHeader
	offset  int64
}

// newAudioSource reads the OpusHead page from r. The remaining pages are
// split into packets by their lacing values.
func newAudioSource(r io.Reader, offset int64) (*audioSource, error) {
	_, header, err := oggreader.NewWith(r)
	if err != nil {
		return nil, fmt.Errorf("reading OpusHead: %w", err)
	}
	return &audioSource{
		packets: &oggPacketReader{r: r},
		header:  header,
		offset:  offset,
	}, nil
}

func (s *audioSource) declare(m *webmmuxer.Muxer) error {
	return m.DeclareAudioTrack(webmmuxer.CodecIDOpus, float64(s.header.SampleRate), int(s.header.Channels))
}

type audioStats struct {
	written int
	// dropped counts packets shifted before zero by a negative offset.
	dropped int
}

// copyTo writes every Opus packet to m. Timestamps are relative to the
// first packet, shifted by the audio offset.
func (s *audioSource) copyTo(ctx context.Context, m *webmmuxer.Muxer) (audioStats, error) {
	var st audioStats
	var pos, base int64
	var started bool
	for page := 0; ; page++ {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		packets, granule, err := s.packets.nextPage()
		if errors.Is(err, io.EOF) {
			return st, nil
		}
		if err != nil {
			return st, fmt.Errorf("reading page %d: %w", page, err)
		}

		var total int64
		durations := make([]int64, 0, len(packets))
		audio := packets[:0]
		for _, p := range packets {
			if len(p) == 0 || bytes.HasPrefix(p, opusTagsSignature) {
				continue
			}
			d, err := opusPacketSamples(p)
			if err != nil {
				return st, fmt.Errorf("page %d: %w", page, err)
			}
			audio = append(audio, p)
			durations = append(durations, d)
			total += d
		}
		if len(audio) == 0 {
			continue
		}

		// The granule position is the end of the last packet completed on
		// the page. The final page may trim samples, so keep counting there.
		resync := granule != oggNoGranule && (s.packets.lastHeaderType&oggHeaderTypeEOS == 0 || !started)
		if resync {
			pos = int64(granule) - total
		}
		if !started {
			base = pos
			started = true
		}

		for i, p := range audio {
			ts := (pos-base)*1000/opusGranuleRate + s.offset
			pos += durations[i]
			if ts < 0 {
				st.dropped++
				continue
			}
			if err := m.WriteAudio(p, ts, true); err != nil {
				return st, err
			}
			st.written++
		}
	}
}
