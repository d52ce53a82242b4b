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
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"math/bits"

	"github.com/pion/webrtc/v4/pkg/media/ivfreader"

	"github.com/seqsense/webmmuxer"
)

const (
	ivfFrameHeaderSize = 12
	maxIVFFrameSize    = 64 << 20
)

var (
	errUnsupportedFourCC = errors.New("unsupported IVF FourCC")
	errInvalidTimebase   = errors.New("invalid IVF timebase")
	errFrameTooLarge     = errors.New("IVF frame too large")
	errTimestampOverflow = errors.New("IVF timestamp overflow")
)

// videoSource reads IVF frames. The file header is parsed by ivfreader;
// frame headers are read directly to get the raw presentation timestamp.
type videoSource struct {
	r          io.Reader
	header     *ivfreader.IVFFileHeader
	codecID    string
	isKeyframe func([]byte) bool
}

func newVideoSource(r io.Reader) (*videoSource, error) {
	// NewWith consumes exactly the 32 byte file header.
	_, header, err := ivfreader.NewWith(r)
	if err != nil {
		return nil, fmt.Errorf("reading IVF header: %w", err)
	}
	s := &videoSource{
		r:      r,
		header: header,
	}
	switch header.FourCC {
	case "VP90":
		s.codecID = webmmuxer.CodecIDVP9
		s.isKeyframe = isVP9Keyframe
	case "AV01":
		s.codecID = webmmuxer.CodecIDAV1
		s.isKeyframe = isAV1Keyframe
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedFourCC, header.FourCC)
	}
	if header.TimebaseDenominator == 0 || header.TimebaseNumerator == 0 {
		return nil, fmt.Errorf("%w: %d/%d",
			errInvalidTimebase, header.TimebaseNumerator, header.TimebaseDenominator)
	}
	return s, nil
}

func (s *videoSource) declare(m *webmmuxer.Muxer) error {
	return m.DeclareVideoTrack(s.codecID, int(s.header.Width), int(s.header.Height))
}

// ivfTimestamp converts a presentation timestamp in timebase units
// (numerator/denominator seconds) into milliseconds.
func ivfTimestamp(pts uint64, numerator, denominator uint32) (int64, error) {
	hi, lo := bits.Mul64(pts, uint64(numerator)*1000)
	if hi >= uint64(denominator) {
		return 0, fmt.Errorf("%w: pts %d", errTimestampOverflow, pts)
	}
	ms, _ := bits.Div64(hi, lo, uint64(denominator))
	if ms > math.MaxInt64 {
		return 0, fmt.Errorf("%w: pts %d", errTimestampOverflow, pts)
	}
	return int64(ms), nil
}

// nextFrame returns io.EOF only at a frame boundary.
func (s *videoSource) nextFrame() ([]byte, uint64, error) {
	var h [ivfFrameHeaderSize]byte
	if _, err := io.ReadFull(s.r, h[:]); err != nil {
		return nil, 0, err
	}
	size := binary.LittleEndian.Uint32(h[0:4])
	pts := binary.LittleEndian.Uint64(h[4:12])
	if size > maxIVFFrameSize {
		return nil, 0, fmt.Errorf("%w: %d bytes", errFrameTooLarge, size)
	}
	frame := make([]byte, size)
	if _, err := io.ReadFull(s.r, frame); err != nil {
		return nil, 0, unexpectedEOF(err)
	}
	return frame, pts, nil
}

func (s *videoSource) copyTo(ctx context.Context, m *webmmuxer.Muxer) (int, error) {
	var n int
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		frame, pts, err := s.nextFrame()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("reading frame %d: %w", n, err)
		}
		ts, err := ivfTimestamp(pts, s.header.TimebaseNumerator, s.header.TimebaseDenominator)
		if err != nil {
			return n, err
		}
		if err := m.WriteVideo(frame, ts, s.isKeyframe(frame)); err != nil {
			return n, err
		}
		n++
	}
}
