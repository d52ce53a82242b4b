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

package webmmuxer

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/seqsense/webmmuxer/matroska"
)

// track is a declared track with its pre-serialized TrackEntry.
type track struct {
	number    uint64
	trackType TrackType
	codecID   string
	entry     []byte
}

// opusHead returns the OpusHead identification header used as CodecPrivate.
func opusHead(channels int, sampleRate uint32) []byte {
	b := make([]byte, 19)
	copy(b, "OpusHead")
	b[8] = 1 // version
	b[9] = byte(channels)
	// b[10:12] pre-skip, 0
	binary.LittleEndian.PutUint32(b[12:16], sampleRate)
	// b[16:18] output gain, b[18] channel mapping family, 0
	return b
}

func newAudioTrack(number uint64, codecID string, samplingFrequency float64, channels int) (*track, error) {
	if codecID != CodecIDOpus {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCodec, codecID)
	}
	if channels <= 0 || channels > math.MaxUint8 {
		return nil, fmt.Errorf("%w: channels %d", ErrInvalidTrack, channels)
	}
	if samplingFrequency <= 0 || samplingFrequency > math.MaxUint32 {
		return nil, fmt.Errorf("%w: sampling frequency %v", ErrInvalidTrack, samplingFrequency)
	}

	audio, err := matroska.NewMaster(matroska.IDAudio,
		matroska.NewFloat(matroska.IDSamplingFrequency, float32(samplingFrequency)),
		matroska.NewUint(matroska.IDChannels, uint64(channels)),
	)
	if err != nil {
		return nil, err
	}
	return newTrack(number, TrackTypeAudio, codecID,
		matroska.NewBinary(matroska.IDCodecPrivate, opusHead(channels, uint32(samplingFrequency))),
		audio,
	)
}

func newVideoTrack(number uint64, codecID string, width, height int, opts *VideoOptions) (*track, error) {
	switch codecID {
	case CodecIDVP9, CodecIDAV1:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCodec, codecID)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidTrack, width, height)
	}

	children := []matroska.Element{
		matroska.NewUint(matroska.IDPixelWidth, uint64(width)),
		matroska.NewUint(matroska.IDPixelHeight, uint64(height)),
	}
	if c := opts.colour; c != nil {
		colour, err := matroska.NewMaster(matroska.IDColour,
			matroska.NewUint(matroska.IDMatrixCoefficients, c.MatrixCoefficients),
			matroska.NewUint(matroska.IDTransferCharacteristics, c.TransferCharacteristics),
			matroska.NewUint(matroska.IDPrimaries, c.Primaries),
		)
		if err != nil {
			return nil, err
		}
		children = append(children, colour)
	}
	video, err := matroska.NewMaster(matroska.IDVideo, children...)
	if err != nil {
		return nil, err
	}
	return newTrack(number, TrackTypeVideo, codecID, video)
}

func newTrack(number uint64, trackType TrackType, codecID string, extra ...matroska.Element) (*track, error) {
	children := append([]matroska.Element{
		matroska.NewUint(matroska.IDTrackNumber, number),
		matroska.NewUint(matroska.IDTrackUID, number),
		matroska.NewUint(matroska.IDTrackType, uint64(trackType)),
		matroska.NewString(matroska.IDCodecID, codecID),
	}, extra...)
	entry, err := matroska.NewMaster(matroska.IDTrackEntry, children...)
	if err != nil {
		return nil, err
	}
	b, err := entry.Marshal()
	if err != nil {
		return nil, err
	}
	return &track{
		number:    number,
		trackType: trackType,
		codecID:   codecID,
		entry:     b,
	}, nil
}
