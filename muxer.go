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
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Muxer collects encoded samples from an audio and a video producer and
// writes them as a single WebM file on Finalize.
//
// DeclareAudioTrack, DeclareVideoTrack, WriteAudio and WriteVideo are safe
// for concurrent use. Finalize must be called once after all producers
// returned.
type Muxer struct {
	outputPath string
	spillDir   string
	opts       *MuxerOptions

	mu            sync.Mutex
	audio         *track
	video         *track
	samples       []*sample
	lastTimestamp map[uint64]int64
	closed        bool
}

// New creates a muxer writing to outputPath.
// Samples are spilled to a new directory under the temporary directory
// until Finalize or Close.
func New(outputPath string, opts ...MuxerOption) (*Muxer, error) {
	options := &MuxerOptions{
		tempDir:          os.TempDir(),
		muxingApp:        defaultAppName,
		writingApp:       defaultAppName,
		audioTrackNumber: DefaultAudioTrackNumber,
		videoTrackNumber: DefaultVideoTrackNumber,
	}
	for _, o := range opts {
		o(options)
	}
	if options.audioTrackNumber == 0 || options.videoTrackNumber == 0 ||
		options.audioTrackNumber == options.videoTrackNumber {
		return nil, fmt.Errorf("%w: audio %d, video %d",
			ErrInvalidTrackNumber, options.audioTrackNumber, options.videoTrackNumber)
	}
	if options.segmentUID == nil {
		var err error
		options.segmentUID, err = generateRandomUUID()
		if err != nil {
			return nil, err
		}
	}

	dir, err := os.MkdirTemp(options.tempDir, "webmmuxer-")
	if err != nil {
		return nil, fmt.Errorf("creating spill directory: %w", err)
	}
	return &Muxer{
		outputPath:    outputPath,
		spillDir:      dir,
		opts:          options,
		lastTimestamp: make(map[uint64]int64),
	}, nil
}

func generateRandomUUID() ([]byte, error) {
	return uuid.New().MarshalBinary()
}

// DeclareAudioTrack declares the Opus audio track.
func (m *Muxer) DeclareAudioTrack(codecID string, samplingFrequency float64, channels int) error {
	t, err := newAudioTrack(m.opts.audioTrackNumber, codecID, samplingFrequency, channels)
	if err != nil {
		return err
	}
	if err := m.declare(&m.audio, t); err != nil {
		return err
	}
	Logger().Debugf("Audio track declared (track:%d codec:%s rate:%v channels:%d)",
		t.number, codecID, samplingFrequency, channels)
	return nil
}

// DeclareVideoTrack declares the VP9 or AV1 video track.
func (m *Muxer) DeclareVideoTrack(codecID string, width, height int, opts ...VideoOption) error {
	options := &VideoOptions{}
	for _, o := range opts {
		o(options)
	}
	t, err := newVideoTrack(m.opts.videoTrackNumber, codecID, width, height, options)
	if err != nil {
		return err
	}
	if err := m.declare(&m.video, t); err != nil {
		return err
	}
	Logger().Debugf("Video track declared (track:%d codec:%s size:%dx%d)",
		t.number, codecID, width, height)
	return nil
}

func (m *Muxer) declare(dst **track, t *track) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if *dst != nil {
		return fmt.Errorf("%w: %s", ErrTrackDeclared, t.trackType)
	}
	*dst = t
	return nil
}

// WriteVideo adds an encoded video frame presented at timestampMs.
func (m *Muxer) WriteVideo(b []byte, timestampMs int64, keyframe bool) error {
	return m.write(m.opts.videoTrackNumber, b, timestampMs, keyframe)
}

// WriteAudio adds an encoded audio packet presented at timestampMs.
// Opus packets are always key frames.
func (m *Muxer) WriteAudio(b []byte, timestampMs int64, keyframe bool) error {
	return m.write(m.opts.audioTrackNumber, b, timestampMs, keyframe)
}

func (m *Muxer) write(trackNumber uint64, b []byte, timestampMs int64, keyframe bool) error {
	if timestampMs < 0 {
		return fmt.Errorf("%w: track %d at %d", ErrNegativeTimestamp, trackNumber, timestampMs)
	}
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return ErrClosed
	}

	path, err := spill(m.spillDir, b)
	if err != nil {
		m.mu.Lock()
		closed := m.closed
		m.mu.Unlock()
		if closed {
			return ErrClosed
		}
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		os.Remove(path)
		return ErrClosed
	}
	if last, ok := m.lastTimestamp[trackNumber]; ok && timestampMs < last {
		Logger().Warnf("Timestamp went backwards (track:%d timestamp:%s last:%s)",
			trackNumber, FormatTimestamp(timestampMs), FormatTimestamp(last))
	} else {
		m.lastTimestamp[trackNumber] = timestampMs
	}
	m.samples = append(m.samples, &sample{
		track:     trackNumber,
		timestamp: timestampMs,
		keyframe:  keyframe,
		size:      len(b),
		path:      path,
	})
	return nil
}

// Close discards all written samples without producing output.
// It does nothing once Finalize has been called.
func (m *Muxer) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.samples = nil
	m.mu.Unlock()

	if err := os.RemoveAll(m.spillDir); err != nil {
		return fmt.Errorf("removing spill directory: %w", err)
	}
	return nil
}
