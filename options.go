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

// MuxerOptions holds the settings applied by MuxerOption.
type MuxerOptions struct {
	tempDir          string
	segmentUID       []byte
	title            string
	muxingApp        string
	writingApp       string
	audioTrackNumber uint64
	videoTrackNumber uint64
}

// MuxerOption configures a Muxer created by New.
type MuxerOption func(*MuxerOptions)

// WithTempDir sets the directory under which the spill directory is created.
func WithTempDir(dir string) MuxerOption {
	return func(o *MuxerOptions) {
		o.tempDir = dir
	}
}

// WithSegmentUID sets the 16 byte SegmentUID. A random UUID is used by default.
func WithSegmentUID(segmentUID []byte) MuxerOption {
	return func(o *MuxerOptions) {
		o.segmentUID = segmentUID
	}
}

// WithTitle sets the Title of the segment Info. It is omitted by default.
func WithTitle(title string) MuxerOption {
	return func(o *MuxerOptions) {
		o.title = title
	}
}

// WithMuxingApp overrides the MuxingApp of the segment Info.
func WithMuxingApp(app string) MuxerOption {
	return func(o *MuxerOptions) {
		o.muxingApp = app
	}
}

// WithWritingApp overrides the WritingApp of the segment Info.
func WithWritingApp(app string) MuxerOption {
	return func(o *MuxerOptions) {
		o.writingApp = app
	}
}

// WithTrackNumbers sets the track numbers assigned to the audio and video tracks.
func WithTrackNumbers(audio, video uint64) MuxerOption {
	return func(o *MuxerOptions) {
		o.audioTrackNumber = audio
		o.videoTrackNumber = video
	}
}

// Colour describes the colour space of a video track.
// Values follow ISO/IEC 23091-4/ITU-T H.273.
type Colour struct {
	MatrixCoefficients      uint64
	TransferCharacteristics uint64
	Primaries               uint64
}

// VideoOptions holds the settings applied by VideoOption.
type VideoOptions struct {
	colour *Colour
}

// VideoOption configures a video track declared by DeclareVideoTrack.
type VideoOption func(*VideoOptions)

// WithColour adds a Colour element to the video track, e.g. for HDR output.
func WithColour(c Colour) VideoOption {
	return func(o *VideoOptions) {
		o.colour = &c
	}
}
