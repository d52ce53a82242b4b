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

// Package webmmuxer writes seekable WebM files from encoded VP9/AV1 video and
// Opus audio samples delivered by concurrent producers.
package webmmuxer

const (
	// TimestampScale makes one block/cluster timestamp unit a millisecond.
	TimestampScale = 1000000
	// ClusterInterval is the width of a cluster time window in milliseconds.
	ClusterInterval = 4000

	DocType = "webm"

	CodecIDOpus = "A_OPUS"
	CodecIDVP9  = "V_VP9"
	CodecIDAV1  = "V_AV1"

	DefaultAudioTrackNumber = 1
	DefaultVideoTrackNumber = 2

	defaultAppName = "webmmuxer"
)

// TrackType is the Matroska TrackType value.
type TrackType uint64

const (
	TrackTypeVideo TrackType = 1
	TrackTypeAudio TrackType = 2
)

func (t TrackType) String() string {
	switch t {
	case TrackTypeVideo:
		return "video"
	case TrackTypeAudio:
		return "audio"
	default:
		return "unknown"
	}
}
