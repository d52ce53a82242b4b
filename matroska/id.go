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

// ID is an element identifier of the WebM subset written by this package.
type ID int

// Element IDs.
const (
	IDEBML ID = iota
	IDEBMLVersion
	IDEBMLReadVersion
	IDEBMLMaxIDLength
	IDEBMLMaxSizeLength
	IDDocType
	IDDocTypeVersion
	IDDocTypeReadVersion

	IDSegment

	IDSeekHead
	IDSeek
	IDSeekID
	IDSeekPosition

	IDInfo
	IDTimestampScale
	IDDuration
	IDSegmentUID
	IDTitle
	IDMuxingApp
	IDWritingApp

	IDTracks
	IDTrackEntry
	IDTrackNumber
	IDTrackUID
	IDTrackType
	IDCodecID
	IDCodecPrivate
	IDVideo
	IDPixelWidth
	IDPixelHeight
	IDColour
	IDMatrixCoefficients
	IDTransferCharacteristics
	IDPrimaries
	IDAudio
	IDSamplingFrequency
	IDChannels

	IDCues
	IDCuePoint
	IDCueTime
	IDCueTrackPositions
	IDCueTrack
	IDCueClusterPosition

	IDCluster
	IDTimestamp
	IDSimpleBlock

	numIDs
)

// noParent marks top-level elements.
const noParent ID = -1

type schemaEntry struct {
	name   string
	bytes  []byte
	parent bool
	up     ID
}

var schema = [numIDs]schemaEntry{
	IDEBML:               {"EBML", []byte{0x1A, 0x45, 0xDF, 0xA3}, true, noParent},
	IDEBMLVersion:        {"EBMLVersion", []byte{0x42, 0x86}, false, IDEBML},
	IDEBMLReadVersion:    {"EBMLReadVersion", []byte{0x42, 0xF7}, false, IDEBML},
	IDEBMLMaxIDLength:    {"EBMLMaxIDLength", []byte{0x42, 0xF2}, false, IDEBML},
	IDEBMLMaxSizeLength:  {"EBMLMaxSizeLength", []byte{0x42, 0xF3}, false, IDEBML},
	IDDocType:            {"DocType", []byte{0x42, 0x82}, false, IDEBML},
	IDDocTypeVersion:     {"DocTypeVersion", []byte{0x42, 0x87}, false, IDEBML},
	IDDocTypeReadVersion: {"DocTypeReadVersion", []byte{0x42, 0x85}, false, IDEBML},

	IDSegment: {"Segment", []byte{0x18, 0x53, 0x80, 0x67}, true, noParent},

	IDSeekHead:     {"SeekHead", []byte{0x11, 0x4D, 0x9B, 0x74}, true, IDSegment},
	IDSeek:         {"Seek", []byte{0x4D, 0xBB}, true, IDSeekHead},
	IDSeekID:       {"SeekID", []byte{0x53, 0xAB}, false, IDSeek},
	IDSeekPosition: {"SeekPosition", []byte{0x53, 0xAC}, false, IDSeek},

	IDInfo:           {"Info", []byte{0x15, 0x49, 0xA9, 0x66}, true, IDSegment},
	IDTimestampScale: {"TimestampScale", []byte{0x2A, 0xD7, 0xB1}, false, IDInfo},
	IDDuration:       {"Duration", []byte{0x44, 0x89}, false, IDInfo},
	IDSegmentUID:     {"SegmentUID", []byte{0x73, 0xA4}, false, IDInfo},
	IDTitle:          {"Title", []byte{0x7B, 0xA9}, false, IDInfo},
	IDMuxingApp:      {"MuxingApp", []byte{0x4D, 0x80}, false, IDInfo},
	IDWritingApp:     {"WritingApp", []byte{0x57, 0x41}, false, IDInfo},

	IDTracks:                  {"Tracks", []byte{0x16, 0x54, 0xAE, 0x6B}, true, IDSegment},
	IDTrackEntry:              {"TrackEntry", []byte{0xAE}, true, IDTracks},
	IDTrackNumber:             {"TrackNumber", []byte{0xD7}, false, IDTrackEntry},
	IDTrackUID:                {"TrackUID", []byte{0x73, 0xC5}, false, IDTrackEntry},
	IDTrackType:               {"TrackType", []byte{0x83}, false, IDTrackEntry},
	IDCodecID:                 {"CodecID", []byte{0x86}, false, IDTrackEntry},
	IDCodecPrivate:            {"CodecPrivate", []byte{0x63, 0xA2}, false, IDTrackEntry},
	IDVideo:                   {"Video", []byte{0xE0}, true, IDTrackEntry},
	IDPixelWidth:              {"PixelWidth", []byte{0xB0}, false, IDVideo},
	IDPixelHeight:             {"PixelHeight", []byte{0xBA}, false, IDVideo},
	IDColour:                  {"Colour", []byte{0x55, 0xB0}, true, IDVideo},
	IDMatrixCoefficients:      {"MatrixCoefficients", []byte{0x55, 0xB1}, false, IDColour},
	IDTransferCharacteristics: {"TransferCharacteristics", []byte{0x55, 0xBA}, false, IDColour},
	IDPrimaries:               {"Primaries", []byte{0x55, 0xBB}, false, IDColour},
	IDAudio:                   {"Audio", []byte{0xE1}, true, IDTrackEntry},
	IDSamplingFrequency:       {"SamplingFrequency", []byte{0xB5}, false, IDAudio},
	IDChannels:                {"Channels", []byte{0x9F}, false, IDAudio},

	IDCues:               {"Cues", []byte{0x1C, 0x53, 0xBB, 0x6B}, true, IDSegment},
	IDCuePoint:           {"CuePoint", []byte{0xBB}, true, IDCues},
	IDCueTime:            {"CueTime", []byte{0xB3}, false, IDCuePoint},
	IDCueTrackPositions:  {"CueTrackPositions", []byte{0xB7}, true, IDCuePoint},
	IDCueTrack:           {"CueTrack", []byte{0xF7}, false, IDCueTrackPositions},
	IDCueClusterPosition: {"CueClusterPosition", []byte{0xF1}, false, IDCueTrackPositions},

	IDCluster:     {"Cluster", []byte{0x1F, 0x43, 0xB6, 0x75}, true, IDSegment},
	IDTimestamp:   {"Timestamp", []byte{0xE7}, false, IDCluster},
	IDSimpleBlock: {"SimpleBlock", []byte{0xA3}, false, IDCluster},
}

// Bytes returns the binary element ID.
// The returned slice must not be modified.
func (id ID) Bytes() []byte {
	return schema[id].bytes
}

// IsParent reports whether the element holds child elements.
func (id ID) IsParent() bool {
	return schema[id].parent
}

// Parent returns the parent element and false for top-level elements.
func (id ID) Parent() (ID, bool) {
	p := schema[id].up
	return p, p != noParent
}

func (id ID) String() string {
	if id < 0 || id >= numIDs {
		return "Unknown"
	}
	return schema[id].name
}
