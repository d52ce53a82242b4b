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

// Package webmtest decodes WebM files written by webmmuxer for verification.
package webmtest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/at-wat/ebml-go"

	"github.com/seqsense/webmmuxer/matroska"
)

type File struct {
	Header  EBMLHeader `ebml:"EBML"`
	Segment Segment
}

type EBMLHeader struct {
	EBMLVersion            uint64
	EBMLReadVersion        uint64
	EBMLMaxIDLength        uint64
	EBMLMaxSizeLength      uint64
	EBMLDocType            string
	EBMLDocTypeVersion     uint64
	EBMLDocTypeReadVersion uint64
}

type Segment struct {
	SeekHead SeekHead
	Info     Info
	Tracks   Tracks
	Cluster  []Cluster
	Cues     Cues
}

type SeekHead struct {
	Seek []Seek
}

type Seek struct {
	SeekID       []byte
	SeekPosition uint64
}

type Info struct {
	TimecodeScale uint64
	SegmentUID    []byte
	Title         string
	MuxingApp     string
	WritingApp    string
	Duration      float64
}

type Tracks struct {
	TrackEntry []TrackEntry
}

type TrackEntry struct {
	TrackNumber  uint64
	TrackUID     uint64
	TrackType    uint64
	CodecID      string
	CodecPrivate []byte
	Video        Video
	Audio        Audio
}

type Video struct {
	PixelWidth  uint64
	PixelHeight uint64
	Colour      Colour
}

type Colour struct {
	MatrixCoefficients      uint64
	TransferCharacteristics uint64
	Primaries               uint64
}

type Audio struct {
	SamplingFrequency float64
	Channels          uint64
}

type Cluster struct {
	Timecode    uint64
	SimpleBlock []ebml.Block
}

type Cues struct {
	CuePoint []CuePoint
}

type CuePoint struct {
	CueTime           uint64
	CueTrackPositions CueTrackPositions
}

type CueTrackPositions struct {
	CueTrack           uint64
	CueClusterPosition uint64
}

// Parse decodes a whole WebM file.
func Parse(r io.Reader) (*File, error) {
	f := &File{}
	if err := ebml.Unmarshal(r, f); err != nil {
		return nil, err
	}
	return f, nil
}

// ReadFile decodes the file at path and also returns its raw bytes.
func ReadFile(path string) (*File, []byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := Parse(bytes.NewReader(b))
	if err != nil {
		return nil, nil, err
	}
	return f, b, nil
}

// Child is a direct child of the Segment element.
type Child struct {
	ID matroska.ID
	// Offset is relative to the first byte of the Segment payload.
	Offset uint64
}

var ErrUnexpectedElement = errors.New("unexpected element")

var segmentChildIDs = map[string]matroska.ID{
	"SeekHead": matroska.IDSeekHead,
	"Info":     matroska.IDInfo,
	"Tracks":   matroska.IDTracks,
	"Cluster":  matroska.IDCluster,
	"Cues":     matroska.IDCues,
}

// SegmentChildren lists the elements directly under Segment in file order.
// Positions are taken from the element read hooks of ebml-go.
func SegmentChildren(b []byte) ([]Child, error) {
	var segment *ebml.Element
	var elems []*ebml.Element
	hook := func(e *ebml.Element) {
		switch {
		case e.Name == "Segment" && e.Parent == nil:
			segment = e
		case e.Parent != nil && e.Parent.Name == "Segment":
			elems = append(elems, e)
		}
	}
	if err := ebml.Unmarshal(bytes.NewReader(b), &File{}, ebml.WithElementReadHooks(hook)); err != nil {
		return nil, err
	}
	if segment == nil {
		return nil, fmt.Errorf("%w: no Segment", ErrUnexpectedElement)
	}
	if len(elems) == 0 {
		return nil, nil
	}
	sort.Slice(elems, func(i, j int) bool { return elems[i].Position < elems[j].Position })

	// The first child starts right after the Segment header.
	start := elems[0].Position
	if start <= segment.Position {
		return nil, fmt.Errorf("%w: %s at %d precedes Segment", ErrUnexpectedElement, elems[0].Name, start)
	}
	if end := start + segment.Size; end != uint64(len(b)) {
		return nil, fmt.Errorf("segment ends at %d, file size %d", end, len(b))
	}

	children := make([]Child, 0, len(elems))
	for _, e := range elems {
		id, ok := segmentChildIDs[e.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s in Segment", ErrUnexpectedElement, e.Name)
		}
		children = append(children, Child{ID: id, Offset: e.Position - start})
	}
	return children, nil
}
