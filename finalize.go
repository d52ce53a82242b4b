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
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/seqsense/webmmuxer/matroska"
)

const (
	simpleBlockFlagKeyframe = 0x80
	simpleBlockFlagNone     = 0x00

	outputBufferSize = 64 * 1024
)

// layout is the fully computed file structure. Only cluster payloads
// remain on disk until written.
type layout struct {
	ebmlHeader   []byte
	seekHead     []byte
	info         []byte
	tracks       []byte
	clusters     []*cluster
	clustersSize uint64
	cues         []byte
	segmentSize  uint64
	fileSize     uint64
	duration     int64
}

// Finalize sorts all samples by timestamp, writes the WebM file and removes
// the spill directory. It must not be called while producers are still
// writing. Any failure aborts the whole output; no partial file is left.
func (m *Muxer) Finalize() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.closed = true
	samples := m.samples
	m.samples = nil
	var tracks []*track
	for _, t := range []*track{m.audio, m.video} {
		if t != nil {
			tracks = append(tracks, t)
		}
	}
	m.mu.Unlock()

	var errs multiError
	errs.Add(m.finalize(samples, tracks))
	if err := os.RemoveAll(m.spillDir); err != nil {
		errs.Add(fmt.Errorf("removing spill directory: %w", err))
	}
	return errs.Err()
}

func (m *Muxer) finalize(samples []*sample, tracks []*track) error {
	l, err := newLayout(samples, tracks, m.opts)
	if err != nil {
		return err
	}
	Logger().Infof("Writing WebM (output:%s samples:%d clusters:%d duration:%s size:%d)",
		m.outputPath, len(samples), len(l.clusters), FormatTimestamp(l.duration), l.fileSize)

	f, err := os.Create(m.outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	err = l.writeTo(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing output: %w", cerr)
	}
	if err != nil {
		var errs multiError
		errs.Add(err)
		if rmErr := os.Remove(m.outputPath); rmErr != nil {
			errs.Add(fmt.Errorf("removing incomplete output: %w", rmErr))
		}
		return errs.Err()
	}
	return nil
}

func newLayout(samples []*sample, tracks []*track, opts *MuxerOptions) (*layout, error) {
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: no track", ErrTrackNotDeclared)
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].number < tracks[j].number
	})
	declared := make(map[uint64]bool)
	cueTrack := tracks[0].number
	for _, t := range tracks {
		declared[t.number] = true
		if t.trackType == TrackTypeVideo {
			cueTrack = t.number
		}
	}

	l := &layout{}
	for _, s := range samples {
		if !declared[s.track] {
			return nil, fmt.Errorf("%w: track %d", ErrTrackNotDeclared, s.track)
		}
		if s.timestamp > l.duration {
			l.duration = s.timestamp
		}
	}

	var err error
	if l.ebmlHeader, err = newEBMLHeader(); err != nil {
		return nil, err
	}
	if l.info, err = newInfo(l.duration, opts); err != nil {
		return nil, err
	}
	if l.tracks, err = newTracks(tracks); err != nil {
		return nil, err
	}

	sort.Stable(samplesByTimestamp(samples))
	if l.clusters, err = partition(samples); err != nil {
		return nil, err
	}
	for _, c := range l.clusters {
		l.clustersSize += c.size
	}

	if l.seekHead, err = newSeekHead(uint64(len(l.info)), uint64(len(l.tracks)), l.clustersSize); err != nil {
		return nil, err
	}
	firstCluster := uint64(len(l.seekHead) + len(l.info) + len(l.tracks))
	if l.cues, err = newCues(l.clusters, firstCluster, cueTrack); err != nil {
		return nil, err
	}

	l.segmentSize = firstCluster + l.clustersSize + uint64(len(l.cues))
	segment, err := matroska.ElementSize(matroska.IDSegment, l.segmentSize)
	if err != nil {
		return nil, err
	}
	l.fileSize = uint64(len(l.ebmlHeader)) + segment
	return l, nil
}

func newEBMLHeader() ([]byte, error) {
	e, err := matroska.NewMaster(matroska.IDEBML,
		matroska.NewUint(matroska.IDEBMLVersion, 1),
		matroska.NewUint(matroska.IDEBMLReadVersion, 1),
		matroska.NewUint(matroska.IDEBMLMaxIDLength, 4),
		matroska.NewUint(matroska.IDEBMLMaxSizeLength, 8),
		matroska.NewString(matroska.IDDocType, DocType),
		matroska.NewUint(matroska.IDDocTypeVersion, 4),
		matroska.NewUint(matroska.IDDocTypeReadVersion, 2),
	)
	if err != nil {
		return nil, err
	}
	return e.Marshal()
}

func newInfo(duration int64, opts *MuxerOptions) ([]byte, error) {
	children := []matroska.Element{
		matroska.NewUint(matroska.IDTimestampScale, TimestampScale),
	}
	if len(opts.segmentUID) > 0 {
		children = append(children, matroska.NewBinary(matroska.IDSegmentUID, opts.segmentUID))
	}
	if opts.title != "" {
		children = append(children, matroska.NewString(matroska.IDTitle, opts.title))
	}
	children = append(children,
		matroska.NewString(matroska.IDMuxingApp, opts.muxingApp),
		matroska.NewString(matroska.IDWritingApp, opts.writingApp),
		matroska.NewFloat(matroska.IDDuration, float32(duration)),
	)
	e, err := matroska.NewMaster(matroska.IDInfo, children...)
	if err != nil {
		return nil, err
	}
	return e.Marshal()
}

func newTracks(tracks []*track) ([]byte, error) {
	var data []byte
	for _, t := range tracks {
		data = append(data, t.entry...)
	}
	return matroska.NewBinary(matroska.IDTracks, data).Marshal()
}

// newCues returns one CuePoint per cluster pointing at cueTrack.
func newCues(clusters []*cluster, firstCluster, cueTrack uint64) ([]byte, error) {
	pos := firstCluster
	var points []matroska.Element
	for _, c := range clusters {
		positions, err := matroska.NewMaster(matroska.IDCueTrackPositions,
			matroska.NewUint(matroska.IDCueTrack, cueTrack),
			matroska.NewUint(matroska.IDCueClusterPosition, pos),
		)
		if err != nil {
			return nil, err
		}
		point, err := matroska.NewMaster(matroska.IDCuePoint,
			matroska.NewUint(matroska.IDCueTime, uint64(c.base)),
			positions,
		)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
		pos += c.size
	}
	e, err := matroska.NewMaster(matroska.IDCues, points...)
	if err != nil {
		return nil, err
	}
	return e.Marshal()
}

func (l *layout) writeTo(w io.Writer) error {
	buf := bufio.NewWriterSize(w, outputBufferSize)
	cw := &countingWriter{Writer: buf}

	cw.Write(l.ebmlHeader)
	if err := matroska.WriteHeader(cw, matroska.IDSegment, l.segmentSize); err != nil {
		return fmt.Errorf("writing segment: %w", err)
	}
	cw.Write(l.seekHead)
	cw.Write(l.info)
	cw.Write(l.tracks)
	for _, c := range l.clusters {
		if err := writeCluster(cw, c); err != nil {
			return fmt.Errorf("writing cluster %s: %w", FormatTimestamp(c.base), err)
		}
	}
	cw.Write(l.cues)

	if err := cw.Err(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	if n := cw.Written(); n != l.fileSize {
		return fmt.Errorf("%w: wrote %d bytes, expected %d", ErrSizeMismatch, n, l.fileSize)
	}
	return nil
}

func writeCluster(w io.Writer, c *cluster) error {
	if err := matroska.WriteHeader(w, matroska.IDCluster, c.payloadSize); err != nil {
		return err
	}
	ts, err := matroska.NewUint(matroska.IDTimestamp, uint64(c.base)).Marshal()
	if err != nil {
		return err
	}
	if _, err := w.Write(ts); err != nil {
		return err
	}
	for _, s := range c.samples {
		b, err := s.load()
		if err != nil {
			return err
		}
		h, err := blockHeaderSize(s.track)
		if err != nil {
			return err
		}
		if err := matroska.WriteHeader(w, matroska.IDSimpleBlock, h+uint64(len(b))); err != nil {
			return err
		}
		head, err := matroska.EncodeSize(s.track)
		if err != nil {
			return err
		}
		head = append(head, matroska.Int16(int16(s.timestamp-c.base))...)
		if s.keyframe {
			head = append(head, simpleBlockFlagKeyframe)
		} else {
			head = append(head, simpleBlockFlagNone)
		}
		if _, err := w.Write(head); err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}
