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
	"github.com/seqsense/webmmuxer/matroska"
)

// maxSeekHeadIterations bounds the fixpoint iteration in newSeekHead.
// Each iteration grows the SeekHead by at least one byte, and the growth is
// limited by the byte lengths of four positions and of the SeekHead DataSize.
const maxSeekHeadIterations = 8

// seekHeadAt returns the SeekHead assuming it serializes to seekHeadSize bytes.
// Positions are relative to the first byte of the Segment payload.
func seekHeadAt(seekHeadSize, infoSize, tracksSize, clustersSize uint64) ([]byte, error) {
	infoPos := seekHeadSize
	tracksPos := infoPos + infoSize
	clusterPos := tracksPos + tracksSize
	cuesPos := clusterPos + clustersSize

	var seeks []matroska.Element
	for _, s := range []struct {
		id  matroska.ID
		pos uint64
	}{
		{matroska.IDInfo, infoPos},
		{matroska.IDTracks, tracksPos},
		{matroska.IDCluster, clusterPos},
		{matroska.IDCues, cuesPos},
	} {
		seek, err := matroska.NewMaster(matroska.IDSeek,
			matroska.NewBinary(matroska.IDSeekID, s.id.Bytes()),
			matroska.NewUint(matroska.IDSeekPosition, s.pos),
		)
		if err != nil {
			return nil, err
		}
		seeks = append(seeks, seek)
	}
	e, err := matroska.NewMaster(matroska.IDSeekHead, seeks...)
	if err != nil {
		return nil, err
	}
	return e.Marshal()
}

// newSeekHead resolves the SeekHead whose positions depend on its own length.
// Starting from an assumed length of zero, the SeekHead is rebuilt with the
// measured length until the length no longer changes.
func newSeekHead(infoSize, tracksSize, clustersSize uint64) ([]byte, error) {
	var assumed uint64
	for i := 0; i < maxSeekHeadIterations; i++ {
		b, err := seekHeadAt(assumed, infoSize, tracksSize, clustersSize)
		if err != nil {
			return nil, err
		}
		if uint64(len(b)) == assumed {
			Logger().Debugf("SeekHead resolved (size:%d iterations:%d)", assumed, i+1)
			return b, nil
		}
		assumed = uint64(len(b))
	}
	return nil, ErrSeekHeadNotConverged
}
