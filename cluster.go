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

// cluster is a non-empty ClusterInterval window of time-sorted samples.
type cluster struct {
	base    int64
	samples []*sample
	// payloadSize is the DataSize of the Cluster element.
	payloadSize uint64
	// size is the serialized length of the Cluster element.
	size uint64
}

func clusterBase(timestamp int64) int64 {
	return timestamp - timestamp%ClusterInterval
}

// partition groups time-sorted samples into clusters.
// Windows without samples produce no cluster.
func partition(samples []*sample) ([]*cluster, error) {
	var clusters []*cluster
	var cur *cluster
	for _, s := range samples {
		if base := clusterBase(s.timestamp); cur == nil || cur.base != base {
			cur = &cluster{base: base}
			clusters = append(clusters, cur)
		}
		cur.samples = append(cur.samples, s)
	}
	for _, c := range clusters {
		if err := c.computeSize(); err != nil {
			return nil, err
		}
	}
	return clusters, nil
}

// blockHeaderSize is the length of track number, relative timestamp and flags
// preceding the frame in a SimpleBlock.
func blockHeaderSize(trackNumber uint64) (uint64, error) {
	n, err := matroska.SizeLen(trackNumber)
	if err != nil {
		return 0, err
	}
	return uint64(n) + 3, nil
}

func (c *cluster) computeSize() error {
	size, err := matroska.ElementSize(matroska.IDTimestamp, uint64(len(matroska.Uint(uint64(c.base)))))
	if err != nil {
		return err
	}
	for _, s := range c.samples {
		h, err := blockHeaderSize(s.track)
		if err != nil {
			return err
		}
		n, err := matroska.ElementSize(matroska.IDSimpleBlock, h+uint64(s.size))
		if err != nil {
			return err
		}
		size += n
	}
	c.payloadSize = size
	c.size, err = matroska.ElementSize(matroska.IDCluster, size)
	return err
}
