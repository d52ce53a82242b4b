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
	"path/filepath"

	"github.com/google/uuid"
)

// sample is an encoded frame spilled to disk.
type sample struct {
	track     uint64
	timestamp int64
	keyframe  bool
	size      int
	path      string
}

func spill(dir string, b []byte) (string, error) {
	path := filepath.Join(dir, "sample-"+uuid.NewString())
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return "", fmt.Errorf("creating spill file: %w", err)
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing spill file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing spill file: %w", err)
	}
	return path, nil
}

// load reads the payload back and removes the spill file.
func (s *sample) load() ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading spill file: %w", err)
	}
	if len(b) != s.size {
		return nil, fmt.Errorf("%w: spill file %s has %d bytes, expected %d",
			ErrSizeMismatch, filepath.Base(s.path), len(b), s.size)
	}
	if err := os.Remove(s.path); err != nil {
		return nil, fmt.Errorf("removing spill file: %w", err)
	}
	return b, nil
}

type samplesByTimestamp []*sample

func (s samplesByTimestamp) Len() int {
	return len(s)
}

func (s samplesByTimestamp) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

func (s samplesByTimestamp) Less(i, j int) bool {
	return s[i].timestamp < s[j].timestamp
}
