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

package webmtest

import (
	"errors"
	"testing"

	"github.com/at-wat/ebml-go"
	"github.com/google/go-cmp/cmp"

	"github.com/seqsense/webmmuxer/matroska"
)

func TestSegmentChildren(t *testing.T) {
	header := []byte{0x1A, 0x45, 0xDF, 0xA3, 0x84, 0x42, 0x86, 0x81, 0x01}
	info := []byte{0x15, 0x49, 0xA9, 0x66, 0x80}
	cluster := []byte{0x1F, 0x43, 0xB6, 0x75, 0x83, 0xE7, 0x81, 0x00}

	t.Run("Valid", func(t *testing.T) {
		b := append([]byte{}, header...)
		b = append(b, 0x18, 0x53, 0x80, 0x67, 0x8D)
		b = append(b, info...)
		b = append(b, cluster...)

		children, err := SegmentChildren(b)
		if err != nil {
			t.Fatal(err)
		}
		expected := []Child{
			{ID: matroska.IDInfo, Offset: 0},
			{ID: matroska.IDCluster, Offset: 5},
		}
		if diff := cmp.Diff(expected, children); diff != "" {
			t.Errorf("Unexpected children (-expected +actual):\n%s", diff)
		}
	})

	testCases := map[string]struct {
		input    []byte
		expected error
	}{
		"Empty": {
			nil,
			ErrUnexpectedElement,
		},
		"NoSegment": {
			header,
			ErrUnexpectedElement,
		},
		"TruncatedSegment": {
			append(append(append([]byte{}, header...), 0x18, 0x53, 0x80, 0x67, 0x8F), append(info, cluster...)...),
			nil,
		},
		"TruncatedChild": {
			append(append([]byte{}, header...), 0x18, 0x53, 0x80, 0x67, 0x85, 0x15, 0x49, 0xA9, 0x66, 0x82),
			ebml.ErrInvalidElementSize,
		},
	}
	for name, c := range testCases {
		c := c
		t.Run(name, func(t *testing.T) {
			_, err := SegmentChildren(c.input)
			if err == nil {
				t.Fatal("Expected error")
			}
			if c.expected != nil && !errors.Is(err, c.expected) {
				t.Errorf("Expected %v, got %v", c.expected, err)
			}
		})
	}
}
