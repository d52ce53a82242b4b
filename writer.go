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
	"io"
)

// countingWriter keeps the first write error and counts written bytes.
// Once an error occurred, subsequent writes are dropped and return it.
type countingWriter struct {
	io.Writer
	n   uint64
	err error
}

func (w *countingWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.Writer.Write(b)
	w.n += uint64(n)
	if err != nil {
		w.err = err
	}
	return n, err
}

func (w *countingWriter) Err() error {
	return w.err
}

func (w *countingWriter) Written() uint64 {
	return w.n
}
