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
	"errors"
	"io/fs"
	"testing"
)

func TestMultiError(t *testing.T) {
	errA := errors.New("a")
	errB := &fs.PathError{Op: "remove", Path: "x", Err: fs.ErrPermission}

	var none multiError
	none.Add(nil)
	if err := none.Err(); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}

	var one multiError
	one.Add(errA)
	if err := one.Err(); err != errA {
		t.Errorf("Expected the only error to be returned as is, got %v", err)
	}

	var two multiError
	two.Add(errA)
	two.Add(errB)
	err := two.Err()
	if !errors.Is(err, errA) || !errors.Is(err, fs.ErrPermission) {
		t.Errorf("Expected both errors to be matched: %v", err)
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) || pathErr.Path != "x" {
		t.Errorf("Expected PathError to be extracted: %v", err)
	}
	if s := err.Error(); s != "multiple errors: 'a' 'remove x: permission denied'" {
		t.Errorf("Unexpected message: %s", s)
	}
}
