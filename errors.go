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
)

var (
	// ErrUnsupportedCodec is returned when declaring a track with an unknown codec ID.
	ErrUnsupportedCodec = errors.New("unsupported codec")
	// ErrInvalidTrack is returned for non-positive video size, sampling frequency or channels.
	ErrInvalidTrack = errors.New("invalid track parameter")
	// ErrInvalidTrackNumber is returned by New when the track numbers are zero or equal.
	ErrInvalidTrackNumber = errors.New("invalid track number")
	// ErrTrackDeclared is returned when a track kind is declared twice.
	ErrTrackDeclared = errors.New("track already declared")
	// ErrTrackNotDeclared is returned when writing to an undeclared track.
	ErrTrackNotDeclared = errors.New("track not declared")
	// ErrNegativeTimestamp is returned when writing a sample before 0.
	ErrNegativeTimestamp = errors.New("negative timestamp")
	// ErrNoSamples is returned by Finalize when nothing was written.
	ErrNoSamples = errors.New("no samples written")
	// ErrClosed is returned when declaring, writing or finalizing after Finalize or Close.
	ErrClosed = errors.New("muxer closed")
	// ErrSeekHeadNotConverged is returned when the SeekHead size keeps changing.
	ErrSeekHeadNotConverged = errors.New("seek head size did not converge")
	// ErrSizeMismatch is returned when the output or a spilled sample differs
	// from its expected size.
	ErrSizeMismatch = errors.New("written size differs from computed layout")
)
