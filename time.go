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
	"strconv"
	"strings"
)

// FormatTimestamp formats milliseconds as "seconds[.millis]".
func FormatTimestamp(ms int64) string {
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	if millis := ms % 1000; millis > 0 {
		return fmt.Sprintf("%s%d.%03d", sign, ms/1000, millis)
	}
	return fmt.Sprintf("%s%d", sign, ms/1000)
}

// ParseTimestamp parses "seconds[.fraction]" into milliseconds.
// Digits below a millisecond are truncated.
func ParseTimestamp(timestamp string) (int64, error) {
	s := timestamp
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	secMillis := strings.Split(s, ".")
	if len(secMillis) != 1 && len(secMillis) != 2 {
		return 0, fmt.Errorf("failed to parse timestamp: %s", timestamp)
	}
	seconds, err := strconv.ParseInt(secMillis[0], 10, 64)
	if err != nil {
		return 0, err
	}
	ms := seconds * 1000
	if len(secMillis) == 2 {
		millis, err := strconv.ParseInt((secMillis[1] + "000")[:3], 10, 64)
		if err != nil {
			return 0, err
		}
		ms += millis
	}
	if neg {
		ms = -ms
	}
	return ms, nil
}
