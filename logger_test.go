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
	"log"
	"sync"
)

func init() {
	SetLogger(&testLogger{})
}

// testLogger prints through the standard logger and keeps warnings.
type testLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (n *testLogger) Debug(args ...interface{}) {
	log.Print(args...)
}

func (n *testLogger) Debugf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

func (n *testLogger) Info(args ...interface{}) {
	log.Print(args...)
}

func (n *testLogger) Infof(format string, args ...interface{}) {
	log.Printf(format, args...)
}

func (n *testLogger) Warn(args ...interface{}) {
	n.warn(fmt.Sprint(args...))
}

func (n *testLogger) Warnf(format string, args ...interface{}) {
	n.warn(fmt.Sprintf(format, args...))
}

func (n *testLogger) Error(args ...interface{}) {
	log.Print(args...)
}

func (n *testLogger) Errorf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

func (n *testLogger) warn(msg string) {
	log.Print(msg)
	n.mu.Lock()
	n.warnings = append(n.warnings, msg)
	n.mu.Unlock()
}

func (n *testLogger) Warnings() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.warnings...)
}
