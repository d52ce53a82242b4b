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

// LoggerIF is the logger used by the muxer.
// *logrus.Logger and *logrus.Entry satisfy it.
type LoggerIF interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

var logger LoggerIF = discardLogger{}

// SetLogger replaces the package logger. Passing nil disables logging.
func SetLogger(l LoggerIF) {
	if l == nil {
		l = discardLogger{}
	}
	logger = l
}

func Logger() LoggerIF {
	return logger
}

type discardLogger struct{}

func (discardLogger) Debug(args ...interface{})                 {}
func (discardLogger) Debugf(format string, args ...interface{}) {}
func (discardLogger) Info(args ...interface{})                  {}
func (discardLogger) Infof(format string, args ...interface{})  {}
func (discardLogger) Warn(args ...interface{})                  {}
func (discardLogger) Warnf(format string, args ...interface{})  {}
func (discardLogger) Error(args ...interface{})                 {}
func (discardLogger) Errorf(format string, args ...interface{}) {}
