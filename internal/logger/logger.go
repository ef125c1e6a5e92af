/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package logger holds the process-wide logger used by the traversal engines.
package logger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

const defaultTimestampFormat = "2006-01-02 15:04:05"

var current atomic.Pointer[holder]

type holder struct {
	l logrus.FieldLogger
}

func init() {
	current.Store(&holder{l: New(logrus.WarnLevel)})
}

// New builds a logrus logger writing to stderr with Formatter.
func New(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(level)
	l.SetFormatter(&Formatter{})
	return l
}

// Get returns the current logger.
func Get() logrus.FieldLogger {
	return current.Load().l
}

// Set replaces the current logger. A nil logger is ignored.
func Set(l logrus.FieldLogger) {
	if l == nil {
		return
	}
	current.Store(&holder{l: l})
}

// Formatter renders "time [LEVEL] [file:line] message k=v ...".
type Formatter struct {
	// HideLogTime drops the timestamp.
	HideLogTime bool
	// TimestampFormat defaults to "2006-01-02 15:04:05".
	TimestampFormat string
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	if !f.HideLogTime {
		ts := f.TimestampFormat
		if ts == "" {
			ts = defaultTimestampFormat
		}
		b.WriteString(entry.Time.Format(ts))
		b.WriteByte(' ')
	}

	fmt.Fprintf(b, "[%s] ", strings.ToUpper(entry.Level.String()))
	if entry.HasCaller() {
		fmt.Fprintf(b, "[%s:%d] ", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
