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

package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestFormatter_Format(t *testing.T) {
	f := &Formatter{TimestampFormat: "15:04"}
	entry := &logrus.Entry{
		Time:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:   logrus.DebugLevel,
		Message: "cycle detected",
		Data:    logrus.Fields{"type": "model.Node", "engine": "format"},
	}
	out, err := f.Format(entry)
	assert.NoError(t, err)
	assert.Equal(t, "03:04 [DEBUG] cycle detected engine=format type=model.Node\n", string(out))
}

func TestSetAndGet(t *testing.T) {
	prev := Get()
	defer Set(prev)

	var buf bytes.Buffer
	l := New(logrus.DebugLevel)
	l.SetOutput(&buf)
	l.SetFormatter(&Formatter{HideLogTime: true})
	Set(l)
	Set(nil) // ignored

	Get().WithField("k", 1).Debug("hello")
	assert.Equal(t, "[DEBUG] hello k=1\n", buf.String())
}
