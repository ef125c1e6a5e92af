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

package style

import (
	"bytes"
	"strconv"
	"strings"
)

// Base renders every hook from its Config.
type Base struct {
	name string
	cfg  Config
}

var _ Style = (*Base)(nil)

// Name returns the preset name.
func (b *Base) Name() string { return b.name }

// Config returns a copy of the knobs.
func (b *Base) Config() Config { return b.cfg }

// CheckField accepts every field.
func (b *Base) CheckField(string, bool) error { return nil }

func (b *Base) AppendStart(buf *bytes.Buffer, typeName, identity string) {
	if b.cfg.UseTypeName && typeName != "" {
		buf.WriteString(typeName)
	}
	if b.cfg.UseIdentity && identity != "" {
		buf.WriteByte('@')
		buf.WriteString(identity)
	}
	buf.WriteString(b.cfg.ContentStart)
	if b.cfg.FieldSeparatorAtStart {
		buf.WriteString(b.cfg.FieldSeparator)
	}
}

func (b *Base) AppendEnd(buf *bytes.Buffer) {
	if !b.cfg.FieldSeparatorAtEnd {
		b.removeLastFieldSeparator(buf)
	}
	buf.WriteString(b.cfg.ContentEnd)
}

func (b *Base) AppendFieldStart(buf *bytes.Buffer, name string) {
	if b.cfg.UseFieldNames && name != "" {
		buf.WriteString(name)
		buf.WriteString(b.cfg.FieldNameValueSeparator)
	}
}

func (b *Base) AppendFieldEnd(buf *bytes.Buffer) {
	buf.WriteString(b.cfg.FieldSeparator)
}

func (b *Base) AppendNull(buf *bytes.Buffer) {
	buf.WriteString(b.cfg.NullText)
}

func (b *Base) AppendValue(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
}

func (b *Base) AppendString(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
}

func (b *Base) AppendText(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
}

func (b *Base) AppendMapKey(buf *bytes.Buffer, key string) {
	buf.WriteString(key)
	buf.WriteString(b.cfg.MapKeyValueSeparator)
}

func (b *Base) AppendSummarySize(buf *bytes.Buffer, n int) {
	buf.WriteString(b.cfg.SizeStartText)
	buf.WriteString(strconv.Itoa(n))
	buf.WriteString(b.cfg.SizeEndText)
}

func (b *Base) AppendSummaryObject(buf *bytes.Buffer, typeName string) {
	buf.WriteString(b.cfg.SummaryObjectStartText)
	buf.WriteString(typeName)
	buf.WriteString(b.cfg.SummaryObjectEndText)
}

func (b *Base) AppendCyclic(buf *bytes.Buffer, typeName, identity string) {
	buf.WriteString(typeName)
	buf.WriteByte('@')
	buf.WriteString(identity)
}

func (b *Base) AppendToString(buf *bytes.Buffer, text string) {
	inner, ok := Inner(b.cfg, text)
	if !ok {
		return
	}
	if b.cfg.FieldSeparatorAtStart {
		b.removeLastFieldSeparator(buf)
	}
	buf.WriteString(inner)
	b.AppendFieldEnd(buf)
}

// Inner returns the span of text between the first content start and the
// last content end. ok is false when there is no such non-empty span.
func Inner(cfg Config, text string) (string, bool) {
	start := strings.Index(text, cfg.ContentStart)
	end := strings.LastIndex(text, cfg.ContentEnd)
	if start < 0 || end < 0 {
		return "", false
	}
	start += len(cfg.ContentStart)
	if start >= end {
		return "", false
	}
	return text[start:end], true
}

func (b *Base) removeLastFieldSeparator(buf *bytes.Buffer) {
	sep := b.cfg.FieldSeparator
	if sep != "" && bytes.HasSuffix(buf.Bytes(), []byte(sep)) {
		buf.Truncate(buf.Len() - len(sep))
	}
}

func (b *Base) derive(name string, cfg Config) Style {
	return &Base{name: name, cfg: cfg}
}
