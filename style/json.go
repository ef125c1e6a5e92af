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
	"encoding/json"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// jsonStyle renders JSON. Every field must be named and rendered in detail.
type jsonStyle struct {
	Base
}

func (j *jsonStyle) CheckField(name string, detail bool) error {
	if name == "" {
		return errors.Wrap(ErrInvalidStyleUsage, "field names are mandatory when using JSON style")
	}
	if !detail {
		return errors.Wrapf(ErrInvalidStyleUsage, "field %q: summary rendering is not supported by JSON style", name)
	}
	return nil
}

func (j *jsonStyle) AppendFieldStart(buf *bytes.Buffer, name string) {
	buf.WriteString(quote(name))
	buf.WriteString(j.cfg.FieldNameValueSeparator)
}

func (j *jsonStyle) AppendValue(buf *bytes.Buffer, s string) {
	switch s {
	case "NaN", "+Inf", "-Inf":
		buf.WriteString(quote(s))
	default:
		buf.WriteString(s)
	}
}

func (j *jsonStyle) AppendString(buf *bytes.Buffer, s string) {
	buf.WriteString(quote(s))
}

// AppendText keeps text that already is a JSON object or array.
func (j *jsonStyle) AppendText(buf *bytes.Buffer, s string) {
	if isJSONObject(s) || isJSONArray(s) {
		buf.WriteString(s)
		return
	}
	buf.WriteString(quote(s))
}

func (j *jsonStyle) AppendMapKey(buf *bytes.Buffer, key string) {
	buf.WriteString(quote(key))
	buf.WriteString(j.cfg.MapKeyValueSeparator)
}

func (j *jsonStyle) AppendCyclic(buf *bytes.Buffer, typeName, identity string) {
	buf.WriteString(quote(typeName + "@" + identity))
}

func (j *jsonStyle) derive(name string, cfg Config) Style {
	return &jsonStyle{Base{name: name, cfg: cfg}}
}

// validate rejects every knob that would let JSON output fall back to
// summaries or unnamed fields.
func (j *jsonStyle) validate() error {
	var result *multierror.Error
	if !j.cfg.UseFieldNames {
		result = multierror.Append(result, errors.Wrap(ErrInvalidConfig, "JSON style needs useFieldNames"))
	}
	if !j.cfg.DefaultFullDetail {
		result = multierror.Append(result, errors.Wrap(ErrInvalidConfig, "JSON style needs defaultFullDetail"))
	}
	if !j.cfg.ArrayContentDetail {
		result = multierror.Append(result, errors.Wrap(ErrInvalidConfig, "JSON style needs arrayContentDetail"))
	}
	if j.cfg.SummaryThreshold > 0 {
		result = multierror.Append(result,
			errors.Wrapf(ErrInvalidConfig, "JSON style cannot summarize collections (summaryThreshold %d)", j.cfg.SummaryThreshold))
	}
	return result.ErrorOrNil()
}

// quote returns s as a JSON string literal without HTML escaping.
func quote(s string) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	// strings always encode
	_ = enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}

func isJSONObject(s string) bool {
	return len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}'
}

func isJSONArray(s string) bool {
	return len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']'
}
