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

// Package style defines the formatting policies used by package format.
//
// A Style is a set of knobs (Config) plus a few hooks the formatting engine
// calls at each step. Base implements every hook from its Config; the JSON
// style embeds Base and overrides the hooks that need quoting. Styles are
// immutable once built and safe for concurrent use.
package style

import (
	"bytes"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidStyleUsage is returned when a style is asked to render a
	// field it cannot express, such as an unnamed or summary field in JSON.
	ErrInvalidStyleUsage = errors.New("structx(style): invalid style usage")
	// ErrUnknownStyle is returned when no preset has the requested name.
	ErrUnknownStyle = errors.New("structx(style): unknown style")
	// ErrConflictingRegistration is returned when a different style is
	// already registered under the same name.
	ErrConflictingRegistration = errors.New("structx(style): conflicting style registration")
	// ErrInvalidConfig is returned for inconsistent knobs.
	ErrInvalidConfig = errors.New("structx(style): invalid config")
)

// Style is a formatting policy.
type Style interface {
	// Name is the preset name, empty for anonymous styles.
	Name() string
	// Config returns a copy of the knobs.
	Config() Config

	// CheckField validates a field append before anything is written.
	// name is empty for unnamed appends; detail is the resolved mode.
	CheckField(name string, detail bool) error

	// AppendStart writes the type name, identity marker and content start.
	// Empty typeName or identity are omitted.
	AppendStart(buf *bytes.Buffer, typeName, identity string)
	// AppendEnd drops a trailing separator and writes the content end.
	AppendEnd(buf *bytes.Buffer)
	// AppendFieldStart writes the field name and name/value separator.
	AppendFieldStart(buf *bytes.Buffer, name string)
	// AppendFieldEnd writes the field separator.
	AppendFieldEnd(buf *bytes.Buffer)

	// AppendNull writes the null text.
	AppendNull(buf *bytes.Buffer)
	// AppendValue writes a number or boolean.
	AppendValue(buf *bytes.Buffer, s string)
	// AppendString writes a string value.
	AppendString(buf *bytes.Buffer, s string)
	// AppendText writes text produced by a value's own String method.
	AppendText(buf *bytes.Buffer, s string)
	// AppendMapKey writes a map key followed by the key/value separator.
	AppendMapKey(buf *bytes.Buffer, key string)

	// AppendSummarySize writes the size marker of a collection.
	AppendSummarySize(buf *bytes.Buffer, n int)
	// AppendSummaryObject writes the summary marker of a struct.
	AppendSummaryObject(buf *bytes.Buffer, typeName string)
	// AppendCyclic writes the placeholder of a value already being rendered.
	AppendCyclic(buf *bytes.Buffer, typeName, identity string)

	// AppendToString splices the content of text, a rendering produced with
	// the same style, between the current content delimiters.
	AppendToString(buf *bytes.Buffer, text string)
}

// Config holds the knobs of a style.
type Config struct {
	// UseTypeName prefixes the content with the type name.
	UseTypeName bool `yaml:"useTypeName" toml:"useTypeName"`
	// UseShortTypeName drops the package qualifier from the type name.
	UseShortTypeName bool `yaml:"useShortTypeName" toml:"useShortTypeName"`
	// UseIdentity writes "@identity" after the type name for reference values.
	UseIdentity bool `yaml:"useIdentity" toml:"useIdentity"`
	// UseFieldNames writes "name<sep>" before each field value.
	UseFieldNames bool `yaml:"useFieldNames" toml:"useFieldNames"`
	// DefaultFullDetail selects detail rendering when a call does not say.
	DefaultFullDetail bool `yaml:"defaultFullDetail" toml:"defaultFullDetail"`
	// ArrayContentDetail renders array and map elements in detail.
	ArrayContentDetail bool `yaml:"arrayContentDetail" toml:"arrayContentDetail"`

	ContentStart string `yaml:"contentStart" toml:"contentStart"`
	ContentEnd   string `yaml:"contentEnd" toml:"contentEnd"`

	FieldNameValueSeparator string `yaml:"fieldNameValueSeparator" toml:"fieldNameValueSeparator"`
	FieldSeparator          string `yaml:"fieldSeparator" toml:"fieldSeparator"`
	// FieldSeparatorAtStart writes a separator right after the content start.
	FieldSeparatorAtStart bool `yaml:"fieldSeparatorAtStart" toml:"fieldSeparatorAtStart"`
	// FieldSeparatorAtEnd keeps the separator after the last field.
	FieldSeparatorAtEnd bool `yaml:"fieldSeparatorAtEnd" toml:"fieldSeparatorAtEnd"`

	ArrayStart     string `yaml:"arrayStart" toml:"arrayStart"`
	ArraySeparator string `yaml:"arraySeparator" toml:"arraySeparator"`
	ArrayEnd       string `yaml:"arrayEnd" toml:"arrayEnd"`

	MapStart             string `yaml:"mapStart" toml:"mapStart"`
	MapSeparator         string `yaml:"mapSeparator" toml:"mapSeparator"`
	MapKeyValueSeparator string `yaml:"mapKeyValueSeparator" toml:"mapKeyValueSeparator"`
	MapEnd               string `yaml:"mapEnd" toml:"mapEnd"`

	NullText               string `yaml:"nullText" toml:"nullText"`
	SizeStartText          string `yaml:"sizeStartText" toml:"sizeStartText"`
	SizeEndText            string `yaml:"sizeEndText" toml:"sizeEndText"`
	SummaryObjectStartText string `yaml:"summaryObjectStartText" toml:"summaryObjectStartText"`
	SummaryObjectEndText   string `yaml:"summaryObjectEndText" toml:"summaryObjectEndText"`

	// SummaryThreshold renders arrays and maps longer than it in summary.
	// Zero disables the threshold.
	SummaryThreshold int `yaml:"summaryThreshold" toml:"summaryThreshold"`
}

// Validate reports every inconsistent knob, each wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var result *multierror.Error
	if c.SummaryThreshold < 0 {
		result = multierror.Append(result,
			errors.Wrapf(ErrInvalidConfig, "summaryThreshold %d is negative", c.SummaryThreshold))
	}
	if (c.ContentStart == "") != (c.ContentEnd == "") {
		result = multierror.Append(result,
			errors.Wrapf(ErrInvalidConfig, "content delimiters %q and %q must be both set or both empty", c.ContentStart, c.ContentEnd))
	}
	if c.FieldSeparator == "" && (c.FieldSeparatorAtStart || c.FieldSeparatorAtEnd) {
		result = multierror.Append(result,
			errors.Wrap(ErrInvalidConfig, "field separator position set without a field separator"))
	}
	if c.UseShortTypeName && !c.UseTypeName {
		result = multierror.Append(result,
			errors.Wrap(ErrInvalidConfig, "useShortTypeName requires useTypeName"))
	}
	return result.ErrorOrNil()
}

// Detail resolves a per-call detail request against the style default.
func Detail(s Style, detail *bool) bool {
	if detail != nil {
		return *detail
	}
	return s.Config().DefaultFullDetail
}
