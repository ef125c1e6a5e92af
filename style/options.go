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

// Option adjusts a style under construction.
type Option func(*settings)

type settings struct {
	name string
	cfg  Config
}

type deriver interface {
	derive(name string, cfg Config) Style
}

type validator interface {
	validate() error
}

// New builds a Base style from cfg and opts. It does not validate; see Derive.
func New(cfg Config, opts ...Option) Style {
	s := apply(settings{cfg: cfg}, opts)
	return &Base{name: s.name, cfg: s.cfg}
}

// Derive builds a style of the same kind as base (JSON stays JSON) with
// base's knobs adjusted by opts. The result is unnamed unless WithName is
// given, and is validated.
func Derive(base Style, opts ...Option) (Style, error) {
	s := apply(settings{cfg: base.Config()}, opts)
	return build(base, s.name, s.cfg)
}

func build(base Style, name string, cfg Config) (Style, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var st Style
	if d, ok := base.(deriver); ok {
		st = d.derive(name, cfg)
	} else {
		st = &Base{name: name, cfg: cfg}
	}
	if v, ok := st.(validator); ok {
		if err := v.validate(); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func apply(s settings, opts []Option) settings {
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// WithName names the style.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithConfig replaces every knob.
func WithConfig(cfg Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithTypeName toggles the type name prefix and its short form.
func WithTypeName(use, short bool) Option {
	return func(s *settings) {
		s.cfg.UseTypeName = use
		s.cfg.UseShortTypeName = short
	}
}

// WithIdentity toggles the identity marker.
func WithIdentity(use bool) Option {
	return func(s *settings) { s.cfg.UseIdentity = use }
}

// WithFieldNames toggles field names.
func WithFieldNames(use bool) Option {
	return func(s *settings) { s.cfg.UseFieldNames = use }
}

// WithContent sets the content delimiters.
func WithContent(start, end string) Option {
	return func(s *settings) {
		s.cfg.ContentStart = start
		s.cfg.ContentEnd = end
	}
}

// WithFieldSeparator sets the field separator and where it is written.
func WithFieldSeparator(sep string, atStart, atEnd bool) Option {
	return func(s *settings) {
		s.cfg.FieldSeparator = sep
		s.cfg.FieldSeparatorAtStart = atStart
		s.cfg.FieldSeparatorAtEnd = atEnd
	}
}

// WithArray sets the array delimiters.
func WithArray(start, sep, end string) Option {
	return func(s *settings) {
		s.cfg.ArrayStart = start
		s.cfg.ArraySeparator = sep
		s.cfg.ArrayEnd = end
	}
}

// WithMap sets the map delimiters.
func WithMap(start, sep, keyValueSep, end string) Option {
	return func(s *settings) {
		s.cfg.MapStart = start
		s.cfg.MapSeparator = sep
		s.cfg.MapKeyValueSeparator = keyValueSep
		s.cfg.MapEnd = end
	}
}

// WithNullText sets the text of nil values.
func WithNullText(text string) Option {
	return func(s *settings) { s.cfg.NullText = text }
}

// WithDetail sets the default rendering mode.
func WithDetail(full bool) Option {
	return func(s *settings) { s.cfg.DefaultFullDetail = full }
}

// WithSummaryThreshold renders collections longer than n in summary.
func WithSummaryThreshold(n int) Option {
	return func(s *settings) { s.cfg.SummaryThreshold = n }
}
