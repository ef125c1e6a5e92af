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
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Preset names.
const (
	NameDefault      = "default"
	NameMultiLine    = "multi-line"
	NameNoFieldNames = "no-field-names"
	NameShortPrefix  = "short-prefix"
	NameSimple       = "simple"
	NameNoTypeName   = "no-type-name"
	NameJSON         = "json"
)

// DefaultConfig returns the knobs of the default style:
// "pkg.Type@c000010000[a=1,b=<null>,s={x,y}]".
func DefaultConfig() Config {
	return Config{
		UseTypeName:             true,
		UseIdentity:             true,
		UseFieldNames:           true,
		DefaultFullDetail:       true,
		ArrayContentDetail:      true,
		ContentStart:            "[",
		ContentEnd:              "]",
		FieldNameValueSeparator: "=",
		FieldSeparator:          ",",
		ArrayStart:              "{",
		ArraySeparator:          ",",
		ArrayEnd:                "}",
		MapStart:                "{",
		MapSeparator:            ",",
		MapKeyValueSeparator:    "=",
		MapEnd:                  "}",
		NullText:                "<null>",
		SizeStartText:           "<size=",
		SizeEndText:             ">",
		SummaryObjectStartText:  "<",
		SummaryObjectEndText:    ">",
	}
}

// JSONConfig returns the knobs of the JSON style.
func JSONConfig() Config {
	c := DefaultConfig()
	c.UseTypeName = false
	c.UseIdentity = false
	c.ContentStart = "{"
	c.ContentEnd = "}"
	c.FieldNameValueSeparator = ":"
	c.ArrayStart = "["
	c.ArrayEnd = "]"
	c.MapKeyValueSeparator = ":"
	c.NullText = "null"
	c.SizeStartText = `"<size=`
	c.SizeEndText = `>"`
	c.SummaryObjectStartText = `"<`
	c.SummaryObjectEndText = `>"`
	return c
}

var (
	// Default renders type, identity and named fields.
	Default Style = &Base{name: NameDefault, cfg: DefaultConfig()}

	// MultiLine puts one field per line.
	MultiLine = New(DefaultConfig(), WithName(NameMultiLine),
		WithContent("[", "\n]"), WithFieldSeparator("\n  ", true, false))

	// NoFieldNames omits field names.
	NoFieldNames = New(DefaultConfig(), WithName(NameNoFieldNames), WithFieldNames(false))

	// ShortPrefix uses the unqualified type name and no identity.
	ShortPrefix = New(DefaultConfig(), WithName(NameShortPrefix),
		WithTypeName(true, true), WithIdentity(false))

	// Simple renders bare values: no type, identity, names or brackets.
	Simple = New(DefaultConfig(), WithName(NameSimple),
		WithTypeName(false, false), WithIdentity(false), WithFieldNames(false), WithContent("", ""))

	// NoTypeName omits the type name and identity.
	NoTypeName = New(DefaultConfig(), WithName(NameNoTypeName),
		WithTypeName(false, false), WithIdentity(false))

	// JSON renders a JSON document. Field names and detail mode are mandatory.
	JSON Style = &jsonStyle{Base{name: NameJSON, cfg: JSONConfig()}}
)

var (
	mu      sync.Mutex
	presets sync.Map // name -> Style
)

func init() {
	for _, s := range []Style{Default, MultiLine, NoFieldNames, ShortPrefix, Simple, NoTypeName, JSON} {
		presets.Store(s.Name(), s)
	}
}

// Register makes s available by name. Registering the same style twice is a
// no-op; a different style under a taken name fails.
func Register(s Style) error {
	if s == nil || s.Name() == "" {
		return errors.Wrap(ErrInvalidConfig, "style must be named to be registered")
	}
	mu.Lock()
	defer mu.Unlock()
	if old, ok := presets.Load(s.Name()); ok {
		if old.(Style) == s {
			return nil
		}
		return errors.Wrapf(ErrConflictingRegistration, "style %q", s.Name())
	}
	presets.Store(s.Name(), s)
	return nil
}

// Lookup returns the style registered under name.
func Lookup(name string) (Style, error) {
	if s, ok := presets.Load(name); ok {
		return s.(Style), nil
	}
	return nil, errors.Wrapf(ErrUnknownStyle, "%q", name)
}

// Names returns the registered style names, sorted.
func Names() []string {
	var names []string
	presets.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	sort.Strings(names)
	return names
}
