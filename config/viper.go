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

package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"dirpx.dev/structx/apis"
)

// Viper keys read by FromViper.
const (
	KeyAncestors = "traverse.ancestors"
	KeyExclude   = "traverse.exclude"
	KeyTransient = "traverse.transient"
	KeyRecursive = "traverse.recursive"
	KeyMaxDepth  = "traverse.max-depth"
	KeyOrder     = "traverse.order"
)

// ErrUnknownOrder is returned for an unrecognised field order name.
var ErrUnknownOrder = errors.New("structx(config): unknown field order")

// FromViper turns the traverse.* keys set in v into options. Unset keys keep
// their defaults.
func FromViper(v *viper.Viper) ([]Option, error) {
	var opts []Option
	if v.IsSet(KeyAncestors) {
		opts = append(opts, WithAncestors(v.GetBool(KeyAncestors)))
	}
	if v.IsSet(KeyExclude) {
		opts = append(opts, WithExcluded(v.GetStringSlice(KeyExclude)...))
	}
	if v.IsSet(KeyTransient) {
		opts = append(opts, WithTransient(v.GetBool(KeyTransient)))
	}
	if v.IsSet(KeyRecursive) {
		opts = append(opts, WithRecursive(v.GetBool(KeyRecursive)))
	}
	if v.IsSet(KeyMaxDepth) {
		opts = append(opts, WithMaxDepth(v.GetInt(KeyMaxDepth)))
	}
	if s := v.GetString(KeyOrder); s != "" {
		order, err := ParseOrder(s)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithOrder(order))
	}
	return opts, nil
}

// ParseOrder parses "declaration" or "name" (case-insensitive).
func ParseOrder(s string) (apis.FieldOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "declaration", "decl":
		return apis.Declaration, nil
	case "name", "byname":
		return apis.ByName, nil
	default:
		return 0, errors.Wrapf(ErrUnknownOrder, "%q", s)
	}
}
