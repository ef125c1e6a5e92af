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

package cmd

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"dirpx.dev/structx"
)

// stdinPath reads the document from standard input, as YAML.
const stdinPath = "-"

// readDocument decodes the YAML, JSON or TOML document at path into plain
// maps, slices and scalars, without the keys excluded by the structx
// options. The format follows the file extension; anything that is not
// .toml is read as YAML, which also covers JSON.
func readDocument(path string, stdin io.Reader) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(filepath.Clean(path))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		doc := map[string]any{}
		if err = toml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrapf(err, "decode toml %s", path)
		}
		return prune(doc, structx.Options().Excluded), nil
	}

	var doc any
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "decode yaml %s", path)
	}
	return prune(doc, structx.Options().Excluded), nil
}

func readPair(args []string, stdin io.Reader) (any, any, error) {
	if args[0] == stdinPath && args[1] == stdinPath {
		return nil, nil, errors.New("only one document can be read from stdin")
	}
	a, err := readDocument(args[0], stdin)
	if err != nil {
		return nil, nil, err
	}
	b, err := readDocument(args[1], stdin)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// prune drops the map keys named in excluded from doc, at every level, the
// way field exclusion drops struct fields. doc is modified in place.
func prune(doc any, excluded []string) any {
	if len(excluded) == 0 {
		return doc
	}
	switch d := doc.(type) {
	case map[string]any:
		for k, v := range d {
			if slices.Contains(excluded, k) {
				delete(d, k)
				continue
			}
			d[k] = prune(v, excluded)
		}
	case []any:
		for i, v := range d {
			d[i] = prune(v, excluded)
		}
	}
	return doc
}
