/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package address

import (
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

func unquote(s string) string {
	s = strings.TrimSpace(s)

	if len(s) > 1 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
		}
	}

	return s
}

// UnmarshalText implements encoding.TextUnmarshaler through Parse.
func (a *Address) UnmarshalText(b []byte) error {
	v, e := Parse(string(b))
	if e != nil {
		return e
	}

	*a = v
	return nil
}

// UnmarshalJSON implements json.Unmarshaler from a quoted string.
func (a *Address) UnmarshalJSON(b []byte) error {
	return a.UnmarshalText([]byte(unquote(string(b))))
}

// UnmarshalYAML implements yaml.Unmarshaler from a scalar node.
func (a *Address) UnmarshalYAML(node *yaml.Node) error {
	return a.UnmarshalText([]byte(unquote(node.Value)))
}

// UnmarshalTOML unmarshals the address from a raw string value.
func (a *Address) UnmarshalTOML(i interface{}) error {
	switch v := i.(type) {
	case string:
		return a.UnmarshalText([]byte(unquote(v)))
	case []byte:
		return a.UnmarshalText([]byte(unquote(string(v))))
	}

	return ErrorParamEmpty.Error(nil)
}

// UnmarshalCBOR implements cbor.Unmarshaler from a text string item.
func (a *Address) UnmarshalCBOR(b []byte) error {
	var s string

	if e := cbor.Unmarshal(b, &s); e != nil {
		return e
	}

	return a.UnmarshalText([]byte(s))
}
