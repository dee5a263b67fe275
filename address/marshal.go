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
	"github.com/fxamacker/cbor/v2"
)

// MarshalText implements encoding.TextMarshaler with the proto://host:port form.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// MarshalJSON implements json.Marshaler as a quoted string.
func (a Address) MarshalJSON() ([]byte, error) {
	s := a.String()
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	b = append(b, []byte(s)...)
	b = append(b, '"')
	return b, nil
}

// MarshalYAML implements yaml.Marshaler as a plain string node.
func (a Address) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// MarshalTOML marshals the address as a raw string value.
func (a Address) MarshalTOML() ([]byte, error) {
	return []byte(a.String()), nil
}

// MarshalCBOR implements cbor.Marshaler as a text string item.
func (a Address) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(a.String())
}
