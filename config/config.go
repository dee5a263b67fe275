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

// Package config holds the caller-provided tuning of a msgbox runtime instance.
//
// The runtime itself reads no file and no environment; these structures exist so
// an application can carry msgbox endpoints and sizing inside its own
// configuration tree and validate them before registering anything.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	liberr "github.com/nabbar/golib/errors"
	libptc "github.com/nabbar/golib/network/protocol"
	libsiz "github.com/nabbar/golib/size"

	libadr "github.com/nabbar/msgbox/address"
	hckhdr "github.com/nabbar/msgbox/header"
)

const (
	// DefaultBufferSize is the receive buffer for one datagram, header included.
	DefaultBufferSize = 32 * libsiz.SizeKilo
)

// Endpoint is one listen or connect target expressed in a configuration tree.
type Endpoint struct {
	// Network restricts the endpoint transport. Zero means taken from Address.
	Network libptc.NetworkProtocol `mapstructure:"network" json:"network" yaml:"network" toml:"network" cbor:"network"`

	// Address is the endpoint in the proto://host:port grammar.
	Address libadr.Address `mapstructure:"address" json:"address" yaml:"address" toml:"address" cbor:"address" validate:"required"`
}

// Validate checks the endpoint against the validator constraints and the
// address grammar.
func (c Endpoint) Validate() liberr.Error {
	err := ErrorValidatorError.Error(nil)

	if er := validator.New().Struct(c); er != nil {
		if e, ok := er.(*validator.InvalidValidationError); ok {
			err.Add(e)
		}

		for _, e := range er.(validator.ValidationErrors) {
			//nolint goerr113
			err.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.Namespace(), e.ActualTag()))
		}
	}

	if _, e := libadr.Parse(c.Address.String()); e != nil {
		err.Add(ErrorEndpointAddress.Error(e))
	}

	if c.Network != libptc.NetworkEmpty && c.Network != c.Address.Network {
		err.Add(ErrorEndpointAddress.Error(nil))
	}

	if err.HasParent() {
		return err
	}

	return nil
}

// URI returns the endpoint in its string form, as taken by the runtime façade.
func (c Endpoint) URI() string {
	return c.Address.String()
}

// Config tunes one msgbox runtime instance.
type Config struct {
	// BufferSize is the receive allocation for one inbound datagram, frame
	// header included. Zero means DefaultBufferSize.
	BufferSize libsiz.Size `mapstructure:"buffer-size" json:"buffer-size" yaml:"buffer-size" toml:"buffer-size" cbor:"buffer-size"`
}

// Validate checks the config values.
func (c Config) Validate() liberr.Error {
	if c.BufferSize > 0 && c.BufferSize.Uint64() <= uint64(hckhdr.Size) {
		return ErrorBufferTooSmall.Error(nil)
	}

	return nil
}

// GetBufferSize returns the configured receive buffer size or the default.
func (c Config) GetBufferSize() int {
	if c.BufferSize.Uint64() <= uint64(hckhdr.Size) {
		return int(DefaultBufferSize.Uint64())
	}

	return int(c.BufferSize.Uint64())
}
