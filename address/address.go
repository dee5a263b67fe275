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

// Package address implements the URL-style endpoint codec of the msgbox runtime.
//
// Addresses follow the grammar (udp|tcp)://(*|<IPv4-literal>):<port>, where the
// host '*' means bind-to-any, the IPv4 literal is a dotted quad of 1 to 15
// characters and the port is a base-10 16-bit unsigned integer consuming the
// whole remaining input.
//
// The type marshals to and from its string form for JSON, YAML, TOML, CBOR,
// plain text and viper configuration trees.
package address

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	liberr "github.com/nabbar/golib/errors"
	libptc "github.com/nabbar/golib/network/protocol"
)

const (
	// WildcardHost is the host literal selecting the bind-to-any address.
	WildcardHost = "*"

	// maxHostLen bounds a dotted-quad IPv4 literal.
	maxHostLen = 15

	schemeSeparator = "://"
)

// Address is a parsed endpoint: transport scheme, IPv4 host and port.
// A nil IP is the bind-to-any wildcard.
type Address struct {
	Network libptc.NetworkProtocol
	IP      net.IP
	Port    uint16
}

// Parse decodes an endpoint string following the address grammar.
// Each malformed part fails with its own error code so the message carried by
// the resulting error event names the offending part.
func Parse(s string) (Address, liberr.Error) {
	var res Address

	s = strings.TrimSpace(s)

	if len(s) < 1 {
		return res, ErrorParamEmpty.Error(nil)
	}

	i := strings.Index(s, schemeSeparator)
	if i < 0 {
		//nolint goerr113
		return res, ErrorSeparator.Error(fmt.Errorf("address '%s'", s))
	}

	switch p := libptc.Parse(s[:i]); p {
	case libptc.NetworkUDP, libptc.NetworkTCP:
		res.Network = p
	default:
		//nolint goerr113
		return res, ErrorScheme.Error(fmt.Errorf("scheme '%s'", s[:i]))
	}

	rest := s[i+len(schemeSeparator):]

	j := strings.LastIndexByte(rest, ':')
	if j < 0 {
		//nolint goerr113
		return res, ErrorHostMissing.Error(fmt.Errorf("endpoint '%s'", rest))
	}

	host := rest[:j]
	port := rest[j+1:]

	switch {
	case len(host) < 1:
		return res, ErrorHostEmpty.Error(nil)
	case len(host) > maxHostLen:
		//nolint goerr113
		return res, ErrorHostTooLong.Error(fmt.Errorf("host '%s'", host))
	case host == WildcardHost:
		res.IP = nil
	default:
		ip := net.ParseIP(host)
		if ip == nil || ip.To4() == nil {
			//nolint goerr113
			return res, ErrorHostInvalid.Error(fmt.Errorf("host '%s'", host))
		}
		res.IP = ip.To4()
	}

	if len(port) < 1 {
		return res, ErrorPortEmpty.Error(nil)
	}

	p, e := strconv.ParseUint(port, 10, 16)
	if e != nil {
		return res, ErrorPortInvalid.Error(e)
	}

	res.Port = uint16(p)

	return res, nil
}

// IsWildcard reports whether the host is the bind-to-any wildcard.
func (a Address) IsWildcard() bool {
	return a.IP == nil
}

// Host returns the host part as it appears in the string form.
func (a Address) Host() string {
	if a.IP == nil {
		return WildcardHost
	}

	return a.IP.String()
}

// String formats the endpoint back to its proto://host:port form.
// An address with an empty scheme formats to an empty string.
func (a Address) String() string {
	if a.Network == libptc.NetworkEmpty {
		return ""
	}

	return a.Network.String() + schemeSeparator + a.Host() + ":" + strconv.FormatUint(uint64(a.Port), 10)
}
