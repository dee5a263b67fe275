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

// Package status tracks the remote endpoints observed on the registered connections.
//
// Each distinct {ip, port, transport} triple owns one entry holding the monotonic
// time of its last observed packet. The first observation of a triple is what the
// dispatcher turns into a connection_ready event.
package status

import (
	"net"
	"sync"
	"time"

	libptc "github.com/nabbar/golib/network/protocol"
)

// Key identifies a remote endpoint. Equality is byte-for-byte over the
// {ip, port, transport} triple.
type Key struct {
	Addr    [4]byte
	Port    uint16
	Network libptc.NetworkProtocol
}

// NewKey builds a Key from an IPv4 address, port and transport.
// A non-IPv4 address yields a zero Addr field.
func NewKey(ip net.IP, port uint16, proto libptc.NetworkProtocol) Key {
	k := Key{
		Port:    port,
		Network: proto,
	}

	if v4 := ip.To4(); v4 != nil {
		copy(k.Addr[:], v4)
	}

	return k
}

// IP returns the endpoint address as a net.IP.
func (k Key) IP() net.IP {
	return net.IPv4(k.Addr[0], k.Addr[1], k.Addr[2], k.Addr[3])
}

// Registry owns the peer-status entries. It is the sole creator and releaser
// of both keys and values.
type Registry interface {
	// Observe inserts the endpoint if absent, otherwise refreshes its last-seen
	// time. It returns true when the endpoint was not known before.
	Observe(k Key) (first bool)
	// Touch refreshes the last-seen time of a known endpoint and reports
	// whether the endpoint was present. Unknown endpoints are not inserted.
	Touch(k Key) bool
	// Last returns the last-seen time of the endpoint, in monotonic seconds
	// since the registry was created.
	Last(k Key) (sec float64, ok bool)
	// Delete evicts the endpoint, releasing key and value together.
	Delete(k Key)
	// Len returns the number of tracked endpoints.
	Len() int
	// Clean evicts every endpoint.
	Clean()
}

// New returns an empty Registry with its monotonic epoch set to now.
func New() Registry {
	return &reg{
		ep: time.Now(),
		lp: make(map[Key]float64),
	}
}

type reg struct {
	sm sync.RWMutex
	ep time.Time
	lp map[Key]float64
}

func (o *reg) now() float64 {
	return time.Since(o.ep).Seconds()
}

func (o *reg) Observe(k Key) bool {
	o.sm.Lock()
	defer o.sm.Unlock()

	_, ok := o.lp[k]
	o.lp[k] = o.now()

	return !ok
}

func (o *reg) Touch(k Key) bool {
	o.sm.Lock()
	defer o.sm.Unlock()

	if _, ok := o.lp[k]; !ok {
		return false
	}

	o.lp[k] = o.now()
	return true
}

func (o *reg) Last(k Key) (float64, bool) {
	o.sm.RLock()
	defer o.sm.RUnlock()

	s, ok := o.lp[k]
	return s, ok
}

func (o *reg) Delete(k Key) {
	o.sm.Lock()
	defer o.sm.Unlock()

	delete(o.lp, k)
}

func (o *reg) Len() int {
	o.sm.RLock()
	defer o.sm.RUnlock()

	return len(o.lp)
}

func (o *reg) Clean() {
	o.sm.Lock()
	defer o.sm.Unlock()

	o.lp = make(map[Key]float64)
}
