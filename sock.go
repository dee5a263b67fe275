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

package msgbox

import (
	"net"

	"golang.org/x/sys/unix"
)

// sockAddr builds the IPv4 socket address. A nil ip selects the any address.
func sockAddr(ip net.IP, port uint16) *unix.SockaddrInet4 {
	sa := &unix.SockaddrInet4{Port: int(port)}

	if v4 := ip.To4(); v4 != nil {
		copy(sa.Addr[:], v4)
	}

	return sa
}

func sockNew() (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return -1, err
	}

	if err = unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}

	unix.CloseOnExec(fd)

	return fd, nil
}

func sockBind(fd int, ip net.IP, port uint16) error {
	return unix.Bind(fd, sockAddr(ip, port))
}

func sockConnect(fd int, ip net.IP, port uint16) error {
	return unix.Connect(fd, sockAddr(ip, port))
}

func sockClose(fd int) {
	if fd >= 0 {
		_ = unix.Close(fd)
	}
}

func sockLocal(fd int) (net.IP, uint16) {
	sa, err := unix.Getsockname(fd)
	if err != nil {
		return nil, 0
	}

	if v4, ok := sa.(*unix.SockaddrInet4); ok {
		return net.IPv4(v4.Addr[0], v4.Addr[1], v4.Addr[2], v4.Addr[3]), uint16(v4.Port)
	}

	return nil, 0
}

// sockPeek reads the head of the pending datagram without consuming it, so the
// datagram boundary is preserved for the full receive that follows.
func sockPeek(fd int, b []byte) (int, error) {
	n, _, err := unix.Recvfrom(fd, b, unix.MSG_PEEK|unix.MSG_DONTWAIT)
	return n, err
}

// sockRecv consumes one datagram and returns its source endpoint. On a
// connected socket the kernel may omit the source; callers keep their stored
// remote in that case.
func sockRecv(fd int, b []byte) (int, net.IP, uint16, error) {
	n, from, err := unix.Recvfrom(fd, b, unix.MSG_DONTWAIT)
	if err != nil {
		return 0, nil, 0, err
	}

	if v4, ok := from.(*unix.SockaddrInet4); ok {
		return n, net.IPv4(v4.Addr[0], v4.Addr[1], v4.Addr[2], v4.Addr[3]).To4(), uint16(v4.Port), nil
	}

	return n, nil, 0, nil
}

func sockSendTo(fd int, b []byte, ip net.IP, port uint16) error {
	return unix.Sendto(fd, b, 0, sockAddr(ip, port))
}

func sockSend(fd int, b []byte) error {
	_, err := unix.Write(fd, b)
	return err
}

// sockErrTransient reports readiness races and interruptions that are retried
// silently on the next tick.
func sockErrTransient(err error) bool {
	return err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR
}
