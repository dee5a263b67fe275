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
	"fmt"

	liberr "github.com/nabbar/golib/errors"
)

const pkgName = "msgbox"

const (
	ErrorParamEmpty liberr.CodeError = iota + liberr.MinAvailable + 200
	ErrorParamInvalid
	ErrorStreamUnsupported
	ErrorSocketCreate
	ErrorSocketBind
	ErrorSocketConnect
	ErrorSocketSend
	ErrorSocketRecv
	ErrorConnClosed
	ErrorConnMissingRequest
	ErrorPayloadTooLarge
	ErrorInstanceShutdown
)

func init() {
	if liberr.ExistInMapMessage(ErrorParamEmpty) {
		panic(fmt.Errorf("error code collision with package %s", pkgName))
	}
	liberr.RegisterIdFctMessage(ErrorParamEmpty, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case liberr.UnknownError:
		return liberr.NullMessage
	case ErrorParamEmpty:
		return "given parameters is empty"
	case ErrorParamInvalid:
		return "given parameters is invalid"
	case ErrorStreamUnsupported:
		return "stream transport is not supported"
	case ErrorSocketCreate:
		return "cannot create datagram socket"
	case ErrorSocketBind:
		return "cannot bind datagram socket"
	case ErrorSocketConnect:
		return "cannot connect datagram socket"
	case ErrorSocketSend:
		return "cannot send datagram"
	case ErrorSocketRecv:
		return "cannot receive datagram"
	case ErrorConnClosed:
		return "connection has been closed"
	case ErrorConnMissingRequest:
		return "no request received yet on this connection"
	case ErrorPayloadTooLarge:
		return "payload exceeds the single datagram maximum"
	case ErrorInstanceShutdown:
		return "message box instance has been shutdown"
	}

	return liberr.NullMessage
}
