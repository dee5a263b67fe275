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
	"fmt"

	liberr "github.com/nabbar/golib/errors"
)

const pkgName = "msgbox/address"

const (
	ErrorParamEmpty liberr.CodeError = iota + liberr.MinAvailable + 220
	ErrorScheme
	ErrorSeparator
	ErrorHostMissing
	ErrorHostEmpty
	ErrorHostTooLong
	ErrorHostInvalid
	ErrorPortEmpty
	ErrorPortInvalid
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
	case ErrorScheme:
		return "address scheme is not a known transport"
	case ErrorSeparator:
		return "address is missing the '://' separator"
	case ErrorHostMissing:
		return "address is missing the host:port colon"
	case ErrorHostEmpty:
		return "address host part is empty"
	case ErrorHostTooLong:
		return "address host part exceeds the dotted-quad maximum length"
	case ErrorHostInvalid:
		return "address host part is not a dotted-quad IPv4 literal"
	case ErrorPortEmpty:
		return "address port part is empty"
	case ErrorPortInvalid:
		return "address port part is not a base-10 16-bit unsigned integer"
	}

	return liberr.NullMessage
}
