// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package scale

import "unicode/utf8"

// StrHandle is the compound handle for a Str shape. It
// exposes the raw bytes as well as a validated string view so callers
// that only need a byte count (or that want to validate UTF-8
// themselves) can avoid the validation pass.
type StrHandle struct {
	raw    []byte // content bytes, not including the compact-len prefix
	after  []byte // bytes of the input following this string
	offset int    // offset of raw[0] in the original input, for error reporting
}

// Bytes returns the raw content bytes without validating them as
// UTF-8.
func (s *StrHandle) Bytes() []byte {
	return s.raw
}

// AsStr validates the content bytes as UTF-8 and returns them as a
// string. Returns InvalidUtf8 on malformed input; never panics.
func (s *StrHandle) AsStr() (string, error) {
	if !utf8.Valid(s.raw) {
		return "", newError(InvalidUtf8, s.offset, "string contents are not valid UTF-8")
	}
	return string(s.raw), nil
}

// BytesAfter returns the tail of the input following this string,
// supporting custom continuations layered on top of a str value.
func (s *StrHandle) BytesAfter() ([]byte, error) {
	return s.after, nil
}
