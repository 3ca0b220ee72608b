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

import "encoding/binary"

// Reader is a mutable cursor over a SCALE-encoded byte slice. It
// supports exactly the operations the decode engine needs: fixed-size
// little-endian integers, raw byte runs, peeking ahead, and reporting
// position. A Reader only ever advances; nothing in this package seeks
// backwards, which is what lets compound iterators share one Reader
// safely (see SequenceDecoder and friends).
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential decoding starting at offset 0.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.pos
}

// Remaining returns the number of unconsumed bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Peek returns the next n bytes without advancing the cursor. The
// returned slice aliases the input buffer.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, notEnoughInput(r.pos, n, r.Remaining())
	}
	return r.buf[r.pos : r.pos+n], nil
}

// Take returns the next n bytes and advances the cursor past them. The
// returned slice aliases the input buffer; callers that need to retain
// it past further decoding must copy it.
func (r *Reader) Take(n int) ([]byte, error) {
	b, err := r.Peek(n)
	if err != nil {
		return nil, err
	}
	r.pos += n
	return b, nil
}

// TakeByte reads and consumes a single byte.
func (r *Reader) TakeByte() (byte, error) {
	b, err := r.Take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// TakeUintLE reads a little-endian unsigned integer of the given
// byte width (1, 2, 4, or 8) and advances the cursor past it.
func (r *Reader) TakeUintLE(width int) (uint64, error) {
	b, err := r.Take(width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	case 8:
		return binary.LittleEndian.Uint64(b), nil
	default:
		// not reachable from within this package; guards against a
		// future caller passing an odd width.
		return 0, newError(NotEnoughInput, r.pos, "unsupported integer width")
	}
}

// Advance skips n bytes without interpreting them. The decode engine
// itself does not call it; IgnoreVisitor skips values by decoding them.
func (r *Reader) Advance(n int) error {
	if n < 0 || n > r.Remaining() {
		return notEnoughInput(r.pos, n, r.Remaining())
	}
	r.pos += n
	return nil
}
