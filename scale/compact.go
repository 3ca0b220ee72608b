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

import "math/big"

// DecodeCompact reads a SCALE compact (variable-length) unsigned
// integer from r and returns it as a big.Int so the full
// range, up to the 67-byte/2^536 big-integer form, is always
// representable. Callers decoding into a fixed-width target should use
// CompactUint64 instead, which rejects values that do not fit.
func DecodeCompact(r *Reader) (*big.Int, error) {
	first, err := r.TakeByte()
	if err != nil {
		return nil, err
	}
	switch first & 0b11 {
	case 0b00:
		return big.NewInt(int64(first >> 2)), nil
	case 0b01:
		b, err := r.TakeByte()
		if err != nil {
			return nil, err
		}
		v := (uint64(first) | uint64(b)<<8) >> 2
		return new(big.Int).SetUint64(v), nil
	case 0b10:
		rest, err := r.Take(3)
		if err != nil {
			return nil, err
		}
		v := uint64(first) | uint64(rest[0])<<8 | uint64(rest[1])<<16 | uint64(rest[2])<<24
		v >>= 2
		return new(big.Int).SetUint64(v), nil
	default: // 0b11: big-integer mode
		n := int(first>>2) + 4
		body, err := r.Take(n)
		if err != nil {
			return nil, err
		}
		// body is little-endian; big.Int.SetBytes wants big-endian.
		be := make([]byte, n)
		for i, b := range body {
			be[n-1-i] = b
		}
		return new(big.Int).SetBytes(be), nil
	}
}

// CompactUint64 reads a SCALE compact integer and requires it to fit
// in a uint64, returning CompactOverflow otherwise.
func CompactUint64(r *Reader) (uint64, error) {
	offset := r.Offset()
	v, err := DecodeCompact(r)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, newError(CompactOverflow, offset, "compact value exceeds uint64")
	}
	return v.Uint64(), nil
}
