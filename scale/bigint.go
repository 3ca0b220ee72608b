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

// UintN captures a decoded u128/u256 as its fixed-width big-endian
// magnitude bytes, for callers that want a byte array rather than the
// *big.Int VisitU128/VisitU256 hand out by default. The orchestrator
// still builds that *big.Int; this visitor converts it.
type UintN struct {
	bitWidth int
	Bytes    []byte // big-endian magnitude, len == bitWidth/8
}

type uintNVisitor struct {
	UnimplementedVisitor
	dst *UintN
}

// IntoUintN returns an IntoVisitor that writes a u128 or u256 value
// into dst, whichever the resolved shape turns out to be.
func IntoUintN(dst *UintN) IntoVisitor {
	return &uintNVisitor{dst: dst}
}

func (u *uintNVisitor) IntoVisitor() Visitor { return u }

func (u *uintNVisitor) VisitU128(v *big.Int, _ TypeID) (any, error) {
	u.dst.bitWidth = 128
	u.dst.Bytes = fixedBigEndian(v, 16)
	return u.dst, nil
}

func (u *uintNVisitor) VisitU256(v *big.Int, _ TypeID) (any, error) {
	u.dst.bitWidth = 256
	u.dst.Bytes = fixedBigEndian(v, 32)
	return u.dst, nil
}

// IntN is the signed counterpart of UintN: Bytes holds the value's
// two's-complement big-endian representation.
type IntN struct {
	bitWidth int
	Bytes    []byte
}

type intNVisitor struct {
	UnimplementedVisitor
	dst *IntN
}

// IntoIntN returns an IntoVisitor that writes an i128 or i256 value
// into dst.
func IntoIntN(dst *IntN) IntoVisitor {
	return &intNVisitor{dst: dst}
}

func (n *intNVisitor) IntoVisitor() Visitor { return n }

func (n *intNVisitor) VisitI128(v *big.Int, _ TypeID) (any, error) {
	n.dst.bitWidth = 128
	n.dst.Bytes = twosComplementBigEndian(v, 16)
	return n.dst, nil
}

func (n *intNVisitor) VisitI256(v *big.Int, _ TypeID) (any, error) {
	n.dst.bitWidth = 256
	n.dst.Bytes = twosComplementBigEndian(v, 32)
	return n.dst, nil
}

func fixedBigEndian(v *big.Int, n int) []byte {
	out := make([]byte, n)
	b := v.Bytes()
	copy(out[n-len(b):], b)
	return out
}

func twosComplementBigEndian(v *big.Int, n int) []byte {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
	u := new(big.Int).Set(v)
	if u.Sign() < 0 {
		u.Add(u, mod)
	}
	return fixedBigEndian(u, n)
}
