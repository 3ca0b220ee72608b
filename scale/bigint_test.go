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

import (
	"bytes"
	"testing"
)

func TestDecodeIntoUintN(t *testing.T) {
	const idU128 TypeID = 400
	reg := Map{idU128: PrimitiveShape{Kind: KindU128}}
	// 0x2A little-endian in 16 bytes
	data := make([]byte, 16)
	data[0] = 0x2A
	var dst UintN
	if _, err := DecodeAsType(data, idU128, reg, IntoUintN(&dst)); err != nil {
		t.Fatal(err)
	}
	want := make([]byte, 16)
	want[15] = 0x2A
	if !bytes.Equal(dst.Bytes, want) {
		t.Errorf("got %x, want %x", dst.Bytes, want)
	}
}

func TestDecodeIntoIntNNegative(t *testing.T) {
	const idI128 TypeID = 401
	reg := Map{idI128: PrimitiveShape{Kind: KindI128}}
	// -1 in two's complement: all bytes 0xFF
	data := make([]byte, 16)
	for i := range data {
		data[i] = 0xFF
	}
	var dst IntN
	if _, err := DecodeAsType(data, idI128, reg, IntoIntN(&dst)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dst.Bytes, data) {
		t.Errorf("got %x, want all-ff", dst.Bytes)
	}
}

func TestUintNWrongShape(t *testing.T) {
	const idU32n TypeID = 402
	reg := Map{idU32n: PrimitiveShape{Kind: KindU32}}
	var dst UintN
	_, err := DecodeAsType([]byte{1, 0, 0, 0}, idU32n, reg, IntoUintN(&dst))
	scaleErr, ok := err.(*Error)
	if !ok || scaleErr.Kind != WrongShape {
		t.Fatalf("got %v, want WrongShape", err)
	}
}
