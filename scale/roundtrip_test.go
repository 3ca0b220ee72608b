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
	"encoding/binary"
	"math/big"
	"math/rand"
	"reflect"
	"testing"
)

// Test-local SCALE encoder, just enough of the wire grammar to
// exercise decode round-trips. Deliberately written independently of
// the decoder's own arithmetic.

func appendUintLE(b []byte, v uint64, width int) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(b, tmp[:width]...)
}

func appendCompact(b []byte, v uint64) []byte {
	switch {
	case v < 1<<6:
		return append(b, byte(v<<2))
	case v < 1<<14:
		return appendUintLE(b, v<<2|0b01, 2)
	case v < 1<<30:
		return appendUintLE(b, v<<2|0b10, 4)
	default:
		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], v)
		n := 8
		for n > 4 && tmp[n-1] == 0 {
			n--
		}
		b = append(b, byte(n-4)<<2|0b11)
		return append(b, tmp[:n]...)
	}
}

// TestRoundTrip encodes randomly drawn bool, u8/u16/u32/u64, i32/i64,
// u128, str and u32-sequence values with the local encoder above and
// checks the decoder reproduces them exactly, consuming exactly the
// encoded length. Compact values are covered by TestRoundTripCompact.
func TestRoundTrip(t *testing.T) {
	const (
		idBoolR TypeID = iota
		idU8R
		idU16R
		idU32R
		idU64R
		idI32R
		idI64R
		idU128R
		idStrR
		idSeqR
		idCompactR
	)
	reg := Map{
		idBoolR:    PrimitiveShape{Kind: KindBool},
		idU8R:      PrimitiveShape{Kind: KindU8},
		idU16R:     PrimitiveShape{Kind: KindU16},
		idU32R:     PrimitiveShape{Kind: KindU32},
		idU64R:     PrimitiveShape{Kind: KindU64},
		idI32R:     PrimitiveShape{Kind: KindI32},
		idI64R:     PrimitiveShape{Kind: KindI64},
		idU128R:    PrimitiveShape{Kind: KindU128},
		idStrR:     PrimitiveShape{Kind: KindStr},
		idSeqR:     SequenceShape{Elem: idU32R},
		idCompactR: CompactShape{Inner: idU64R},
	}
	rng := rand.New(rand.NewSource(0x5ca1ed))
	for i := 0; i < 2000; i++ {
		var data []byte
		var id TypeID
		var want any
		switch rng.Intn(10) {
		case 0:
			b := rng.Intn(2) == 1
			id, want = idBoolR, b
			if b {
				data = []byte{0x01}
			} else {
				data = []byte{0x00}
			}
		case 1:
			v := uint8(rng.Uint32())
			id, want = idU8R, v
			data = appendUintLE(nil, uint64(v), 1)
		case 2:
			v := uint16(rng.Uint32())
			id, want = idU16R, v
			data = appendUintLE(nil, uint64(v), 2)
		case 3:
			v := rng.Uint32()
			id, want = idU32R, v
			data = appendUintLE(nil, uint64(v), 4)
		case 4:
			v := rng.Uint64()
			id, want = idU64R, v
			data = appendUintLE(nil, v, 8)
		case 5:
			v := int32(rng.Uint32())
			id, want = idI32R, v
			data = appendUintLE(nil, uint64(uint32(v)), 4)
		case 6:
			v := int64(rng.Uint64())
			id, want = idI64R, v
			data = appendUintLE(nil, uint64(v), 8)
		case 7:
			raw := make([]byte, 16)
			rng.Read(raw)
			be := make([]byte, 16)
			for j, x := range raw {
				be[15-j] = x
			}
			id, want = idU128R, new(big.Int).SetBytes(be)
			data = append(data, raw...)
		case 8:
			runes := make([]rune, rng.Intn(20))
			for j := range runes {
				runes[j] = rune('a' + rng.Intn(26))
			}
			s := string(runes)
			id, want = idStrR, s
			data = appendCompact(nil, uint64(len(s)))
			data = append(data, s...)
		case 9:
			n := rng.Intn(8)
			elems := make([]any, n)
			data = appendCompact(nil, uint64(n))
			for j := range elems {
				v := rng.Uint32()
				elems[j] = v
				data = appendUintLE(data, uint64(v), 4)
			}
			id, want = idSeqR, elems
		}
		r := NewReader(data)
		got, err := DecodeWithVisitorStrict(r, id, reg, Value())
		if err != nil {
			t.Fatalf("case %d (id %d, input %x): %v", i, id, data, err)
		}
		if w, ok := want.(*big.Int); ok {
			g, gok := got.(*big.Int)
			if !gok || g.Cmp(w) != 0 {
				t.Fatalf("case %d (id %d): got %v, want %v", i, id, got, want)
			}
		} else if !reflect.DeepEqual(got, want) {
			t.Fatalf("case %d (id %d): got %#v, want %#v", i, id, got, want)
		}
	}
}

// TestRoundTripCompact draws magnitudes across every compact mode
// boundary and checks the decoded integer matches.
func TestRoundTripCompact(t *testing.T) {
	const (
		idCompactR TypeID = iota
		idU64R
	)
	reg := Map{
		idCompactR: CompactShape{Inner: idU64R},
		idU64R:     PrimitiveShape{Kind: KindU64},
	}
	rng := rand.New(rand.NewSource(0xdec0de))
	values := []uint64{0, 1, 63, 64, 16383, 16384, 1<<30 - 1, 1 << 30, 1<<32 - 1, 1 << 40, 1<<64 - 1}
	for i := 0; i < 500; i++ {
		values = append(values, rng.Uint64()>>uint(rng.Intn(64)))
	}
	for _, v := range values {
		data := appendCompact(nil, v)
		got, err := DecodeWithVisitorStrict(NewReader(data), idCompactR, reg, Value())
		if err != nil {
			t.Fatalf("value %d (input %x): %v", v, data, err)
		}
		if got != v {
			t.Errorf("value %d: got %v", v, got)
		}
	}
}
