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

import "testing"

func TestJSONVisitorComposite(t *testing.T) {
	const (
		idPoint TypeID = iota
		idU32c
	)
	name1, name2 := "x", "y"
	reg := Map{
		idPoint: CompositeShape{
			TypeName: strPtr("Point"),
			Fields: []CompositeField{
				{Name: &name1, ID: idU32c},
				{Name: &name2, ID: idU32c},
			},
		},
		idU32c: PrimitiveShape{Kind: KindU32},
	}
	data := []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00}
	r := NewReader(data)
	v := NewJSONVisitor(nil)
	if _, err := DecodeWithVisitor(r, idPoint, reg, v); err != nil {
		t.Fatal(err)
	}
	got := string(v.Bytes())
	want := `{"x":1,"y":2}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestJSONVisitorTupleComposite(t *testing.T) {
	const (
		idPair TypeID = iota
		idU8c
	)
	reg := Map{
		idPair: CompositeShape{Fields: []CompositeField{{ID: idU8c}, {ID: idU8c}}},
		idU8c:  PrimitiveShape{Kind: KindU8},
	}
	r := NewReader([]byte{5, 6})
	v := NewJSONVisitor(nil)
	if _, err := DecodeWithVisitor(r, idPair, reg, v); err != nil {
		t.Fatal(err)
	}
	got := string(v.Bytes())
	want := `[5,6]`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestJSONVisitorSequence(t *testing.T) {
	const (
		idSeq TypeID = iota
		idU32s
	)
	reg := Map{
		idSeq:  SequenceShape{Elem: idU32s},
		idU32s: PrimitiveShape{Kind: KindU32},
	}
	cases := []struct {
		name string
		in   []byte
		want string
	}{
		{"two elements", []byte{0x08, 0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00}, "[1,2]"},
		{"one element", []byte{0x04, 0x2A, 0x00, 0x00, 0x00}, "[42]"},
		{"empty", []byte{0x00}, "[]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := NewJSONVisitor(nil)
			if _, err := DecodeWithVisitor(NewReader(c.in), idSeq, reg, v); err != nil {
				t.Fatal(err)
			}
			if got := string(v.Bytes()); got != c.want {
				t.Errorf("got %s, want %s", got, c.want)
			}
		})
	}
}

func TestJSONVisitorVariant(t *testing.T) {
	const (
		idOpt TypeID = iota
		idU32v
	)
	reg := Map{
		idOpt: VariantShape{Variants: []Variant{
			{Index: 0, Name: "None"},
			{Index: 1, Name: "Some", Fields: []CompositeField{{ID: idU32v}}},
		}},
		idU32v: PrimitiveShape{Kind: KindU32},
	}
	v := NewJSONVisitor(nil)
	if _, err := DecodeWithVisitor(NewReader([]byte{0x01, 0x2A, 0x00, 0x00, 0x00}), idOpt, reg, v); err != nil {
		t.Fatal(err)
	}
	got := string(v.Bytes())
	want := `{"Some":[42]}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestJSONVisitorStrEscapes(t *testing.T) {
	const idStrj TypeID = 0
	reg := Map{idStrj: PrimitiveShape{Kind: KindStr}}
	// compact len 4, then `a"\nb`
	data := []byte{0x10, 'a', '"', '\n', 'b'}
	v := NewJSONVisitor(nil)
	if _, err := DecodeWithVisitor(NewReader(data), idStrj, reg, v); err != nil {
		t.Fatal(err)
	}
	got := string(v.Bytes())
	want := `"a\"\nb"`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func strPtr(s string) *string { return &s }
