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
	"errors"
	"reflect"
	"testing"
)

// TestDecodeAsFields decodes a call-argument-style flat field list:
// consecutive values with no enclosing composite on the wire.
func TestDecodeAsFields(t *testing.T) {
	const (
		idU32f TypeID = iota + 300
		idBoolf
	)
	reg := Map{
		idU32f:  PrimitiveShape{Kind: KindU32},
		idBoolf: PrimitiveShape{Kind: KindBool},
	}
	fields := []FieldSpec{
		{Name: "amount", ID: idU32f},
		{Name: "keep_alive", ID: idBoolf},
	}
	data := []byte{0x05, 0x00, 0x00, 0x00, 0x01}
	r := NewReader(data)
	vals, err := DecodeAsFields(r, fields, reg, func(FieldSpec) Visitor { return Value() })
	if err != nil {
		t.Fatal(err)
	}
	want := []any{uint32(5), true}
	if !reflect.DeepEqual(vals, want) {
		t.Errorf("got %#v, want %#v", vals, want)
	}
	if r.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", r.Remaining())
	}
}

func TestDecodeAsFieldsErrorNamesField(t *testing.T) {
	const idU32f TypeID = 310
	reg := Map{idU32f: PrimitiveShape{Kind: KindU32}}
	fields := []FieldSpec{
		{Name: "first", ID: idU32f},
		{Name: "second", ID: idU32f},
	}
	// enough for the first field only
	data := []byte{0x05, 0x00, 0x00, 0x00, 0x01}
	_, err := DecodeAsFields(NewReader(data), fields, reg, func(FieldSpec) Visitor { return Value() })
	var scaleErr *Error
	if !errors.As(err, &scaleErr) || scaleErr.Kind != NotEnoughInput {
		t.Fatalf("got %v, want NotEnoughInput", err)
	}
	want := []Frame{{Kind: FrameField, Name: "second"}}
	if !reflect.DeepEqual(scaleErr.Path, want) {
		t.Errorf("path = %+v, want %+v", scaleErr.Path, want)
	}
}
