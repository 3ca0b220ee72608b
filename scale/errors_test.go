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

// TestErrorPathFidelity decodes a struct whose second sequence
// element is truncated and checks the surfaced error names the exact
// position: field "items", index 1. The struct has two fields so that
// it is not a transparent wrapper and is dispatched as a composite.
func TestErrorPathFidelity(t *testing.T) {
	const (
		idStruct TypeID = iota + 200
		idSeq
		idElem
	)
	name, name2 := "items", "count"
	reg := Map{
		idStruct: CompositeShape{Fields: []CompositeField{{Name: &name, ID: idSeq}, {Name: &name2, ID: idElem}}},
		idSeq:    SequenceShape{Elem: idElem},
		idElem:   PrimitiveShape{Kind: KindU32},
	}
	// compact len 2, one full u32, then only two bytes of the second
	data := []byte{0x08, 0x01, 0x00, 0x00, 0x00, 0x02, 0x00}
	_, err := DecodeWithVisitor(NewReader(data), idStruct, reg, Value())
	var scaleErr *Error
	if !errors.As(err, &scaleErr) {
		t.Fatalf("got %T, want *Error", err)
	}
	if scaleErr.Kind != NotEnoughInput {
		t.Errorf("kind = %v, want NotEnoughInput", scaleErr.Kind)
	}
	want := []Frame{
		{Kind: FrameField, Name: "items"},
		{Kind: FrameIndex, Index: 1},
	}
	if !reflect.DeepEqual(scaleErr.Path, want) {
		t.Errorf("path = %+v, want %+v", scaleErr.Path, want)
	}
	if scaleErr.Offset != 5 {
		t.Errorf("offset = %d, want 5", scaleErr.Offset)
	}
}

// TestErrorPathCompactFrame checks that an overflow inside a compact
// decode carries the compact frame.
func TestErrorPathCompactFrame(t *testing.T) {
	const (
		idCompact TypeID = iota + 210
		idInner
	)
	reg := Map{
		idCompact: CompactShape{Inner: idInner},
		idInner:   PrimitiveShape{Kind: KindU8},
	}
	// two-byte compact form encoding 300, too large for u8
	_, err := DecodeWithVisitor(NewReader([]byte{0xB1, 0x04}), idCompact, reg, Value())
	var scaleErr *Error
	if !errors.As(err, &scaleErr) || scaleErr.Kind != CompactOverflow {
		t.Fatalf("got %v, want CompactOverflow", err)
	}
	want := []Frame{{Kind: FrameCompact}}
	if !reflect.DeepEqual(scaleErr.Path, want) {
		t.Errorf("path = %+v, want %+v", scaleErr.Path, want)
	}
}

func TestErrorString(t *testing.T) {
	e := &Error{
		Kind:   NotEnoughInput,
		Offset: 5,
		Path: []Frame{
			{Kind: FrameField, Name: "items"},
			{Kind: FrameVariant, Name: "Some"},
			{Kind: FrameIndex, Index: 1},
			{Kind: FrameTuple, Index: 0},
			{Kind: FrameCompact},
		},
		detail: "want 4 bytes, have 2",
	}
	want := `not enough input at offset 5 (path: $.items::Some[1].0.compact): want 4 bytes, have 2`
	if got := e.Error(); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestErrorUnwrapVisitorError(t *testing.T) {
	sentinel := errors.New("no thanks")
	v := &failingVisitor{err: sentinel}
	reg := Map{idBool: PrimitiveShape{Kind: KindBool}}
	_, err := DecodeWithVisitor(NewReader([]byte{0x01}), idBool, reg, v)
	var scaleErr *Error
	if !errors.As(err, &scaleErr) || scaleErr.Kind != VisitorError {
		t.Fatalf("got %v, want VisitorError", err)
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("errors.Is does not find the visitor's cause in %v", err)
	}
}

type failingVisitor struct {
	UnimplementedVisitor
	err error
}

func (v *failingVisitor) VisitBool(bool, TypeID) (any, error) {
	return nil, v.err
}

func TestSmallPathSpill(t *testing.T) {
	var p smallPath
	for i := 0; i < 10; i++ {
		p.push(Frame{Kind: FrameIndex, Index: i})
	}
	snap := p.snapshot()
	if len(snap) != 10 {
		t.Fatalf("snapshot len = %d, want 10", len(snap))
	}
	for i, f := range snap {
		if f.Index != i {
			t.Errorf("snap[%d].Index = %d", i, f.Index)
		}
	}
	for i := 0; i < 10; i++ {
		p.pop()
	}
	if got := p.snapshot(); len(got) != 0 {
		t.Errorf("snapshot after pops = %+v, want empty", got)
	}
}
