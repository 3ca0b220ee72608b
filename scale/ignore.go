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

// IgnoreVisitor accepts every shape and discards the decoded value,
// draining any compound children before returning. It is the
// orchestrator's own drop-safety mechanism (compound handles drain
// with it) and is also useful directly for callers that
// only want to validate a value's wire encoding without building a
// representation of it.
type IgnoreVisitor struct {
	UnimplementedVisitor
}

// Ignore returns a Visitor that skips exactly one value, recursively
// ignoring the children of any compound shape.
func Ignore() Visitor {
	return ignoreVisitor
}

var ignoreVisitor = &IgnoreVisitor{}

func (IgnoreVisitor) VisitBool(bool, TypeID) (any, error)   { return nil, nil }
func (IgnoreVisitor) VisitChar(rune, TypeID) (any, error)   { return nil, nil }
func (IgnoreVisitor) VisitU8(uint8, TypeID) (any, error)    { return nil, nil }
func (IgnoreVisitor) VisitU16(uint16, TypeID) (any, error)  { return nil, nil }
func (IgnoreVisitor) VisitU32(uint32, TypeID) (any, error)  { return nil, nil }
func (IgnoreVisitor) VisitU64(uint64, TypeID) (any, error)  { return nil, nil }
func (IgnoreVisitor) VisitU128(*big.Int, TypeID) (any, error) { return nil, nil }
func (IgnoreVisitor) VisitU256(*big.Int, TypeID) (any, error) { return nil, nil }
func (IgnoreVisitor) VisitI8(int8, TypeID) (any, error)        { return nil, nil }
func (IgnoreVisitor) VisitI16(int16, TypeID) (any, error)      { return nil, nil }
func (IgnoreVisitor) VisitI32(int32, TypeID) (any, error)      { return nil, nil }
func (IgnoreVisitor) VisitI64(int64, TypeID) (any, error)      { return nil, nil }
func (IgnoreVisitor) VisitI128(*big.Int, TypeID) (any, error) { return nil, nil }
func (IgnoreVisitor) VisitI256(*big.Int, TypeID) (any, error) { return nil, nil }

func (IgnoreVisitor) VisitStr(h *StrHandle, id TypeID) (any, error) {
	return nil, nil
}

func (IgnoreVisitor) VisitSequence(s *SequenceDecoder, id TypeID) (any, error) {
	return nil, s.drain()
}

func (IgnoreVisitor) VisitArray(a *ArrayDecoder, id TypeID) (any, error) {
	return nil, a.drain()
}

func (IgnoreVisitor) VisitTuple(t *TupleDecoder, id TypeID) (any, error) {
	return nil, t.drain()
}

func (IgnoreVisitor) VisitComposite(c *CompositeDecoder, id TypeID) (any, error) {
	return nil, c.drain()
}

func (IgnoreVisitor) VisitVariant(v *VariantDecoder, id TypeID) (any, error) {
	return nil, v.drain()
}

func (IgnoreVisitor) VisitBitSequence(b *BitSequenceDecoder, id TypeID) (any, error) {
	b.Decode()
	return nil, nil
}
