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

// Visitor is the dispatch surface a caller implements to turn decoded
// SCALE bytes into its own data structures. The orchestrator calls
// exactly one method per top-level resolved shape, handing
// primitive values by value and compound shapes a handle that streams
// their children without materializing them.
//
// Every method receives the outermost TypeID the caller asked to
// decode into, even when the orchestrator peeled transparent wrappers
// or routed through Compact to get there.
//
// Implementations that only care about a handful of shapes should
// embed UnimplementedVisitor and override selectively; the embedded
// methods return WrongShape for everything else.
type Visitor interface {
	VisitBool(v bool, id TypeID) (any, error)
	VisitChar(v rune, id TypeID) (any, error)
	VisitU8(v uint8, id TypeID) (any, error)
	VisitU16(v uint16, id TypeID) (any, error)
	VisitU32(v uint32, id TypeID) (any, error)
	VisitU64(v uint64, id TypeID) (any, error)
	VisitU128(v *big.Int, id TypeID) (any, error)
	VisitU256(v *big.Int, id TypeID) (any, error)
	VisitI8(v int8, id TypeID) (any, error)
	VisitI16(v int16, id TypeID) (any, error)
	VisitI32(v int32, id TypeID) (any, error)
	VisitI64(v int64, id TypeID) (any, error)
	VisitI128(v *big.Int, id TypeID) (any, error)
	VisitI256(v *big.Int, id TypeID) (any, error)
	VisitStr(v *StrHandle, id TypeID) (any, error)
	VisitSequence(v *SequenceDecoder, id TypeID) (any, error)
	VisitArray(v *ArrayDecoder, id TypeID) (any, error)
	VisitTuple(v *TupleDecoder, id TypeID) (any, error)
	VisitComposite(v *CompositeDecoder, id TypeID) (any, error)
	VisitVariant(v *VariantDecoder, id TypeID) (any, error)
	VisitBitSequence(v *BitSequenceDecoder, id TypeID) (any, error)
}

// UnimplementedVisitor implements Visitor by rejecting every shape
// with WrongShape. Embed it in a concrete visitor and override only
// the methods that visitor cares about.
type UnimplementedVisitor struct{}

func (UnimplementedVisitor) VisitBool(bool, TypeID) (any, error)       { return nil, wrongShape(-1, "bool") }
func (UnimplementedVisitor) VisitChar(rune, TypeID) (any, error)       { return nil, wrongShape(-1, "char") }
func (UnimplementedVisitor) VisitU8(uint8, TypeID) (any, error)        { return nil, wrongShape(-1, "u8") }
func (UnimplementedVisitor) VisitU16(uint16, TypeID) (any, error)      { return nil, wrongShape(-1, "u16") }
func (UnimplementedVisitor) VisitU32(uint32, TypeID) (any, error)      { return nil, wrongShape(-1, "u32") }
func (UnimplementedVisitor) VisitU64(uint64, TypeID) (any, error)      { return nil, wrongShape(-1, "u64") }
func (UnimplementedVisitor) VisitU128(*big.Int, TypeID) (any, error)   { return nil, wrongShape(-1, "u128") }
func (UnimplementedVisitor) VisitU256(*big.Int, TypeID) (any, error)   { return nil, wrongShape(-1, "u256") }
func (UnimplementedVisitor) VisitI8(int8, TypeID) (any, error)         { return nil, wrongShape(-1, "i8") }
func (UnimplementedVisitor) VisitI16(int16, TypeID) (any, error)       { return nil, wrongShape(-1, "i16") }
func (UnimplementedVisitor) VisitI32(int32, TypeID) (any, error)       { return nil, wrongShape(-1, "i32") }
func (UnimplementedVisitor) VisitI64(int64, TypeID) (any, error)       { return nil, wrongShape(-1, "i64") }
func (UnimplementedVisitor) VisitI128(*big.Int, TypeID) (any, error)   { return nil, wrongShape(-1, "i128") }
func (UnimplementedVisitor) VisitI256(*big.Int, TypeID) (any, error)   { return nil, wrongShape(-1, "i256") }
func (UnimplementedVisitor) VisitStr(*StrHandle, TypeID) (any, error)  { return nil, wrongShape(-1, "str") }
func (UnimplementedVisitor) VisitSequence(*SequenceDecoder, TypeID) (any, error) {
	return nil, wrongShape(-1, "sequence")
}
func (UnimplementedVisitor) VisitArray(*ArrayDecoder, TypeID) (any, error) {
	return nil, wrongShape(-1, "array")
}
func (UnimplementedVisitor) VisitTuple(*TupleDecoder, TypeID) (any, error) {
	return nil, wrongShape(-1, "tuple")
}
func (UnimplementedVisitor) VisitComposite(*CompositeDecoder, TypeID) (any, error) {
	return nil, wrongShape(-1, "composite")
}
func (UnimplementedVisitor) VisitVariant(*VariantDecoder, TypeID) (any, error) {
	return nil, wrongShape(-1, "variant")
}
func (UnimplementedVisitor) VisitBitSequence(*BitSequenceDecoder, TypeID) (any, error) {
	return nil, wrongShape(-1, "bit sequence")
}

// IntoVisitor is implemented by types that know how to produce a
// canonical Visitor capable of decoding into themselves from any
// Resolver. DecodeAsType uses this to drive a decode
// without the caller constructing a Visitor by hand.
type IntoVisitor interface {
	IntoVisitor() Visitor
}
