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

// VariantValue is the generic representation ValueVisitor produces
// for a Variant shape: the matched variant's name, its wire index,
// and its fields decoded the same way a Composite's would be.
type VariantValue struct {
	Name   string
	Index  uint8
	Fields any // []any for unnamed fields, map[string]any for named ones
}

// ValueVisitor decodes into a generic any tree the way a reflective
// unmarshaler would, without requiring the caller to know the shape
// ahead of time. The returned values use:
//
//	bool, rune, uint8/16/32/64, int8/16/32/64, *big.Int (u/i128, u/i256),
//	string, []any (sequence/array/tuple), map[string]any or []any
//	(composite, depending on whether fields are named), *VariantValue,
//	[]bool (bit sequence)
type ValueVisitor struct {
	UnimplementedVisitor
}

// Value returns a Visitor suitable for passing to DecodeWithVisitor
// when the caller just wants a generic representation of the result.
func Value() Visitor {
	return &ValueVisitor{}
}

func (ValueVisitor) VisitBool(v bool, _ TypeID) (any, error) { return v, nil }
func (ValueVisitor) VisitChar(v rune, _ TypeID) (any, error) { return v, nil }
func (ValueVisitor) VisitU8(v uint8, _ TypeID) (any, error)  { return v, nil }
func (ValueVisitor) VisitU16(v uint16, _ TypeID) (any, error) { return v, nil }
func (ValueVisitor) VisitU32(v uint32, _ TypeID) (any, error) { return v, nil }
func (ValueVisitor) VisitU64(v uint64, _ TypeID) (any, error) { return v, nil }
func (ValueVisitor) VisitU128(v *big.Int, _ TypeID) (any, error) { return v, nil }
func (ValueVisitor) VisitU256(v *big.Int, _ TypeID) (any, error) { return v, nil }
func (ValueVisitor) VisitI8(v int8, _ TypeID) (any, error)   { return v, nil }
func (ValueVisitor) VisitI16(v int16, _ TypeID) (any, error) { return v, nil }
func (ValueVisitor) VisitI32(v int32, _ TypeID) (any, error) { return v, nil }
func (ValueVisitor) VisitI64(v int64, _ TypeID) (any, error) { return v, nil }
func (ValueVisitor) VisitI128(v *big.Int, _ TypeID) (any, error) { return v, nil }
func (ValueVisitor) VisitI256(v *big.Int, _ TypeID) (any, error) { return v, nil }

func (v ValueVisitor) VisitStr(h *StrHandle, _ TypeID) (any, error) {
	return h.AsStr()
}

func (v ValueVisitor) VisitSequence(s *SequenceDecoder, _ TypeID) (any, error) {
	out := make([]any, 0, s.Len())
	for {
		val, ok, err := s.DecodeItem(v)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, val)
	}
	return out, nil
}

func (v ValueVisitor) VisitArray(a *ArrayDecoder, _ TypeID) (any, error) {
	out := make([]any, 0, a.Len())
	for {
		val, ok, err := a.DecodeItem(v)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, val)
	}
	return out, nil
}

func (v ValueVisitor) VisitTuple(t *TupleDecoder, _ TypeID) (any, error) {
	out := make([]any, 0, t.Len())
	for {
		val, ok, err := t.DecodeItem(v)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, val)
	}
	return out, nil
}

func (v ValueVisitor) VisitComposite(c *CompositeDecoder, _ TypeID) (any, error) {
	return v.decodeFields(c)
}

// decodeFields decodes c's remaining fields into a map[string]any
// when the registry names them, or a []any when it doesn't.
func (v ValueVisitor) decodeFields(c *CompositeDecoder) (any, error) {
	if c.Len() > 0 && c.Name() != "" {
		out := make(map[string]any, c.Len())
		for c.Len() > 0 {
			name := c.Name()
			val, err := c.DecodeWithVisitor(v)
			if err != nil {
				return nil, err
			}
			out[name] = val
		}
		return out, nil
	}
	out := make([]any, 0, c.Len())
	for c.Len() > 0 {
		val, err := c.DecodeWithVisitor(v)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	return out, nil
}

func (v ValueVisitor) VisitVariant(vd *VariantDecoder, _ TypeID) (any, error) {
	fields, err := v.decodeFields(vd.Fields())
	if err != nil {
		return nil, err
	}
	return &VariantValue{Name: vd.Name(), Index: vd.Index(), Fields: fields}, nil
}

func (ValueVisitor) VisitBitSequence(b *BitSequenceDecoder, _ TypeID) (any, error) {
	return b.Decode(), nil
}
