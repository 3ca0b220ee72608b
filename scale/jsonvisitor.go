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
	"math/big"
	"strconv"
)

// JSONVisitor renders a decoded value directly to buf as JSON,
// without materializing an intermediate any tree first. Composite
// fields with no declared name and tuple elements are rendered as a
// JSON array; named composite fields are rendered as a JSON object.
// Variants render as a single-key object: {"VariantName": fields}.
type JSONVisitor struct {
	UnimplementedVisitor
	buf []byte
}

// NewJSONVisitor returns a visitor that appends its rendering to buf.
func NewJSONVisitor(buf []byte) *JSONVisitor {
	return &JSONVisitor{buf: buf}
}

// Bytes returns the buffer accumulated so far.
func (j *JSONVisitor) Bytes() []byte {
	return j.buf
}

func (j *JSONVisitor) VisitBool(v bool, _ TypeID) (any, error) {
	if v {
		j.buf = append(j.buf, "true"...)
	} else {
		j.buf = append(j.buf, "false"...)
	}
	return nil, nil
}

func (j *JSONVisitor) VisitChar(v rune, _ TypeID) (any, error) {
	j.buf = appendQuotedString(j.buf, string(v))
	return nil, nil
}

func (j *JSONVisitor) VisitU8(v uint8, _ TypeID) (any, error) {
	j.buf = strconv.AppendUint(j.buf, uint64(v), 10)
	return nil, nil
}

func (j *JSONVisitor) VisitU16(v uint16, _ TypeID) (any, error) {
	j.buf = strconv.AppendUint(j.buf, uint64(v), 10)
	return nil, nil
}

func (j *JSONVisitor) VisitU32(v uint32, _ TypeID) (any, error) {
	j.buf = strconv.AppendUint(j.buf, uint64(v), 10)
	return nil, nil
}

func (j *JSONVisitor) VisitU64(v uint64, _ TypeID) (any, error) {
	j.buf = appendQuotedString(j.buf, strconv.FormatUint(v, 10))
	return nil, nil
}

func (j *JSONVisitor) VisitU128(v *big.Int, _ TypeID) (any, error) {
	j.buf = appendQuotedString(j.buf, v.String())
	return nil, nil
}

func (j *JSONVisitor) VisitU256(v *big.Int, _ TypeID) (any, error) {
	j.buf = appendQuotedString(j.buf, v.String())
	return nil, nil
}

func (j *JSONVisitor) VisitI8(v int8, _ TypeID) (any, error) {
	j.buf = strconv.AppendInt(j.buf, int64(v), 10)
	return nil, nil
}

func (j *JSONVisitor) VisitI16(v int16, _ TypeID) (any, error) {
	j.buf = strconv.AppendInt(j.buf, int64(v), 10)
	return nil, nil
}

func (j *JSONVisitor) VisitI32(v int32, _ TypeID) (any, error) {
	j.buf = strconv.AppendInt(j.buf, int64(v), 10)
	return nil, nil
}

func (j *JSONVisitor) VisitI64(v int64, _ TypeID) (any, error) {
	j.buf = appendQuotedString(j.buf, strconv.FormatInt(v, 10))
	return nil, nil
}

func (j *JSONVisitor) VisitI128(v *big.Int, _ TypeID) (any, error) {
	j.buf = appendQuotedString(j.buf, v.String())
	return nil, nil
}

func (j *JSONVisitor) VisitI256(v *big.Int, _ TypeID) (any, error) {
	j.buf = appendQuotedString(j.buf, v.String())
	return nil, nil
}

func (j *JSONVisitor) VisitStr(h *StrHandle, _ TypeID) (any, error) {
	s, err := h.AsStr()
	if err != nil {
		return nil, err
	}
	j.buf = appendQuotedString(j.buf, s)
	return nil, nil
}

func (j *JSONVisitor) VisitSequence(s *SequenceDecoder, _ TypeID) (any, error) {
	j.buf = append(j.buf, '[')
	for first := true; s.Len() > 0; first = false {
		if !first {
			j.buf = append(j.buf, ',')
		}
		if _, _, err := s.DecodeItem(j); err != nil {
			return nil, err
		}
	}
	j.buf = append(j.buf, ']')
	return nil, nil
}

func (j *JSONVisitor) VisitArray(a *ArrayDecoder, _ TypeID) (any, error) {
	j.buf = append(j.buf, '[')
	for first := true; a.Len() > 0; first = false {
		if !first {
			j.buf = append(j.buf, ',')
		}
		if _, _, err := a.DecodeItem(j); err != nil {
			return nil, err
		}
	}
	j.buf = append(j.buf, ']')
	return nil, nil
}

func (j *JSONVisitor) VisitTuple(t *TupleDecoder, _ TypeID) (any, error) {
	j.buf = append(j.buf, '[')
	for first := true; t.Len() > 0; first = false {
		if !first {
			j.buf = append(j.buf, ',')
		}
		if _, _, err := t.DecodeItem(j); err != nil {
			return nil, err
		}
	}
	j.buf = append(j.buf, ']')
	return nil, nil
}

func (j *JSONVisitor) VisitComposite(c *CompositeDecoder, _ TypeID) (any, error) {
	return nil, j.renderFields(c)
}

// renderFields renders a composite's fields as a JSON object when the
// registry names them, or a JSON array otherwise.
func (j *JSONVisitor) renderFields(c *CompositeDecoder) error {
	named := c.Len() > 0 && c.Name() != ""
	open, close := byte('['), byte(']')
	if named {
		open, close = '{', '}'
	}
	j.buf = append(j.buf, open)
	first := true
	for c.Len() > 0 {
		if !first {
			j.buf = append(j.buf, ',')
		}
		first = false
		if named {
			j.buf = appendQuotedString(j.buf, c.Name())
			j.buf = append(j.buf, ':')
		}
		if _, err := c.DecodeWithVisitor(j); err != nil {
			return err
		}
	}
	j.buf = append(j.buf, close)
	return nil
}

func (j *JSONVisitor) VisitVariant(v *VariantDecoder, _ TypeID) (any, error) {
	j.buf = append(j.buf, '{')
	j.buf = appendQuotedString(j.buf, v.Name())
	j.buf = append(j.buf, ':')
	if err := j.renderFields(v.Fields()); err != nil {
		return nil, err
	}
	j.buf = append(j.buf, '}')
	return nil, nil
}

func (j *JSONVisitor) VisitBitSequence(b *BitSequenceDecoder, _ TypeID) (any, error) {
	j.buf = append(j.buf, '[')
	for i, bit := range b.Decode() {
		if i > 0 {
			j.buf = append(j.buf, ',')
		}
		if bit {
			j.buf = append(j.buf, '1')
		} else {
			j.buf = append(j.buf, '0')
		}
	}
	j.buf = append(j.buf, ']')
	return nil, nil
}
