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

import "fmt"

// CompositeDecoder iterates the named fields of a Composite shape in
// declared order.
type CompositeDecoder struct {
	sess     *session
	fields   []CompositeField
	typeName *string
	consumed int
}

// TypeName is the name of the composite type being decoded, if the
// registry supplied one.
func (c *CompositeDecoder) TypeName() string {
	if c.typeName == nil {
		return ""
	}
	return *c.typeName
}

// Len reports the number of fields remaining.
func (c *CompositeDecoder) Len() int {
	return len(c.fields) - c.consumed
}

// Name returns the current field's name, or "" if the registry did
// not supply one (e.g. a tuple-style composite).
func (c *CompositeDecoder) Name() string {
	if c.consumed >= len(c.fields) {
		return ""
	}
	f := c.fields[c.consumed]
	if f.Name == nil {
		return ""
	}
	return *f.Name
}

// FieldTypeName returns the current field's declared type name, if
// the registry supplied one.
func (c *CompositeDecoder) FieldTypeName() string {
	if c.consumed >= len(c.fields) {
		return ""
	}
	f := c.fields[c.consumed]
	if f.TypeName == nil {
		return ""
	}
	return *f.TypeName
}

// TypeID returns the current field's type id.
func (c *CompositeDecoder) TypeID() TypeID {
	if c.consumed >= len(c.fields) {
		return 0
	}
	return c.fields[c.consumed].ID
}

// DecodeWithVisitor decodes the current field with v and advances to
// the next one.
func (c *CompositeDecoder) DecodeWithVisitor(v Visitor) (any, error) {
	if c.consumed >= len(c.fields) {
		return nil, fmt.Errorf("scale: CompositeDecoder: no more fields")
	}
	f := c.fields[c.consumed]
	frame := Frame{Kind: FrameField, Name: c.Name()}
	if f.Name == nil {
		frame = Frame{Kind: FrameTuple, Index: c.consumed}
	}
	c.sess.pushFrame(frame)
	val, err := c.sess.decodeType(f.ID, v)
	err = c.sess.attachPath(err)
	c.sess.popFrame()
	c.consumed++
	return val, err
}

func (c *CompositeDecoder) drain() error {
	ig := Ignore()
	for c.consumed < len(c.fields) {
		if _, err := c.DecodeWithVisitor(ig); err != nil {
			return err
		}
	}
	return nil
}

// VariantDecoder exposes the discriminant and fields of a decoded
// Variant shape. The orchestrator has already read
// the 1-byte index and matched it against the resolved Variant list
// before constructing this handle.
type VariantDecoder struct {
	variant Variant
	fields  *CompositeDecoder
}

// Index returns the wire discriminant.
func (v *VariantDecoder) Index() uint8 {
	return v.variant.Index
}

// Name returns the variant's declared name.
func (v *VariantDecoder) Name() string {
	return v.variant.Name
}

// Fields returns a composite-shaped handle over the variant's fields.
func (v *VariantDecoder) Fields() *CompositeDecoder {
	return v.fields
}

func (v *VariantDecoder) drain() error {
	return v.fields.drain()
}
