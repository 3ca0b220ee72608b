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

// FieldSpec names one position in a flat, unwrapped field list — the
// shape a call's argument list or an event's field list has on the
// wire, with no outer Tuple or Composite framing of its own.
type FieldSpec struct {
	Name string
	ID   TypeID
}

// DecodeAsFields decodes len(fields) consecutive values directly off
// r, in order, without expecting any outer shape to wrap them. Each
// field's value is obtained by calling newVisitor(f) for its
// FieldSpec and handing the result to decodeType; the caller supplies
// newVisitor so it can route different fields to different visitor
// implementations (e.g. by name).
func DecodeAsFields(r *Reader, fields []FieldSpec, resolver Resolver, newVisitor func(FieldSpec) Visitor) ([]any, error) {
	s := &session{r: r, resolver: resolver}
	out := make([]any, len(fields))
	for i, f := range fields {
		s.pushFrame(Frame{Kind: FrameField, Name: f.Name})
		v := newVisitor(f)
		if v == nil {
			s.popFrame()
			return nil, fmt.Errorf("scale: DecodeAsFields: nil visitor for field %q", f.Name)
		}
		val, err := s.decodeType(f.ID, v)
		err = s.attachPath(err)
		s.popFrame()
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}
