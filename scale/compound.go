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

// SequenceDecoder iterates the elements of a Sequence shape
// (compact-length-prefixed on the wire). It holds the reader
// exclusively for its lifetime; the only way to read a child is
// DecodeItem, which always advances past exactly one element.
type SequenceDecoder struct {
	sess     *session
	elem     TypeID
	total    int
	consumed int
}

// Len reports the number of elements remaining.
func (s *SequenceDecoder) Len() int {
	return s.total - s.consumed
}

// DecodeItem decodes the next element with v, or reports ok=false
// once the sequence is exhausted.
func (s *SequenceDecoder) DecodeItem(v Visitor) (val any, ok bool, err error) {
	if s.consumed >= s.total {
		return nil, false, nil
	}
	s.sess.pushFrame(Frame{Kind: FrameIndex, Index: s.consumed})
	val, err = s.sess.decodeType(s.elem, v)
	err = s.sess.attachPath(err)
	s.sess.popFrame()
	s.consumed++
	if err != nil {
		return nil, true, err
	}
	return val, true, nil
}

// drain consumes any remaining elements with the ignore visitor, used
// by the orchestrator when a caller's visitor returns before
// exhausting the sequence.
func (s *SequenceDecoder) drain() error {
	ig := Ignore()
	for s.consumed < s.total {
		if _, _, err := s.DecodeItem(ig); err != nil {
			return err
		}
	}
	return nil
}

// ArrayDecoder iterates the elements of a fixed-length Array shape:
// identical interface to SequenceDecoder, but the length is known
// upfront and there is no length prefix on the wire.
type ArrayDecoder struct {
	sess     *session
	elem     TypeID
	total    int
	consumed int
}

func (a *ArrayDecoder) Len() int {
	return a.total - a.consumed
}

func (a *ArrayDecoder) DecodeItem(v Visitor) (val any, ok bool, err error) {
	if a.consumed >= a.total {
		return nil, false, nil
	}
	a.sess.pushFrame(Frame{Kind: FrameIndex, Index: a.consumed})
	val, err = a.sess.decodeType(a.elem, v)
	err = a.sess.attachPath(err)
	a.sess.popFrame()
	a.consumed++
	if err != nil {
		return nil, true, err
	}
	return val, true, nil
}

func (a *ArrayDecoder) drain() error {
	ig := Ignore()
	for a.consumed < a.total {
		if _, _, err := a.DecodeItem(ig); err != nil {
			return err
		}
	}
	return nil
}

// TupleDecoder iterates the unnamed fields of a Tuple shape in
// declared order.
type TupleDecoder struct {
	sess     *session
	fields   []TypeID
	consumed int
}

func (t *TupleDecoder) Len() int {
	return len(t.fields) - t.consumed
}

func (t *TupleDecoder) DecodeItem(v Visitor) (val any, ok bool, err error) {
	if t.consumed >= len(t.fields) {
		return nil, false, nil
	}
	t.sess.pushFrame(Frame{Kind: FrameTuple, Index: t.consumed})
	val, err = t.sess.decodeType(t.fields[t.consumed], v)
	err = t.sess.attachPath(err)
	t.sess.popFrame()
	t.consumed++
	if err != nil {
		return nil, true, err
	}
	return val, true, nil
}

func (t *TupleDecoder) drain() error {
	ig := Ignore()
	for t.consumed < len(t.fields) {
		if _, _, err := t.DecodeItem(ig); err != nil {
			return err
		}
	}
	return nil
}
