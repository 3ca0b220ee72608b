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
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the class of error a decode operation failed with.
// The set is closed: every error the decoder returns carries exactly
// one of these.
type Kind int

const (
	// NotEnoughInput means the reader was exhausted mid-value.
	NotEnoughInput Kind = iota
	// InvalidBool means a bool byte was not 0x00 or 0x01.
	InvalidBool
	// InvalidChar means 4 bytes did not decode to a Unicode scalar value.
	InvalidChar
	// InvalidUtf8 means string bytes failed UTF-8 validation.
	InvalidUtf8
	// InvalidBitSequence means a packed bit-sequence had an
	// inconsistent length or named an unknown store/order kind.
	InvalidBitSequence
	// CompactOverflow means a compact integer's magnitude exceeded the
	// fixed-width target it was being decoded into.
	CompactOverflow
	// InvalidCompactTarget means a Compact(inner) shape's peeled inner
	// type was not an unsigned integer primitive.
	InvalidCompactTarget
	// VariantIndexOutOfRange means the 1-byte discriminant did not
	// name any declared variant.
	VariantIndexOutOfRange
	// TypeNotFound means the resolver had no shape for a type id.
	TypeNotFound
	// TypeResolveError means the resolver failed for a reason other
	// than "not found" (including peel-depth exhaustion).
	TypeResolveError
	// WrongShape means the visitor did not implement the method for
	// the shape the orchestrator dispatched.
	WrongShape
	// VisitorError wraps an arbitrary error returned by visitor code.
	VisitorError
	// TrailingBytes means strict-mode decoding left bytes unconsumed.
	TrailingBytes
)

func (k Kind) String() string {
	switch k {
	case NotEnoughInput:
		return "not enough input"
	case InvalidBool:
		return "invalid bool"
	case InvalidChar:
		return "invalid char"
	case InvalidUtf8:
		return "invalid utf-8"
	case InvalidBitSequence:
		return "invalid bit sequence"
	case CompactOverflow:
		return "compact overflow"
	case InvalidCompactTarget:
		return "invalid compact target"
	case VariantIndexOutOfRange:
		return "variant index out of range"
	case TypeNotFound:
		return "type not found"
	case TypeResolveError:
		return "type resolve error"
	case WrongShape:
		return "wrong shape"
	case VisitorError:
		return "visitor error"
	case TrailingBytes:
		return "trailing bytes"
	default:
		return "invalid error kind"
	}
}

// FrameKind identifies the kind of path element carried by an Error.
type FrameKind int

const (
	// FrameField names a composite field by name.
	FrameField FrameKind = iota
	// FrameIndex names a sequence/array element by position.
	FrameIndex
	// FrameVariant names the variant selected at this point.
	FrameVariant
	// FrameTuple names a tuple position.
	FrameTuple
	// FrameCompact marks a step into compact-integer decoding.
	FrameCompact
)

// Frame is one element of the path from the decode root to the point
// an error occurred. Frame values are small and cheap to append; a
// decode rarely nests more than a handful deep, so Error keeps its
// path inline rather than allocating a separate structure per level.
type Frame struct {
	Kind  FrameKind
	Name  string // FrameField, FrameVariant
	Index int    // FrameIndex, FrameTuple
}

func (f Frame) String() string {
	switch f.Kind {
	case FrameField:
		return "." + f.Name
	case FrameIndex:
		return "[" + strconv.Itoa(f.Index) + "]"
	case FrameVariant:
		return "::" + f.Name
	case FrameTuple:
		return "." + strconv.Itoa(f.Index)
	case FrameCompact:
		return ".compact"
	default:
		return ".?"
	}
}

// smallPath is an inline small-vector for Frame, avoiding a heap
// allocation for the common case of a shallow decode.
type smallPath struct {
	inline [4]Frame
	n      int
	spill  []Frame
}

func (p *smallPath) push(f Frame) {
	if p.spill != nil {
		p.spill = append(p.spill, f)
		return
	}
	if p.n < len(p.inline) {
		p.inline[p.n] = f
		p.n++
		return
	}
	p.spill = make([]Frame, p.n, p.n*2)
	copy(p.spill, p.inline[:p.n])
	p.spill = append(p.spill, f)
}

func (p *smallPath) pop() {
	if p.spill != nil {
		if len(p.spill) > 0 {
			p.spill = p.spill[:len(p.spill)-1]
		}
		return
	}
	if p.n > 0 {
		p.n--
	}
}

func (p *smallPath) snapshot() []Frame {
	if p.spill != nil {
		out := make([]Frame, len(p.spill))
		copy(out, p.spill)
		return out
	}
	out := make([]Frame, p.n)
	copy(out, p.inline[:p.n])
	return out
}

// Error is the error type every decode failure is reported as.
type Error struct {
	Kind   Kind
	Offset int
	Path   []Frame
	Cause  error
	detail string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" at offset ")
	b.WriteString(strconv.Itoa(e.Offset))
	if len(e.Path) > 0 {
		b.WriteString(" (path: $")
		for _, f := range e.Path {
			b.WriteString(f.String())
		}
		b.WriteByte(')')
	}
	if e.detail != "" {
		b.WriteString(": ")
		b.WriteString(e.detail)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes the wrapped cause, if any, so errors.Is/errors.As
// compose with Error the way the standard library expects.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, offset int, detail string) *Error {
	return &Error{Kind: kind, Offset: offset, detail: detail}
}

func wrapError(kind Kind, offset int, detail string, cause error) *Error {
	return &Error{Kind: kind, Offset: offset, detail: detail, Cause: cause}
}

func notEnoughInput(offset, want, have int) *Error {
	return newError(NotEnoughInput, offset, fmt.Sprintf("want %d bytes, have %d", want, have))
}

func wrongShape(offset int, shape string) *Error {
	return newError(WrongShape, offset, fmt.Sprintf("visitor does not implement shape %s", shape))
}

func visitorError(offset int, cause error) *Error {
	return wrapError(VisitorError, offset, "", cause)
}

// withPath attaches path to err in place and returns it, if err is an
// *Error produced by this package and has no path yet. Errors originating elsewhere (a
// visitor's own sentinel error, for instance) are wrapped as
// VisitorError instead, so every error a top-level decode call returns
// is an *Error.
func withPath(err error, offset int, path []Frame) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		if e.Path == nil {
			e.Path = path
		}
		return e
	}
	return &Error{Kind: VisitorError, Offset: offset, Path: path, Cause: err}
}
