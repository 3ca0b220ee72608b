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
	"math/big"
	"unicode/utf8"
)

// DefaultMaxPeelDepth bounds the orchestrator's transparent-wrapper /
// compact-routing peel loop. A resolver that reports a
// cycle (type A peels to Compact(B), B peels transparently back to A)
// would otherwise spin the decoder forever; exceeding this depth
// surfaces TypeResolveError instead.
const DefaultMaxPeelDepth = 64

// session carries the state one top-level decode call threads through
// recursive decodeType calls: the shared reader, the resolver, and the
// current error path. Compound handles hold a *session, not a copy,
// so nested decodes via DecodeItem/DecodeWithVisitor share the one
// reader and can never desynchronise it.
type session struct {
	r        *Reader
	resolver Resolver
	path     smallPath
}

func (s *session) pushFrame(f Frame) { s.path.push(f) }
func (s *session) popFrame()         { s.path.pop() }

// attachPath snapshots the current path onto err before the caller
// pops its frame. The deepest snapshot wins (withPath only sets a
// path that is not already set), so the path an error surfaces with
// always describes the position it actually occurred at.
func (s *session) attachPath(err error) error {
	if err == nil {
		return nil
	}
	return withPath(err, s.r.Offset(), s.path.snapshot())
}

// DecodeWithVisitor decodes one value of type id from r using
// resolver, calling into v. It mutates r (advancing past
// the consumed bytes) and does not require the reader to be
// exhausted; use Reader.Remaining() after the call, or
// DecodeWithVisitorStrict, to enforce that.
func DecodeWithVisitor(r *Reader, id TypeID, resolver Resolver, v Visitor) (any, error) {
	s := &session{r: r, resolver: resolver}
	val, err := s.decodeType(id, v)
	if err != nil {
		return nil, withPath(err, r.Offset(), s.path.snapshot())
	}
	return val, nil
}

// DecodeWithVisitorStrict is DecodeWithVisitor with exhaustion
// required: success means r is fully drained afterwards, else
// TrailingBytes.
func DecodeWithVisitorStrict(r *Reader, id TypeID, resolver Resolver, v Visitor) (any, error) {
	val, err := DecodeWithVisitor(r, id, resolver, v)
	if err != nil {
		return nil, err
	}
	if rem := r.Remaining(); rem > 0 {
		return nil, newError(TrailingBytes, r.Offset(), fmt.Sprintf("%d bytes remaining", rem))
	}
	return val, nil
}

// DecodeAsType decodes data into dst, which must implement
// IntoVisitor. It does not require data to be fully consumed; callers
// that need strict exhaustion should use DecodeAsTypeStrict.
func DecodeAsType(data []byte, id TypeID, resolver Resolver, dst IntoVisitor) (any, error) {
	r := NewReader(data)
	return DecodeWithVisitor(r, id, resolver, dst.IntoVisitor())
}

// DecodeAsTypeStrict is DecodeAsType with full-exhaustion required.
func DecodeAsTypeStrict(data []byte, id TypeID, resolver Resolver, dst IntoVisitor) (any, error) {
	r := NewReader(data)
	return DecodeWithVisitorStrict(r, id, resolver, dst.IntoVisitor())
}

// decodeType resolves id's shape, peels transparent wrappers and
// routes Compact shapes, and dispatches to v. The
// TypeID handed to v is always the id this call was invoked with —
// peeling only changes wire interpretation, never the identity
// reported to the visitor.
func (s *session) decodeType(id TypeID, v Visitor) (any, error) {
	outer := id
	cur := id
	guard := newCycleGuard()
	for depth := 0; ; depth++ {
		if depth > DefaultMaxPeelDepth {
			return nil, newError(TypeResolveError, s.r.Offset(),
				fmt.Sprintf("type id %d: transparent/compact peel depth exceeded", outer))
		}
		if !guard.mark(cur) {
			return nil, newError(TypeResolveError, s.r.Offset(),
				fmt.Sprintf("type id %d: cycle detected while peeling wrappers", outer))
		}
		shape, err := resolve(s.resolver, cur, s.r.Offset())
		if err != nil {
			return nil, err
		}
		if cs, ok := shape.(CompactShape); ok {
			return s.decodeCompact(cs.Inner, outer, v)
		}
		if inner, ok := transparentInner(shape); ok {
			cur = inner
			continue
		}
		return s.dispatch(shape, outer, v)
	}
}

// decodeCompact implements compact routing: inner is
// peeled through transparent wrappers until it resolves to a
// primitive unsigned integer, which is then read in compact form and
// handed to the matching VisitU* method — never a dedicated
// visit_compact_* method, so compact integers can appear arbitrarily
// nested inside newtype-style wrappers.
func (s *session) decodeCompact(inner TypeID, outerID TypeID, v Visitor) (any, error) {
	cur := inner
	guard := newCycleGuard()
	for depth := 0; ; depth++ {
		if depth > DefaultMaxPeelDepth {
			return nil, newError(TypeResolveError, s.r.Offset(), "compact inner: peel depth exceeded")
		}
		if !guard.mark(cur) {
			return nil, newError(TypeResolveError, s.r.Offset(), "compact inner: cycle detected while peeling wrappers")
		}
		shape, err := resolve(s.resolver, cur, s.r.Offset())
		if err != nil {
			return nil, err
		}
		if t, ok := transparentInner(shape); ok {
			cur = t
			continue
		}
		prim, ok := shape.(PrimitiveShape)
		if !ok || !prim.Kind.unsigned() {
			return nil, newError(InvalidCompactTarget, s.r.Offset(),
				fmt.Sprintf("compact inner type id %d is not an unsigned integer", cur))
		}
		return s.dispatchCompact(prim.Kind, outerID, v)
	}
}

func (s *session) dispatchCompact(kind PrimitiveKind, outerID TypeID, v Visitor) (val any, err error) {
	s.pushFrame(Frame{Kind: FrameCompact})
	defer func() {
		err = s.attachPath(err)
		s.popFrame()
	}()
	offset := s.r.Offset()
	bits := kind.bitWidth()
	mag, err := DecodeCompact(s.r)
	if err != nil {
		return nil, err
	}
	if mag.Sign() < 0 || mag.BitLen() > bits {
		return nil, newError(CompactOverflow, offset, fmt.Sprintf("compact value does not fit in %d bits", bits))
	}
	switch kind {
	case KindU8:
		return s.callVisitor(v.VisitU8(uint8(mag.Uint64()), outerID))
	case KindU16:
		return s.callVisitor(v.VisitU16(uint16(mag.Uint64()), outerID))
	case KindU32:
		return s.callVisitor(v.VisitU32(uint32(mag.Uint64()), outerID))
	case KindU64:
		return s.callVisitor(v.VisitU64(mag.Uint64(), outerID))
	case KindU128:
		return s.callVisitor(v.VisitU128(mag, outerID))
	case KindU256:
		return s.callVisitor(v.VisitU256(mag, outerID))
	default:
		return nil, newError(InvalidCompactTarget, offset, fmt.Sprintf("unsupported compact target kind %s", kind))
	}
}

// dispatch reads shape's wire encoding (no further peeling — that
// already happened in decodeType) and invokes the matching visitor
// method, handing it outerID.
func (s *session) dispatch(shape Shape, outerID TypeID, v Visitor) (any, error) {
	offset := s.r.Offset()
	switch sh := shape.(type) {
	case PrimitiveShape:
		return s.dispatchPrimitive(sh.Kind, outerID, v)
	case SequenceShape:
		n, err := CompactUint64(s.r)
		if err != nil {
			return nil, err
		}
		seq := &SequenceDecoder{sess: s, elem: sh.Elem, total: int(n)}
		val, err := s.callVisitor(v.VisitSequence(seq, outerID))
		if err != nil {
			// the visitor aborted: unwind without draining (the reader
			// position is undefined after an error)
			return nil, err
		}
		return val, seq.drain()
	case ArrayShape:
		arr := &ArrayDecoder{sess: s, elem: sh.Elem, total: sh.Len}
		val, err := s.callVisitor(v.VisitArray(arr, outerID))
		if err != nil {
			return nil, err
		}
		return val, arr.drain()
	case TupleShape:
		tup := &TupleDecoder{sess: s, fields: sh.Fields}
		val, err := s.callVisitor(v.VisitTuple(tup, outerID))
		if err != nil {
			return nil, err
		}
		return val, tup.drain()
	case CompositeShape:
		comp := &CompositeDecoder{sess: s, fields: sh.Fields, typeName: sh.TypeName}
		val, err := s.callVisitor(v.VisitComposite(comp, outerID))
		if err != nil {
			return nil, err
		}
		return val, comp.drain()
	case VariantShape:
		idx, err := s.r.TakeByte()
		if err != nil {
			return nil, err
		}
		var variant Variant
		found := false
		for _, cand := range sh.Variants {
			if cand.Index == idx {
				variant = cand
				found = true
				break
			}
		}
		if !found {
			return nil, newError(VariantIndexOutOfRange, offset, fmt.Sprintf("index %d", idx))
		}
		s.pushFrame(Frame{Kind: FrameVariant, Name: variant.Name})
		fields := &CompositeDecoder{sess: s, fields: variant.Fields}
		vd := &VariantDecoder{variant: variant, fields: fields}
		val, err := s.callVisitor(v.VisitVariant(vd, outerID))
		if err == nil {
			err = vd.drain()
		}
		err = s.attachPath(err)
		s.popFrame()
		return val, err
	case BitSequenceShape:
		bs, err := decodeBitSequence(s.r, sh)
		if err != nil {
			return nil, err
		}
		return s.callVisitor(v.VisitBitSequence(bs, outerID))
	default:
		return nil, newError(WrongShape, offset, "unknown resolved shape")
	}
}

// callVisitor fills in the reader's current offset on an unset-offset
// *Error (UnimplementedVisitor's WrongShape doesn't know the reader's
// position) and wraps any other visitor error as VisitorError at that
// offset, so both get positional context attached uniformly.
func (s *session) callVisitor(val any, err error) (any, error) {
	if err == nil {
		return val, nil
	}
	offset := s.r.Offset()
	if e, ok := err.(*Error); ok {
		if e.Offset < 0 {
			e.Offset = offset
		}
		return nil, e
	}
	return nil, visitorError(offset, err)
}

func (s *session) dispatchPrimitive(kind PrimitiveKind, outerID TypeID, v Visitor) (any, error) {
	offset := s.r.Offset()
	switch kind {
	case KindBool:
		b, err := s.r.TakeByte()
		if err != nil {
			return nil, err
		}
		switch b {
		case 0x00:
			return s.callVisitor(v.VisitBool(false, outerID))
		case 0x01:
			return s.callVisitor(v.VisitBool(true, outerID))
		default:
			return nil, newError(InvalidBool, offset, fmt.Sprintf("byte 0x%02x", b))
		}
	case KindChar:
		raw, err := s.r.TakeUintLE(4)
		if err != nil {
			return nil, err
		}
		r := rune(raw)
		if raw > 0x10FFFF || !utf8.ValidRune(r) {
			return nil, newError(InvalidChar, offset, fmt.Sprintf("code point %d", raw))
		}
		return s.callVisitor(v.VisitChar(r, outerID))
	case KindU8:
		n, err := s.r.TakeUintLE(1)
		if err != nil {
			return nil, err
		}
		return s.callVisitor(v.VisitU8(uint8(n), outerID))
	case KindU16:
		n, err := s.r.TakeUintLE(2)
		if err != nil {
			return nil, err
		}
		return s.callVisitor(v.VisitU16(uint16(n), outerID))
	case KindU32:
		n, err := s.r.TakeUintLE(4)
		if err != nil {
			return nil, err
		}
		return s.callVisitor(v.VisitU32(uint32(n), outerID))
	case KindU64:
		n, err := s.r.TakeUintLE(8)
		if err != nil {
			return nil, err
		}
		return s.callVisitor(v.VisitU64(n, outerID))
	case KindU128:
		mag, err := s.readFixedMagnitude(16)
		if err != nil {
			return nil, err
		}
		return s.callVisitor(v.VisitU128(mag, outerID))
	case KindU256:
		mag, err := s.readFixedMagnitude(32)
		if err != nil {
			return nil, err
		}
		return s.callVisitor(v.VisitU256(mag, outerID))
	case KindI8:
		n, err := s.r.TakeUintLE(1)
		if err != nil {
			return nil, err
		}
		return s.callVisitor(v.VisitI8(int8(n), outerID))
	case KindI16:
		n, err := s.r.TakeUintLE(2)
		if err != nil {
			return nil, err
		}
		return s.callVisitor(v.VisitI16(int16(n), outerID))
	case KindI32:
		n, err := s.r.TakeUintLE(4)
		if err != nil {
			return nil, err
		}
		return s.callVisitor(v.VisitI32(int32(n), outerID))
	case KindI64:
		n, err := s.r.TakeUintLE(8)
		if err != nil {
			return nil, err
		}
		return s.callVisitor(v.VisitI64(int64(n), outerID))
	case KindI128:
		mag, err := s.readSignedFixed(16)
		if err != nil {
			return nil, err
		}
		return s.callVisitor(v.VisitI128(mag, outerID))
	case KindI256:
		mag, err := s.readSignedFixed(32)
		if err != nil {
			return nil, err
		}
		return s.callVisitor(v.VisitI256(mag, outerID))
	case KindStr:
		n, err := CompactUint64(s.r)
		if err != nil {
			return nil, err
		}
		strOffset := s.r.Offset()
		raw, err := s.r.Take(int(n))
		if err != nil {
			return nil, err
		}
		h := &StrHandle{raw: raw, after: s.r.buf[s.r.pos:], offset: strOffset}
		return s.callVisitor(v.VisitStr(h, outerID))
	default:
		return nil, newError(WrongShape, offset, fmt.Sprintf("unknown primitive kind %s", kind))
	}
}

// readFixedMagnitude reads n little-endian bytes and returns them as
// an unsigned big.Int magnitude (u128/u256).
func (s *session) readFixedMagnitude(n int) (*big.Int, error) {
	b, err := s.r.Take(n)
	if err != nil {
		return nil, err
	}
	be := make([]byte, n)
	for i, x := range b {
		be[n-1-i] = x
	}
	return new(big.Int).SetBytes(be), nil
}

// readSignedFixed reads n little-endian bytes as a two's-complement
// signed integer (i128/i256).
func (s *session) readSignedFixed(n int) (*big.Int, error) {
	b, err := s.r.Take(n)
	if err != nil {
		return nil, err
	}
	be := make([]byte, n)
	for i, x := range b {
		be[n-1-i] = x
	}
	v := new(big.Int).SetBytes(be)
	if be[0]&0x80 != 0 {
		// negative: v - 2^(8n)
		mod := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
		v.Sub(v, mod)
	}
	return v, nil
}
