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
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint computes a content hash of a Shape, independent of the
// TypeID the registry assigned to the shape itself. The TypeIDs the
// shape refers to (element, field and inner ids) are part of the hash,
// so two registries produce the same fingerprint only if they number
// those referenced types the same way. Type names are not hashed. It
// is used to detect when a registry's definition of a type has
// changed underneath a long-lived CachingResolver.
func Fingerprint(s Shape) [32]byte {
	h, _ := blake2b.New256(nil)
	writeShapeFingerprint(h, s)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

type fpWriter interface {
	Write(p []byte) (int, error)
}

func writeUint32(w fpWriter, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.Write(buf[:])
}

func writeShapeFingerprint(w fpWriter, s Shape) {
	switch sh := s.(type) {
	case PrimitiveShape:
		w.Write([]byte{0})
		w.Write([]byte{byte(sh.Kind)})
	case SequenceShape:
		w.Write([]byte{1})
		writeUint32(w, uint32(sh.Elem))
	case ArrayShape:
		w.Write([]byte{2})
		writeUint32(w, uint32(sh.Elem))
		writeUint32(w, uint32(sh.Len))
	case TupleShape:
		w.Write([]byte{3})
		writeUint32(w, uint32(len(sh.Fields)))
		for _, id := range sh.Fields {
			writeUint32(w, uint32(id))
		}
	case CompositeShape:
		w.Write([]byte{4})
		writeUint32(w, uint32(len(sh.Fields)))
		for _, f := range sh.Fields {
			if f.Name != nil {
				w.Write([]byte{1})
				w.Write([]byte(*f.Name))
			} else {
				w.Write([]byte{0})
			}
			writeUint32(w, uint32(f.ID))
		}
	case VariantShape:
		w.Write([]byte{5})
		writeUint32(w, uint32(len(sh.Variants)))
		for _, v := range sh.Variants {
			w.Write([]byte{v.Index})
			w.Write([]byte(v.Name))
			writeUint32(w, uint32(len(v.Fields)))
			for _, f := range v.Fields {
				writeUint32(w, uint32(f.ID))
			}
		}
	case BitSequenceShape:
		w.Write([]byte{6, byte(sh.Store), byte(sh.Order)})
	case CompactShape:
		w.Write([]byte{7})
		writeUint32(w, uint32(sh.Inner))
	}
}
