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

	"github.com/dchest/siphash"
)

// cycleGuardK0 and cycleGuardK1 form a fixed siphash key. The guard only needs to avoid
// accidental collisions within a single peel loop, not resist a
// malicious resolver, so a process-wide constant key is sufficient
// (mirrors the fixed key ion's symbol table hashing uses).
const (
	cycleGuardK0 = 0x5341434c45475244 // "SACLEGRD"
	cycleGuardK1 = 0x544e524150454c5f // "TNRAPEL_"
)

// cycleGuard bounds a transparent/compact peel loop by
// recording the TypeIDs already visited this loop and refusing to
// continue once one repeats. It is cheap enough to allocate fresh for
// every decodeType call: peel loops are shallow in practice, so the
// backing map rarely grows past one or two entries.
type cycleGuard struct {
	seen map[uint64]struct{}
}

func newCycleGuard() cycleGuard {
	return cycleGuard{seen: make(map[uint64]struct{}, 4)}
}

// mark records id as visited and reports whether it was new. A false
// return means id was already visited: the peel loop found a cycle.
func (g *cycleGuard) mark(id TypeID) bool {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(id))
	h := siphash.Hash(cycleGuardK0, cycleGuardK1, buf[:])
	if _, ok := g.seen[h]; ok {
		return false
	}
	g.seen[h] = struct{}{}
	return true
}
