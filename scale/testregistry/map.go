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

// Package testregistry provides small, ad-hoc scale.Resolver
// implementations for use in tests and examples, as an alternative to
// wiring up a full portable-registry decoder just to exercise the
// core decode engine.
package testregistry

import "github.com/paritytech/scale-decode/scale"

// Map is a Resolver backed by a plain map, for tests that want to
// hand-assemble a handful of shapes without going through a
// serialized registry format at all.
type Map map[scale.TypeID]scale.Shape

// ResolveShape implements scale.Resolver.
func (m Map) ResolveShape(id scale.TypeID) (scale.Shape, error) {
	s, ok := m[id]
	if !ok {
		return nil, &scale.ErrUnknownType{ID: id}
	}
	return s, nil
}
