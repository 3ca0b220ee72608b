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

// Resolver is the one operation the decode engine needs from a type
// registry: given a TypeID, describe its shape. Concrete
// registries — a portable scale-info registry, or one of the ad-hoc
// registries in scale/testregistry — implement this. A Resolver must
// be safe to call from the decoding goroutine; no interior mutability
// is required of it by this package.
type Resolver interface {
	ResolveShape(id TypeID) (Shape, error)
}

// ErrUnknownType is returned by a Resolver (wrapped as TypeNotFound by
// the orchestrator) when it has no shape registered for id.
type ErrUnknownType struct {
	ID TypeID
}

func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("type id %d not found in registry", e.ID)
}

// resolve asks r for the shape of id and classifies any error into
// this package's Kind taxonomy.
func resolve(r Resolver, id TypeID, offset int) (Shape, error) {
	s, err := r.ResolveShape(id)
	if err == nil {
		return s, nil
	}
	if _, ok := err.(*ErrUnknownType); ok {
		return nil, wrapError(TypeNotFound, offset, fmt.Sprintf("type id %d", id), err)
	}
	return nil, wrapError(TypeResolveError, offset, fmt.Sprintf("type id %d", id), err)
}
