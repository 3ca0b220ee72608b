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
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// CachingResolver wraps another Resolver and memoizes every shape it
// resolves, so a repeated decode against the same registry (the
// common case: many values of the same wire format, one registry)
// pays ResolveShape's cost once per TypeID. It is safe
// for a single goroutine; callers sharing one across goroutines must
// synchronize externally, the same way a shared *Reader would need
// to be.
type CachingResolver struct {
	under   Resolver
	shapes  map[TypeID]Shape
	failed  map[TypeID]error
	fprints map[TypeID][32]byte // non-nil iff fingerprint checking is on
}

// CacheOption configures a CachingResolver at construction time.
type CacheOption func(*CachingResolver)

// WithFingerprintCheck records a Fingerprint for every cached shape,
// enabling Revalidate to detect a registry that has changed a type's
// definition underneath a long-lived cache.
func WithFingerprintCheck() CacheOption {
	return func(c *CachingResolver) {
		c.fprints = make(map[TypeID][32]byte)
	}
}

// NewCachingResolver wraps under with a shape cache.
func NewCachingResolver(under Resolver, opts ...CacheOption) *CachingResolver {
	c := &CachingResolver{
		under:  under,
		shapes: make(map[TypeID]Shape),
		failed: make(map[TypeID]error),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveShape implements Resolver.
func (c *CachingResolver) ResolveShape(id TypeID) (Shape, error) {
	if s, ok := c.shapes[id]; ok {
		return s, nil
	}
	if err, ok := c.failed[id]; ok {
		return nil, err
	}
	s, err := c.under.ResolveShape(id)
	if err != nil {
		c.failed[id] = err
		return nil, err
	}
	c.shapes[id] = s
	if c.fprints != nil {
		c.fprints[id] = Fingerprint(s)
	}
	return s, nil
}

// Revalidate re-resolves every cached id against the underlying
// registry and evicts entries whose shape fingerprint no longer
// matches, returning the evicted ids in ascending order. It requires
// the resolver to have been constructed WithFingerprintCheck; without
// it there is nothing recorded to compare against and Revalidate
// reports nothing.
func (c *CachingResolver) Revalidate() []TypeID {
	if c.fprints == nil {
		return nil
	}
	var stale []TypeID
	for id, want := range c.fprints {
		s, err := c.under.ResolveShape(id)
		if err == nil && Fingerprint(s) == want {
			continue
		}
		delete(c.shapes, id)
		delete(c.fprints, id)
		stale = append(stale, id)
	}
	slices.Sort(stale)
	return stale
}

// Reset clears every cached entry, including cached failures. Use
// this when the underlying registry's contents may have changed
// (e.g. after loading a new metadata blob into the same process).
func (c *CachingResolver) Reset() {
	maps.Clear(c.shapes)
	maps.Clear(c.failed)
	if c.fprints != nil {
		maps.Clear(c.fprints)
	}
}

// Len reports the number of successfully resolved shapes currently
// cached.
func (c *CachingResolver) Len() int {
	return len(c.shapes)
}

// CloneInto copies this cache's successful entries into dst, useful
// for seeding a fresh CachingResolver over the same registry without
// re-paying every ResolveShape call.
func (c *CachingResolver) CloneInto(dst *CachingResolver) {
	for id, s := range c.shapes {
		dst.shapes[id] = s
		if dst.fprints != nil {
			dst.fprints[id] = Fingerprint(s)
		}
	}
}

// Keys returns the TypeIDs currently cached as resolved shapes, in
// ascending order. Intended for diagnostics (e.g. reporting which
// types a decode run actually touched), not for the decode hot path.
func (c *CachingResolver) Keys() []TypeID {
	keys := maps.Keys(c.shapes)
	slices.Sort(keys)
	return keys
}
