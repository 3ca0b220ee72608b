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

package testregistry

import (
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/paritytech/scale-decode/scale"
)

// yamlField and yamlShape mirror scale.CompositeField/scale.Shape in
// a form sigs.k8s.io/yaml (which decodes through encoding/json
// struct tags) can unmarshal directly; FromYAML converts them into
// the real scale.Shape union afterwards.
type yamlField struct {
	Name     *string `json:"name,omitempty"`
	ID       uint32  `json:"id"`
	TypeName *string `json:"typeName,omitempty"`
}

type yamlVariant struct {
	Index  uint8       `json:"index"`
	Name   string      `json:"name"`
	Fields []yamlField `json:"fields,omitempty"`
}

type yamlShape struct {
	Kind string `json:"kind"`

	// PrimitiveShape
	Primitive string `json:"primitive,omitempty"`

	// SequenceShape / ArrayShape / CompactShape
	Elem  uint32 `json:"elem,omitempty"`
	Len   int    `json:"len,omitempty"`
	Inner uint32 `json:"inner,omitempty"`

	// TupleShape
	Fields []uint32 `json:"fields,omitempty"`

	// CompositeShape
	CompositeFields []yamlField `json:"compositeFields,omitempty"`
	TypeName        *string     `json:"typeName,omitempty"`

	// VariantShape
	Variants []yamlVariant `json:"variants,omitempty"`

	// BitSequenceShape
	Store string `json:"store,omitempty"`
	Order string `json:"order,omitempty"`
}

type yamlDoc map[string]yamlShape

// FromYAML parses a YAML document mapping decimal type ids to shape
// descriptions into a Map resolver, for tests that would rather write
// a registry as a fixture file than assemble Shape values by hand.
func FromYAML(data []byte) (Map, error) {
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("testregistry: parsing yaml registry: %w", err)
	}
	out := make(Map, len(doc))
	for key, ys := range doc {
		var id uint32
		if _, err := fmt.Sscanf(key, "%d", &id); err != nil {
			return nil, fmt.Errorf("testregistry: type id key %q is not an integer", key)
		}
		s, err := ys.toShape()
		if err != nil {
			return nil, fmt.Errorf("testregistry: type id %d: %w", id, err)
		}
		out[scale.TypeID(id)] = s
	}
	return out, nil
}

func (ys yamlShape) toShape() (scale.Shape, error) {
	switch ys.Kind {
	case "primitive":
		kind, err := parsePrimitiveKind(ys.Primitive)
		if err != nil {
			return nil, err
		}
		return scale.PrimitiveShape{Kind: kind}, nil
	case "sequence":
		return scale.SequenceShape{Elem: scale.TypeID(ys.Elem)}, nil
	case "array":
		return scale.ArrayShape{Elem: scale.TypeID(ys.Elem), Len: ys.Len}, nil
	case "tuple":
		fields := make([]scale.TypeID, len(ys.Fields))
		for i, id := range ys.Fields {
			fields[i] = scale.TypeID(id)
		}
		return scale.TupleShape{Fields: fields}, nil
	case "composite":
		fields := make([]scale.CompositeField, len(ys.CompositeFields))
		for i, f := range ys.CompositeFields {
			fields[i] = scale.CompositeField{Name: f.Name, ID: scale.TypeID(f.ID), TypeName: f.TypeName}
		}
		return scale.CompositeShape{Fields: fields, TypeName: ys.TypeName}, nil
	case "variant":
		variants := make([]scale.Variant, len(ys.Variants))
		for i, v := range ys.Variants {
			fields := make([]scale.CompositeField, len(v.Fields))
			for j, f := range v.Fields {
				fields[j] = scale.CompositeField{Name: f.Name, ID: scale.TypeID(f.ID), TypeName: f.TypeName}
			}
			variants[i] = scale.Variant{Index: v.Index, Name: v.Name, Fields: fields}
		}
		return scale.VariantShape{Variants: variants}, nil
	case "bitsequence":
		store, err := parseStoreKind(ys.Store)
		if err != nil {
			return nil, err
		}
		order, err := parseOrderKind(ys.Order)
		if err != nil {
			return nil, err
		}
		return scale.BitSequenceShape{Store: store, Order: order}, nil
	case "compact":
		return scale.CompactShape{Inner: scale.TypeID(ys.Inner)}, nil
	default:
		return nil, fmt.Errorf("unknown shape kind %q", ys.Kind)
	}
}

func parsePrimitiveKind(name string) (scale.PrimitiveKind, error) {
	switch name {
	case "bool":
		return scale.KindBool, nil
	case "char":
		return scale.KindChar, nil
	case "u8":
		return scale.KindU8, nil
	case "u16":
		return scale.KindU16, nil
	case "u32":
		return scale.KindU32, nil
	case "u64":
		return scale.KindU64, nil
	case "u128":
		return scale.KindU128, nil
	case "u256":
		return scale.KindU256, nil
	case "i8":
		return scale.KindI8, nil
	case "i16":
		return scale.KindI16, nil
	case "i32":
		return scale.KindI32, nil
	case "i64":
		return scale.KindI64, nil
	case "i128":
		return scale.KindI128, nil
	case "i256":
		return scale.KindI256, nil
	case "str":
		return scale.KindStr, nil
	default:
		return 0, fmt.Errorf("unknown primitive kind %q", name)
	}
}

func parseStoreKind(name string) (scale.StoreKind, error) {
	switch name {
	case "", "u8":
		return scale.StoreU8, nil
	case "u16":
		return scale.StoreU16, nil
	case "u32":
		return scale.StoreU32, nil
	case "u64":
		return scale.StoreU64, nil
	default:
		return 0, fmt.Errorf("unknown bit-sequence store kind %q", name)
	}
}

func parseOrderKind(name string) (scale.OrderKind, error) {
	switch name {
	case "", "lsb0":
		return scale.OrderLsb0, nil
	case "msb0":
		return scale.OrderMsb0, nil
	default:
		return 0, fmt.Errorf("unknown bit-sequence order kind %q", name)
	}
}
