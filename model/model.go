/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package model

import (
	"maps"
	"reflect"
)

// Attributes is the key-value bag entities are constructed from.
type Attributes map[string]any

// Model is the entity base contract.
type Model interface {
	GetAttribute(key string) any
	SetAttribute(key string, value any)
	Attributes() Attributes
}

var modelType = reflect.TypeOf((*Model)(nil)).Elem()

// Base is an embeddable Model implementation backed by an attribute map.
type Base struct {
	attributes Attributes
}

// Fill copies attrs into the entity, replacing existing keys.
func (b *Base) Fill(attrs Attributes) {
	if b.attributes == nil {
		b.attributes = make(Attributes, len(attrs))
	}
	for k, v := range attrs {
		b.attributes[k] = v
	}
}

// GetAttribute returns the value stored under key, or nil.
func (b *Base) GetAttribute(key string) any {
	return b.attributes[key]
}

// SetAttribute stores value under key.
func (b *Base) SetAttribute(key string, value any) {
	if b.attributes == nil {
		b.attributes = make(Attributes)
	}
	b.attributes[key] = value
}

// Attributes returns a copy of the entity's attributes.
func (b *Base) Attributes() Attributes {
	if b.attributes == nil {
		return Attributes{}
	}
	return maps.Clone(b.attributes)
}

// StringAttribute returns the string attribute stored under key, or "".
func (b *Base) StringAttribute(key string) string {
	s, _ := b.attributes[key].(string)
	return s
}
