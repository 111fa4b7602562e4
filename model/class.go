/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package model

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// Trait is a named capability a class can use. A trait may itself use other traits.
type Trait struct {
	name string
	uses []*Trait
}

// NewTrait creates a trait composed of the given traits.
func NewTrait(name string, uses ...*Trait) *Trait {
	return &Trait{name: name, uses: uses}
}

// Name returns the trait name.
func (t *Trait) Name() string {
	return t.name
}

// Swappable marks a class as eligible for alias registration.
var Swappable = NewTrait("model.Swappable")

// Factory builds an instance from an attribute bag.
type Factory func(attrs Attributes) (any, error)

// Class is a handle for an instantiable type. It is immutable once defined.
type Class struct {
	name     string
	alias    string
	instance reflect.Type
	factory  Factory
	parent   *Class
	traits   []*Trait
}

// Option configures a Class in Define.
type Option func(*Class)

// WithName overrides the class name derived from the instance type.
func WithName(name string) Option {
	return func(c *Class) {
		c.name = name
	}
}

// WithAlias sets the class's self-declared default alias.
func WithAlias(alias string) Option {
	return func(c *Class) {
		c.alias = alias
	}
}

// Uses adds traits to the class.
func Uses(traits ...*Trait) Option {
	return func(c *Class) {
		c.traits = append(c.traits, traits...)
	}
}

// Extends makes the class inherit the parent's traits and alias.
func Extends(parent *Class) Option {
	return func(c *Class) {
		c.parent = parent
	}
}

// Define captures factory as a Class producing values of type T.
func Define[T any](factory func(attrs Attributes) (T, error), opts ...Option) *Class {
	c := &Class{
		instance: reflect.TypeOf((*T)(nil)).Elem(),
		factory: func(attrs Attributes) (any, error) {
			return factory(attrs)
		},
	}
	c.name = typeName(c.instance)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the class identifier, e.g. "testmodels.Book".
func (c *Class) Name() string {
	return c.name
}

// String implements fmt.Stringer.
func (c *Class) String() string {
	return c.name
}

// Parent returns the class this one extends, or nil.
func (c *Class) Parent() *Class {
	return c.parent
}

// Type returns the reflected type of the instances the class produces.
func (c *Class) Type() reflect.Type {
	return c.instance
}

// IsEntity reports whether the class produces Model values.
func (c *Class) IsEntity() bool {
	return c.instance.Implements(modelType)
}

// IsSwappable reports whether Swappable is among the class's transitive traits.
func (c *Class) IsSwappable() bool {
	return c.UsesTrait(Swappable)
}

// UsesTrait reports whether t is among the class's transitive traits.
func (c *Class) UsesTrait(t *Trait) bool {
	_, ok := UsesRecursive(c)[t]
	return ok
}

// AliasName returns the self-declared alias. A class without one inherits its
// parent's; the root falls back to the snake_case type name.
func (c *Class) AliasName() string {
	for k := c; k != nil; k = k.parent {
		if k.alias != "" {
			return k.alias
		}
	}
	return snakeCase(baseType(c.instance).Name())
}

// New constructs an instance from attrs. A nil attrs is passed as an empty bag.
func (c *Class) New(attrs Attributes) (any, error) {
	if attrs == nil {
		attrs = Attributes{}
	}
	v, err := c.factory(attrs)
	if err != nil {
		return nil, fmt.Errorf("construct %s: %w", c.name, err)
	}
	return v, nil
}

// UsesRecursive returns every trait used by c, by its ancestors, and by those
// traits in turn.
func UsesRecursive(c *Class) map[*Trait]struct{} {
	set := make(map[*Trait]struct{})
	var walk func(t *Trait)
	walk = func(t *Trait) {
		if t == nil {
			return
		}
		if _, seen := set[t]; seen {
			return
		}
		set[t] = struct{}{}
		for _, u := range t.uses {
			walk(u)
		}
	}
	for k := c; k != nil; k = k.parent {
		for _, t := range k.traits {
			walk(t)
		}
	}
	return set
}

func baseType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func typeName(t reflect.Type) string {
	return baseType(t).String()
}

func snakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
