/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hotswap

import "github.com/suparena/hotswap/model"

// Sealed is an immutable set of bindings taken from a Registry. Lookups take no lock.
type Sealed struct {
	classes map[string]*model.Class
}

// Resolve returns the class bound to alias.
func (s *Sealed) Resolve(alias string) (*model.Class, bool) {
	c, ok := s.classes[alias]
	return c, ok
}

// Make constructs a new instance of the class bound to alias.
// It returns nil, nil when alias is not bound.
func (s *Sealed) Make(alias string, attrs model.Attributes) (model.Model, error) {
	c, ok := s.classes[alias]
	if !ok {
		return nil, nil
	}
	return construct(c, attrs)
}

// Aliases returns the bound aliases in sorted order.
func (s *Sealed) Aliases() []string {
	return sortedKeys(s.classes)
}

// Len returns the number of bound aliases.
func (s *Sealed) Len() int {
	return len(s.classes)
}
