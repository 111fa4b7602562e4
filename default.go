/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hotswap

import "github.com/suparena/hotswap/model"

var defaultRegistry = New()

// Default returns the process-wide registry used by the package-level functions.
func Default() *Registry {
	return defaultRegistry
}

// Register binds classes in the default registry. See Registry.Register.
func Register(classes ...*model.Class) error {
	return defaultRegistry.Register(classes...)
}

// Override binds alias to class in the default registry. See Registry.Override.
func Override(alias string, class *model.Class) error {
	return defaultRegistry.Override(alias, class)
}

// OverrideClass binds class under its own alias in the default registry.
func OverrideClass(class *model.Class) error {
	return defaultRegistry.OverrideClass(class)
}

// Resolve looks up alias in the default registry.
func Resolve(alias string) (*model.Class, bool) {
	return defaultRegistry.Resolve(alias)
}

// Make constructs through the default registry. It returns nil, nil when alias is not bound.
func Make(alias string, attrs model.Attributes) (model.Model, error) {
	return defaultRegistry.Make(alias, attrs)
}

// Flush empties the default registry.
func Flush() {
	defaultRegistry.Flush()
}
