/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hotswap

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/hotswap/errors"
	"github.com/suparena/hotswap/model"
)

// Resolver looks up the class currently bound to an alias.
type Resolver interface {
	Resolve(alias string) (*model.Class, bool)
}

// Maker constructs entities through an alias.
type Maker interface {
	Make(alias string, attrs model.Attributes) (model.Model, error)
}

// Registry maps aliases to entity classes. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*model.Class
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for debug events. Errors are returned, not logged.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		classes: make(map[string]*model.Class),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register validates each class and binds it under its self-declared alias.
// A later class with the same alias replaces the earlier one.
//
// Register is not transactional: classes before a failing one stay registered,
// and classes after it are not attempted.
func (r *Registry) Register(classes ...*model.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range classes {
		if err := validateEntity(c); err != nil {
			return err
		}
		if err := validateSwappable(c); err != nil {
			return err
		}
		alias, err := aliasOf(c)
		if err != nil {
			return err
		}
		r.classes[alias] = c
		r.logger.Debug("registered swappable class", "alias", alias, "class", c.Name())
	}
	return nil
}

// Override binds alias to class. Only the entity check applies; class need not
// use model.Swappable.
func (r *Registry) Override(alias string, class *model.Class) error {
	if alias == "" {
		return errors.NewValidationError("alias", "must not be empty")
	}
	if err := validateEntity(class); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[alias] = class
	r.logger.Debug("overrode alias", "alias", alias, "class", class.Name())
	return nil
}

// OverrideClass binds class under its own alias. Unlike Override, class must
// use model.Swappable.
func (r *Registry) OverrideClass(class *model.Class) error {
	if err := validateSwappable(class); err != nil {
		return err
	}
	alias, err := aliasOf(class)
	if err != nil {
		return err
	}
	return r.Override(alias, class)
}

// Resolve returns the class bound to alias.
func (r *Registry) Resolve(alias string) (*model.Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[alias]
	return c, ok
}

// Make constructs a new instance of the class bound to alias.
// It returns nil, nil when alias is not bound.
func (r *Registry) Make(alias string, attrs model.Attributes) (model.Model, error) {
	c, ok := r.Resolve(alias)
	if !ok {
		return nil, nil
	}
	return construct(c, attrs)
}

// Flush removes every binding.
func (r *Registry) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes = make(map[string]*model.Class)
	r.logger.Debug("flushed registry")
}

// Aliases returns the bound aliases in sorted order.
func (r *Registry) Aliases() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.classes)
}

// Len returns the number of bound aliases.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classes)
}

// Seal returns a read-only snapshot of the current bindings. Later changes to r
// are not visible through it.
func (r *Registry) Seal() *Sealed {
	r.mu.RLock()
	defer r.mu.RUnlock()

	classes := make(map[string]*model.Class, len(r.classes))
	for k, v := range r.classes {
		classes[k] = v
	}
	return &Sealed{classes: classes}
}

// MakeAs constructs through m and asserts the result to T. ok is false when the
// alias is not bound or the bound class does not produce a T.
func MakeAs[T model.Model](m Maker, alias string, attrs model.Attributes) (T, bool, error) {
	var zero T
	v, err := m.Make(alias, attrs)
	if err != nil || v == nil {
		return zero, false, err
	}
	t, ok := v.(T)
	return t, ok, nil
}

func construct(c *model.Class, attrs model.Attributes) (model.Model, error) {
	v, err := c.New(attrs)
	if err != nil {
		return nil, err
	}
	if isNil(v) {
		return nil, fmt.Errorf("construct %s: factory returned nil", c.Name())
	}
	m, ok := v.(model.Model)
	if !ok {
		return nil, errors.NewInvalidConfigurationError(c.Name(), errors.RequirementEntity)
	}
	return m, nil
}

// isNil reports whether v is nil or a typed nil pointer, map, slice, func or chan.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func validateEntity(c *model.Class) error {
	if c == nil {
		return errors.NewInvalidConfigurationError("<nil>", errors.RequirementEntity)
	}
	if !c.IsEntity() {
		return errors.NewInvalidConfigurationError(c.Name(), errors.RequirementEntity)
	}
	return nil
}

func validateSwappable(c *model.Class) error {
	if c == nil {
		return errors.NewInvalidConfigurationError("<nil>", errors.RequirementSwappable)
	}
	if !c.IsSwappable() {
		return errors.NewInvalidConfigurationError(c.Name(), errors.RequirementSwappable)
	}
	return nil
}

func aliasOf(c *model.Class) (string, error) {
	alias := c.AliasName()
	if alias == "" {
		return "", errors.NewValidationError("alias", "class "+c.Name()+" declares an empty alias")
	}
	return alias, nil
}

func sortedKeys(m map[string]*model.Class) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
