/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package manifest

import (
	stderrors "errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/suparena/hotswap"
	"github.com/suparena/hotswap/errors"
	"github.com/suparena/hotswap/model"
)

// Manifest is the YAML binding document.
type Manifest struct {
	Register []string          `yaml:"register" validate:"dive,required"`
	Swap     []string          `yaml:"swap" validate:"dive,required"`
	Override map[string]string `yaml:"override" validate:"dive,keys,required,endkeys,required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that no class name or alias is empty.
func (m *Manifest) Validate() error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errors.NewValidationError(fe.Namespace(), fmt.Sprintf("failed on the %q rule", fe.Tag()))
	}
	return errors.NewValidationError("", err.Error())
}

// Apply binds the manifest's classes in r: register, then swap, then override.
// Like Registry.Register it stops at the first failure and keeps what was applied.
func (m *Manifest) Apply(r *hotswap.Registry, catalog *Catalog) error {
	classes, err := catalog.lookupAll(m.Register)
	if err != nil {
		return err
	}
	if err := r.Register(classes...); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	for _, name := range m.Swap {
		c, err := catalog.Lookup(name)
		if err != nil {
			return err
		}
		if err := r.OverrideClass(c); err != nil {
			return fmt.Errorf("swap %s: %w", name, err)
		}
	}

	aliases := make([]string, 0, len(m.Override))
	for alias := range m.Override {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		name := m.Override[alias]
		c, err := catalog.Lookup(name)
		if err != nil {
			return err
		}
		if err := r.Override(alias, c); err != nil {
			return fmt.Errorf("override %s: %w", alias, err)
		}
	}
	return nil
}

// Reload flushes r and applies m.
func Reload(r *hotswap.Registry, m *Manifest, catalog *Catalog) error {
	r.Flush()
	return m.Apply(r, catalog)
}

// Catalog maps class names to classes.
type Catalog struct {
	classes map[string]*model.Class
}

// NewCatalog indexes classes by Name. Later classes replace earlier ones with the same name.
func NewCatalog(classes ...*model.Class) *Catalog {
	c := &Catalog{classes: make(map[string]*model.Class, len(classes))}
	for _, class := range classes {
		c.classes[class.Name()] = class
	}
	return c
}

// Lookup returns the class registered under name.
func (c *Catalog) Lookup(name string) (*model.Class, error) {
	class, ok := c.classes[name]
	if !ok {
		return nil, errors.NewNotFoundError("class", name)
	}
	return class, nil
}

// Names returns the catalog's class names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.classes))
	for name := range c.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) lookupAll(names []string) ([]*model.Class, error) {
	classes := make([]*model.Class, 0, len(names))
	for _, name := range names {
		class, err := c.Lookup(name)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, nil
}
