/*
Package hotswap is a runtime registry that lets application code refer to entity
classes by a stable alias while the class behind that alias can be swapped.

Classes come from the model package. A class can be registered when it produces
model.Model values and uses the model.Swappable trait, directly, through a
composed trait, or through a parent class:

	r := hotswap.New()
	err := r.Register(testmodels.BookClass, testmodels.AuthorClass)

	// Rebind "book" to a different entity. Override only checks that the
	// class is an entity, so it also accepts classes that never opted in.
	err = r.Override("book", testmodels.SpecialBookClass)

	// Or let the class name its own alias (it must be swappable).
	err = r.OverrideClass(testmodels.SpecialBookClass)

	book, err := r.Make("book", model.Attributes{"title": "Dune"})
	if book == nil {
	    // "book" is not bound
	}

Unknown aliases are not errors: Resolve returns false and Make returns nil, nil.
Register and Override return *errors.InvalidConfigurationError for classes that
fail the entity or swappable checks.

Register is not atomic across a batch. If the third of five classes is rejected,
the first two stay bound and the last two are never attempted.

Concurrency:
A Registry guards its map with a RWMutex, so bindings can change at any time and
racing writers resolve as last-writer-wins. A whole Register batch holds the lock.
Applications that bind everything at startup can call Seal and hand the resulting
read-only snapshot to the hot path.

The package-level functions (Register, Override, Make, ...) operate on a
process-wide Default registry. Tests should prefer New for isolation.
*/
package hotswap
