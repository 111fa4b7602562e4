/*
Package model defines the entity contract that the hotswap registry validates against.

An entity is any type whose instances implement Model. The usual way to get there is
embedding Base:

	type Book struct {
	    model.Base
	}

	func NewBook(attrs model.Attributes) (*Book, error) {
	    b := &Book{}
	    b.Fill(attrs)
	    return b, nil
	}

Classes:
A Class is the registrable handle for such a type. It captures the factory closure,
the reflected instance type, an optional parent class and the traits the type uses:

	var BookClass = model.Define(NewBook,
	    model.WithAlias("book"),
	    model.Uses(model.Swappable),
	)

Traits compose. A trait may use other traits and a class inherits the traits of the
class it Extends, so capability checks walk the full set:

	Authored := model.NewTrait("testmodels.Authored", model.Swappable)
	AuthorClass := model.Define(NewAuthor, model.Uses(Authored)) // swappable through Authored

UsesRecursive returns that transitive set and IsSwappable tests it for Swappable.
*/
package model
