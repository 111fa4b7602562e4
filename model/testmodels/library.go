/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels provides a small library domain used by tests and the CLI.
package testmodels

import (
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/suparena/hotswap/model"
)

// Authored is a composed trait that brings Swappable with it.
var Authored = model.NewTrait("testmodels.Authored", model.Swappable)

type Book struct {
	model.Base
}

func NewBook(attrs model.Attributes) (*Book, error) {
	b := &Book{}
	b.Fill(attrs)
	return b, nil
}

// Title of the book.
func (b *Book) Title() string {
	return b.StringAttribute("title")
}

// PublishedAt parses the published_at attribute.
// Format: date-time
func (b *Book) PublishedAt() (*strfmt.DateTime, error) {
	switch v := b.GetAttribute("published_at").(type) {
	case nil:
		return nil, nil
	case strfmt.DateTime:
		return &v, nil
	case string:
		dt, err := strfmt.ParseDateTime(v)
		if err != nil {
			return nil, fmt.Errorf("published_at: %w", err)
		}
		return &dt, nil
	default:
		return nil, fmt.Errorf("published_at: unsupported type %T", v)
	}
}

// SpecialBook extends Book and keeps its alias.
type SpecialBook struct {
	Book
}

func NewSpecialBook(attrs model.Attributes) (*SpecialBook, error) {
	b := &SpecialBook{}
	b.Fill(attrs)
	return b, nil
}

// Edition defaults to "special" when the attribute is absent.
func (b *SpecialBook) Edition() string {
	if e := b.StringAttribute("edition"); e != "" {
		return e
	}
	return "special"
}

type Author struct {
	model.Base
}

func NewAuthor(attrs model.Attributes) (*Author, error) {
	a := &Author{}
	a.Fill(attrs)
	return a, nil
}

func (a *Author) Name() string {
	return a.StringAttribute("name")
}

// Comment is an entity that never opted into swapping.
type Comment struct {
	model.Base
}

func NewComment(attrs model.Attributes) (*Comment, error) {
	c := &Comment{}
	c.Fill(attrs)
	return c, nil
}

// Widget is not an entity.
type Widget struct {
	Label string
}

func NewWidget(attrs model.Attributes) (*Widget, error) {
	label, _ := attrs["label"].(string)
	return &Widget{Label: label}, nil
}

var (
	BookClass        = model.Define(NewBook, model.WithAlias("book"), model.Uses(model.Swappable))
	SpecialBookClass = model.Define(NewSpecialBook, model.Extends(BookClass))
	AuthorClass      = model.Define(NewAuthor, model.WithAlias("author"), model.Uses(Authored))
	CommentClass     = model.Define(NewComment)
	WidgetClass      = model.Define(NewWidget, model.Uses(model.Swappable))
)

// Classes returns every class in the library, in declaration order.
func Classes() []*model.Class {
	return []*model.Class{BookClass, SpecialBookClass, AuthorClass, CommentClass, WidgetClass}
}
