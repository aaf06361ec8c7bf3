package signatures

import (
	"fmt"
	"sync"
)

// Category is a named group of alternative signatures. Any one matching rule
// is enough evidence for the category.
type Category struct {
	Name        string
	Description string
	Rules       []*Rule
}

func NewCategory(name, description string, patterns ...string) (*Category, error) {
	c := &Category{Name: name, Description: description, Rules: make([]*Rule, 0, len(patterns))}
	for _, p := range patterns {
		r, err := NewRule(p)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", name, err)
		}
		c.Rules = append(c.Rules, r)
	}
	return c, nil
}

// Database holds the immutable signature tables for both scanners.
type Database struct {
	Frameworks   []*Category
	PersonalData []*Category
}

// Default returns the built-in database. It is built once per process and
// must not be modified.
var Default = sync.OnceValue(func() *Database {
	db, err := build(frameworkTable, personalDataTable)
	if err != nil {
		panic(err)
	}
	return db
})

type tableEntry struct {
	name        string
	description string
	patterns    []string
}

func build(frameworks, personal []tableEntry) (*Database, error) {
	db := &Database{}
	for _, e := range frameworks {
		c, err := NewCategory(e.name, e.description, e.patterns...)
		if err != nil {
			return nil, err
		}
		db.Frameworks = append(db.Frameworks, c)
	}
	for _, e := range personal {
		c, err := NewCategory(e.name, e.description, e.patterns...)
		if err != nil {
			return nil, err
		}
		db.PersonalData = append(db.PersonalData, c)
	}
	return db, nil
}

func (db *Database) Framework(name string) *Category {
	return find(db.Frameworks, name)
}

func (db *Database) PersonalDataCategory(name string) *Category {
	return find(db.PersonalData, name)
}

func find(categories []*Category, name string) *Category {
	for _, c := range categories {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Names lists category names in table order.
func Names(categories []*Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}
