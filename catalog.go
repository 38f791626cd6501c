/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablestore

import (
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/tablestore/datastore"
	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/storagemodels"
)

// Tables holds the named tables of one entity type.
type Tables[T any, P storagemodels.EntityPointer[T]] struct {
	mu     sync.RWMutex
	tables map[string]datastore.Table[T, P]
}

// NewTables creates an empty set of tables for T
func NewTables[T any, P storagemodels.EntityPointer[T]]() *Tables[T, P] {
	return &Tables[T, P]{
		tables: make(map[string]datastore.Table[T, P]),
	}
}

// Register adds a table under name
func (ts *Tables[T, P]) Register(name string, table datastore.Table[T, P]) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.tables[name]; exists {
		return errors.NewAlreadyExistsError("table", name)
	}
	ts.tables[name] = table
	return nil
}

// Get retrieves a table by name
func (ts *Tables[T, P]) Get(name string) (datastore.Table[T, P], error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	table, exists := ts.tables[name]
	if !exists {
		return nil, errors.NewNotFoundError("table", name)
	}
	return table, nil
}

// Remove deletes a table by name
func (ts *Tables[T, P]) Remove(name string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.tables[name]; !exists {
		return errors.NewNotFoundError("table", name)
	}
	delete(ts.tables, name)
	return nil
}

// List returns the registered names in sorted order
func (ts *Tables[T, P]) List() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	names := make([]string, 0, len(ts.tables))
	for name := range ts.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog keeps one Tables per entity type, so the same name may be used
// for different entity types.
type Catalog struct {
	mu     sync.Mutex
	byType map[reflect.Type]any
}

// NewCatalog creates an empty Catalog
func NewCatalog() *Catalog {
	return &Catalog{
		byType: make(map[reflect.Type]any),
	}
}

// TablesOf returns the tables registered for T, creating the set if necessary
func TablesOf[T any, P storagemodels.EntityPointer[T]](c *Catalog) *Tables[T, P] {
	c.mu.Lock()
	defer c.mu.Unlock()

	typ := reflect.TypeOf((*T)(nil)).Elem()
	if tables, exists := c.byType[typ]; exists {
		return tables.(*Tables[T, P])
	}

	tables := NewTables[T, P]()
	c.byType[typ] = tables
	return tables
}

// Register adds table under name for entity type T
func Register[T any, P storagemodels.EntityPointer[T]](c *Catalog, name string, table datastore.Table[T, P]) error {
	return TablesOf[T, P](c).Register(name, table)
}

// Get returns the table registered under name for entity type T
func Get[T any, P storagemodels.EntityPointer[T]](c *Catalog, name string) (datastore.Table[T, P], error) {
	return TablesOf[T, P](c).Get(name)
}

// Remove unregisters the table under name for entity type T
func Remove[T any, P storagemodels.EntityPointer[T]](c *Catalog, name string) error {
	return TablesOf[T, P](c).Remove(name)
}

// List returns the table names registered for entity type T
func List[T any, P storagemodels.EntityPointer[T]](c *Catalog) []string {
	return TablesOf[T, P](c).List()
}
