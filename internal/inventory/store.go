// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package inventory

import "context"

// ProductPatch carries a partial product update. Nil fields are left
// untouched; LastUpdated is always restamped by the store.
type ProductPatch struct {
	Name     *string
	Category *string
	Price    *float64
	Stock    *int
	Status   *ProductStatus
	Views    *int
	Supplier *string
}

// # Catalog Data Access

// Repository defines the data access contract for the product catalog and
// its activity trail.
type Repository interface {

	/*
		List returns a snapshot of the whole catalog in insertion order.
		Entries are copies; mutating them does not touch store state.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Product: Catalog snapshot
		  - error: Retrieval failures
	*/
	List(context context.Context) ([]*Product, error)

	/*
		Add persists a new product, assigns its ID (max existing + 1),
		defaults Status to draft and Views to 0, stamps LastUpdated, and
		appends one "add" activity entry.

		Parameters:
		  - context: context.Context
		  - product: *Product (mutated in place with assigned fields)

		Returns:
		  - error: Persistence failures
	*/
	Add(context context.Context, product *Product) error

	/*
		Update applies a partial patch, restamps LastUpdated, and appends
		one "update" activity entry.

		Parameters:
		  - context: context.Context
		  - id: int
		  - patch: ProductPatch

		Returns:
		  - *Product: The patched entry
		  - error: apperr.NotFound when the product vanished
	*/
	Update(context context.Context, id int, patch ProductPatch) (*Product, error)

	/*
		Delete removes the product and appends one "delete" activity entry.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - error: apperr.NotFound when the product vanished
	*/
	Delete(context context.Context, id int) error

	/*
		Activity returns the activity trail, newest first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*ActivityEntry: Trail snapshot
		  - error: Retrieval failures
	*/
	Activity(context context.Context) ([]*ActivityEntry, error)
}
