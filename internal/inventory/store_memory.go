// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/grossstore/grossstore/internal/platform/apperr"
)

// MemoryRepository implements Repository with an in-memory catalog. This is
// the system's store of record — there is no database behind it by design.
//
// # Concurrency
//
// All methods are safe for concurrent use. Mutations hold the write lock
// across both the catalog change and its activity entry, so the trail never
// shows an entry whose product change is not yet visible (or vice versa).
type MemoryRepository struct {
	mu       sync.RWMutex
	products []*Product
	activity []*ActivityEntry
	latency  time.Duration

	now func() time.Time
}

// NewMemoryRepository creates a catalog pre-populated with the given
// products and activity trail. The latency parameter simulates network
// delay on every operation (0 disables it; tests do).
func NewMemoryRepository(latency time.Duration, products []*Product, activity []*ActivityEntry) *MemoryRepository {
	repository := &MemoryRepository{
		latency: latency,
		now:     time.Now,
	}

	for _, product := range products {
		clone := *product
		repository.products = append(repository.products, &clone)
	}
	for _, entry := range activity {
		clone := *entry
		repository.activity = append(repository.activity, &clone)
	}

	return repository
}

// SeedProducts returns the demo catalog fixture.
func SeedProducts() []*Product {
	return []*Product{
		{ID: 1, Name: "Premium Coffee Beans", Category: "food", Price: 24.99, Stock: 150, Status: StatusPublished, Views: 14500, Supplier: "Global Coffee Co.", LastUpdated: "2024-01-15"},
		{ID: 2, Name: "Organic Wheat Flour", Category: "food", Price: 8.50, Stock: 200, Status: StatusPublished, Views: 8200, Supplier: "Farm Fresh Ltd.", LastUpdated: "2024-01-14"},
		{ID: 3, Name: "Raw Sugar", Category: "food", Price: 12.30, Stock: 45, Status: StatusDraft, Views: 0, Supplier: "Sweet Harvest Inc.", LastUpdated: "2024-01-13"},
		{ID: 4, Name: "Extra Virgin Olive Oil", Category: "food", Price: 18.75, Stock: 80, Status: StatusPublished, Views: 12300, Supplier: "Mediterranean Oils", LastUpdated: "2024-01-12"},
		{ID: 5, Name: "Basmati Rice", Category: "food", Price: 15.60, Stock: 250, Status: StatusPublished, Views: 9800, Supplier: "Rice Masters", LastUpdated: "2024-01-11"},
		{ID: 6, Name: "Wireless Headphones", Category: "electronics", Price: 89.99, Stock: 35, Status: StatusPublished, Views: 22100, Supplier: "Tech World", LastUpdated: "2024-01-10"},
		{ID: 7, Name: "Cotton T-Shirt", Category: "clothing", Price: 19.99, Stock: 180, Status: StatusPublished, Views: 15600, Supplier: "Fashion Hub", LastUpdated: "2024-01-09"},
		{ID: 8, Name: "Programming Guide", Category: "books", Price: 34.99, Stock: 25, Status: StatusDraft, Views: 0, Supplier: "Book Store", LastUpdated: "2024-01-08"},
		{ID: 9, Name: "Smartphone Case", Category: "electronics", Price: 16.80, Stock: 120, Status: StatusPublished, Views: 18700, Supplier: "Mobile Accessories", LastUpdated: "2024-01-07"},
		{ID: 10, Name: "Denim Jeans", Category: "clothing", Price: 59.99, Stock: 90, Status: StatusDraft, Views: 0, Supplier: "Denim Co.", LastUpdated: "2024-01-06"},
	}
}

// SeedActivity returns the demo activity trail fixture, newest first.
func SeedActivity() []*ActivityEntry {
	return []*ActivityEntry{
		{ID: 1, Type: ActivityAdd, Message: "Added new product: Premium Coffee Beans", Time: "2 hours ago", Icon: "➕"},
		{ID: 2, Type: ActivityUpdate, Message: "Updated stock for Organic Wheat Flour", Time: "4 hours ago", Icon: "📝"},
		{ID: 3, Type: ActivityDelete, Message: "Removed expired product: Old Spices", Time: "6 hours ago", Icon: "🗑️"},
		{ID: 4, Type: ActivityAlert, Message: "Low stock alert: Raw Sugar (45 units)", Time: "8 hours ago", Icon: "⚠️"},
		{ID: 5, Type: ActivityAdd, Message: "Added new supplier: Mediterranean Oils", Time: "1 day ago", Icon: "🏢"},
	}
}

/*
List returns a snapshot of the whole catalog in insertion order.
*/
func (repository *MemoryRepository) List(context context.Context) ([]*Product, error) {
	repository.simulateLatency()

	repository.mu.RLock()
	defer repository.mu.RUnlock()

	snapshot := make([]*Product, len(repository.products))
	for i, product := range repository.products {
		clone := *product
		snapshot[i] = &clone
	}

	return snapshot, nil
}

/*
Add persists a new product with catalog defaults applied.
*/
func (repository *MemoryRepository) Add(context context.Context, product *Product) error {
	repository.simulateLatency()

	repository.mu.Lock()
	defer repository.mu.Unlock()

	product.ID = repository.nextIDLocked()
	product.Status = StatusDraft
	product.Views = 0
	if product.Stock < 0 {
		product.Stock = 0
	}
	product.LastUpdated = repository.now().Format(DateLayout)

	clone := *product
	repository.products = append(repository.products, &clone)

	repository.recordLocked(ActivityAdd, fmt.Sprintf("Added new product: %s", product.Name), "➕")
	return nil
}

/*
Update applies a partial patch and restamps LastUpdated.
*/
func (repository *MemoryRepository) Update(context context.Context, id int, patch ProductPatch) (*Product, error) {
	repository.simulateLatency()

	repository.mu.Lock()
	defer repository.mu.Unlock()

	product := repository.findLocked(id)
	if product == nil {
		return nil, apperr.NotFound("Product")
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	if patch.Status != nil {
		product.Status = *patch.Status
	}
	if patch.Views != nil {
		product.Views = *patch.Views
	}
	if patch.Supplier != nil {
		product.Supplier = *patch.Supplier
	}
	product.LastUpdated = repository.now().Format(DateLayout)

	repository.recordLocked(ActivityUpdate, fmt.Sprintf("Updated product: %s", product.Name), "📝")

	clone := *product
	return &clone, nil
}

/*
Delete removes the product from the catalog.
*/
func (repository *MemoryRepository) Delete(context context.Context, id int) error {
	repository.simulateLatency()

	repository.mu.Lock()
	defer repository.mu.Unlock()

	for i, product := range repository.products {
		if product.ID == id {
			repository.products = append(repository.products[:i], repository.products[i+1:]...)
			repository.recordLocked(ActivityDelete, fmt.Sprintf("Deleted product: %s", product.Name), "🗑️")
			return nil
		}
	}

	return apperr.NotFound("Product")
}

/*
Activity returns the activity trail, newest first.
*/
func (repository *MemoryRepository) Activity(context context.Context) ([]*ActivityEntry, error) {
	repository.simulateLatency()

	repository.mu.RLock()
	defer repository.mu.RUnlock()

	snapshot := make([]*ActivityEntry, len(repository.activity))
	for i, entry := range repository.activity {
		clone := *entry
		snapshot[i] = &clone
	}

	return snapshot, nil
}

// findLocked returns the live entry with the given ID, or nil.
// Callers must hold the write lock.
func (repository *MemoryRepository) findLocked(id int) *Product {
	for _, product := range repository.products {
		if product.ID == id {
			return product
		}
	}
	return nil
}

// nextIDLocked computes max existing ID + 1 (1 for an empty catalog).
// Callers must hold the write lock.
func (repository *MemoryRepository) nextIDLocked() int {
	maxID := 0
	for _, product := range repository.products {
		if product.ID > maxID {
			maxID = product.ID
		}
	}
	return maxID + 1
}

// recordLocked prepends one activity entry. Callers must hold the write
// lock; exactly one entry is recorded per mutation.
func (repository *MemoryRepository) recordLocked(activityType ActivityType, message, icon string) {
	entry := &ActivityEntry{
		ID:      repository.now().UnixMilli(),
		Type:    activityType,
		Message: message,
		Time:    "Just now",
		Icon:    icon,
	}
	repository.activity = append([]*ActivityEntry{entry}, repository.activity...)
}

// simulateLatency blocks for the configured mock delay.
//
// Operations are non-cancelable once started: the delay always elapses and
// the operation completes even if the initiating request has moved on. Late
// results are simply ignored by whoever stopped waiting.
func (repository *MemoryRepository) simulateLatency() {
	if repository.latency > 0 {
		time.Sleep(repository.latency)
	}
}
