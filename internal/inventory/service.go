// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package inventory

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/grossstore/grossstore/internal/platform/validate"
	"github.com/grossstore/grossstore/pkg/pagination"
	"github.com/grossstore/grossstore/pkg/slice"
)

// # Service

// Service implements the catalog use cases: listing with search and
// filters, mutations, and the analytics projections for the dashboard.
type Service struct {
	repository Repository
	printer    *message.Printer
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{
		repository: repository,
		printer:    message.NewPrinter(language.English),
	}
}

// # Listing

// ListInput holds the search, filter, and pagination knobs of a catalog
// listing request. Zero values mean "no constraint".
type ListInput struct {
	Search   string
	Category string
	Status   string

	// Price window; 0 leaves the corresponding bound open.
	MinPrice float64
	MaxPrice float64

	Page pagination.Params
}

/*
List returns the catalog page matching the given constraints.

Description: Search matches name or supplier, case-insensitively; category
and status filter on exact literals; the price window bounds are inclusive.
Filtering happens before pagination, so the metadata reflects the filtered
total.

Parameters:
  - context: context.Context
  - input: ListInput

Returns:
  - []*Product: The requested page
  - pagination.Meta: Metadata over the filtered total
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, input ListInput) ([]*Product, pagination.Meta, error) {

	products, err := service.repository.List(context)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	if search := strings.ToLower(strings.TrimSpace(input.Search)); search != "" {
		products = slice.Filter(products, func(product *Product) bool {
			return strings.Contains(strings.ToLower(product.Name), search) ||
				strings.Contains(strings.ToLower(product.Supplier), search)
		})
	}

	if input.Category != "" {
		products = slice.Filter(products, func(product *Product) bool {
			return product.Category == input.Category
		})
	}

	if input.Status != "" {
		products = slice.Filter(products, func(product *Product) bool {
			return string(product.Status) == input.Status
		})
	}

	if input.MinPrice > 0 {
		products = slice.Filter(products, func(product *Product) bool {
			return product.Price >= input.MinPrice
		})
	}

	if input.MaxPrice > 0 {
		products = slice.Filter(products, func(product *Product) bool {
			return product.Price <= input.MaxPrice
		})
	}

	total := len(products)
	start, end := input.Page.Slice(total)

	metadata := pagination.NewMeta(input.Page.Page, input.Page.Limit, total)
	return products[start:end], metadata, nil
}

// # Mutations

// CreateInput holds the fields a new catalog entry is born with. Status and
// views are not accepted: new products always start as unseen drafts.
type CreateInput struct {
	Name     string
	Category string
	Price    float64
	Stock    int
	Supplier string
}

/*
Create validates and persists a new catalog entry.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Product: The created entry with assigned ID and defaults
  - error: Validation or persistence failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Product, error) {

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 120).
		Required(FieldCategory, input.Category).
		NonNegative(FieldPrice, input.Price).
		NonNegative(FieldStock, float64(input.Stock))

	if err := validator.Err(); err != nil {
		return nil, err
	}

	product := &Product{
		Name:     strings.TrimSpace(input.Name),
		Category: input.Category,
		Price:    input.Price,
		Stock:    input.Stock,
		Supplier: strings.TrimSpace(input.Supplier),
	}

	if err := service.repository.Add(context, product); err != nil {
		return nil, err
	}

	return product, nil
}

/*
Update validates and applies a partial patch to an existing entry.

Parameters:
  - context: context.Context
  - id: int
  - patch: ProductPatch

Returns:
  - *Product: The patched entry
  - error: Validation failures or apperr.NotFound
*/
func (service *Service) Update(context context.Context, id int, patch ProductPatch) (*Product, error) {

	validator := &validate.Validator{}
	if patch.Name != nil {
		validator.Required(FieldName, *patch.Name).MaxLen(FieldName, *patch.Name, 120)
	}
	if patch.Price != nil {
		validator.NonNegative(FieldPrice, *patch.Price)
	}
	if patch.Stock != nil {
		validator.NonNegative(FieldStock, float64(*patch.Stock))
	}
	if patch.Status != nil {
		validator.OneOf(FieldStatus, string(*patch.Status), StatusNames()...)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repository.Update(context, id, patch)
}

/*
Delete removes a catalog entry.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: apperr.NotFound when the product vanished
*/
func (service *Service) Delete(context context.Context, id int) error {
	return service.repository.Delete(context, id)
}

/*
Activity returns the activity trail, newest first.
*/
func (service *Service) Activity(context context.Context) ([]*ActivityEntry, error) {
	return service.repository.Activity(context)
}

// # Analytics Projections

// Stats is the dashboard's headline figures, computed over the live catalog.
type Stats struct {
	TotalProducts  int     `json:"total_products"`
	TotalValue     float64 `json:"total_value"`
	TotalValueText string  `json:"total_value_text"`
	LowStockItems  int     `json:"low_stock_items"`
	Categories     int     `json:"categories"`
	AvgPrice       float64 `json:"avg_price"`
	TotalStock     int     `json:"total_stock"`
}

// lowStockThreshold is the stock level below which an entry counts as low.
const lowStockThreshold = 50

/*
Stats computes the dashboard's headline figures.

Description: Inventory value is Σ price·stock; average price is the
stock-weighted value per unit (value / total stock, 0 for an empty
catalog). TotalValueText is the value pre-formatted for display with
thousands separators.

Parameters:
  - context: context.Context

Returns:
  - *Stats: Computed figures
  - error: Retrieval failures
*/
func (service *Service) Stats(context context.Context) (*Stats, error) {

	products, err := service.repository.List(context)
	if err != nil {
		return nil, err
	}

	totalValue := slice.Reduce(products, 0.0, func(sum float64, product *Product) float64 {
		return sum + product.Price*float64(product.Stock)
	})
	totalStock := slice.Reduce(products, 0, func(sum int, product *Product) int {
		return sum + product.Stock
	})

	categories := map[string]struct{}{}
	lowStock := 0
	for _, product := range products {
		categories[product.Category] = struct{}{}
		if product.Stock < lowStockThreshold {
			lowStock++
		}
	}

	avgPrice := 0.0
	if totalStock > 0 {
		avgPrice = totalValue / float64(totalStock)
	}

	return &Stats{
		TotalProducts:  len(products),
		TotalValue:     totalValue,
		TotalValueText: service.printer.Sprintf("$%.2f", totalValue),
		LowStockItems:  lowStock,
		Categories:     len(categories),
		AvgPrice:       avgPrice,
		TotalStock:     totalStock,
	}, nil
}

// CategorySlice is one per-category aggregation bucket.
type CategorySlice struct {
	Category string `json:"category"`
	Value    int    `json:"value"`
	Products int    `json:"products"`
}

// RangeBucket is one count bucket of a fixed-range histogram.
type RangeBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// LevelBucket is one stock-level bucket with its display color.
type LevelBucket struct {
	Level string `json:"level"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// MonthPoint is one point of the monthly sales series.
type MonthPoint struct {
	Month string `json:"month"`
	Sales int    `json:"sales"`
	Stock int    `json:"stock"`
}

// ChartData bundles every series the dashboard charts render.
type ChartData struct {
	CategoryData   []CategorySlice `json:"category_data"`
	PriceRangeData []RangeBucket   `json:"price_range_data"`
	StockLevelData []LevelBucket   `json:"stock_level_data"`
	MonthlyData    []MonthPoint    `json:"monthly_data"`
}

/*
ChartData computes every chart series over the live catalog.

Description: Categories aggregate stock and product counts; price ranges
bucket at $10 and $20; stock levels bucket below 50 and from 150 up. The
monthly series is a fixed demo fixture — there is no sales history to
aggregate.

Parameters:
  - context: context.Context

Returns:
  - *ChartData: All series
  - error: Retrieval failures
*/
func (service *Service) ChartData(context context.Context) (*ChartData, error) {

	products, err := service.repository.List(context)
	if err != nil {
		return nil, err
	}

	byCategory := map[string]*CategorySlice{}
	for _, product := range products {
		bucket, ok := byCategory[product.Category]
		if !ok {
			bucket = &CategorySlice{Category: product.Category}
			byCategory[product.Category] = bucket
		}
		bucket.Value += product.Stock
		bucket.Products++
	}

	categoryData := make([]CategorySlice, 0, len(byCategory))
	for _, bucket := range byCategory {
		categoryData = append(categoryData, *bucket)
	}
	// Map iteration order is random; keep the series stable for clients.
	sort.Slice(categoryData, func(i, j int) bool {
		return categoryData[i].Category < categoryData[j].Category
	})

	count := func(predicate func(*Product) bool) int {
		return len(slice.Filter(products, predicate))
	}

	priceRangeData := []RangeBucket{
		{Range: "$0-10", Count: count(func(p *Product) bool { return p.Price <= 10 })},
		{Range: "$10-20", Count: count(func(p *Product) bool { return p.Price > 10 && p.Price <= 20 })},
		{Range: "$20+", Count: count(func(p *Product) bool { return p.Price > 20 })},
	}

	stockLevelData := []LevelBucket{
		{Level: "Low Stock", Count: count(func(p *Product) bool { return p.Stock < 50 }), Color: "#ef4444"},
		{Level: "Medium Stock", Count: count(func(p *Product) bool { return p.Stock >= 50 && p.Stock < 150 }), Color: "#f59e0b"},
		{Level: "High Stock", Count: count(func(p *Product) bool { return p.Stock >= 150 }), Color: "#10b981"},
	}

	monthlyData := []MonthPoint{
		{Month: "Jan", Sales: 4000, Stock: 2400},
		{Month: "Feb", Sales: 3000, Stock: 1398},
		{Month: "Mar", Sales: 2000, Stock: 9800},
		{Month: "Apr", Sales: 2780, Stock: 3908},
		{Month: "May", Sales: 1890, Stock: 4800},
		{Month: "Jun", Sales: 2390, Stock: 3800},
	}

	return &ChartData{
		CategoryData:   categoryData,
		PriceRangeData: priceRangeData,
		StockLevelData: stockLevelData,
		MonthlyData:    monthlyData,
	}, nil
}
