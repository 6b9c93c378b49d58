// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package inventory

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grossstore/grossstore/internal/platform/apperr"
	requestutil "github.com/grossstore/grossstore/internal/platform/request"
	"github.com/grossstore/grossstore/internal/platform/respond"
	"github.com/grossstore/grossstore/internal/platform/validate"
	"github.com/grossstore/grossstore/pkg/convert"
	"github.com/grossstore/grossstore/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the catalog and analytics HTTP endpoints.
//
// # Scope
//
// Product CRUD is available to every authenticated member; the analytics
// surface (activity, stats, charts, live) is wired behind the manager
// guard by the server, not here.
type Handler struct {
	inventoryService *Service
	liveSampler      *LiveSampler
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, sampler *LiveSampler) *Handler {
	return &Handler{inventoryService: service, liveSampler: sampler}
}

// ProductRoutes returns a [chi.Router] with the product CRUD endpoints.
//
// # Endpoints
//   - GET    /     : Lists the catalog (search, filters, pagination).
//   - POST   /     : Creates a draft product.
//   - PUT    /{id} : Partially updates a product.
//   - DELETE /{id} : Removes a product.
func (handler *Handler) ProductRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Put("/{productID}", handler.update)
	router.Delete("/{productID}", handler.delete)

	return router
}

// AnalyticsRoutes returns a [chi.Router] with the dashboard analytics
// endpoints.
//
// # Endpoints
//   - GET /activity : Activity trail, newest first.
//   - GET /stats    : Headline figures.
//   - GET /charts   : Chart series.
//   - GET /live     : Latest perturbed live snapshot.
func (handler *Handler) AnalyticsRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/activity", handler.activity)
	router.Get("/stats", handler.stats)
	router.Get("/charts", handler.charts)
	router.Get("/live", handler.live)

	return router
}

// # Request Payloads

type createProductRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Supplier string  `json:"supplier"`
}

// updateProductRequest uses pointers so absent fields stay untouched.
type updateProductRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Stock    *int     `json:"stock"`
	Status   *string  `json:"status"`
	Views    *int     `json:"views"`
	Supplier *string  `json:"supplier"`
}

/*
List returns the catalog page matching the query.

GET /api/v1/products?search=&category=&status=&min_price=&max_price=&page=&limit=

Response:
  - 200: []Product with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	products, metadata, err := handler.inventoryService.List(request.Context(), ListInput{
		Search:   query.Get("search"),
		Category: query.Get("category"),
		Status:   query.Get("status"),
		MinPrice: convert.ToFloat(query.Get("min_price")),
		MaxPrice: convert.ToFloat(query.Get("max_price")),
		Page:     pagination.FromRequest(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, metadata)
}

/*
Create adds a new draft product to the catalog.

POST /api/v1/products

Request:
  - Body: createProductRequest (Name, Category, Price, Stock, Supplier)

Response:
  - 201: Product: Created entry with assigned ID and defaults
  - 400: ErrInvalidJSON: Bad input or validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createProductRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	product, err := handler.inventoryService.Create(request.Context(), CreateInput{
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
		Stock:    input.Stock,
		Supplier: input.Supplier,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, product)
}

/*
Update partially patches an existing product.

PUT /api/v1/products/{productID}

Request:
  - Body: updateProductRequest (all fields optional)

Response:
  - 200: Product: Patched entry
  - 404: ErrNotFound: Product vanished (the client refreshes its list)
  - 400: ErrInvalidJSON: Bad input or validation failure
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "productID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProductRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	patch := ProductPatch{
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
		Stock:    input.Stock,
		Views:    input.Views,
		Supplier: input.Supplier,
	}
	if input.Status != nil {
		status := ProductStatus(*input.Status)
		patch.Status = &status
	}

	product, err := handler.inventoryService.Update(request.Context(), id, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

/*
Delete removes a product from the catalog.

DELETE /api/v1/products/{productID}

Response:
  - 204: No Content: Product removed
  - 404: ErrNotFound: Product vanished (the client refreshes its list)
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "productID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.inventoryService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Activity returns the activity trail, newest first.

GET /api/v1/activity
*/
func (handler *Handler) activity(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.inventoryService.Activity(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

/*
Stats returns the dashboard's headline figures.

GET /api/v1/stats
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.inventoryService.Stats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

/*
Charts returns the chart series computed over the live catalog.

GET /api/v1/charts
*/
func (handler *Handler) charts(writer http.ResponseWriter, request *http.Request) {
	data, err := handler.inventoryService.ChartData(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, data)
}

/*
Live returns the latest perturbed snapshot from the sampler.

GET /api/v1/live

Response:
  - 200: ChartData: Latest snapshot
  - 503: ErrServiceUnavailable: Sampler has not produced a snapshot yet
*/
func (handler *Handler) live(writer http.ResponseWriter, request *http.Request) {
	snapshot := handler.liveSampler.Latest()
	if snapshot == nil {
		respond.Error(writer, request,
			apperr.ServiceUnavailable("Live data is warming up"))
		return
	}

	respond.OK(writer, snapshot)
}
