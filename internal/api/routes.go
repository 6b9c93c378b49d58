// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package api

import (
	"net/http"

	"github.com/grossstore/grossstore/internal/platform/respond"
	"github.com/grossstore/grossstore/internal/platform/sec"
)

// # Page Route Table

// PageRoute is one entry of the static page route table: a path, the single
// access requirement it declares, and the view payload served on admission.
//
// The table is the only place page visibility is declared. Views never
// re-check roles — the access gate decided before the handler runs.
type PageRoute struct {
	Path        string
	Requirement sec.Requirement
	Title       string
	Description string
}

// PageRoutes returns the full page route table.
//
// The social-callback and root-redirect paths are not listed here: they
// respond with redirects instead of a view payload and are wired explicitly
// in the server.
func PageRoutes() []PageRoute {
	return []PageRoute{
		{
			Path:        "/login",
			Requirement: sec.RequirePublic,
			Title:       "Sign In",
			Description: "Sign in with email and password or a social account.",
		},
		{
			Path:        "/dashboard",
			Requirement: sec.RequireManager,
			Title:       "Dashboard",
			Description: "Inventory statistics, charts, and recent activity.",
		},
		{
			Path:        "/products",
			Requirement: sec.RequireAuthenticated,
			Title:       "Products",
			Description: "Browse, search, and manage the product catalog.",
		},
		{
			Path:        "/products/add",
			Requirement: sec.RequireAuthenticated,
			Title:       "Add Product",
			Description: "Create a new draft product.",
		},
		{
			Path:        "/analytics/traffic",
			Requirement: sec.RequireManager,
			Title:       "Traffic Analytics",
			Description: "Product view trends across the catalog.",
		},
		{
			Path:        "/analytics/earning",
			Requirement: sec.RequireManager,
			Title:       "Earning Analytics",
			Description: "Inventory value and sales series.",
		},
		{
			Path:        "/finances/payment",
			Requirement: sec.RequireManager,
			Title:       "Payments",
			Description: "Incoming payment overview.",
		},
		{
			Path:        "/finances/payout",
			Requirement: sec.RequireManager,
			Title:       "Payouts",
			Description: "Supplier payout overview.",
		},
		{
			Path:        "/account/profile",
			Requirement: sec.RequireAuthenticated,
			Title:       "Profile",
			Description: "Your account details.",
		},
		{
			Path:        "/account/security",
			Requirement: sec.RequireAuthenticated,
			Title:       "Security",
			Description: "Password and session settings.",
		},
		{
			Path:        "/help",
			Requirement: sec.RequireAuthenticated,
			Title:       "Help",
			Description: "Guides and support contacts.",
		},
	}
}

// pageHandler serves the view payload for an admitted page request.
func pageHandler(route PageRoute) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		respond.OK(writer, map[string]string{
			"path":        route.Path,
			"title":       route.Title,
			"description": route.Description,
		})
	}
}
