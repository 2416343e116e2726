package dto

import (
	"fmt"

	"github.com/goccy/go-json"

	"what2watch-gateway/internal/app/service"
	"what2watch-gateway/internal/domain"
)

// HeaderCache carries the facade status (HIT, MISS or BYPASS) of a response.
const HeaderCache = "X-Cache"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TestResponse is returned by the vendor connectivity checks.
type TestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Vendor  string `json:"vendor"`
}

// NewTestResponse creates a successful TestResponse for vendor.
func NewTestResponse(vendor string) TestResponse {
	return TestResponse{
		Success: true,
		Message: fmt.Sprintf("%s API connection successful", vendor),
		Vendor:  vendor,
	}
}

// MoviesResponse wraps movie recommendations.
type MoviesResponse struct {
	Success bool              `json:"success"`
	Query   string            `json:"query"`
	Movies  []json.RawMessage `json:"movies"`
	Total   int               `json:"total"`
}

// FromRecommendations converts service.Recommendations to MoviesResponse.
func FromRecommendations(r service.Recommendations) MoviesResponse {
	movies := r.Movies
	if movies == nil {
		movies = []json.RawMessage{}
	}

	return MoviesResponse{
		Success: true,
		Query:   r.Query,
		Movies:  movies,
		Total:   r.Total(),
	}
}

// VendorStatus is one entry of GET /admin/vendors.
type VendorStatus struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

// VendorsResponse lists the vendor clients and their circuit breaker states.
type VendorsResponse struct {
	Vendors []VendorStatus `json:"vendors"`
}

// FromVendors converts domain.Vendor values to VendorsResponse.
func FromVendors(vendors []domain.Vendor) VendorsResponse {
	resp := VendorsResponse{Vendors: make([]VendorStatus, len(vendors))}
	for i, v := range vendors {
		resp.Vendors[i] = VendorStatus{Name: v.Name(), State: v.State()}
	}

	return resp
}
