package types

import (
	"github.com/samber/lo"

	ierr "github.com/pulseboard/pulseboard/internal/errors"
)

const (
	DefaultFilterLimit = 50
	MaxFilterLimit     = 200
)

// SortOrder is the direction of a list sort
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// QueryFilter carries pagination and ordering for list endpoints
type QueryFilter struct {
	Limit  *int      `json:"limit,omitempty" form:"limit"`
	Offset *int      `json:"offset,omitempty" form:"offset"`
	Sort   *string   `json:"sort,omitempty" form:"sort"`
	Order  SortOrder `json:"order,omitempty" form:"order"`
}

// NewDefaultQueryFilter returns a filter with the default page size
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(DefaultFilterLimit),
		Offset: lo.ToPtr(0),
		Order:  SortOrderAsc,
	}
}

// Validate validates the query filter
func (f *QueryFilter) Validate() error {
	if f.Limit != nil && (*f.Limit < 1 || *f.Limit > MaxFilterLimit) {
		return ierr.NewErrorf("limit must be between 1 and %d", MaxFilterLimit).
			WithReportableDetails(map[string]interface{}{
				"limit": *f.Limit,
			}).
			Mark(ierr.ErrValidation)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("offset must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if f.Order != "" && f.Order != SortOrderAsc && f.Order != SortOrderDesc {
		return ierr.NewErrorf("invalid sort order: %s", f.Order).
			WithHint("order must be asc or desc").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetLimit returns the effective page size
func (f *QueryFilter) GetLimit() int {
	if f == nil || f.Limit == nil {
		return DefaultFilterLimit
	}
	return *f.Limit
}

// GetOffset returns the effective page offset
func (f *QueryFilter) GetOffset() int {
	if f == nil || f.Offset == nil {
		return 0
	}
	return *f.Offset
}

// GetSort returns the sort field, defaulting to the given field
func (f *QueryFilter) GetSort(defaultField string) string {
	if f == nil || f.Sort == nil || *f.Sort == "" {
		return defaultField
	}
	return *f.Sort
}

// GetOrder returns the sort order, defaulting to ascending
func (f *QueryFilter) GetOrder() SortOrder {
	if f == nil || f.Order == "" {
		return SortOrderAsc
	}
	return f.Order
}

// PaginationResponse is the pagination envelope on list responses
type PaginationResponse struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
