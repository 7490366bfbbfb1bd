package metrics

import (
	"time"

	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/types"
)

// Revenue is one tenant's revenue figure for a calendar month. Unique per
// (tenant, month, year); written by seed/ingestion processes and read-only
// from the aggregation path. Amounts are stored as plain numbers; the
// services move them into decimals before doing any derived math.
type Revenue struct {
	ID      string  `json:"id" bson:"_id"`
	UserID  string  `json:"user_id" bson:"user_id"`
	Month   string  `json:"month" bson:"month"`
	Year    int     `json:"year" bson:"year"`
	Revenue float64 `json:"revenue" bson:"revenue"`
	Target  float64 `json:"target" bson:"target"`
	types.BaseModel `bson:",inline"`
}

// Validate validates the revenue record
func (r *Revenue) Validate() error {
	if r.UserID == "" {
		return ierr.NewError("user_id is required").Mark(ierr.ErrValidation)
	}
	if types.MonthIndex(r.Month) < 0 {
		return ierr.NewErrorf("invalid month: %s", r.Month).
			WithHint("month must be a short month name, e.g. Jan").
			Mark(ierr.ErrValidation)
	}
	if r.Year <= 0 {
		return ierr.NewError("year is required").Mark(ierr.ErrValidation)
	}
	return nil
}

// Activity is one tenant's user-activity counts for a calendar day
type Activity struct {
	ID     string    `json:"id" bson:"_id"`
	UserID string    `json:"user_id" bson:"user_id"`
	Day    string    `json:"day" bson:"day"`
	Date   time.Time `json:"date" bson:"date"`
	Active int64     `json:"active" bson:"active"`
	New    int64     `json:"new" bson:"new"`
	types.BaseModel  `bson:",inline"`
}

// Validate validates the activity record
func (a *Activity) Validate() error {
	if a.UserID == "" {
		return ierr.NewError("user_id is required").Mark(ierr.ErrValidation)
	}
	if a.Date.IsZero() {
		return ierr.NewError("date is required").Mark(ierr.ErrValidation)
	}
	return nil
}

// Traffic is one observation of visits from a named source for a tenant
type Traffic struct {
	ID     string    `json:"id" bson:"_id"`
	UserID string    `json:"user_id" bson:"user_id"`
	Name   string    `json:"name" bson:"name"`
	Value  int64     `json:"value" bson:"value"`
	Fill   string    `json:"fill,omitempty" bson:"fill,omitempty"`
	Date   time.Time `json:"date" bson:"date"`
	types.BaseModel  `bson:",inline"`
}

// Validate validates the traffic record
func (t *Traffic) Validate() error {
	if t.UserID == "" {
		return ierr.NewError("user_id is required").Mark(ierr.ErrValidation)
	}
	if t.Name == "" {
		return ierr.NewError("name is required").Mark(ierr.ErrValidation)
	}
	return nil
}

// TrafficSourceTotal is one group row from the traffic aggregation pipeline
type TrafficSourceTotal struct {
	Name  string `bson:"_id"`
	Total int64  `bson:"total"`
	Fill  string `bson:"fill"`
}

// ActivityTotals is the summed activity counters for a tenant scope
type ActivityTotals struct {
	Active int64 `bson:"active"`
	New    int64 `bson:"new"`
}
