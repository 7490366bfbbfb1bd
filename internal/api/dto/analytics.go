package dto

// RevenuePoint is one month bucket of the revenue series
type RevenuePoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Target  float64 `json:"target"`
}

// ActivityPoint is one weekday bucket of the activity series
type ActivityPoint struct {
	Day    string `json:"day"`
	Active int64  `json:"active"`
	New    int64  `json:"new"`
}

// TrafficSource is one source row of the traffic distribution
type TrafficSource struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Fill  string `json:"fill"`
}

// RevenueBreakdownSlice is one category share of year-to-date revenue
type RevenueBreakdownSlice struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Percent int     `json:"percent"`
}

// RevenueBreakdownResponse is the fixed-share decomposition of YTD revenue
type RevenueBreakdownResponse struct {
	Total  float64                 `json:"total"`
	Slices []RevenueBreakdownSlice `json:"slices"`
}

// RevenueSeriesResponse wraps the revenue series with its resolved period
type RevenueSeriesResponse struct {
	Period string         `json:"period"`
	Data   []RevenuePoint `json:"data"`
}

// ActivitySeriesResponse wraps the activity series with its resolved period
type ActivitySeriesResponse struct {
	Period string          `json:"period"`
	Data   []ActivityPoint `json:"data"`
}

// TrafficSeriesResponse wraps the traffic distribution with its resolved period
type TrafficSeriesResponse struct {
	Period string          `json:"period"`
	Data   []TrafficSource `json:"data"`
}
