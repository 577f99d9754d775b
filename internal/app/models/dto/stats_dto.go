package dto

// SubscriptionStats tallies paid vs unpaid directory records
type SubscriptionStats struct {
	Paid   int64 `json:"paid" example:"120"`
	Unpaid int64 `json:"unpaid" example:"45"`
	Total  int64 `json:"total" example:"165"`
}

// SubscriptionStatsResponse wraps the subscription tally
type SubscriptionStatsResponse struct {
	Message string            `json:"message" example:"subscription stats retrieved"`
	Stats   SubscriptionStats `json:"stats"`
}

// ClassDistribution is the number of students recorded for one class snapshot
type ClassDistribution struct {
	ClassID   int64  `json:"classId" example:"1"`
	ClassName string `json:"className" example:"Class 10"`
	Count     int64  `json:"count" example:"34"`
}

// RegistrationPoint is the number of students created on one day
type RegistrationPoint struct {
	Day   string `json:"day" example:"2026-08-01"`
	Count int64  `json:"count" example:"7"`
}

// ChartStatsResponse wraps the dashboard aggregations
type ChartStatsResponse struct {
	Message       string              `json:"message" example:"chart stats retrieved"`
	Subscription  SubscriptionStats   `json:"subscription"`
	ByClass       []ClassDistribution `json:"byClass"`
	Registrations []RegistrationPoint `json:"registrations"`
}
