// Package domain contains the core data types for the Wanderly backend.
// This package has zero internal dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a single travel plan owned by one user.
// A trip is the top-level aggregate; its share and comments hang off it.
// OwnerID is set at creation and never changes afterwards.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Destination string    `json:"destination"`
	Days        int       `json:"days"`
	TravelStyle string    `json:"travel_style,omitempty"`
	BudgetTier  string    `json:"budget_tier,omitempty"`
	DailyBudget *float64  `json:"daily_budget,omitempty"` // nil when the user picked a tier instead
	Preferences string    `json:"preferences,omitempty"`
	Itinerary   []DayPlan `json:"itinerary"`

	// Optional enrichment captured from upstream services at planning time.
	Weather          *WeatherSnapshot   `json:"weather,omitempty"`
	CostBreakdown    map[string]float64 `json:"cost_breakdown,omitempty"`
	PointsOfInterest []PointOfInterest  `json:"points_of_interest,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DayPlan is one entry in a trip's ordered itinerary.
type DayPlan struct {
	Day        int        `json:"day"`
	Title      string     `json:"title,omitempty"`
	Activities []Activity `json:"activities"`
}

// Activity is a single itinerary item within a day.
type Activity struct {
	Time        string `json:"time,omitempty"` // free-form, e.g. "morning" or "14:00"
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// WeatherSnapshot is the weather captured for the destination when the trip
// was planned. It is a snapshot, not live data.
type WeatherSnapshot struct {
	City      string  `json:"city"`
	TempC     float64 `json:"temp_c"`
	Condition string  `json:"condition"`
	Humidity  int     `json:"humidity"`
	WindKph   float64 `json:"wind_kph"`
}

// PointOfInterest is a nearby attraction attached to a trip.
type PointOfInterest struct {
	Name    string  `json:"name"`
	Address string  `json:"address,omitempty"`
	Rating  float64 `json:"rating,omitempty"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
}

// TripPatch carries a partial update for a trip. Nil fields are left
// untouched; set fields overwrite. ID and OwnerID are deliberately absent —
// neither is patchable.
type TripPatch struct {
	Destination      *string             `json:"destination,omitempty"`
	Days             *int                `json:"days,omitempty"`
	TravelStyle      *string             `json:"travel_style,omitempty"`
	BudgetTier       *string             `json:"budget_tier,omitempty"`
	DailyBudget      *float64            `json:"daily_budget,omitempty"`
	Preferences      *string             `json:"preferences,omitempty"`
	Itinerary        *[]DayPlan          `json:"itinerary,omitempty"`
	Weather          *WeatherSnapshot    `json:"weather,omitempty"`
	CostBreakdown    *map[string]float64 `json:"cost_breakdown,omitempty"`
	PointsOfInterest *[]PointOfInterest  `json:"points_of_interest,omitempty"`
}

// TripStats is the per-owner summary returned alongside trip listings.
type TripStats struct {
	Total       int `json:"total"`
	SharedCount int `json:"shared_count"`
}
