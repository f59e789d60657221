package model

import "time"

// Configuration is the singleton account record: the rate charged per item
// and the balance baseline set at setup time.
type Configuration struct {
	RatePerItem    float64   `json:"rate_per_item"`
	InitialBalance float64   `json:"initial_balance"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConfigurationDisplay is the configuration plus pre-formatted amounts. It is
// the one place amounts are formatted below the front-end, so every caller
// renders them identically.
type ConfigurationDisplay struct {
	Configuration
	FormattedRate           string `json:"formatted_rate"`
	FormattedInitialBalance string `json:"formatted_initial_balance"`
}

// RateUpdate reports the outcome of a rate change.
type RateUpdate struct {
	OldRate   float64   `json:"old_rate"`
	NewRate   float64   `json:"new_rate"`
	UpdatedAt time.Time `json:"updated_at"`
}
