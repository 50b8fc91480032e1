package dto

import "github.com/shopspring/decimal"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error        string           `json:"error"`
	Code         string           `json:"code,omitempty"`
	Kind         string           `json:"kind,omitempty"`
	EntityID     string           `json:"entityID,omitempty"`
	CurrentState string           `json:"currentState,omitempty"`
	Delta        *decimal.Decimal `json:"delta,omitempty"`
	Details      []string         `json:"details,omitempty"`
}
