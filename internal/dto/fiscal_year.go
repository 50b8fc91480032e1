package dto

import "time"

// CreateFiscalYearRequest defines the data needed to open a fiscal year.
type CreateFiscalYearRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// CloseFiscalYearParams are the query parameters of the close endpoint.
type CloseFiscalYearParams struct {
	PreviewOnly bool `form:"preview_only"`
}

// ClosedResponse is the close endpoint response body.
type ClosedResponse struct {
	Closed  bool `json:"closed"`
	Preview any  `json:"preview"`
}

// PublishedResponse is the publish endpoint response body.
type PublishedResponse struct {
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}
