package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/minetrics/go-minedash/components/dashboard"
)

// DateRangeInput requests the active selection.
type DateRangeInput struct{}

// DateRangeResult reports the active selector and resolved window.
type DateRangeResult struct {
	Selector dashboard.Selector  `json:"selector"`
	Range    dashboard.DateRange `json:"range"`
}

type dateRangeReader interface {
	CurrentRange() (dashboard.Selector, dashboard.DateRange)
}

// DateRangeQuery exposes the shared date selection to transports.
type DateRangeQuery struct {
	service dateRangeReader
}

// NewDateRangeQuery builds the query.
func NewDateRangeQuery(service dateRangeReader) *DateRangeQuery {
	return &DateRangeQuery{service: service}
}

var _ gocommand.Querier[DateRangeInput, DateRangeResult] = (*DateRangeQuery)(nil)

// Query returns the active selection.
func (q *DateRangeQuery) Query(_ context.Context, _ DateRangeInput) (DateRangeResult, error) {
	selector, rng := q.service.CurrentRange()
	return DateRangeResult{Selector: selector, Range: rng}, nil
}
