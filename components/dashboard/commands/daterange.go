package commands

import (
	"context"
	"errors"
	"time"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/minetrics/go-minedash/components/dashboard"
)

// SelectDateRangeInput switches the shared date selection. Start and End
// are consulted only when Selector is custom.
type SelectDateRangeInput struct {
	Selector dashboard.Selector `json:"selector"`
	Start    time.Time          `json:"start,omitempty"`
	End      time.Time          `json:"end,omitempty"`
}

type dateRangeService interface {
	SetDateRange(ctx context.Context, selector dashboard.Selector) (dashboard.DateRange, error)
	SetCustomRange(ctx context.Context, rng dashboard.DateRange) error
}

// SelectDateRangeCommand applies a date selection through the service.
type SelectDateRangeCommand struct {
	service   dateRangeService
	telemetry Telemetry
}

// NewSelectDateRangeCommand creates the command.
func NewSelectDateRangeCommand(service dateRangeService, telemetry Telemetry) *SelectDateRangeCommand {
	return &SelectDateRangeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectDateRangeInput] = (*SelectDateRangeCommand)(nil)

// Execute updates the shared selection. Custom selectors must carry a
// concrete window; symbolic ones resolve inside the service.
func (c *SelectDateRangeCommand) Execute(ctx context.Context, msg SelectDateRangeInput) error {
	if c.service == nil {
		return errors.New("daterange command requires service")
	}
	if msg.Selector == dashboard.SelectorCustom {
		if msg.Start.IsZero() || msg.End.IsZero() {
			return errors.New("daterange command requires start and end for custom selection")
		}
		if err := c.service.SetCustomRange(ctx, dashboard.DateRange{Start: msg.Start, End: msg.End}); err != nil {
			return err
		}
	} else if _, err := c.service.SetDateRange(ctx, msg.Selector); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.daterange.select", map[string]any{
		"selector": string(msg.Selector),
	})
	return nil
}
