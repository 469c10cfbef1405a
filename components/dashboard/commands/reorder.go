package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/minetrics/go-minedash/components/dashboard"
)

// ReorderWidgetsInput contains the full display order as widget codes.
type ReorderWidgetsInput struct {
	Codes []string `json:"codes"`
}

type reorderService interface {
	ReorderWidgets(ctx context.Context, codes []string) ([]dashboard.WidgetPreference, error)
}

// ReorderWidgetsCommand wraps Service.ReorderWidgets.
type ReorderWidgetsCommand struct {
	service   reorderService
	telemetry Telemetry
}

// NewReorderWidgetsCommand builds the command.
func NewReorderWidgetsCommand(service reorderService, telemetry Telemetry) *ReorderWidgetsCommand {
	return &ReorderWidgetsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderWidgetsInput] = (*ReorderWidgetsCommand)(nil)

// Execute applies the new ordering.
func (c *ReorderWidgetsCommand) Execute(ctx context.Context, msg ReorderWidgetsInput) error {
	if c.service == nil {
		return errors.New("reorder command requires service")
	}
	if len(msg.Codes) == 0 {
		return errors.New("reorder command requires at least one widget code")
	}
	if _, err := c.service.ReorderWidgets(ctx, msg.Codes); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.widget.reorder", map[string]any{
		"count": len(msg.Codes),
	})
	return nil
}
