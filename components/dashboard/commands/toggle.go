package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/minetrics/go-minedash/components/dashboard"
)

// ToggleWidgetInput identifies the widget whose visibility should flip.
type ToggleWidgetInput struct {
	Code string `json:"code"`
}

type toggleService interface {
	ToggleWidget(ctx context.Context, code string) ([]dashboard.WidgetPreference, error)
}

// ToggleWidgetCommand wraps Service.ToggleWidget so transports can flip
// widget visibility without linking directly against the service.
type ToggleWidgetCommand struct {
	service   toggleService
	telemetry Telemetry
}

// NewToggleWidgetCommand creates a command instance.
func NewToggleWidgetCommand(service toggleService, telemetry Telemetry) *ToggleWidgetCommand {
	return &ToggleWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleWidgetInput] = (*ToggleWidgetCommand)(nil)

// Execute delegates to the dashboard service.
func (c *ToggleWidgetCommand) Execute(ctx context.Context, msg ToggleWidgetInput) error {
	if c.service == nil {
		return errors.New("toggle command requires service")
	}
	if msg.Code == "" {
		return errors.New("toggle command requires widget code")
	}
	if _, err := c.service.ToggleWidget(ctx, msg.Code); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.widget.toggle", map[string]any{
		"code": msg.Code,
	})
	return nil
}
