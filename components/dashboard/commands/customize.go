package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/minetrics/go-minedash/components/dashboard"
)

// SaveCustomizationInput carries the full preference set from the
// customizer panel's apply action.
type SaveCustomizationInput struct {
	Widgets []dashboard.WidgetPreference `json:"widgets"`
}

type customizeService interface {
	SaveCustomization(ctx context.Context, prefs []dashboard.WidgetPreference) ([]dashboard.WidgetPreference, error)
}

// SaveCustomizationCommand persists a bulk preference replacement.
type SaveCustomizationCommand struct {
	service   customizeService
	telemetry Telemetry
}

// NewSaveCustomizationCommand creates the command.
func NewSaveCustomizationCommand(service customizeService, telemetry Telemetry) *SaveCustomizationCommand {
	return &SaveCustomizationCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveCustomizationInput] = (*SaveCustomizationCommand)(nil)

// Execute stores the provided preference set.
func (c *SaveCustomizationCommand) Execute(ctx context.Context, msg SaveCustomizationInput) error {
	if c.service == nil {
		return errors.New("customize command requires service")
	}
	saved, err := c.service.SaveCustomization(ctx, msg.Widgets)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.customization.save", map[string]any{
		"requested": len(msg.Widgets),
		"saved":     len(saved),
	})
	return nil
}
