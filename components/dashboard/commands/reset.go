package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/minetrics/go-minedash/components/dashboard"
)

// ResetPreferencesInput restores catalog defaults. It carries no fields
// but keeps the command signature uniform for transports.
type ResetPreferencesInput struct{}

type resetService interface {
	ResetPreferences(ctx context.Context) ([]dashboard.WidgetPreference, error)
}

// ResetPreferencesCommand discards stored preferences.
type ResetPreferencesCommand struct {
	service   resetService
	telemetry Telemetry
}

// NewResetPreferencesCommand creates the command.
func NewResetPreferencesCommand(service resetService, telemetry Telemetry) *ResetPreferencesCommand {
	return &ResetPreferencesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetPreferencesInput] = (*ResetPreferencesCommand)(nil)

// Execute restores the default preference set.
func (c *ResetPreferencesCommand) Execute(ctx context.Context, _ ResetPreferencesInput) error {
	if c.service == nil {
		return errors.New("reset command requires service")
	}
	prefs, err := c.service.ResetPreferences(ctx)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.customization.reset", map[string]any{
		"count": len(prefs),
	})
	return nil
}
