package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/minetrics/go-minedash/components/dashboard"
	"github.com/minetrics/go-minedash/components/dashboard/commands"
)

// Executor is the narrow surface transports call to mutate dashboard
// state. CommandExecutor implements it over the shared command set.
type Executor interface {
	Toggle(ctx context.Context, input commands.ToggleWidgetInput) error
	Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error
	Customize(ctx context.Context, input commands.SaveCustomizationInput) error
	SelectDateRange(ctx context.Context, input commands.SelectDateRangeInput) error
	Reset(ctx context.Context, input commands.ResetPreferencesInput) error
	Refresh(ctx context.Context, input commands.RefreshWidgetInput) error
}

// CommandExecutor dispatches transport requests through go-command
// commanders so every entry point shares validation and telemetry.
type CommandExecutor struct {
	ToggleCmd    gocommand.Commander[commands.ToggleWidgetInput]
	ReorderCmd   gocommand.Commander[commands.ReorderWidgetsInput]
	CustomizeCmd gocommand.Commander[commands.SaveCustomizationInput]
	DateRangeCmd gocommand.Commander[commands.SelectDateRangeInput]
	ResetCmd     gocommand.Commander[commands.ResetPreferencesInput]
	RefreshCmd   gocommand.Commander[commands.RefreshWidgetInput]
}

// NewCommandExecutor wires the full command set against a service.
func NewCommandExecutor(service *dashboard.Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		ToggleCmd:    commands.NewToggleWidgetCommand(service, telemetry),
		ReorderCmd:   commands.NewReorderWidgetsCommand(service, telemetry),
		CustomizeCmd: commands.NewSaveCustomizationCommand(service, telemetry),
		DateRangeCmd: commands.NewSelectDateRangeCommand(service, telemetry),
		ResetCmd:     commands.NewResetPreferencesCommand(service, telemetry),
		RefreshCmd:   commands.NewRefreshWidgetCommand(service, telemetry),
	}
}

var _ Executor = (*CommandExecutor)(nil)

var errCommandNotConfigured = errors.New("httpapi: command not configured")

// Toggle implements Executor.
func (e *CommandExecutor) Toggle(ctx context.Context, input commands.ToggleWidgetInput) error {
	if e.ToggleCmd == nil {
		return errCommandNotConfigured
	}
	return e.ToggleCmd.Execute(ctx, input)
}

// Reorder implements Executor.
func (e *CommandExecutor) Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error {
	if e.ReorderCmd == nil {
		return errCommandNotConfigured
	}
	return e.ReorderCmd.Execute(ctx, input)
}

// Customize implements Executor.
func (e *CommandExecutor) Customize(ctx context.Context, input commands.SaveCustomizationInput) error {
	if e.CustomizeCmd == nil {
		return errCommandNotConfigured
	}
	return e.CustomizeCmd.Execute(ctx, input)
}

// SelectDateRange implements Executor.
func (e *CommandExecutor) SelectDateRange(ctx context.Context, input commands.SelectDateRangeInput) error {
	if e.DateRangeCmd == nil {
		return errCommandNotConfigured
	}
	return e.DateRangeCmd.Execute(ctx, input)
}

// Reset implements Executor.
func (e *CommandExecutor) Reset(ctx context.Context, input commands.ResetPreferencesInput) error {
	if e.ResetCmd == nil {
		return errCommandNotConfigured
	}
	return e.ResetCmd.Execute(ctx, input)
}

// Refresh implements Executor.
func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshWidgetInput) error {
	if e.RefreshCmd == nil {
		return errCommandNotConfigured
	}
	return e.RefreshCmd.Execute(ctx, input)
}

// Handlers exposes plain net/http endpoints backed by an Executor, for
// hosts that do not mount the go-router glue.
type Handlers struct {
	API Executor
}

func (h *Handlers) HandleToggleWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.ToggleWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Toggle(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleReorderWidgets(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReorderWidgetsInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Reorder(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSaveCustomization(w http.ResponseWriter, r *http.Request) {
	var payload commands.SaveCustomizationInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Customize(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSelectDateRange(w http.ResponseWriter, r *http.Request) {
	var payload commands.SelectDateRangeInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.SelectDateRange(r.Context(), payload); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dashboard.ErrInvalidSelector) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleResetPreferences(w http.ResponseWriter, r *http.Request) {
	if err := h.API.Reset(r.Context(), commands.ResetPreferencesInput{}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleRefreshWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Refresh(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
