package dashboard

import (
	"context"
	"errors"
	"io"
)

// Controller orchestrates HTTP handlers/routes for the operations dashboard.
type Controller struct {
	service  *Service
	renderer Renderer
}

// ControllerOption customizes controller construction.
type ControllerOption func(*Controller)

// WithRenderer injects the template renderer used by RenderTemplate.
func WithRenderer(r Renderer) ControllerOption {
	return func(c *Controller) {
		if r != nil {
			c.renderer = r
		}
	}
}

// NewController wires the service into a controller.
func NewController(service *Service, opts ...ControllerOption) *Controller {
	c := &Controller{service: service}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render resolves the layout for a viewer and returns it to the caller.
func (c *Controller) Render(ctx context.Context, viewer ViewerContext) (Layout, error) {
	if c.service == nil {
		return Layout{}, nil
	}
	return c.service.BuildDashboard(ctx, viewer)
}

// RenderTemplate resolves the layout and writes the dashboard HTML page.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("dashboard: controller has no renderer configured")
	}
	layout, err := c.Render(ctx, viewer)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render("dashboard", map[string]any{
		"viewer":   viewer,
		"selector": layout.Selector,
		"range":    layout.Range,
		"widgets":  layout.Widgets,
	}, out)
	return err
}

// LayoutPayload resolves the layout as a JSON-friendly document for the
// `_layout` endpoint and client-side refreshes.
func (c *Controller) LayoutPayload(ctx context.Context, viewer ViewerContext) (map[string]any, error) {
	layout, err := c.Render(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"selector": layout.Selector,
		"range":    layout.Range,
		"widgets":  layout.Widgets,
	}, nil
}
