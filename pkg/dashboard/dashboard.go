// Package dashboard re-exports the components/dashboard surface so host
// applications can depend on a stable import path.
package dashboard

import (
	core "github.com/minetrics/go-minedash/components/dashboard"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// ViewerContext re-export for convenience.
type ViewerContext = core.ViewerContext

// Selector re-export for convenience.
type Selector = core.Selector

// DateRange re-export for convenience.
type DateRange = core.DateRange

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// NewRegistry proxies to the internal constructor.
func NewRegistry() *core.Registry {
	return core.NewRegistry()
}

// NewDateFilter proxies to the internal constructor.
func NewDateFilter(opts ...core.DateFilterOption) *core.DateFilter {
	return core.NewDateFilter(opts...)
}
