package activity

import (
	"context"
	"sync"
)

// CaptureHook records every event it receives, for tests and debugging.
type CaptureHook struct {
	mu     sync.Mutex
	Events []Event
}

// Notify implements Hook.
func (h *CaptureHook) Notify(_ context.Context, evt Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Events = append(h.Events, evt)
	return nil
}
