package activity

import "context"

// Hook receives normalized activity events.
type Hook interface {
	Notify(ctx context.Context, evt Event) error
}

// HookFunc adapts a function into a Hook.
type HookFunc func(ctx context.Context, evt Event) error

// Notify implements Hook.
func (f HookFunc) Notify(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Hooks fans one event out to multiple hooks.
type Hooks []Hook

// Notify normalizes the event and forwards it to every hook. Invalid
// events are skipped. The first hook error stops the fan-out.
func (h Hooks) Notify(ctx context.Context, evt Event) error {
	if !evt.Valid() {
		return nil
	}
	normalized := NormalizeEvent(evt)
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil {
			return err
		}
	}
	return nil
}
