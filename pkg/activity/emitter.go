package activity

import "context"

// Config controls whether activity emission is active and which channel
// events default to.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter forwards dashboard activity to its hooks when enabled.
type Emitter struct {
	hooks Hooks
	cfg   Config
}

// NewEmitter builds an emitter over the provided hooks.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	return &Emitter{hooks: hooks, cfg: cfg}
}

// Enabled reports whether emission is active. An emitter without hooks
// is always disabled.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled && len(e.hooks) > 0
}

// Emit forwards the event through the hook chain. Disabled emitters are
// a silent no-op so call sites do not need to branch.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.cfg.Channel
	}
	return e.hooks.Notify(ctx, evt)
}
