// Package activity emits audit events for dashboard mutations so hosts
// can feed notification or compliance pipelines.
package activity

import (
	"strings"
	"time"
)

// DefaultChannel is applied to events emitted without an explicit channel.
const DefaultChannel = "dashboard"

// Event describes a dashboard action worth auditing: who did what to
// which object, and when.
type Event struct {
	Verb           string         `json:"verb"`
	ActorID        string         `json:"actor_id,omitempty"`
	UserID         string         `json:"user_id,omitempty"`
	TenantID       string         `json:"tenant_id,omitempty"`
	ObjectType     string         `json:"object_type"`
	ObjectID       string         `json:"object_id"`
	Channel        string         `json:"channel,omitempty"`
	DefinitionCode string         `json:"definition_code,omitempty"`
	Recipients     []string       `json:"recipients,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	OccurredAt     time.Time      `json:"occurred_at"`
}

// Valid reports whether the event carries the minimum payload to audit.
func (e Event) Valid() bool {
	return strings.TrimSpace(e.Verb) != ""
}

// NormalizeEvent trims identifying fields, stamps defaults, and clones
// mutable members so downstream hooks cannot alias caller state.
func NormalizeEvent(evt Event) Event {
	evt.Verb = strings.TrimSpace(evt.Verb)
	evt.ObjectType = strings.TrimSpace(evt.ObjectType)
	evt.ObjectID = strings.TrimSpace(evt.ObjectID)
	if evt.Channel == "" {
		evt.Channel = DefaultChannel
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	if evt.Metadata != nil {
		meta := make(map[string]any, len(evt.Metadata))
		for k, v := range evt.Metadata {
			meta[k] = v
		}
		evt.Metadata = meta
	}
	if evt.Recipients != nil {
		evt.Recipients = append([]string(nil), evt.Recipients...)
	}
	return evt
}
