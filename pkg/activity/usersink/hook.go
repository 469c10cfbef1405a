// Package usersink bridges dashboard activity events into a go-users
// activity log.
package usersink

import (
	"context"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/minetrics/go-minedash/pkg/activity"
)

// Sink is the go-users activity logging surface the hook writes to.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook maps activity events onto go-users activity records.
type Hook struct {
	Sink Sink
}

// Notify implements activity.Hook. Events without a verb or a sink are
// skipped silently.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil || !evt.Valid() {
		return nil
	}
	record := types.ActivityRecord{
		ActorID:    parseUUID(evt.ActorID),
		UserID:     parseUUID(evt.UserID),
		TenantID:   parseUUID(evt.TenantID),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		OccurredAt: evt.OccurredAt,
		Data:       buildData(evt),
	}
	return h.Sink.Log(ctx, record)
}

func buildData(evt activity.Event) map[string]any {
	data := make(map[string]any, len(evt.Metadata)+2)
	for k, v := range evt.Metadata {
		data[k] = v
	}
	if evt.DefinitionCode != "" {
		data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		data["recipients"] = append([]string(nil), evt.Recipients...)
	}
	return data
}

func parseUUID(raw string) uuid.UUID {
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

var _ activity.Hook = Hook{}
