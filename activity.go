package auth

import (
	"context"
	"time"
)

// ActivityEventType labels an audit event emitted by the session service.
type ActivityEventType string

const (
	ActivityEventLoginSuccess    ActivityEventType = "auth.login.success"
	ActivityEventLoginFailure    ActivityEventType = "auth.login.failure"
	ActivityEventRegistered      ActivityEventType = "auth.account.registered"
	ActivityEventAdminCreated    ActivityEventType = "auth.account.admin_created"
	ActivityEventStatusChanged   ActivityEventType = "auth.account.status_changed"
	ActivityEventProfileDeferred ActivityEventType = "auth.profile.create_failed"
)

// ActorRef identifies who/what triggered an event.
type ActorRef struct {
	ID   string
	Type string
}

// ActivityEvent describes a single auditable occurrence. The metadata may
// carry the internal failure reason that the uniform external error hides.
type ActivityEvent struct {
	EventType  ActivityEventType
	Actor      ActorRef
	AccountID  string
	OccurredAt time.Time
	Metadata   map[string]any
}

// ActivitySink receives audit events. Sinks run best effort: the session
// service logs Record errors and keeps going, so a slow or failing sink can
// never block authentication.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

type noopActivitySink struct{}

func (noopActivitySink) Record(ctx context.Context, event ActivityEvent) error {
	return nil
}

func normalizeActivitySink(sink ActivitySink) ActivitySink {
	if sink == nil {
		return noopActivitySink{}
	}
	return sink
}
