package auth

import (
	"context"
	"time"
)

// TransitionMetadata captures extra context for a status transition.
type TransitionMetadata struct {
	Reason   string
	Metadata map[string]any
}

// TransitionOption customizes a single transition.
type TransitionOption func(*transitionOptions)

type transitionOptions struct {
	actor    ActorRef
	metadata TransitionMetadata
}

// WithTransitionActor records who triggered the transition. Defaults to the
// system actor when absent.
func WithTransitionActor(actor ActorRef) TransitionOption {
	return func(opts *transitionOptions) {
		opts.actor = actor
	}
}

// WithTransitionReason sets the human-readable reason for the transition.
func WithTransitionReason(reason string) TransitionOption {
	return func(opts *transitionOptions) {
		opts.metadata.Reason = reason
	}
}

// WithTransitionMetadata merges metadata into the transition event.
func WithTransitionMetadata(metadata map[string]any) TransitionOption {
	return func(opts *transitionOptions) {
		if len(metadata) == 0 {
			return
		}
		if opts.metadata.Metadata == nil {
			opts.metadata.Metadata = make(map[string]any, len(metadata))
		}
		for k, v := range metadata {
			opts.metadata.Metadata[k] = v
		}
	}
}

// AccountLifecycle persists status transitions and publishes lifecycle
// events. The transition graph is unrestricted: any status may move to any
// other, including deleted back to active.
type AccountLifecycle struct {
	accounts     Accounts
	activitySink ActivitySink
	logger       Logger
	now          func() time.Time
}

// LifecycleOption customizes lifecycle construction.
type LifecycleOption func(*AccountLifecycle)

// WithLifecycleClock injects a custom clock (useful for tests).
func WithLifecycleClock(clock func() time.Time) LifecycleOption {
	return func(lc *AccountLifecycle) {
		if clock != nil {
			lc.now = clock
		}
	}
}

// WithLifecycleActivitySink sets the ActivitySink used to publish lifecycle events.
func WithLifecycleActivitySink(sink ActivitySink) LifecycleOption {
	return func(lc *AccountLifecycle) {
		lc.activitySink = normalizeActivitySink(sink)
	}
}

// WithLifecycleLogger overrides the logger used for sink failures.
func WithLifecycleLogger(logger Logger) LifecycleOption {
	return func(lc *AccountLifecycle) {
		if logger != nil {
			lc.logger = logger
		}
	}
}

func NewAccountLifecycle(accounts Accounts, opts ...LifecycleOption) *AccountLifecycle {
	lc := &AccountLifecycle{
		accounts:     accounts,
		activitySink: noopActivitySink{},
		logger:       defLogger{},
		now:          time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(lc)
		}
	}

	return lc
}

// Transition moves an account to the target status and records the change.
func (lc *AccountLifecycle) Transition(ctx context.Context, account *Account, target AccountStatus, opts ...TransitionOption) (*Account, error) {
	if !target.IsValid() {
		return nil, ErrInvalidStatus
	}

	options := &transitionOptions{
		actor: ActorRef{Type: SystemActor},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	from := account.Status

	statusOpts := []StatusUpdateOption{}
	if options.actor.ID != "" {
		statusOpts = append(statusOpts, WithUpdatedBy(options.actor.ID))
	}

	updated, err := lc.accounts.UpdateStatus(ctx, account.ID, target, statusOpts...)
	if err != nil {
		return nil, err
	}

	lc.emit(ctx, options.actor, updated, from, target, options.metadata)

	return updated, nil
}

func (lc *AccountLifecycle) emit(ctx context.Context, actor ActorRef, account *Account, from, to AccountStatus, meta TransitionMetadata) {
	metadata := map[string]any{
		"from": string(from),
		"to":   string(to),
	}
	if meta.Reason != "" {
		metadata["reason"] = meta.Reason
	}
	for k, v := range meta.Metadata {
		metadata[k] = v
	}

	event := ActivityEvent{
		EventType:  ActivityEventStatusChanged,
		Actor:      actor,
		AccountID:  account.ID.String(),
		OccurredAt: lc.now(),
		Metadata:   metadata,
	}

	if err := lc.activitySink.Record(ctx, event); err != nil {
		lc.logger.Warn("activity sink record error: %v", err)
	}
}
