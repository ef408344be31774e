// Package poison maps the dispatch engine's classified failures to the action
// the queue-consumption boundary takes: drop terminal events, requeue transient
// ones, and quarantine events that exhausted their retry ceiling.
package poison

import (
	"context"
	"log/slog"

	"github.com/berez23/io-functions/internal/dispatch"
	"github.com/berez23/io-functions/internal/events"
)

// Requeuer republishes an event for another delivery attempt.
type Requeuer interface {
	Requeue(ctx context.Context, ev *events.CreatedMessageEvent, attempt int) error
}

// DeadLetterer quarantines an event that will not be retried again.
type DeadLetterer interface {
	DeadLetter(ctx context.Context, ev *events.CreatedMessageEvent, attempt int, reason string) error
}

// Action describes what was done with a failed event.
type Action string

const (
	// ActionNone means the handler could not act: the requeue or dead-letter
	// write failed and the offset must not be committed.
	ActionNone Action = "NONE"
	// ActionDropped means the event was terminally rejected and discarded.
	ActionDropped Action = "DROPPED"
	// ActionRequeued means the event was republished for another attempt.
	ActionRequeued Action = "REQUEUED"
	// ActionQuarantined means the event was moved to the dead-letter topic.
	ActionQuarantined Action = "QUARANTINED"
)

// Handler enforces the maximum-attempt policy for failed events.
type Handler struct {
	queueName   string
	maxAttempts int
	requeuer    Requeuer
	deadLetter  DeadLetterer
}

// NewHandler creates a poison-message handler. maxAttempts is the delivery
// ceiling including the first delivery.
func NewHandler(queueName string, maxAttempts int, requeuer Requeuer, deadLetter DeadLetterer) *Handler {
	return &Handler{
		queueName:   queueName,
		maxAttempts: maxAttempts,
		requeuer:    requeuer,
		deadLetter:  deadLetter,
	}
}

// HandleFailure decides the fate of a failed event.
//
// Terminal failures are dropped with a diagnostic: redelivery cannot fix a
// malformed event. Transient failures are requeued with an incremented
// delivery-attempt counter until the ceiling is reached, then quarantined on
// the dead-letter topic.
//
// The returned error is non-nil only when the requeue or dead-letter write
// itself failed; in that case the caller must not commit the offset, so the
// queue infrastructure redelivers the event.
func (h *Handler) HandleFailure(ctx context.Context, ev *events.CreatedMessageEvent, deliveryAttempt int, procErr error) (Action, error) {
	if dispatch.IsTerminal(procErr) {
		slog.Error("Dropping malformed event",
			"queue", h.queueName,
			"message_id", ev.Message.ID,
			"delivery_attempt", deliveryAttempt,
			"error", procErr,
		)
		return ActionDropped, nil
	}

	if deliveryAttempt >= h.maxAttempts {
		slog.Error("Delivery attempts exhausted, quarantining event",
			"queue", h.queueName,
			"message_id", ev.Message.ID,
			"delivery_attempt", deliveryAttempt,
			"max_attempts", h.maxAttempts,
			"error", procErr,
		)
		if err := h.deadLetter.DeadLetter(ctx, ev, deliveryAttempt, procErr.Error()); err != nil {
			return ActionNone, err
		}
		return ActionQuarantined, nil
	}

	slog.Warn("Requeueing event after transient failure",
		"queue", h.queueName,
		"message_id", ev.Message.ID,
		"delivery_attempt", deliveryAttempt,
		"max_attempts", h.maxAttempts,
		"error", procErr,
	)
	if err := h.requeuer.Requeue(ctx, ev, deliveryAttempt+1); err != nil {
		return ActionNone, err
	}
	return ActionRequeued, nil
}
