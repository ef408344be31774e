package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/berez23/io-functions/internal/consumer"
	"github.com/berez23/io-functions/internal/database"
	"github.com/berez23/io-functions/internal/dispatch"
	"github.com/berez23/io-functions/internal/events"
	"github.com/berez23/io-functions/internal/metrics"
	"github.com/berez23/io-functions/internal/poison"
	"github.com/berez23/io-functions/internal/producer"
)

const workerCount = 10

// work represents a unit of work for the worker pool.
type work struct {
	event   *events.CreatedMessageEvent
	attempt int
	msg     *kafka.Message
}

// processorDeps holds all dependencies needed for message dispatching.
type processorDeps struct {
	consumer        *consumer.Consumer
	engine          *dispatch.Dispatcher
	poison          *poison.Handler
	emailProducer   *producer.NotificationProducer
	webhookProducer *producer.NotificationProducer
	statuses        dispatch.MessageStatusUpserter
	metrics         metrics.Recorder
}

// processMessages reads created-message events from Kafka and dispatches them
// concurrently. Offsets are committed per message once its outcome is settled.
func processMessages(ctx context.Context, deps *processorDeps) {
	slog.Info("Starting dispatch processing loop", "workers", workerCount)

	jobs := make(chan work, workerCount*2)
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go runWorker(ctx, deps, jobs, &wg)
	}

	readMessages(ctx, deps, jobs)

	close(jobs)
	wg.Wait()
	slog.Info("Dispatch processing loop stopped")
}

// runWorker processes jobs from the channel until it's closed.
func runWorker(ctx context.Context, deps *processorDeps, jobs <-chan work, wg *sync.WaitGroup) {
	defer wg.Done()
	for job := range jobs {
		processOne(ctx, deps, job)
	}
}

// readMessages reads events from Kafka and hands them to workers. An event
// whose payload cannot even be deserialized is committed and dropped: no
// amount of redelivery fixes malformed bytes.
func readMessages(ctx context.Context, deps *processorDeps, jobs chan<- work) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			ev, attempt, msg, err := deps.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if msg != nil {
					slog.Error("Dropping undecodable event", "error", err)
					deps.metrics.RecordDropped()
					commitOffset(ctx, deps.consumer, msg)
					continue
				}
				slog.Error("Failed to read created message event", "error", err)
				continue
			}
			deps.metrics.RecordReceived()
			jobs <- work{event: ev, attempt: attempt, msg: msg}
		}
	}
}

// processOne dispatches a single event: run the engine, publish the resolved
// channel notifications, and commit. Failures go through the poison policy;
// the offset stays uncommitted only when that policy itself could not act.
func processOne(ctx context.Context, deps *processorDeps, job work) {
	startTime := time.Now()

	result, err := deps.engine.HandleMessage(ctx, job.event)
	if err != nil {
		handleDispatchFailure(ctx, deps, job, err)
		return
	}

	if err := publishNotifications(ctx, deps, result); err != nil {
		// Publishing is transient territory: leave it to the poison policy.
		handleDispatchFailure(ctx, deps, job, dispatch.Transientf("publish failed for message %s: %w", job.event.Message.ID, err))
		return
	}

	deps.metrics.RecordProcessed(time.Since(startTime))

	slog.Info("Dispatched message",
		"message_id", job.event.Message.ID,
		"recipient_id", job.event.Message.RecipientID,
		"email", result.EmailNotification != nil,
		"webhook", result.WebhookNotification != nil,
	)

	commitOffset(ctx, deps.consumer, job.msg)
}

// publishNotifications publishes the per-channel notification events.
func publishNotifications(ctx context.Context, deps *processorDeps, result *dispatch.Result) error {
	if result.EmailNotification != nil {
		if err := deps.emailProducer.Publish(ctx, result.EmailNotification); err != nil {
			return err
		}
		deps.metrics.RecordPublished()
	}
	if result.WebhookNotification != nil {
		if err := deps.webhookProducer.Publish(ctx, result.WebhookNotification); err != nil {
			return err
		}
		deps.metrics.RecordPublished()
	}
	return nil
}

// handleDispatchFailure routes a failed event through the poison policy and
// commits unless the requeue or dead-letter write itself failed.
func handleDispatchFailure(ctx context.Context, deps *processorDeps, job work, procErr error) {
	deps.metrics.RecordError()

	action, err := deps.poison.HandleFailure(ctx, job.event, job.attempt, procErr)
	if err != nil {
		slog.Error("Poison handling failed, offset left uncommitted",
			"message_id", job.event.Message.ID,
			"error", err,
		)
		return
	}

	switch action {
	case poison.ActionDropped:
		deps.metrics.RecordDropped()
	case poison.ActionRequeued:
		deps.metrics.RecordRequeued()
	case poison.ActionQuarantined:
		deps.metrics.RecordDeadLettered()
	}

	recordFailureStatus(ctx, deps.statuses, action, job.event.Message.ID)

	commitOffset(ctx, deps.consumer, job.msg)
}

// recordFailureStatus records the terminal outcome of a failed event: REJECTED
// when it was dropped as invalid, FAILED when it exhausted its delivery
// attempts and was dead-lettered. A requeued event has no outcome yet. The
// write is best effort; the drop or dead-letter already happened and a
// redelivery here would only duplicate it.
func recordFailureStatus(ctx context.Context, statuses dispatch.MessageStatusUpserter, action poison.Action, messageID string) {
	var status database.MessageStatus
	switch action {
	case poison.ActionDropped:
		status = database.MessageStatusRejected
	case poison.ActionQuarantined:
		status = database.MessageStatusFailed
	default:
		return
	}
	if err := statuses.UpsertMessageStatus(ctx, messageID, status); err != nil {
		slog.Warn("Failed to record message status",
			"message_id", messageID,
			"status", status,
			"error", err,
		)
	}
}

// commitOffset commits the Kafka offset for the given message.
func commitOffset(ctx context.Context, c *consumer.Consumer, msg *kafka.Message) {
	if err := c.CommitMessage(ctx, msg); err != nil {
		slog.Error("Failed to commit offset", "error", err)
	}
}
