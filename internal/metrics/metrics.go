// Package metrics provides metrics recording interfaces for the platform
// binaries. It uses the null object pattern to avoid nil checks throughout
// the codebase.
package metrics

import "time"

// Recorder defines the interface for recording processing metrics.
type Recorder interface {
	// RecordReceived increments the count of consumed events.
	RecordReceived()

	// RecordProcessed records a successfully handled event with its latency.
	RecordProcessed(latency time.Duration)

	// RecordPublished increments the count of published notification events.
	RecordPublished()

	// RecordError increments the error counter.
	RecordError()

	// RecordDropped increments the count of terminally rejected events.
	RecordDropped()

	// RecordRequeued increments the count of events requeued for retry.
	RecordRequeued()

	// RecordDeadLettered increments the count of events moved to the dead-letter topic.
	RecordDeadLettered()

	// RecordSkipped increments the count of notifications already delivered.
	RecordSkipped()

	// RecordSent increments the count of successfully delivered notifications.
	RecordSent()

	// RecordFailed increments the count of notifications marked FAILED.
	RecordFailed()
}

// NoOp is a no-op implementation of Recorder that discards all metrics.
type NoOp struct{}

// NewNoOp creates a no-op metrics recorder.
func NewNoOp() *NoOp {
	return &NoOp{}
}

func (n *NoOp) RecordReceived()                 {}
func (n *NoOp) RecordProcessed(_ time.Duration) {}
func (n *NoOp) RecordPublished()                {}
func (n *NoOp) RecordError()                    {}
func (n *NoOp) RecordDropped()                  {}
func (n *NoOp) RecordRequeued()                 {}
func (n *NoOp) RecordDeadLettered()             {}
func (n *NoOp) RecordSkipped()                  {}
func (n *NoOp) RecordSent()                     {}
func (n *NoOp) RecordFailed()                   {}

// Ensure NoOp implements Recorder
var _ Recorder = (*NoOp)(nil)
