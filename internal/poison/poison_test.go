package poison

import (
	"context"
	"errors"
	"testing"

	"github.com/berez23/io-functions/internal/dispatch"
	"github.com/berez23/io-functions/internal/events"
)

type fakeRetrySink struct {
	requeued     []int // attempt counters passed to Requeue
	deadLettered []int
	reasons      []string
	requeueErr   error
	deadErr      error
}

func (f *fakeRetrySink) Requeue(ctx context.Context, ev *events.CreatedMessageEvent, attempt int) error {
	if f.requeueErr != nil {
		return f.requeueErr
	}
	f.requeued = append(f.requeued, attempt)
	return nil
}

func (f *fakeRetrySink) DeadLetter(ctx context.Context, ev *events.CreatedMessageEvent, attempt int, reason string) error {
	if f.deadErr != nil {
		return f.deadErr
	}
	f.deadLettered = append(f.deadLettered, attempt)
	f.reasons = append(f.reasons, reason)
	return nil
}

func anEvent() *events.CreatedMessageEvent {
	return &events.CreatedMessageEvent{
		Message: events.Message{ID: "m123", RecipientID: "FRLFRC74E04B157I"},
	}
}

func TestHandleFailure_TerminalIsDropped(t *testing.T) {
	sink := &fakeRetrySink{}
	h := NewHandler("createdmessages", 5, sink, sink)

	action, err := h.HandleFailure(context.Background(), anEvent(), 1, dispatch.Terminalf("malformed recipient"))
	if err != nil {
		t.Fatalf("HandleFailure() error = %v, want nil", err)
	}
	if action != ActionDropped {
		t.Errorf("action = %s, want DROPPED", action)
	}
	if len(sink.requeued) != 0 || len(sink.deadLettered) != 0 {
		t.Error("terminal failure must neither requeue nor dead-letter")
	}
}

func TestHandleFailure_TransientIsRequeued(t *testing.T) {
	sink := &fakeRetrySink{}
	h := NewHandler("createdmessages", 5, sink, sink)

	action, err := h.HandleFailure(context.Background(), anEvent(), 2, dispatch.Transientf("lookup failed"))
	if err != nil {
		t.Fatalf("HandleFailure() error = %v, want nil", err)
	}
	if action != ActionRequeued {
		t.Errorf("action = %s, want REQUEUED", action)
	}
	if len(sink.requeued) != 1 || sink.requeued[0] != 3 {
		t.Errorf("requeued attempts = %v, want [3]", sink.requeued)
	}
	if len(sink.deadLettered) != 0 {
		t.Error("event below the ceiling must not be dead-lettered")
	}
}

func TestHandleFailure_ExhaustedIsQuarantined(t *testing.T) {
	sink := &fakeRetrySink{}
	h := NewHandler("createdmessages", 5, sink, sink)

	action, err := h.HandleFailure(context.Background(), anEvent(), 5, dispatch.Transientf("lookup failed"))
	if err != nil {
		t.Fatalf("HandleFailure() error = %v, want nil", err)
	}
	if action != ActionQuarantined {
		t.Errorf("action = %s, want QUARANTINED", action)
	}
	if len(sink.deadLettered) != 1 || sink.deadLettered[0] != 5 {
		t.Errorf("dead-lettered attempts = %v, want [5]", sink.deadLettered)
	}
	if len(sink.requeued) != 0 {
		t.Error("exhausted event must not be requeued")
	}
	if len(sink.reasons) != 1 || sink.reasons[0] == "" {
		t.Error("dead-letter must carry the classified failure reason")
	}
}

func TestHandleFailure_UnclassifiedErrorTreatedAsTransient(t *testing.T) {
	sink := &fakeRetrySink{}
	h := NewHandler("createdmessages", 5, sink, sink)

	// An error the engine failed to classify still gets the retry path:
	// only proven-terminal failures are dropped.
	action, err := h.HandleFailure(context.Background(), anEvent(), 1, errors.New("unclassified"))
	if err != nil {
		t.Fatalf("HandleFailure() error = %v, want nil", err)
	}
	if action != ActionRequeued {
		t.Errorf("action = %s, want REQUEUED", action)
	}
	if len(sink.requeued) != 1 {
		t.Errorf("requeued = %v, want one requeue", sink.requeued)
	}
}

func TestHandleFailure_RequeueErrorPropagates(t *testing.T) {
	sink := &fakeRetrySink{requeueErr: errors.New("broker down")}
	h := NewHandler("createdmessages", 5, sink, sink)

	action, err := h.HandleFailure(context.Background(), anEvent(), 1, dispatch.Transientf("lookup failed"))
	if err == nil {
		t.Fatal("HandleFailure() error = nil, want requeue failure so the offset is not committed")
	}
	if action != ActionNone {
		t.Errorf("action = %s, want NONE", action)
	}
}

func TestHandleFailure_DeadLetterErrorPropagates(t *testing.T) {
	sink := &fakeRetrySink{deadErr: errors.New("broker down")}
	h := NewHandler("createdmessages", 5, sink, sink)

	action, err := h.HandleFailure(context.Background(), anEvent(), 5, dispatch.Transientf("lookup failed"))
	if err == nil {
		t.Fatal("HandleFailure() error = nil, want dead-letter failure so the offset is not committed")
	}
	if action != ActionNone {
		t.Errorf("action = %s, want NONE", action)
	}
}
