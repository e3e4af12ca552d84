package credkit

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestDispatcherDeliversToSink(t *testing.T) {
	sink := NewChannelSink(8)
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 8}, sink)
	defer d.Close()

	d.Emit(context.Background(), AuditEvent{EventType: "signin_success", Success: true})

	select {
	case event := <-sink.Events():
		if event.EventType != "signin_success" {
			t.Fatalf("unexpected event type %s", event.EventType)
		}
		if !event.Success {
			t.Fatal("expected success flag")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit event")
	}
}

func TestDispatcherDisabledReturnsNil(t *testing.T) {
	if d := newAuditDispatcher(AuditConfig{Enabled: false}, NoOpSink{}); d != nil {
		t.Fatal("expected nil dispatcher when audit is disabled")
	}

	// A nil dispatcher must be safe to call.
	var d *auditDispatcher
	d.Emit(context.Background(), AuditEvent{EventType: "noop"})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("expected zero drops from nil dispatcher")
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	blocked := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	sink := sinkFunc(func(context.Context, AuditEvent) {
		once.Do(func() { close(blocked) })
		<-release
	})

	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// First event occupies the sink goroutine.
	d.Emit(context.Background(), AuditEvent{EventType: "first"})
	<-blocked

	// Second fills the buffer, third must drop.
	d.Emit(context.Background(), AuditEvent{EventType: "second"})
	d.Emit(context.Background(), AuditEvent{EventType: "third"})

	if got := d.Dropped(); got != 1 {
		t.Fatalf("expected 1 dropped event, got %d", got)
	}

	close(release)
	d.Close()
}

func TestDispatcherDrainsOnClose(t *testing.T) {
	sink := NewChannelSink(16)
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 16}, sink)

	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: "signout_session"})
	}
	d.Close()

	received := 0
	for {
		select {
		case <-sink.Events():
			received++
			if received == 5 {
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("expected 5 events after close, got %d", received)
		}
	}
}

func TestDispatcherEmitAfterCloseIsNoOp(t *testing.T) {
	sink := NewChannelSink(4)
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 4}, sink)
	d.Close()

	d.Emit(context.Background(), AuditEvent{EventType: "late"})

	select {
	case event := <-sink.Events():
		t.Fatalf("unexpected event after close: %s", event.EventType)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestJSONWriterSinkWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Unix(1700000000, 0).UTC(),
		EventType: "signup_success",
		UserID:    "user-1",
		SessionID: "sid-1",
		Success:   true,
	})
	sink.Emit(context.Background(), AuditEvent{
		EventType: "signin_failure",
		Success:   false,
		Error:     "invalid email or password",
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), buf.String())
	}

	var first AuditEvent
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1 is not valid JSON: %v", err)
	}
	if first.EventType != "signup_success" || first.UserID != "user-1" {
		t.Fatalf("unexpected first event: %+v", first)
	}

	var second AuditEvent
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("line 2 is not valid JSON: %v", err)
	}
	if second.Error != "invalid email or password" {
		t.Fatalf("unexpected second event: %+v", second)
	}
}

// sinkFunc adapts a function to AuditSink for tests.
type sinkFunc func(context.Context, AuditEvent)

func (f sinkFunc) Emit(ctx context.Context, event AuditEvent) { f(ctx, event) }
