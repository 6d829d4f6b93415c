package audit

import (
	"testing"
	"time"
)

func TestPublisherDeliversEvents(t *testing.T) {
	p := NewPublisher()
	ch := p.Subscribe()

	p.Publish(ProgressEvent{PagesAudited: 1, TotalPages: 5, Message: "first"})

	select {
	case event := <-ch:
		if event.PagesAudited != 1 || event.TotalPages != 5 {
			t.Errorf("Unexpected event: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected event was not delivered")
	}
}

func TestPublishWithoutSubscribersNeverBlocks(t *testing.T) {
	p := NewPublisher()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			p.Publish(ProgressEvent{PagesAudited: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked with no subscribers")
	}
}

func TestPublishDropsWhenSubscriberFull(t *testing.T) {
	p := NewPublisher()
	ch := p.Subscribe()

	// Overfill the buffer without draining; later events must be dropped,
	// never block the publisher.
	done := make(chan struct{})
	go func() {
		for i := 0; i < progressBuffer*2; i++ {
			p.Publish(ProgressEvent{PagesAudited: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	if received != progressBuffer {
		t.Errorf("Expected exactly %d buffered events, got %d", progressBuffer, received)
	}
}

func TestPublisherClose(t *testing.T) {
	p := NewPublisher()
	ch := p.Subscribe()
	p.Close()

	if _, open := <-ch; open {
		t.Error("Subscriber channel should be closed")
	}

	// Publish and a second Close after Close are no-ops.
	p.Publish(ProgressEvent{})
	p.Close()

	late := p.Subscribe()
	if _, open := <-late; open {
		t.Error("Subscribing after Close should return a closed channel")
	}
}
