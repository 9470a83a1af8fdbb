package kafkax

import (
	"context"
	"testing"
	"time"
)

func waitOrFail(t *testing.T, what string, f func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		f()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s did not complete", what)
	}
}

// Close before cancel is the order both binaries use on shutdown; the loop
// must still flush and release WaitClosed whichever select branch wins.
func TestProducerShutdownCloseThenCancel(t *testing.T) {
	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		p := NewProducer([]string{"localhost:9092"}, "test.topic", 8)
		p.Start(ctx)

		waitOrFail(t, "shutdown", func() {
			p.Close()
			cancel()
			p.WaitClosed()
		})
	}
}

func TestProducerShutdownOnCancelOnly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewProducer([]string{"localhost:9092"}, "test.topic", 8)
	p.Start(ctx)

	waitOrFail(t, "shutdown", func() {
		cancel()
		p.WaitClosed()
	})
}

func TestProducerCloseIdempotent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := NewProducer([]string{"localhost:9092"}, "test.topic", 8)
	p.Start(ctx)

	waitOrFail(t, "shutdown", func() {
		p.Close()
		p.Close()
		p.WaitClosed()
	})
}
