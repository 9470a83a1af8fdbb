package kafkax

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer writes through a buffered inbox so handlers never block on the
// broker. Shutdown: Close the inbox, cancel the context, then WaitClosed to
// drain; the calls are safe in either order.
type Producer struct {
	w        *kafka.Writer
	inbox    chan kafka.Message
	closeCh  chan struct{}
	closeIn  sync.Once
	closeOut sync.Once
}

func NewProducer(brokers []string, topic string, buf int) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

func (p *Producer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				p.Close()
				for m := range p.inbox {
					p.write(m)
				}
				p.finish()
				return
			case m, ok := <-p.inbox:
				if !ok {
					p.finish()
					return
				}
				p.write(m)
			}
		}
	}()
}

func (p *Producer) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		log.Printf("kafka write: %v", err)
	}
}

func (p *Producer) Publish(key, value []byte, headers ...kafka.Header) {
	p.inbox <- kafka.Message{
		Key:     key,
		Value:   value,
		Time:    time.Now(),
		Headers: headers,
	}
}

// Close stops intake. Idempotent; the loop goroutine also calls it on
// context cancellation.
func (p *Producer) Close() {
	p.closeIn.Do(func() { close(p.inbox) })
}

// WaitClosed blocks until the loop has flushed the inbox and closed the
// writer.
func (p *Producer) WaitClosed() { <-p.closeCh }

func (p *Producer) finish() {
	p.closeOut.Do(func() {
		_ = p.w.Close()
		close(p.closeCh)
	})
}
