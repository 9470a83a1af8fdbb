package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/trovelabs/storefront-api.git/internal/config"
	"github.com/trovelabs/storefront-api.git/internal/kafkax"
	"github.com/trovelabs/storefront-api.git/internal/notify"
	"github.com/trovelabs/storefront-api.git/internal/orders"
)

// The notifier consumes order notifications and performs the chat handoff.
// Delivery here is a stub: it logs the wa.me link the storefront would open.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("KAFKA_BROKERS is required for the notifier")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	group := getenv("NOTIFIER_GROUP", "notifier-svc")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderNotification, workers)

	handle := func(ctx context.Context, m kafkago.Message) error {
		var env orders.Envelope
		if err := json.Unmarshal(m.Value, &env); err != nil {
			return err
		}
		if env.EventType != orders.EventOrderNotification {
			return nil
		}
		p, err := kafkax.UnwrapPayload[orders.OrderNotificationPayload](env.Payload)
		if err != nil {
			return err
		}
		log.Printf("handoff for order %s (%s): %s", p.OrderID, p.Phone, notify.HandoffURL(cfg.WhatsAppNum, p.Message))
		return nil
	}

	go func() {
		log.Printf("notifier consumer started: group=%s topic=%s workers=%d", group, orders.TopicOrderNotification, workers)
		if err := cons.Start(ctx, handle); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Println("shutting down notifier...")
	cancel()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}
