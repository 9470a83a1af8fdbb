package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/trovelabs/storefront-api.git/internal/cart"
	"github.com/trovelabs/storefront-api.git/internal/catalog"
	"github.com/trovelabs/storefront-api.git/internal/checkout"
	"github.com/trovelabs/storefront-api.git/internal/config"
	"github.com/trovelabs/storefront-api.git/internal/kafkax"
	"github.com/trovelabs/storefront-api.git/internal/notify"
	"github.com/trovelabs/storefront-api.git/internal/orders"
	"github.com/trovelabs/storefront-api.git/internal/otp"
	"github.com/trovelabs/storefront-api.git/internal/payment"
)

// Walks one full checkout against in-process collaborators: phone entry, OTP
// challenge, details, payment, handoff. Useful for eyeballing the flow
// without the storefront.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ledger := otp.NewLedger(otp.NewMemoryStore())
	store := orders.NewStore()

	var notifier notify.Notifier = &notify.LogNotifier{WhatsAppNum: cfg.WhatsAppNum}
	if len(cfg.KafkaBrokers) > 0 {
		prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderNotification, 64)
		prod.Start(ctx)
		defer func() {
			prod.Close()
			cancel()
			prod.WaitClosed()
		}()
		notifier = &notify.KafkaNotifier{Producer: prod, Service: cfg.ServiceName + "-checkout"}
	}

	c := cart.New()
	cat := catalog.New()
	for _, id := range []string{"c1", "c3"} {
		p, err := cat.Get(id)
		if err != nil {
			log.Fatalf("catalog: %v", err)
		}
		c.Add(cart.Item{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image, Quantity: 2})
	}

	sess := checkout.NewSession(ledger, store, &payment.MockGateway{}, notifier, c, checkout.Config{
		MockMode: cfg.CheckoutMock,
		DemoOTP:  cfg.DemoOTP,
	})

	phone := "9876543210"
	if err := sess.SubmitPhone(ctx, phone); err != nil {
		log.Fatalf("submit phone: %v", err)
	}

	// the ledger logs the code; replay it the way the shopper would type it
	code, err := ledger.SendOTP(ctx, phone)
	if err != nil {
		log.Fatalf("send otp: %v", err)
	}
	if err := sess.SubmitOTP(ctx, code); err != nil {
		log.Fatalf("submit otp: %v", err)
	}

	info := orders.CustomerInfo{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Address: "12 MG Road, Bengaluru",
		Notes:   "less sugar please",
	}
	o, err := sess.PlaceOrder(ctx, info, orders.PaymentCOD)
	if err != nil {
		log.Fatalf("place order: %v", err)
	}

	fmt.Printf("order %s placed, status=%s, total=%.0f, cart empty=%v\n",
		o.ID, o.Status, o.TotalAmount, c.Empty())
}
