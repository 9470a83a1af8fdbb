package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/trovelabs/storefront-api.git/internal/catalog"
	"github.com/trovelabs/storefront-api.git/internal/config"
	"github.com/trovelabs/storefront-api.git/internal/httpx"
	"github.com/trovelabs/storefront-api.git/internal/kafkax"
	"github.com/trovelabs/storefront-api.git/internal/orders"
	"github.com/trovelabs/storefront-api.git/internal/otp"
	"github.com/trovelabs/storefront-api.git/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OTP store: redis when configured, process-local map otherwise
	var otpStore otp.Store = otp.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		defer rdb.Close()
		otpStore = &otp.RedisStore{Client: rdb}
	}
	ledger := otp.NewLedger(otpStore)

	// Event producers, skipped entirely without brokers
	var created, statusChanged *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		created = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024)
		created.Start(ctx)
		statusChanged = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatusChanged, 1024)
		statusChanged.Start(ctx)
	}

	store := orders.NewStore()
	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{
		Store:         store,
		Created:       created,
		StatusChanged: statusChanged,
		Service:       cfg.ServiceName,
	}
	oh.Register(router)
	(&httpx.OTPHandler{Ledger: ledger, DevMode: cfg.Development()}).Register(router)
	(&httpx.CatalogHandler{Catalog: catalog.New()}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s (env=%s)", cfg.HTTPAddr, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	if created != nil {
		created.Close()
		statusChanged.Close()
		cancel()
		created.WaitClosed()
		statusChanged.WaitClosed()
	}
}
