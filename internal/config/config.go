package config

import (
	"os"
	"strings"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	HTTPAddr     string
	AppEnv       string // development | production; gates OTP echo in responses
	ServiceName  string
	RedisAddr    string   // empty -> in-memory OTP store
	KafkaBrokers []string // empty -> no event publishing, log-only handoff
	CheckoutMock bool
	DemoOTP      string
	WhatsAppNum  string
}

func Load() Config {
	return Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":3001"),
		AppEnv:       getenv("APP_ENV", EnvDevelopment),
		ServiceName:  getenv("SERVICE_NAME", "storefront-api"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
		CheckoutMock: getenv("CHECKOUT_MOCK", "true") == "true",
		DemoOTP:      getenv("DEMO_OTP", "123456"),
		WhatsAppNum:  getenv("WHATSAPP_NUMBER", "919876543210"),
	}
}

func (c Config) Development() bool { return c.AppEnv == EnvDevelopment }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
