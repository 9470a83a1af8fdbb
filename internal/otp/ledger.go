package otp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"
)

var (
	ErrPhoneRequired   = errors.New("phone number is required")
	ErrNotFound        = errors.New("otp not found, request a new one")
	ErrExpired         = errors.New("otp has expired, request a new one")
	ErrTooManyAttempts = errors.New("too many attempts, request a new otp")
	ErrInvalidCode     = errors.New("invalid otp")
)

const (
	TTL         = 5 * time.Minute
	MaxAttempts = 3
)

// Pending is the per-phone verification record. Newest send wins.
type Pending struct {
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}

type Store interface {
	Save(ctx context.Context, p Pending) error
	Load(ctx context.Context, phone string) (Pending, bool, error)
	IncrementAttempts(ctx context.Context, phone string) error
	Delete(ctx context.Context, phone string) error
}

type Ledger struct {
	store Store
	now   func() time.Time
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// SendOTP issues a fresh 6-digit code for the phone, overwriting any prior
// pending record. Delivery is a stub: the code is logged instead of sent.
func (l *Ledger) SendOTP(ctx context.Context, phone string) (string, error) {
	if phone == "" {
		return "", ErrPhoneRequired
	}
	code := generateCode()
	p := Pending{
		Phone:     phone,
		Code:      code,
		ExpiresAt: l.now().Add(TTL),
		Attempts:  0,
	}
	if err := l.store.Save(ctx, p); err != nil {
		return "", fmt.Errorf("save otp: %w", err)
	}
	log.Printf("otp: code for %s: %s", phone, code)
	return code, nil
}

// VerifyOTP checks the submitted code. Attempts are evaluated before the
// comparison, so the record survives its third mismatch and the next attempt
// reports exhaustion.
func (l *Ledger) VerifyOTP(ctx context.Context, phone, code string) (string, error) {
	if phone == "" || code == "" {
		return "", ErrPhoneRequired
	}
	p, ok, err := l.store.Load(ctx, phone)
	if err != nil {
		return "", fmt.Errorf("load otp: %w", err)
	}
	if !ok {
		return "", ErrNotFound
	}
	if l.now().After(p.ExpiresAt) {
		_ = l.store.Delete(ctx, phone)
		return "", ErrExpired
	}
	if p.Attempts >= MaxAttempts {
		_ = l.store.Delete(ctx, phone)
		return "", ErrTooManyAttempts
	}
	if p.Code != code {
		if err := l.store.IncrementAttempts(ctx, phone); err != nil {
			return "", fmt.Errorf("record attempt: %w", err)
		}
		return "", ErrInvalidCode
	}
	if err := l.store.Delete(ctx, phone); err != nil {
		return "", fmt.Errorf("consume otp: %w", err)
	}
	return p.Phone, nil
}

func generateCode() string {
	return fmt.Sprintf("%d", 100000+rand.Intn(900000))
}
