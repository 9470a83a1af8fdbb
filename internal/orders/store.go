package orders

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrMissingFields = errors.New("missing required order information")
)

const idPrefix = "ORD"

type CreateInput struct {
	CustomerInfo  CustomerInfo `json:"customerInfo"`
	Items         []Item       `json:"items"`
	TotalAmount   float64      `json:"totalAmount"`
	PaymentMethod string       `json:"paymentMethod"`
}

type ListQuery struct {
	Page   int
	Limit  int
	Status string
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Store holds orders for the lifetime of the process, append-only in
// insertion order. Construct one per process (or per test) with NewStore.
type Store struct {
	mu     sync.RWMutex
	orders []Order
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Create validates the input, assigns a fresh id and appends the order with
// status "pending".
func (s *Store) Create(in CreateInput) (Order, error) {
	if in.CustomerInfo == (CustomerInfo{}) || len(in.Items) == 0 || in.TotalAmount == 0 {
		return Order{}, ErrMissingFields
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.exists(id) {
		id = s.newID()
	}
	o := Order{
		ID:            id,
		CustomerInfo:  in.CustomerInfo,
		Items:         append([]Item(nil), in.Items...),
		TotalAmount:   in.TotalAmount,
		PaymentMethod: in.PaymentMethod,
		Status:        StatusPending,
		CreatedAt:     s.now(),
	}
	s.orders = append(s.orders, o)
	return o, nil
}

func (s *Store) Get(id string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

// UpdateStatus overwrites the status and stamps UpdatedAt. Transitions are
// not validated.
func (s *Store) UpdateStatus(id, status string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			now := s.now()
			s.orders[i].Status = status
			s.orders[i].UpdatedAt = &now
			return s.orders[i], nil
		}
	}
	return Order{}, ErrNotFound
}

// List returns the page of orders in insertion order, optionally filtered by
// status, plus pagination metadata over the filtered total.
func (s *Store) List(q ListQuery) ([]Order, Pagination) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := s.orders
	if q.Status != "" {
		filtered = make([]Order, 0)
		for _, o := range s.orders {
			if o.Status == q.Status {
				filtered = append(filtered, o)
			}
		}
	}

	total := len(filtered)
	start := (q.Page - 1) * q.Limit
	end := start + q.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	page := append([]Order(nil), filtered[start:end]...)
	return page, Pagination{
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(q.Limit))),
	}
}

func (s *Store) exists(id string) bool {
	for _, o := range s.orders {
		if o.ID == id {
			return true
		}
	}
	return false
}

// Ids keep the historical ORD_<millis>_<suffix> shape; the suffix comes from
// a uuid and Create retries on collision.
func (s *Store) newID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", idPrefix, s.now().UnixMilli(), suffix)
}
