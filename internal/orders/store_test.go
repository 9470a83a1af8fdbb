package orders

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func validInput() CreateInput {
	return CreateInput{
		CustomerInfo: CustomerInfo{
			Name:    "Asha Rao",
			Phone:   "9876543210",
			Address: "12 MG Road, Bengaluru",
		},
		Items: []Item{
			{ID: "c1", Name: "Cupcake", Price: 100, Quantity: 2},
		},
		TotalAmount:   200,
		PaymentMethod: PaymentCOD,
	}
}

func TestCreateOrder(t *testing.T) {
	s := NewStore()
	o, err := s.Create(validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.ID == "" || !strings.HasPrefix(o.ID, "ORD_") {
		t.Errorf("unexpected id %q", o.ID)
	}
	if o.Status != StatusPending {
		t.Errorf("expected status pending, got %q", o.Status)
	}
	if o.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if len(o.Items) != 1 || o.Items[0].Name != "Cupcake" || o.Items[0].Quantity != 2 {
		t.Errorf("items not preserved: %+v", o.Items)
	}
}

func TestCreateOrderMissingFields(t *testing.T) {
	s := NewStore()
	tests := []struct {
		name string
		mod  func(*CreateInput)
	}{
		{"no customer info", func(in *CreateInput) { in.CustomerInfo = CustomerInfo{} }},
		{"no items", func(in *CreateInput) { in.Items = nil }},
		{"no total", func(in *CreateInput) { in.TotalAmount = 0 }},
	}
	for _, tt := range tests {
		in := validInput()
		tt.mod(&in)
		if _, err := s.Create(in); !errors.Is(err, ErrMissingFields) {
			t.Errorf("%s: expected ErrMissingFields, got %v", tt.name, err)
		}
	}
}

func TestCreateOrderUniqueIDs(t *testing.T) {
	s := NewStore()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		o, err := s.Create(validInput())
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[o.ID] {
			t.Fatalf("duplicate id %q", o.ID)
		}
		seen[o.ID] = true
	}
}

func TestGetOrder(t *testing.T) {
	s := NewStore()
	o, _ := s.Create(validInput())

	got, err := s.Get(o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != o.ID {
		t.Errorf("expected %q, got %q", o.ID, got.ID)
	}

	if _, err := s.Get("ORD_nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	s := NewStore()
	o, _ := s.Create(validInput())

	upd, err := s.UpdateStatus(o.ID, StatusConfirmed)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if upd.Status != StatusConfirmed {
		t.Errorf("expected confirmed, got %q", upd.Status)
	}
	if upd.UpdatedAt == nil {
		t.Error("expected UpdatedAt to be stamped")
	}

	// any string goes through; the set is open
	if _, err := s.UpdateStatus(o.ID, "out-for-delivery"); err != nil {
		t.Errorf("open status set: %v", err)
	}
}

func TestUpdateStatusUnknownIDLeavesStoreUnmodified(t *testing.T) {
	s := NewStore()
	o, _ := s.Create(validInput())

	if _, err := s.UpdateStatus("ORD_nope", StatusConfirmed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, _ := s.Get(o.ID)
	if got.Status != StatusPending || got.UpdatedAt != nil {
		t.Errorf("store was modified: %+v", got)
	}
}

func TestListOrdersPagination(t *testing.T) {
	s := NewStore()
	var ids []string
	for i := 0; i < 25; i++ {
		in := validInput()
		in.CustomerInfo.Name = fmt.Sprintf("Customer %d", i)
		o, err := s.Create(in)
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		ids = append(ids, o.ID)
	}

	page, pag := s.List(ListQuery{Page: 2, Limit: 10})
	if len(page) != 10 {
		t.Fatalf("expected 10 orders, got %d", len(page))
	}
	for i, o := range page {
		if o.ID != ids[10+i] {
			t.Errorf("position %d: expected %q, got %q", i, ids[10+i], o.ID)
		}
	}
	want := Pagination{Page: 2, Limit: 10, Total: 25, Pages: 3}
	if pag != want {
		t.Errorf("pagination = %+v, want %+v", pag, want)
	}

	// last page is short
	page, _ = s.List(ListQuery{Page: 3, Limit: 10})
	if len(page) != 5 {
		t.Errorf("expected 5 orders on last page, got %d", len(page))
	}

	// out-of-range page is empty, metadata unchanged
	page, pag = s.List(ListQuery{Page: 9, Limit: 10})
	if len(page) != 0 || pag.Total != 25 {
		t.Errorf("expected empty page with total 25, got %d/%+v", len(page), pag)
	}
}

func TestListOrdersStatusFilter(t *testing.T) {
	s := NewStore()
	for i := 0; i < 6; i++ {
		o, _ := s.Create(validInput())
		if i%2 == 0 {
			_, _ = s.UpdateStatus(o.ID, StatusConfirmed)
		}
	}

	page, pag := s.List(ListQuery{Page: 1, Limit: 10, Status: StatusConfirmed})
	if pag.Total != 3 || len(page) != 3 {
		t.Fatalf("expected 3 confirmed, got %d (total %d)", len(page), pag.Total)
	}
	for _, o := range page {
		if o.Status != StatusConfirmed {
			t.Errorf("filter leaked status %q", o.Status)
		}
	}
}
