package notify

import (
	"strings"
	"testing"

	"github.com/trovelabs/storefront-api.git/internal/orders"
)

func sampleOrder() (orders.Order, orders.CustomerInfo) {
	info := orders.CustomerInfo{
		Name:    "Asha Rao",
		Phone:   "9876543210",
		Email:   "asha@example.com",
		Address: "12 MG Road, Bengaluru",
		Notes:   "less sugar please",
	}
	o := orders.Order{
		ID: "ORD_1_abc",
		Items: []orders.Item{
			{ID: "c1", Name: "Classic Cupcake", Price: 100, Quantity: 2},
			{ID: "c3", Name: "Chocolate Truffle Cake", Price: 550, Quantity: 1},
		},
		TotalAmount: 750,
	}
	return o, info
}

func TestFormatOrderMessage(t *testing.T) {
	o, info := sampleOrder()
	msg := FormatOrderMessage(o, info, "9876543210", orders.PaymentCOD)

	for _, want := range []string{
		"Name: Asha Rao",
		"Phone: 9876543210",
		"12 MG Road, Bengaluru",
		"• Classic Cupcake x2 - ₹200",
		"• Chocolate Truffle Cake x1 - ₹550",
		"*Total Amount: ₹750*",
		"Cash on Delivery",
		"less sugar please",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatOrderMessageDeterministic(t *testing.T) {
	o, info := sampleOrder()
	a := FormatOrderMessage(o, info, "9876543210", orders.PaymentOnline)
	b := FormatOrderMessage(o, info, "9876543210", orders.PaymentOnline)
	if a != b {
		t.Error("same inputs produced different messages")
	}
	if !strings.Contains(a, "Online Payment") {
		t.Errorf("expected online payment label:\n%s", a)
	}
}

func TestFormatOrderMessageOmitsEmptyNotes(t *testing.T) {
	o, info := sampleOrder()
	info.Notes = ""
	msg := FormatOrderMessage(o, info, "9876543210", orders.PaymentCOD)
	if strings.Contains(msg, "Special Notes") {
		t.Errorf("notes block should be omitted:\n%s", msg)
	}
}

func TestHandoffURL(t *testing.T) {
	u := HandoffURL("919876543210", "hello order")
	if !strings.HasPrefix(u, "https://wa.me/919876543210?text=") {
		t.Errorf("unexpected url %q", u)
	}
	if strings.Contains(u, " ") {
		t.Errorf("message not escaped: %q", u)
	}
}
