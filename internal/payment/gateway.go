package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrDeclined = errors.New("payment declined")

type Result struct {
	Reference string `json:"reference"`
	Gateway   string `json:"gateway"`
}

// Gateway is the opaque payment collaborator. Settlement is out of scope;
// implementations only confirm or decline a charge.
type Gateway interface {
	Charge(ctx context.Context, orderRef string, amount float64) (Result, error)
}

// MockGateway stands in for the hosted gateway and mints a fake payment
// reference. Fail forces a decline.
type MockGateway struct {
	Fail bool
}

func (g *MockGateway) Charge(ctx context.Context, orderRef string, amount float64) (Result, error) {
	if g.Fail {
		return Result{}, ErrDeclined
	}
	return Result{
		Reference: fmt.Sprintf("PAY_%s", uuid.NewString()[:8]),
		Gateway:   "razorpay",
	}, nil
}
