package notify

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/trovelabs/storefront-api.git/internal/orders"
)

// FormatOrderMessage builds the chat handoff text for a placed order. Pure
// string assembly; the same inputs always yield the same message.
func FormatOrderMessage(o orders.Order, info orders.CustomerInfo, verifiedPhone, paymentMethod string) string {
	var b strings.Builder

	b.WriteString("🛍️ *New Order from Trove*\n\n")

	b.WriteString("👤 *Customer Details:*\n")
	b.WriteString("Name: " + info.Name + "\n")
	b.WriteString("Phone: " + verifiedPhone + "\n")
	b.WriteString("Email: " + info.Email + "\n\n")

	b.WriteString("📍 *Delivery Address:*\n")
	b.WriteString(info.Address + "\n\n")

	b.WriteString("🍰 *Order Items:*\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "• %s x%d - ₹%s\n", it.Name, it.Quantity, amount(it.Price*float64(it.Quantity)))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "💰 *Total Amount: ₹%s*\n", amount(o.TotalAmount))
	fmt.Fprintf(&b, "💳 *Payment Method: %s*\n", paymentLabel(paymentMethod))

	if info.Notes != "" {
		b.WriteString("\n📝 *Special Notes:*\n" + info.Notes + "\n")
	}

	b.WriteString("\nThank you for choosing Trove! 🎂")
	return b.String()
}

// HandoffURL is the wa.me link the storefront would open with the message.
func HandoffURL(waNumber, message string) string {
	return "https://wa.me/" + waNumber + "?text=" + url.QueryEscape(message)
}

func paymentLabel(method string) string {
	if method == orders.PaymentOnline {
		return "Online Payment"
	}
	return "Cash on Delivery"
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
