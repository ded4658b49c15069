// internal/adapters/out/mail/order_confirmation_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	orderdom "atelier/internal/domain/order"
	orderitem "atelier/internal/domain/orderItem"
	"atelier/internal/domain/pricing"
)

// EmailClient abstracts the low-level mail transport (SMTP / SendGrid / SES).
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// OrderConfirmationMailer sends the post-checkout confirmation email. It
// implements usecase.OrderMailer; sending is best-effort and the caller
// never fails a placed order on a mail error.
type OrderConfirmationMailer struct {
	client      EmailClient
	fromAddress string
}

func NewOrderConfirmationMailer(client EmailClient, fromAddress string) *OrderConfirmationMailer {
	return &OrderConfirmationMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
	}
}

func (m *OrderConfirmationMailer) SendOrderConfirmation(ctx context.Context, toEmail string, o orderdom.Order, items []orderitem.OrderItem) error {
	to := strings.TrimSpace(toEmail)
	if to == "" {
		return fmt.Errorf("order_confirmation_mailer: to address is empty")
	}

	subject := fmt.Sprintf("Order confirmed: %s", o.ID)
	body := buildOrderConfirmationBody(o, items)

	return m.client.Send(ctx, m.fromAddress, to, subject, body)
}

func buildOrderConfirmationBody(o orderdom.Order, items []orderitem.OrderItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\n", o.ShippingSnapshot.FullName)
	fmt.Fprintf(&b, "Thanks for your order. Here is what we received.\n\n")
	fmt.Fprintf(&b, "Order %s\n\n", o.ID)

	for _, it := range items {
		fmt.Fprintf(&b, "  %s (%s / %s)  x%d  %s\n",
			it.ProductName, it.Size, it.Color, it.Quantity, formatCents(it.TotalPrice))
	}

	fmt.Fprintf(&b, "\nSubtotal: %s\n", formatCents(o.Totals.Subtotal))
	if o.Totals.Shipping == 0 {
		fmt.Fprintf(&b, "Shipping: free\n")
	} else {
		fmt.Fprintf(&b, "Shipping: %s\n", formatCents(o.Totals.Shipping))
	}
	fmt.Fprintf(&b, "Tax:      %s\n", formatCents(o.Totals.Tax))
	fmt.Fprintf(&b, "Total:    %s\n\n", formatCents(o.Totals.Total))

	fmt.Fprintf(&b, "Shipping to:\n")
	fmt.Fprintf(&b, "  %s\n  %s\n  %s, %s %s\n",
		o.ShippingSnapshot.FullName,
		o.ShippingSnapshot.Address,
		o.ShippingSnapshot.City,
		o.ShippingSnapshot.State,
		o.ShippingSnapshot.ZipCode,
	)
	if c := strings.TrimSpace(o.ShippingSnapshot.Country); c != "" {
		fmt.Fprintf(&b, "  %s\n", c)
	}

	return b.String()
}

func formatCents(c pricing.Cents) string {
	return fmt.Sprintf("$%d.%02d", c/100, c%100)
}
