package zenopay

import (
	"context"

	"ntzs-issuer/internal/usecase/commands"
)

// Gateway adapts the raw API client to the write-side port.
type Gateway struct {
	client *Client
}

func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) InitiatePayment(ctx context.Context, orderID, buyerPhone string, amountTZS int64, webhookURL string) error {
	return g.client.InitiatePayment(ctx, orderID, buyerPhone, amountTZS, webhookURL)
}

func (g *Gateway) CheckOrderStatus(ctx context.Context, orderID string) (*commands.PaymentOrderSnapshot, error) {
	status, err := g.client.CheckOrderStatus(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &commands.PaymentOrderSnapshot{
		OrderID:   status.OrderID,
		Completed: status.PaymentStatus == PaymentCompleted,
		Reference: status.Reference,
		AmountTZS: status.AmountTZS,
	}, nil
}
