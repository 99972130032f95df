package zenopay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"ntzs-issuer/internal/pkg/config"
	"ntzs-issuer/internal/pkg/errs"
)

// Response bodies are tiny JSON documents; anything larger is a broken
// upstream.
const maxResponseSize = 64 << 10

var (
	ErrPaymentRejected  = errs.New("payment initiation rejected by provider")
	ErrOrderNotFound    = errs.New("order not found at provider")
	ErrUnexpectedStatus = errs.New("unexpected provider response status")
)

// Client talks to the ZenoPay mobile money API. All requests carry the
// tenant API key in the x-api-key header.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.ZenoPayConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// InitiatePayment pushes a USSD payment prompt to the buyer's phone. The
// orderID is our correlation key; the provider echoes it back in the webhook
// and in status polls.
func (c *Client) InitiatePayment(ctx context.Context, orderID, buyerPhone string, amountTZS int64, webhookURL string) error {
	reqBody := initiateRequest{
		OrderID:    orderID,
		BuyerPhone: buyerPhone,
		Amount:     amountTZS,
		WebhookURL: webhookURL,
	}

	var resp initiateResponse
	if err := c.post(ctx, "/mobile_money_tanzania", reqBody, &resp); err != nil {
		return err
	}

	if resp.Status != "success" {
		return errs.Mark(errs.Newf("provider returned status %q: %s", resp.Status, resp.Message), ErrPaymentRejected)
	}
	return nil
}

// CheckOrderStatus polls the provider for the payment state of an order.
func (c *Client) CheckOrderStatus(ctx context.Context, orderID string) (*OrderStatus, error) {
	endpoint := c.baseURL + "/order-status?" + url.Values{"order_id": {orderID}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build status request")
	}
	req.Header.Set("x-api-key", c.apiKey)

	var resp orderStatusResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, ErrOrderNotFound
	}

	item := resp.Data[0]
	return &OrderStatus{
		OrderID:       item.OrderID,
		PaymentStatus: PaymentStatus(item.PaymentStatus),
		Reference:     item.Reference,
		Channel:       item.Channel,
		AmountTZS:     item.Amount,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errs.Wrap(err, "failed to marshal request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errs.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Wrap(err, "provider request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return errs.Wrap(err, "failed to read provider response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.Mark(errs.Newf("provider returned HTTP %d: %s", resp.StatusCode, string(body)), ErrUnexpectedStatus)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errs.Wrap(err, "failed to decode provider response")
	}
	return nil
}
