package zenopay

// PaymentStatus is the provider's payment state vocabulary.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentPending   PaymentStatus = "PENDING"
	PaymentFailed    PaymentStatus = "FAILED"
)

type initiateRequest struct {
	OrderID    string `json:"order_id"`
	BuyerPhone string `json:"buyer_phone"`
	Amount     int64  `json:"amount"`
	WebhookURL string `json:"webhook_url,omitempty"`
}

type initiateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type orderStatusResponse struct {
	Status string            `json:"status"`
	Data   []orderStatusItem `json:"data"`
}

type orderStatusItem struct {
	OrderID       string `json:"order_id"`
	PaymentStatus string `json:"payment_status"`
	Reference     string `json:"reference"`
	Channel       string `json:"channel"`
	Amount        int64  `json:"amount,string"`
}

// OrderStatus is the normalized result of a status poll.
type OrderStatus struct {
	OrderID       string
	PaymentStatus PaymentStatus
	Reference     string
	Channel       string
	AmountTZS     int64
}

// WebhookPayload is the body ZenoPay posts when a payment completes. The
// shared secret arrives in the x-api-key header, not the body.
type WebhookPayload struct {
	OrderID       string `json:"order_id"`
	PaymentStatus string `json:"payment_status"`
	Reference     string `json:"reference"`
}
