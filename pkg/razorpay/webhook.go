package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// EventKind is the webhook event type reported by the gateway
type EventKind string

const (
	// EventPaymentLinkPaid reports a completed payment against a link
	EventPaymentLinkPaid EventKind = "payment_link.paid"

	// EventUnhandled covers every event kind this service does not act on
	EventUnhandled EventKind = "unhandled"
)

// WebhookEvent is the parsed, tagged form of a gateway webhook. Only the
// paid variant carries identifiers; Unhandled events keep the raw kind for
// logging.
type WebhookEvent struct {
	Kind          EventKind
	RawEvent      string
	PaymentLinkID string
	PaymentID     string
}

// webhookEnvelope mirrors the gateway's nested payload shape. Fields the
// gateway may omit simply decode to their zero value; the envelope cannot
// be validated strictly.
type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		PaymentLink struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"payment_link"`
		Payment struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// ParseWebhook decodes a webhook body into a tagged event
func ParseWebhook(body []byte) (*WebhookEvent, error) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}

	event := &WebhookEvent{
		Kind:     EventUnhandled,
		RawEvent: envelope.Event,
	}

	if envelope.Event == string(EventPaymentLinkPaid) {
		event.Kind = EventPaymentLinkPaid
		event.PaymentLinkID = envelope.Payload.PaymentLink.Entity.ID
		event.PaymentID = envelope.Payload.Payment.Entity.ID
	}

	return event, nil
}

// VerifySignature checks the X-Razorpay-Signature header against the body
// using HMAC-SHA256 with the webhook secret. When no secret is configured,
// verification is skipped and any signature is accepted.
func (c *Client) VerifySignature(body []byte, signature string) error {
	if c.config.WebhookSecret == "" {
		return nil
	}

	mac := hmac.New(sha256.New, []byte(c.config.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("webhook signature mismatch")
	}

	return nil
}
