package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the production Razorpay API endpoint
const DefaultBaseURL = "https://api.razorpay.com/v1"

// Config holds the credentials for the Razorpay API.
// WebhookSecret is optional; when empty, webhook signatures are accepted
// without verification.
type Config struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
	BaseURL       string
	Timeout       time.Duration
}

// Client calls the Razorpay Payment Links API
type Client struct {
	config Config
	logger *logrus.Logger
	client *http.Client
}

// NewClient creates a new Razorpay client
func NewClient(cfg Config, logger *logrus.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		config: cfg,
		logger: logger,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Customer identifies who the payment link is for
type Customer struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
}

// Notify controls gateway-side SMS/email notifications
type Notify struct {
	SMS   bool `json:"sms"`
	Email bool `json:"email"`
}

// PaymentLinkRequest represents the request to create a hosted payment link
type PaymentLinkRequest struct {
	Amount         int64    `json:"amount"` // smallest currency unit (paise)
	Currency       string   `json:"currency"`
	Description    string   `json:"description"`
	Customer       Customer `json:"customer"`
	Notify         Notify   `json:"notify"`
	ReminderEnable bool     `json:"reminder_enable"`
	CallbackURL    string   `json:"callback_url,omitempty"`
	CallbackMethod string   `json:"callback_method,omitempty"`
}

// PaymentLink represents the created payment link
type PaymentLink struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
	Status   string `json:"status"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// IsConfigured returns true if API credentials are present
func (c *Client) IsConfigured() bool {
	return c.config.KeyID != "" && c.config.KeySecret != ""
}

// CreatePaymentLink creates a hosted payment link for the given amount.
// The context bounds the call; a timeout surfaces as an ordinary error so
// callers can treat it like any other gateway failure.
func (c *Client) CreatePaymentLink(ctx context.Context, req *PaymentLinkRequest) (*PaymentLink, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("payment gateway not configured: missing API credentials")
	}

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.config.BaseURL + "/payment_links"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.config.KeyID, c.config.KeySecret)

	c.logger.WithFields(logrus.Fields{
		"amount":   req.Amount,
		"currency": req.Currency,
	}).Info("Creating Razorpay payment link")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.WithError(err).Error("Failed to call Razorpay endpoint")
		return nil, fmt.Errorf("failed to call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("payment gateway returned status %d: %s", resp.StatusCode, apiErr.Error.Description)
		}
		return nil, fmt.Errorf("payment gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	var link PaymentLink
	if err := json.Unmarshal(body, &link); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if link.ID == "" || link.ShortURL == "" {
		return nil, fmt.Errorf("payment link creation failed: incomplete response")
	}

	c.logger.WithFields(logrus.Fields{
		"payment_link_id": link.ID,
		"short_url":       link.ShortURL,
	}).Info("Razorpay payment link created")

	return &link, nil
}
