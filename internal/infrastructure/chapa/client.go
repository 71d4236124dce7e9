package chapa

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ezm-trade/trade-api/internal/application/payments"
	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/pkg/config"
)

var _ payments.Gateway = (*Client)(nil)

// Client talks to the Chapa REST API (initialize + verify) and checks
// webhook signatures against the shared secret.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	secretKey     string
	webhookSecret string
	callbackURL   string
}

// NewClient builds a gateway client from configuration.
func NewClient(cfg config.ChapaConfig) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		callbackURL:   cfg.CallbackURL,
	}
}

type initializeRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	TxRef       string `json:"tx_ref"`
	CallbackURL string `json:"callback_url,omitempty"`
}

type initializeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status string `json:"status"`
	} `json:"data"`
}

// Initialize registers the transaction with Chapa and returns the hosted
// checkout URL.
func (c *Client) Initialize(ctx context.Context, tx *entity.ChapaTransaction) (string, error) {
	payload := initializeRequest{
		Amount:      tx.Amount.String(),
		Currency:    tx.Currency,
		Email:       tx.Email,
		FirstName:   tx.FirstName,
		LastName:    tx.LastName,
		PhoneNumber: tx.Phone,
		TxRef:       tx.TxRef,
		CallbackURL: c.callbackURL,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal initialize request: %w", err)
	}

	var resp initializeResponse
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body), &resp); err != nil {
		return "", err
	}
	if resp.Status != "success" {
		return "", fmt.Errorf("chapa initialize rejected: %s", resp.Message)
	}
	if resp.Data.CheckoutURL == "" {
		return "", fmt.Errorf("chapa initialize returned no checkout url")
	}
	return resp.Data.CheckoutURL, nil
}

// Verify asks Chapa for the authoritative state of the transaction. The
// returned status is normalized to the entity constants.
func (c *Client) Verify(ctx context.Context, txRef string) (string, error) {
	var resp verifyResponse
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+txRef, nil, &resp); err != nil {
		return "", err
	}
	if resp.Status != "success" {
		return "", fmt.Errorf("chapa verify rejected: %s", resp.Message)
	}
	switch resp.Data.Status {
	case "success":
		return entity.PaymentStatusSuccess, nil
	case "pending":
		return entity.PaymentStatusPending, nil
	default:
		return entity.PaymentStatusFailed, nil
	}
}

// VerifySignature checks the webhook body against the Chapa-Signature
// header: hex-encoded HMAC-SHA256 of the raw body under the webhook secret.
func (c *Client) VerifySignature(body []byte, signature string) bool {
	if c.webhookSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build chapa request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call chapa: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read chapa response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("chapa returned %d: %s", res.StatusCode, strings.TrimSpace(string(data)))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode chapa response: %w", err)
	}
	return nil
}
