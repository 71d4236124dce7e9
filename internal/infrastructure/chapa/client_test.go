package chapa

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/pkg/config"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	c := NewClient(config.ChapaConfig{WebhookSecret: "whsec"})
	body := []byte(`{"tx_ref":"ezm-1-abc","status":"success"}`)

	assert.True(t, c.VerifySignature(body, sign("whsec", body)))
	assert.False(t, c.VerifySignature(body, sign("wrong", body)))
	assert.False(t, c.VerifySignature(body, ""))

	// No secret configured means nothing can be trusted.
	open := NewClient(config.ChapaConfig{})
	assert.False(t, open.VerifySignature(body, sign("whsec", body)))
}

func TestInitialize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":"success","data":{"checkout_url":"https://checkout.chapa.co/pay/xyz"}}`))
	}))
	defer srv.Close()

	c := NewClient(config.ChapaConfig{BaseURL: srv.URL, SecretKey: "sk-test"})
	url, err := c.Initialize(context.Background(), &entity.ChapaTransaction{
		TxRef:    "ezm-1-abc",
		Amount:   decimal.NewFromInt(500),
		Currency: "ETB",
		Email:    "buyer@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.chapa.co/pay/xyz", url)
}

func TestInitializeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"failed","message":"invalid currency"}`))
	}))
	defer srv.Close()

	c := NewClient(config.ChapaConfig{BaseURL: srv.URL, SecretKey: "sk-test"})
	_, err := c.Initialize(context.Background(), &entity.ChapaTransaction{TxRef: "ezm-1-abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid currency")
}

func TestVerifyNormalizesStatus(t *testing.T) {
	status := "success"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/ezm-1-abc", r.URL.Path)
		w.Write([]byte(`{"status":"success","data":{"status":"` + status + `"}}`))
	}))
	defer srv.Close()

	c := NewClient(config.ChapaConfig{BaseURL: srv.URL, SecretKey: "sk-test"})

	got, err := c.Verify(context.Background(), "ezm-1-abc")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSuccess, got)

	status = "pending"
	got, err = c.Verify(context.Background(), "ezm-1-abc")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, got)

	status = "cancelled"
	got, err = c.Verify(context.Background(), "ezm-1-abc")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, got)
}

func TestHTTPErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(config.ChapaConfig{BaseURL: srv.URL, SecretKey: "bad"})
	_, err := c.Verify(context.Background(), "ezm-1-abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
