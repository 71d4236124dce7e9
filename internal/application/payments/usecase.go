package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/application/requests"
	"github.com/ezm-trade/trade-api/internal/domain"
	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
	"github.com/ezm-trade/trade-api/pkg/logger"
)

// Gateway is the Chapa client surface the use case needs.
type Gateway interface {
	Initialize(ctx context.Context, tx *entity.ChapaTransaction) (checkoutURL string, err error)
	Verify(ctx context.Context, txRef string) (status string, err error)
	// VerifySignature checks the webhook HMAC against the shared secret.
	VerifySignature(body []byte, signature string) bool
}

// UseCase initializes Chapa payments and settles them from the webhook.
type UseCase struct {
	paymentRepo repository.PaymentRepository
	gateway     Gateway
	notifier    requests.Notifier
	log         *logger.Logger
}

// NewUseCase builds the use case.
func NewUseCase(paymentRepo repository.PaymentRepository, gateway Gateway, notifier requests.Notifier, log *logger.Logger) *UseCase {
	return &UseCase{paymentRepo: paymentRepo, gateway: gateway, notifier: notifier, log: log}
}

// Initialize records a pending transaction and asks the gateway for a
// checkout URL. The tx_ref is generated server side and is the only key the
// webhook needs to settle the payment later.
func (uc *UseCase) Initialize(ctx context.Context, in dto.InitializePaymentRequest) (*dto.InitializePaymentResponse, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	currency := in.Currency
	if currency == "" {
		currency = "ETB"
	}

	now := time.Now()
	tx := &entity.ChapaTransaction{
		ID:        uuid.New().String(),
		TxRef:     fmt.Sprintf("ezm-%d-%s", now.Unix(), uuid.New().String()[:8]),
		Amount:    in.Amount,
		Currency:  currency,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Status:    entity.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	checkoutURL, err := uc.gateway.Initialize(ctx, tx)
	if err != nil {
		return nil, err
	}
	tx.CheckoutURL = checkoutURL
	if err := uc.paymentRepo.Create(tx); err != nil {
		return nil, err
	}

	return &dto.InitializePaymentResponse{
		TxRef:       tx.TxRef,
		CheckoutURL: checkoutURL,
		Status:      tx.Status,
	}, nil
}

// HandleWebhook settles a transaction from a gateway callback. The raw body
// and signature come straight from the HTTP layer; a bad signature is
// rejected before anything is read from the payload. The reported status is
// never trusted on its own: the transaction is re-verified against the
// gateway before the row is updated.
func (uc *UseCase) HandleWebhook(ctx context.Context, body []byte, signature string, payload dto.ChapaWebhookPayload) error {
	if !uc.gateway.VerifySignature(body, signature) {
		return domain.ErrUnauthorized
	}
	if payload.TxRef == "" {
		return domain.ErrInvalidInput
	}

	tx, err := uc.paymentRepo.GetByTxRef(payload.TxRef)
	if err != nil {
		return err
	}
	if tx == nil {
		return domain.ErrNotFound
	}
	if tx.Status != entity.PaymentStatusPending {
		// Chapa retries webhooks; settled transactions stay settled.
		return nil
	}

	status, err := uc.gateway.Verify(ctx, payload.TxRef)
	if err != nil {
		return err
	}
	if status != entity.PaymentStatusSuccess && status != entity.PaymentStatusFailed {
		uc.log.Warn().Str("tx_ref", payload.TxRef).Str("status", status).Msg("webhook left transaction pending")
		return nil
	}
	if err := uc.paymentRepo.UpdateStatus(payload.TxRef, status); err != nil {
		return err
	}

	uc.notifier.NotifyRole(ctx, entity.RoleHeadManager, entity.NotificationPayment,
		"Payment "+payload.TxRef+" "+status,
		fmt.Sprintf("%s %s from %s", tx.Amount.StringFixed(2), tx.Currency, tx.Email))
	return nil
}

// GetByTxRef returns one recorded transaction.
func (uc *UseCase) GetByTxRef(txRef string) (*dto.PaymentResponse, error) {
	tx, err := uc.paymentRepo.GetByTxRef(txRef)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	return toPaymentResponse(tx), nil
}

// List returns recorded transactions, newest first.
func (uc *UseCase) List(page dto.PageRequest) ([]dto.PaymentResponse, error) {
	page.DefaultPage()
	list, err := uc.paymentRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, tx := range list {
		out = append(out, *toPaymentResponse(tx))
	}
	return out, nil
}

func toPaymentResponse(tx *entity.ChapaTransaction) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		TxRef:     tx.TxRef,
		Amount:    tx.Amount,
		Currency:  tx.Currency,
		Email:     tx.Email,
		Status:    tx.Status,
		CreatedAt: tx.CreatedAt,
		UpdatedAt: tx.UpdatedAt,
	}
}
