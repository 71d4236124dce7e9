package requests

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/domain"
	"github.com/ezm-trade/trade-api/internal/domain/entity"
)

// createTransfer files a request by store A's manager for stock held at B.
func createTransfer(t *testing.T, env *testEnv, qty int64) *dto.TransferRequestResponse {
	t.Helper()
	resp, err := env.transferUC.Create(context.Background(), "mgr-a", "store-a", dto.CreateTransferRequest{
		ProductID:         "prod-y",
		FromStoreID:       "store-b",
		RequestedQuantity: qty,
	})
	require.NoError(t, err)
	require.Equal(t, entity.TransferStatusPending, resp.Status)
	return resp
}

func TestTransferApprove_MovesStockBetweenStores(t *testing.T) {
	env := newTestEnv()
	// Store A holds nothing, store B holds 15.
	env.seedStock("prod-y", "store-b", 15)
	req := createTransfer(t, env, 10)

	resp, err := env.transferUC.Approve(context.Background(), "head-1", req.ID, 10, "")
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusCompleted, resp.Status)
	assert.Equal(t, int64(5), env.stock.quantity("prod-y", "store-b"))
	assert.Equal(t, int64(10), env.stock.quantity("prod-y", "store-a"))
	// The total across both stores is conserved.
	assert.Equal(t, int64(15), env.stock.quantity("prod-y", "store-a")+env.stock.quantity("prod-y", "store-b"))
}

func TestTransferApprove_InsufficientSourceStock(t *testing.T) {
	env := newTestEnv()
	env.seedStock("prod-y", "store-b", 4)
	req := createTransfer(t, env, 10)

	_, err := env.transferUC.Approve(context.Background(), "head-1", req.ID, 10, "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(4), env.stock.quantity("prod-y", "store-b"))
	assert.Equal(t, int64(0), env.stock.quantity("prod-y", "store-a"))

	stored, err := env.transfer.GetByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusPending, stored.Status)
}

func TestTransferApprove_CarriesSellingPriceToNewRow(t *testing.T) {
	env := newTestEnv()
	_ = env.stock.Upsert(&entity.Stock{
		ProductID:         "prod-y",
		StoreID:           "store-b",
		Quantity:          20,
		LowStockThreshold: entity.DefaultLowStockThreshold,
		SellingPrice:      decimal.NewFromInt(950),
	})
	req := createTransfer(t, env, 8)

	_, err := env.transferUC.Approve(context.Background(), "head-1", req.ID, 0, "")
	require.NoError(t, err)

	dest, err := env.stock.Get("prod-y", "store-a")
	require.NoError(t, err)
	assert.Equal(t, int64(8), dest.Quantity, "zero approves the requested quantity")
	assert.True(t, dest.SellingPrice.Equal(decimal.NewFromInt(950)),
		"new destination row should inherit the source selling price")
	assert.Equal(t, int64(entity.DefaultLowStockThreshold), dest.LowStockThreshold)
}

func TestTransferDecline_NoStockChanges(t *testing.T) {
	env := newTestEnv()
	env.seedStock("prod-y", "store-b", 15)
	req := createTransfer(t, env, 10)

	resp, err := env.transferUC.Decline(context.Background(), "head-1", req.ID, "keep buffer at Merkato")
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusRejected, resp.Status)
	assert.Equal(t, int64(15), env.stock.quantity("prod-y", "store-b"))
	assert.Equal(t, int64(0), env.stock.quantity("prod-y", "store-a"))
}

func TestTransferReview_TerminalStatesAreFinal(t *testing.T) {
	env := newTestEnv()
	env.seedStock("prod-y", "store-b", 30)

	req := createTransfer(t, env, 10)
	_, err := env.transferUC.Approve(context.Background(), "head-1", req.ID, 10, "")
	require.NoError(t, err)

	_, err = env.transferUC.Approve(context.Background(), "head-1", req.ID, 10, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = env.transferUC.Decline(context.Background(), "head-1", req.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// No double transfer happened.
	assert.Equal(t, int64(20), env.stock.quantity("prod-y", "store-b"))
	assert.Equal(t, int64(10), env.stock.quantity("prod-y", "store-a"))
}

func TestTransferApprove_LocksRowsInStoreOrder(t *testing.T) {
	// Approvals of opposite-direction transfers for the same product must
	// acquire the two row locks in the same order, or concurrent reviews
	// could deadlock each other.
	env := newTestEnv()
	env.seedStock("prod-y", "store-a", 20)
	env.seedStock("prod-y", "store-b", 20)
	ctx := context.Background()

	toA, err := env.transferUC.Create(ctx, "mgr-a", "store-a", dto.CreateTransferRequest{
		ProductID: "prod-y", FromStoreID: "store-b", RequestedQuantity: 5,
	})
	require.NoError(t, err)
	toB, err := env.transferUC.Create(ctx, "mgr-b", "store-b", dto.CreateTransferRequest{
		ProductID: "prod-y", FromStoreID: "store-a", RequestedQuantity: 5,
	})
	require.NoError(t, err)

	_, err = env.transferUC.Approve(ctx, "head-1", toA.ID, 5, "")
	require.NoError(t, err)
	_, err = env.transferUC.Approve(ctx, "head-1", toB.ID, 5, "")
	require.NoError(t, err)

	require.Len(t, env.stock.locked, 4)
	assert.Equal(t, []string{"store-a", "store-b"}, env.stock.locked[:2])
	assert.Equal(t, []string{"store-a", "store-b"}, env.stock.locked[2:])

	// Both moves still landed.
	assert.Equal(t, int64(20), env.stock.quantity("prod-y", "store-a"))
	assert.Equal(t, int64(20), env.stock.quantity("prod-y", "store-b"))
}

func TestTransferCreate_Validation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.transferUC.Create(ctx, "mgr-a", "store-a", dto.CreateTransferRequest{
		ProductID: "prod-y", FromStoreID: "store-a", RequestedQuantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "source must differ from the requester's store")

	_, err = env.transferUC.Create(ctx, "mgr-a", "store-a", dto.CreateTransferRequest{
		ProductID: "prod-y", FromStoreID: "store-b",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity is required")

	_, err = env.transferUC.Create(ctx, "mgr-a", "store-a", dto.CreateTransferRequest{
		ProductID: "prod-y", FromStoreID: "store-missing", RequestedQuantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "unknown source store")
}
