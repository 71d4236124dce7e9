package requests

import (
	"context"

	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction, handing it
// repositories bound to that transaction. This is what guarantees the
// approve-and-transfer step is atomic: either the request row, the warehouse
// row and the store stock row all change, or none of them do.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		warehouseRepo repository.WarehouseProductRepository,
		restockRepo repository.RestockRequestRepository,
		transferRepo repository.TransferRequestRepository,
	) error) error
}

// Notifier delivers workflow notifications (in-app row plus best-effort
// email). Implementations must never fail the calling workflow: they log and
// swallow delivery errors. Called after the transaction commits.
type Notifier interface {
	Notify(ctx context.Context, userID, kind, title, message string)
	// NotifyRole fans out to every active user holding the role.
	NotifyRole(ctx context.Context, role, kind, title, message string)
}
