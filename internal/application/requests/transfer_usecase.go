package requests

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/domain"
	"github.com/ezm-trade/trade-api/internal/domain/entity"
	"github.com/ezm-trade/trade-api/internal/domain/repository"
)

// TransferUseCase drives store-to-store stock transfers:
//
//	pending -> completed (approval moves the stock in one step)
//	pending -> rejected
//
// The warehouse is never touched; the source store's row is debited and the
// destination's credited inside one transaction, conserving the total.
type TransferUseCase struct {
	tx           TxRunner
	transferRepo repository.TransferRequestRepository
	productRepo  repository.ProductRepository
	storeRepo    repository.StoreRepository
	notifier     Notifier
}

// NewTransferUseCase builds the use case.
func NewTransferUseCase(
	tx TxRunner,
	transferRepo repository.TransferRequestRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	notifier Notifier,
) *TransferUseCase {
	return &TransferUseCase{
		tx:           tx,
		transferRepo: transferRepo,
		productRepo:  productRepo,
		storeRepo:    storeRepo,
		notifier:     notifier,
	}
}

// Create registers a pending transfer into the requester's own store.
// The source store must differ from the destination. Availability is only
// enforced at approval; the dropdown already filters to stores with stock.
func (uc *TransferUseCase) Create(ctx context.Context, requesterID, requesterStoreID string, in dto.CreateTransferRequest) (*dto.TransferRequestResponse, error) {
	if in.ProductID == "" || in.FromStoreID == "" || in.RequestedQuantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.FromStoreID == requesterStoreID {
		return nil, domain.ErrInvalidInput
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !entity.ValidPriority(priority) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	fromStore, err := uc.storeRepo.GetByID(in.FromStoreID)
	if err != nil {
		return nil, err
	}
	toStore, err := uc.storeRepo.GetByID(requesterStoreID)
	if err != nil {
		return nil, err
	}
	if fromStore == nil || toStore == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	req := &entity.StoreStockTransferRequest{
		ID:                uuid.New().String(),
		ProductID:         in.ProductID,
		FromStoreID:       in.FromStoreID,
		ToStoreID:         requesterStoreID,
		RequestedBy:       requesterID,
		RequestedQuantity: in.RequestedQuantity,
		Status:            entity.TransferStatusPending,
		Priority:          priority,
		Reason:            in.Reason,
		RequestedAt:       now,
	}
	if err := uc.transferRepo.Create(req); err != nil {
		return nil, err
	}

	uc.notifier.NotifyRole(ctx, entity.RoleHeadManager, entity.NotificationTransfer,
		"New transfer request "+req.RequestNumber,
		fmt.Sprintf("%d x %s from %s to %s", in.RequestedQuantity, product.Name, fromStore.Name, toStore.Name))

	return toTransferResponse(req), nil
}

// Approve debits the source store and credits the destination inside one
// transaction, locking the source row first. Insufficient source stock
// aborts with ErrInsufficientStock and leaves both stores untouched. Zero
// approvedQty approves the requested quantity.
func (uc *TransferUseCase) Approve(ctx context.Context, reviewerID, requestID string, approvedQty int64, notes string) (*dto.TransferRequestResponse, error) {
	if approvedQty < 0 {
		return nil, domain.ErrInvalidInput
	}

	var completed *entity.StoreStockTransferRequest
	err := uc.tx.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.WarehouseProductRepository,
		_ repository.RestockRequestRepository,
		transferRepo repository.TransferRequestRepository,
	) error {
		req, err := transferRepo.GetByIDForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !req.CanReview() {
			return domain.ErrInvalidTransition
		}
		qty := approvedQty
		if qty == 0 {
			qty = req.RequestedQuantity
		}

		// Opposite-direction transfers of the same product touch the same two
		// rows; locking them in store-ID order keeps concurrent approvals
		// from deadlocking each other.
		first, second := req.FromStoreID, req.ToStoreID
		if second < first {
			first, second = second, first
		}
		rows := make(map[string]*entity.Stock, 2)
		for _, storeID := range []string{first, second} {
			row, err := stockRepo.GetForUpdate(req.ProductID, storeID)
			if err != nil {
				return err
			}
			rows[storeID] = row
		}
		source, dest := rows[req.FromStoreID], rows[req.ToStoreID]
		if source.Quantity < qty {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		source.Quantity -= qty
		source.UpdatedAt = now
		if err := stockRepo.Upsert(source); err != nil {
			return err
		}

		if dest.LowStockThreshold == 0 {
			dest.LowStockThreshold = entity.DefaultLowStockThreshold
		}
		if dest.SellingPrice.IsZero() {
			// First units of this product at the destination: carry the
			// source store's selling price so the row is sellable.
			dest.SellingPrice = source.SellingPrice
		}
		dest.Quantity += qty
		dest.UpdatedAt = now
		if err := stockRepo.Upsert(dest); err != nil {
			return err
		}

		req.Status = entity.TransferStatusCompleted
		req.ApprovedQuantity = qty
		req.ReviewedBy = reviewerID
		req.Notes = notes
		req.ReviewedAt = now
		if err := transferRepo.Update(req); err != nil {
			return err
		}
		completed = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, completed.RequestedBy, entity.NotificationTransfer,
		"Transfer request "+completed.RequestNumber+" completed",
		fmt.Sprintf("%d units moved to your store", completed.ApprovedQuantity))

	return toTransferResponse(completed), nil
}

// Decline closes a pending transfer with reviewer notes; no stock change.
func (uc *TransferUseCase) Decline(ctx context.Context, reviewerID, requestID, notes string) (*dto.TransferRequestResponse, error) {
	var declined *entity.StoreStockTransferRequest
	err := uc.tx.Run(ctx, func(
		_ repository.StockRepository,
		_ repository.WarehouseProductRepository,
		_ repository.RestockRequestRepository,
		transferRepo repository.TransferRequestRepository,
	) error {
		req, err := transferRepo.GetByIDForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !req.CanReview() {
			return domain.ErrInvalidTransition
		}
		req.Status = entity.TransferStatusRejected
		req.ReviewedBy = reviewerID
		req.Notes = notes
		req.ReviewedAt = time.Now()
		if err := transferRepo.Update(req); err != nil {
			return err
		}
		declined = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, declined.RequestedBy, entity.NotificationTransfer,
		"Transfer request "+declined.RequestNumber+" declined", notes)

	return toTransferResponse(declined), nil
}

// GetByID returns one transfer request.
func (uc *TransferUseCase) GetByID(id string) (*dto.TransferRequestResponse, error) {
	req, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return toTransferResponse(req), nil
}

// List returns transfers scoped like restock listing: store managers see
// transfers touching their store, head managers everything.
func (uc *TransferUseCase) List(storeID, status string, limit, offset int) ([]dto.TransferRequestResponse, error) {
	var (
		list []*entity.StoreStockTransferRequest
		err  error
	)
	switch {
	case storeID != "":
		list, err = uc.transferRepo.ListByStore(storeID, limit, offset)
	case status != "":
		list, err = uc.transferRepo.ListByStatus(status, limit, offset)
	default:
		list, err = uc.transferRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toTransferResponse(r))
	}
	return out, nil
}

func toTransferResponse(t *entity.StoreStockTransferRequest) *dto.TransferRequestResponse {
	resp := &dto.TransferRequestResponse{
		ID:                t.ID,
		RequestNumber:     t.RequestNumber,
		ProductID:         t.ProductID,
		FromStoreID:       t.FromStoreID,
		ToStoreID:         t.ToStoreID,
		RequestedBy:       t.RequestedBy,
		RequestedQuantity: t.RequestedQuantity,
		ApprovedQuantity:  t.ApprovedQuantity,
		Status:            t.Status,
		Priority:          t.Priority,
		Reason:            t.Reason,
		Notes:             t.Notes,
		ReviewedBy:        t.ReviewedBy,
		RequestedAt:       t.RequestedAt,
	}
	if !t.ReviewedAt.IsZero() {
		ts := t.ReviewedAt
		resp.ReviewedAt = &ts
	}
	return resp
}
