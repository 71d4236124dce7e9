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

// RestockUseCase drives the warehouse-to-store restock workflow:
//
//	pending -> fulfilled -> shipped -> received
//	pending -> rejected
//
// Approval transfers the stock immediately inside one transaction; ship and
// receive only record logistics metadata after the fact. Rejected and
// received are terminal.
type RestockUseCase struct {
	tx          TxRunner
	restockRepo repository.RestockRequestRepository
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	notifier    Notifier
}

// NewRestockUseCase builds the use case. The repositories here are
// pool-bound and used for reads and creation; mutations go through tx.
func NewRestockUseCase(
	tx TxRunner,
	restockRepo repository.RestockRequestRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	notifier Notifier,
) *RestockUseCase {
	return &RestockUseCase{
		tx:          tx,
		restockRepo: restockRepo,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		notifier:    notifier,
	}
}

// Create registers a new pending request for the caller's store. The restock
// dropdown offers the whole catalog, so only existence is validated here;
// warehouse availability is checked at approval time.
func (uc *RestockUseCase) Create(ctx context.Context, requesterID, storeID string, in dto.CreateRestockRequest) (*dto.RestockRequestResponse, error) {
	if in.ProductID == "" || in.RequestedQuantity <= 0 {
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
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	req := &entity.RestockRequest{
		ID:                uuid.New().String(),
		StoreID:           storeID,
		ProductID:         in.ProductID,
		RequestedBy:       requesterID,
		RequestedQuantity: in.RequestedQuantity,
		Status:            entity.RestockStatusPending,
		Priority:          priority,
		Reason:            in.Reason,
		RequestedAt:       now,
	}
	if err := uc.restockRepo.Create(req); err != nil {
		return nil, err
	}

	uc.notifier.NotifyRole(ctx, entity.RoleHeadManager, entity.NotificationRestock,
		"New restock request "+req.RequestNumber,
		fmt.Sprintf("%s requested %d x %s for %s", requesterID, in.RequestedQuantity, product.Name, store.Name))

	return toRestockResponse(req), nil
}

// Approve moves the request to fulfilled, transferring approvedQty from the
// warehouse record to the store's stock row in one transaction. Both rows are
// locked with SELECT FOR UPDATE; insufficient warehouse stock aborts with
// ErrInsufficientStock and no writes survive the rollback. Zero approvedQty
// means "approve the requested quantity".
func (uc *RestockUseCase) Approve(ctx context.Context, reviewerID, requestID string, approvedQty int64, notes string) (*dto.RestockRequestResponse, error) {
	if approvedQty < 0 {
		return nil, domain.ErrInvalidInput
	}

	var approved *entity.RestockRequest
	err := uc.tx.Run(ctx, func(
		stockRepo repository.StockRepository,
		warehouseRepo repository.WarehouseProductRepository,
		restockRepo repository.RestockRequestRepository,
		_ repository.TransferRequestRepository,
	) error {
		req, err := restockRepo.GetByIDForUpdate(requestID)
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

		// Lock the warehouse row before checking availability so two
		// concurrent approvals cannot both pass the check.
		wp, err := warehouseRepo.GetByProductForUpdate(req.ProductID)
		if err != nil {
			return err
		}
		if wp == nil || wp.QuantityInStock < qty {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		wp.QuantityInStock -= qty
		wp.UpdatedAt = now
		if err := warehouseRepo.Upsert(wp); err != nil {
			return err
		}

		stock, err := stockRepo.GetForUpdate(req.ProductID, req.StoreID)
		if err != nil {
			return err
		}
		if stock.LowStockThreshold == 0 {
			stock.LowStockThreshold = entity.DefaultLowStockThreshold
		}
		stock.Quantity += qty
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}

		req.Status = entity.RestockStatusFulfilled
		req.ApprovedQuantity = qty
		req.ReviewedBy = reviewerID
		req.Notes = notes
		req.ReviewedAt = now
		if err := restockRepo.Update(req); err != nil {
			return err
		}
		approved = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, approved.RequestedBy, entity.NotificationRestock,
		"Restock request "+approved.RequestNumber+" approved",
		fmt.Sprintf("%d units approved and transferred to your store", approved.ApprovedQuantity))

	return toRestockResponse(approved), nil
}

// Reject closes a pending request with no stock side effects. The row is
// still locked so a rejection cannot race a concurrent approval.
func (uc *RestockUseCase) Reject(ctx context.Context, reviewerID, requestID, notes string) (*dto.RestockRequestResponse, error) {
	var rejected *entity.RestockRequest
	err := uc.tx.Run(ctx, func(
		_ repository.StockRepository,
		_ repository.WarehouseProductRepository,
		restockRepo repository.RestockRequestRepository,
		_ repository.TransferRequestRepository,
	) error {
		req, err := restockRepo.GetByIDForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !req.CanReview() {
			return domain.ErrInvalidTransition
		}
		req.Status = entity.RestockStatusRejected
		req.ReviewedBy = reviewerID
		req.Notes = notes
		req.ReviewedAt = time.Now()
		if err := restockRepo.Update(req); err != nil {
			return err
		}
		rejected = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, rejected.RequestedBy, entity.NotificationRestock,
		"Restock request "+rejected.RequestNumber+" rejected", notes)

	return toRestockResponse(rejected), nil
}

// Ship records the physical dispatch of an already fulfilled request. Stock
// moved at approval, so this is metadata only. Zero shippedQty ships the
// approved quantity; shipping more than was approved is invalid.
func (uc *RestockUseCase) Ship(ctx context.Context, shipperID, requestID string, shippedQty int64, trackingNumber string) (*dto.RestockRequestResponse, error) {
	if shippedQty < 0 {
		return nil, domain.ErrInvalidInput
	}
	var shipped *entity.RestockRequest
	err := uc.tx.Run(ctx, func(
		_ repository.StockRepository,
		_ repository.WarehouseProductRepository,
		restockRepo repository.RestockRequestRepository,
		_ repository.TransferRequestRepository,
	) error {
		req, err := restockRepo.GetByIDForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !req.CanShip() {
			return domain.ErrInvalidTransition
		}
		qty := shippedQty
		if qty == 0 {
			qty = req.ApprovedQuantity
		}
		if qty > req.ApprovedQuantity {
			return domain.ErrInvalidInput
		}
		req.Status = entity.RestockStatusShipped
		req.ShippedQuantity = qty
		req.ShippedBy = shipperID
		req.TrackingNumber = trackingNumber
		req.ShippedAt = time.Now()
		if err := restockRepo.Update(req); err != nil {
			return err
		}
		shipped = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, shipped.RequestedBy, entity.NotificationRestock,
		"Restock request "+shipped.RequestNumber+" shipped",
		fmt.Sprintf("%d units on the way, tracking %s", shipped.ShippedQuantity, shipped.TrackingNumber))

	return toRestockResponse(shipped), nil
}

// Receive finalizes the workflow. Only a manager of the requesting store may
// receive. A short receipt flags a discrepancy for audit; stock is not
// adjusted here because it moved at approval.
func (uc *RestockUseCase) Receive(ctx context.Context, receiverID, receiverStoreID, requestID string, receivedQty int64, notes string) (*dto.RestockRequestResponse, error) {
	if receivedQty < 0 {
		return nil, domain.ErrInvalidInput
	}
	var received *entity.RestockRequest
	err := uc.tx.Run(ctx, func(
		_ repository.StockRepository,
		_ repository.WarehouseProductRepository,
		restockRepo repository.RestockRequestRepository,
		_ repository.TransferRequestRepository,
	) error {
		req, err := restockRepo.GetByIDForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.StoreID != receiverStoreID {
			return domain.ErrForbidden
		}
		if !req.CanReceive() {
			return domain.ErrInvalidTransition
		}
		qty := receivedQty
		if qty == 0 {
			qty = req.ShippedQuantity
		}
		if qty > req.ShippedQuantity {
			return domain.ErrInvalidInput
		}
		req.Status = entity.RestockStatusReceived
		req.ReceivedQuantity = qty
		req.ReceivedBy = receiverID
		req.Discrepancy = qty < req.ShippedQuantity
		if notes != "" {
			req.Notes = notes
		}
		req.ReceivedAt = time.Now()
		if err := restockRepo.Update(req); err != nil {
			return err
		}
		received = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	if received.Discrepancy {
		uc.notifier.NotifyRole(ctx, entity.RoleHeadManager, entity.NotificationRestock,
			"Discrepancy on "+received.RequestNumber,
			fmt.Sprintf("received %d of %d shipped units", received.ReceivedQuantity, received.ShippedQuantity))
	}

	return toRestockResponse(received), nil
}

// GetByID returns one request.
func (uc *RestockUseCase) GetByID(id string) (*dto.RestockRequestResponse, error) {
	req, err := uc.restockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return toRestockResponse(req), nil
}

// List returns requests scoped by the caller: store managers see their own
// store, head managers see everything, optionally filtered by status.
func (uc *RestockUseCase) List(storeID, status string, limit, offset int) ([]dto.RestockRequestResponse, error) {
	var (
		list []*entity.RestockRequest
		err  error
	)
	switch {
	case storeID != "":
		list, err = uc.restockRepo.ListByStore(storeID, limit, offset)
	case status != "":
		list, err = uc.restockRepo.ListByStatus(status, limit, offset)
	default:
		list, err = uc.restockRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.RestockRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRestockResponse(r))
	}
	return out, nil
}

func toRestockResponse(r *entity.RestockRequest) *dto.RestockRequestResponse {
	resp := &dto.RestockRequestResponse{
		ID:                r.ID,
		RequestNumber:     r.RequestNumber,
		StoreID:           r.StoreID,
		ProductID:         r.ProductID,
		RequestedBy:       r.RequestedBy,
		RequestedQuantity: r.RequestedQuantity,
		ApprovedQuantity:  r.ApprovedQuantity,
		ShippedQuantity:   r.ShippedQuantity,
		ReceivedQuantity:  r.ReceivedQuantity,
		Status:            r.Status,
		Priority:          r.Priority,
		Reason:            r.Reason,
		Notes:             r.Notes,
		ReviewedBy:        r.ReviewedBy,
		TrackingNumber:    r.TrackingNumber,
		Discrepancy:       r.Discrepancy,
		RequestedAt:       r.RequestedAt,
	}
	if !r.ReviewedAt.IsZero() {
		t := r.ReviewedAt
		resp.ReviewedAt = &t
	}
	if !r.ShippedAt.IsZero() {
		t := r.ShippedAt
		resp.ShippedAt = &t
	}
	if !r.ReceivedAt.IsZero() {
		t := r.ReceivedAt
		resp.ReceivedAt = &t
	}
	return resp
}
