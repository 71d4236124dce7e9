package orders

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
)

// TxRunner executes a function inside one transaction with the order and
// warehouse repositories bound to it. Delivery confirmation updates the order
// row and every warehouse quantity together or not at all.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		warehouseRepo repository.WarehouseProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// UseCase drives the purchase-order lifecycle:
//
//	pending -> in_transit -> delivered
//	pending -> cancelled
//
// Confirming delivery credits the warehouse; nothing else moves stock.
type UseCase struct {
	tx           TxRunner
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	notifier     requests.Notifier
}

// NewUseCase builds the use case.
func NewUseCase(
	tx TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	notifier requests.Notifier,
) *UseCase {
	return &UseCase{
		tx:           tx,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		notifier:     notifier,
	}
}

// Create places a pending order with a supplier. The total is computed from
// the lines, never taken from the client.
func (uc *UseCase) Create(ctx context.Context, creatorID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		CreatedBy:  creatorID,
		Status:     entity.OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.ExpectedDeliveryDate != nil {
		order.ExpectedDeliveryDate = *in.ExpectedDeliveryDate
	}

	total := decimal.Zero
	items := make([]*entity.PurchaseOrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		if line.ProductID == "" || line.Quantity <= 0 || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		item := &entity.PurchaseOrderItem{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		}
		total = total.Add(item.LineTotal())
		items = append(items, item)
	}
	order.TotalAmount = total

	if err := uc.orderRepo.Create(order, items); err != nil {
		return nil, err
	}

	uc.notifier.NotifyRole(ctx, entity.RoleSupplier, entity.NotificationOrder,
		"Purchase order "+order.OrderNumber,
		fmt.Sprintf("%s placed an order with %s for %s", creatorID, supplier.Name, total.StringFixed(2)))

	return uc.toResponse(order, items), nil
}

// MarkInTransit moves a pending order to in_transit once the supplier
// dispatches it.
func (uc *UseCase) MarkInTransit(ctx context.Context, orderID string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPending {
		return nil, domain.ErrInvalidTransition
	}
	order.Status = entity.OrderStatusInTransit
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, order.CreatedBy, entity.NotificationOrder,
		"Purchase order "+order.OrderNumber+" dispatched", "The supplier marked the order in transit")

	return uc.toResponse(order, nil), nil
}

// ConfirmDelivery credits every ordered quantity to the warehouse and closes
// the order, all inside one transaction. Only in_transit orders can be
// confirmed.
func (uc *UseCase) ConfirmDelivery(ctx context.Context, confirmerID, orderID string) (*dto.PurchaseOrderResponse, error) {
	var (
		delivered *entity.PurchaseOrder
		items     []*entity.PurchaseOrderItem
	)
	err := uc.tx.Run(ctx, func(
		warehouseRepo repository.WarehouseProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusInTransit {
			return domain.ErrInvalidTransition
		}
		items, err = orderRepo.GetItems(order.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		for _, item := range items {
			wp, err := warehouseRepo.GetByProductForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if wp == nil {
				// First delivery of this product: open the warehouse record.
				wp = &entity.WarehouseProduct{
					ID:         uuid.New().String(),
					ProductID:  item.ProductID,
					SupplierID: order.SupplierID,
					UnitPrice:  item.UnitPrice,
					CreatedAt:  now,
				}
			}
			wp.QuantityInStock += item.Quantity
			wp.UpdatedAt = now
			if err := warehouseRepo.Upsert(wp); err != nil {
				return err
			}
		}

		order.Status = entity.OrderStatusDelivered
		order.DeliveredAt = now
		order.ConfirmedBy = confirmerID
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		delivered = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, delivered.CreatedBy, entity.NotificationOrder,
		"Purchase order "+delivered.OrderNumber+" delivered",
		fmt.Sprintf("%d line(s) credited to the warehouse", len(items)))

	return uc.toResponse(delivered, items), nil
}

// Cancel closes a pending order without touching the warehouse.
func (uc *UseCase) Cancel(ctx context.Context, orderID string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPending {
		return nil, domain.ErrInvalidTransition
	}
	order.Status = entity.OrderStatusCancelled
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return uc.toResponse(order, nil), nil
}

// GetByID returns one order with its lines.
func (uc *UseCase) GetByID(id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.GetItems(order.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(order, items), nil
}

// List returns orders, optionally scoped to one supplier.
func (uc *UseCase) List(supplierID string, page dto.PageRequest) ([]dto.PurchaseOrderResponse, error) {
	page.DefaultPage()
	var (
		list []*entity.PurchaseOrder
		err  error
	)
	if supplierID != "" {
		list, err = uc.orderRepo.ListBySupplier(supplierID, page.Limit, page.Offset)
	} else {
		list, err = uc.orderRepo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *uc.toResponse(o, nil))
	}
	return out, nil
}

func (uc *UseCase) toResponse(o *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		SupplierID:  o.SupplierID,
		CreatedBy:   o.CreatedBy,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
	}
	if !o.ExpectedDeliveryDate.IsZero() {
		ts := o.ExpectedDeliveryDate
		resp.ExpectedDeliveryDate = &ts
	}
	if !o.DeliveredAt.IsZero() {
		ts := o.DeliveredAt
		resp.DeliveredAt = &ts
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal(),
		})
	}
	return resp
}
