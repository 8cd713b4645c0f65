package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Strife-cyber/agro/internal/apierror"
	"github.com/Strife-cyber/agro/internal/authz"
	"github.com/Strife-cyber/agro/internal/dto"
	"github.com/Strife-cyber/agro/internal/model"
	"github.com/Strife-cyber/agro/internal/repository"
)

type OrderService interface {
	ProcessOrder(ctx context.Context, actor authz.Actor, req dto.ProcessOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
}

type orderService struct {
	repo       repository.OrderRepository
	stocks     repository.StockRepository
	deliveries repository.DeliveryRepository
	payments   repository.PaymentRepository
	users      repository.UserRepository
	audit      repository.TransactionLogRepository
	notifier   Notifier
}

func NewOrderService(
	repo repository.OrderRepository,
	stocks repository.StockRepository,
	deliveries repository.DeliveryRepository,
	payments repository.PaymentRepository,
	users repository.UserRepository,
	audit repository.TransactionLogRepository,
	notifier Notifier,
) OrderService {
	return &orderService{
		repo:       repo,
		stocks:     stocks,
		deliveries: deliveries,
		payments:   payments,
		users:      users,
		audit:      audit,
		notifier:   notifier,
	}
}

// ── ProcessOrder ──────────────────────────────────────────────────────────────
// One atomic unit per order:
//   1. Role check (client or admin)
//   2. Pre-flight stock pass over ALL items — fail fast, no partial reservation
//   3. Total = Σ quantity × unit_price over the request items
//   4. TX: create order+items, guarded ledger decrements, optional delivery,
//      payment stub, status paid for direct payments
//   5. Post-commit best-effort: audit entry + client/warehouse notifications
//
// The pre-flight check only fails fast; the guarded decrement inside the
// transaction is the authoritative protection against overselling, so a
// concurrent order racing on the same pair aborts here and rolls back.

func (s *orderService) ProcessOrder(ctx context.Context, actor authz.Actor, req dto.ProcessOrderRequest) (*dto.OrderResponse, error) {
	if err := authz.Require(actor, authz.OpOrderProcess); err != nil {
		return nil, err
	}

	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"warehouse_id": "must be a valid uuid"})
	}
	if len(req.Items) == 0 {
		return nil, apierror.Validation(map[string]string{"items": "at least one item is required"})
	}
	if req.PaymentMethod != model.PaymentMethodDirect && req.PaymentMethod != model.PaymentMethodCredit {
		return nil, apierror.Validation(map[string]string{"payment_method": "must be direct or credit"})
	}

	type resolvedItem struct {
		productID uuid.UUID
		quantity  decimal.Decimal
		unitPrice decimal.Decimal
	}

	resolved := make([]resolvedItem, 0, len(req.Items))
	total := decimal.Zero
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apierror.Validation(map[string]string{"items.product_id": "must be a valid uuid"})
		}
		if item.Quantity.LessThan(decimal.NewFromInt(1)) {
			return nil, apierror.Validation(map[string]string{"items.quantity": "must be at least 1"})
		}
		if item.UnitPrice.IsNegative() {
			return nil, apierror.Validation(map[string]string{"items.unit_price": "must not be negative"})
		}
		resolved = append(resolved, resolvedItem{
			productID: productID,
			quantity:  item.Quantity,
			unitPrice: item.UnitPrice,
		})
		total = total.Add(item.Quantity.Mul(item.UnitPrice))
	}

	// Pre-flight stock validation over every item before any mutation.
	for _, r := range resolved {
		stock, err := s.stocks.FindByProductAndWarehouse(ctx, r.productID, warehouseID)
		if err != nil {
			if isRecordNotFound(err) {
				return nil, apierror.InsufficientStock(r.productID.String(), decimal.Zero, r.quantity)
			}
			return nil, apierror.Internal(err)
		}
		if stock.Quantity.LessThan(r.quantity) {
			return nil, apierror.InsufficientStock(r.productID.String(), stock.Quantity, r.quantity)
		}
	}

	var order model.Order
	var delivery *model.Delivery
	var payment model.Payment

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		order = model.Order{
			ClientID:        actor.ID,
			WarehouseID:     warehouseID,
			TotalAmount:     total,
			Status:          model.OrderStatusPending,
			DeliveryOption:  req.DeliveryOption,
			PaymentMethod:   req.PaymentMethod,
			DeliveryAddress: req.DeliveryAddress,
		}
		for _, r := range resolved {
			order.Items = append(order.Items, model.OrderItem{
				ProductID: r.productID,
				Quantity:  r.quantity,
				UnitPrice: r.unitPrice,
			})
		}
		if err := s.repo.CreateTx(tx, &order); err != nil {
			return apierror.Internal(err)
		}

		// Guarded decrements: zero rows affected means a concurrent order
		// drained the pair between the pre-flight pass and here.
		for _, r := range resolved {
			affected, err := s.stocks.DecrementTx(tx, r.productID, warehouseID, r.quantity)
			if err != nil {
				return apierror.Internal(err)
			}
			if affected == 0 {
				available := decimal.Zero
				if stock, ferr := s.stocks.FindByProductAndWarehouse(ctx, r.productID, warehouseID); ferr == nil {
					available = stock.Quantity
				}
				return apierror.InsufficientStock(r.productID.String(), available, r.quantity)
			}
		}

		if req.DeliveryOption {
			delivery = &model.Delivery{
				OrderID: order.ID,
				Status:  model.DeliveryStatusAssigned,
			}
			if err := s.deliveries.CreateTx(tx, delivery); err != nil {
				return apierror.Internal(err)
			}
		}

		paymentStatus := model.PaymentStatusPending
		if req.PaymentMethod == model.PaymentMethodDirect {
			paymentStatus = model.PaymentStatusCompleted
		}
		orderID := order.ID
		payment = model.Payment{
			OrderID:       &orderID,
			Amount:        total,
			PaymentMethod: req.PaymentMethod,
			Status:        paymentStatus,
			PaymentDate:   time.Now().UTC(),
		}
		if err := s.payments.CreateTx(tx, &payment); err != nil {
			return apierror.Internal(err)
		}

		if req.PaymentMethod == model.PaymentMethodDirect {
			if err := s.repo.UpdateStatusTx(tx, order.ID, model.OrderStatusPaid); err != nil {
				return apierror.Internal(err)
			}
			order.Status = model.OrderStatusPaid
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Post-commit side effects, best-effort.
	_ = s.audit.Create(ctx, &model.TransactionLog{
		EntityType: model.EntityOrders,
		EntityID:   order.ID,
		Action:     model.ActionCreate,
		UserID:     actor.ID,
		Details: fmt.Sprintf("order created: %d items, total %s, payment %s",
			len(order.Items), total, req.PaymentMethod),
	})
	s.notifier.Notify(ctx, actor.ID.String(), model.NotificationTypeEmail,
		fmt.Sprintf("Your order %s has been placed (total %s)", order.ID, total))
	s.notifyWarehouseManager(ctx,
		fmt.Sprintf("Order %s placed against warehouse %s", order.ID, warehouseID))

	resp := orderToResponse(&order)
	if delivery != nil {
		id := delivery.ID.String()
		resp.DeliveryID = &id
	}
	resp.PaymentID = payment.ID.String()
	resp.Message = "order placed"
	return resp, nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "order")
	}
	return orderToResponse(order), nil
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// notifyWarehouseManager routes the warehouse-facing notification to the
// first active stock manager.
func (s *orderService) notifyWarehouseManager(ctx context.Context, message string) {
	user, err := s.users.FindFirstByRole(ctx, string(authz.RoleStockManager))
	if err != nil {
		return
	}
	s.notifier.Notify(ctx, user.ID.String(), model.NotificationTypeEmail, message)
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID.String(),
			Product:   name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return &dto.OrderResponse{
		ID:              o.ID.String(),
		ClientID:        o.ClientID.String(),
		WarehouseID:     o.WarehouseID.String(),
		Items:           items,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		DeliveryOption:  o.DeliveryOption,
		DeliveryAddress: o.DeliveryAddress,
		PaymentMethod:   o.PaymentMethod,
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
	}
}
