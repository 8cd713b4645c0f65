package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Strife-cyber/agro/internal/apierror"
	"github.com/Strife-cyber/agro/internal/authz"
	"github.com/Strife-cyber/agro/internal/dto"
	"github.com/Strife-cyber/agro/internal/model"
	"github.com/Strife-cyber/agro/internal/service"
)

type orderFixture struct {
	svc        service.OrderService
	orders     *stubOrderRepo
	stocks     *stubStockRepo
	deliveries *stubDeliveryRepo
	payments   *stubPaymentRepo
	users      *stubUserRepo
	audit      *stubAuditRepo
	notifier   *recordingNotifier

	client    authz.Actor
	warehouse uuid.UUID
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		orders:     newStubOrderRepo(),
		stocks:     newStubStockRepo(),
		deliveries: &stubDeliveryRepo{},
		payments:   &stubPaymentRepo{},
		users:      newStubUserRepo(),
		audit:      &stubAuditRepo{},
		notifier:   &recordingNotifier{},
	}
	f.svc = service.NewOrderService(
		f.orders, f.stocks, f.deliveries, f.payments, f.users, f.audit, f.notifier)

	client := f.users.seed(string(authz.RoleClient))
	f.users.seed(string(authz.RoleStockManager))
	f.client = authz.Actor{ID: client.ID, Role: authz.RoleClient}
	f.warehouse = uuid.New()
	return f
}

func item(productID uuid.UUID, qty, price int64) dto.OrderItemRequest {
	return dto.OrderItemRequest{
		ProductID: productID.String(),
		Quantity:  decimal.NewFromInt(qty),
		UnitPrice: decimal.NewFromInt(price),
	}
}

func TestProcessOrder_DirectPaymentCompletes(t *testing.T) {
	f := newOrderFixture(t)
	productID := uuid.New()
	f.stocks.seed(productID, f.warehouse, decimal.NewFromInt(10), decimal.NewFromInt(3))

	resp, err := f.svc.ProcessOrder(context.Background(), f.client, dto.ProcessOrderRequest{
		WarehouseID:   f.warehouse.String(),
		Items:         []dto.OrderItemRequest{item(productID, 4, 5)},
		PaymentMethod: model.PaymentMethodDirect,
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPaid, resp.Status)
	assert.Equal(t, "20", resp.TotalAmount.String())

	payment, err := f.payments.FindByOrderID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCompleted, payment.Status)

	// Stock decremented.
	stock, _ := f.stocks.FindByProductAndWarehouse(context.Background(), productID, f.warehouse)
	assert.Equal(t, "6", stock.Quantity.String())
}

func TestProcessOrder_CreditPaymentStaysPending(t *testing.T) {
	f := newOrderFixture(t)
	productID := uuid.New()
	f.stocks.seed(productID, f.warehouse, decimal.NewFromInt(10), decimal.NewFromInt(3))

	resp, err := f.svc.ProcessOrder(context.Background(), f.client, dto.ProcessOrderRequest{
		WarehouseID:   f.warehouse.String(),
		Items:         []dto.OrderItemRequest{item(productID, 2, 7)},
		PaymentMethod: model.PaymentMethodCredit,
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, resp.Status)
	payment, err := f.payments.FindByOrderID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, payment.Status)
}

func TestProcessOrder_AllOrNothing(t *testing.T) {
	f := newOrderFixture(t)
	productA := uuid.New()
	productB := uuid.New()
	f.stocks.seed(productA, f.warehouse, decimal.NewFromInt(5), decimal.NewFromInt(2))
	f.stocks.seed(productB, f.warehouse, decimal.NewFromInt(2), decimal.NewFromInt(4))

	_, err := f.svc.ProcessOrder(context.Background(), f.client, dto.ProcessOrderRequest{
		WarehouseID: f.warehouse.String(),
		Items: []dto.OrderItemRequest{
			item(productA, 2, 2),
			item(productB, 3, 4), // only 2 available
		},
		PaymentMethod: model.PaymentMethodDirect,
	})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInsufficientStock))

	e, _ := apierror.As(err)
	assert.Equal(t, productB.String(), e.Fields["product_id"])
	assert.Equal(t, "2", e.Fields["available"])
	assert.Equal(t, "3", e.Fields["requested"])

	// Nothing moved: product A is untouched and no order or payment exists.
	stockA, _ := f.stocks.FindByProductAndWarehouse(context.Background(), productA, f.warehouse)
	assert.Equal(t, "5", stockA.Quantity.String())
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.payments.payments)
	assert.Empty(t, f.notifier.sent)
}

func TestProcessOrder_UnknownProductIsInsufficient(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.ProcessOrder(context.Background(), f.client, dto.ProcessOrderRequest{
		WarehouseID:   f.warehouse.String(),
		Items:         []dto.OrderItemRequest{item(uuid.New(), 1, 10)},
		PaymentMethod: model.PaymentMethodDirect,
	})
	assert.True(t, apierror.IsKind(err, apierror.KindInsufficientStock))
}

func TestProcessOrder_StoreFailureIsInternal(t *testing.T) {
	f := newOrderFixture(t)
	productID := uuid.New()
	f.stocks.seed(productID, f.warehouse, decimal.NewFromInt(10), decimal.NewFromInt(3))
	f.stocks.findErr = errors.New("pq: connection refused")

	_, err := f.svc.ProcessOrder(context.Background(), f.client, dto.ProcessOrderRequest{
		WarehouseID:   f.warehouse.String(),
		Items:         []dto.OrderItemRequest{item(productID, 1, 3)},
		PaymentMethod: model.PaymentMethodDirect,
	})
	assert.True(t, apierror.IsKind(err, apierror.KindInternal))
	assert.False(t, apierror.IsKind(err, apierror.KindInsufficientStock))
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.payments.payments)
}

func TestProcessOrder_DeliveryOptionCreatesDelivery(t *testing.T) {
	f := newOrderFixture(t)
	productID := uuid.New()
	f.stocks.seed(productID, f.warehouse, decimal.NewFromInt(10), decimal.NewFromInt(3))
	addr := "14 Rue du Marché"

	resp, err := f.svc.ProcessOrder(context.Background(), f.client, dto.ProcessOrderRequest{
		WarehouseID:     f.warehouse.String(),
		Items:           []dto.OrderItemRequest{item(productID, 1, 3)},
		DeliveryOption:  true,
		DeliveryAddress: &addr,
		PaymentMethod:   model.PaymentMethodDirect,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.DeliveryID)

	delivery, err := f.deliveries.FindByOrderID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, model.DeliveryStatusAssigned, delivery.Status)
}

func TestProcessOrder_NotifiesClientAndWarehouse(t *testing.T) {
	f := newOrderFixture(t)
	productID := uuid.New()
	f.stocks.seed(productID, f.warehouse, decimal.NewFromInt(10), decimal.NewFromInt(3))

	_, err := f.svc.ProcessOrder(context.Background(), f.client, dto.ProcessOrderRequest{
		WarehouseID:   f.warehouse.String(),
		Items:         []dto.OrderItemRequest{item(productID, 1, 3)},
		PaymentMethod: model.PaymentMethodDirect,
	})
	require.NoError(t, err)

	assert.Len(t, f.notifier.to(f.client.ID.String()), 1)
	manager, _ := f.users.FindFirstByRole(context.Background(), string(authz.RoleStockManager))
	assert.Len(t, f.notifier.to(manager.ID.String()), 1)

	// One audit entry for the order.
	assert.Len(t, f.audit.byEntityType(model.EntityOrders), 1)
}

func TestProcessOrder_Validation(t *testing.T) {
	f := newOrderFixture(t)
	productID := uuid.New()
	f.stocks.seed(productID, f.warehouse, decimal.NewFromInt(10), decimal.NewFromInt(3))

	cases := []struct {
		name string
		req  dto.ProcessOrderRequest
	}{
		{"bad warehouse id", dto.ProcessOrderRequest{
			WarehouseID:   "nope",
			Items:         []dto.OrderItemRequest{item(productID, 1, 3)},
			PaymentMethod: model.PaymentMethodDirect,
		}},
		{"no items", dto.ProcessOrderRequest{
			WarehouseID:   f.warehouse.String(),
			PaymentMethod: model.PaymentMethodDirect,
		}},
		{"bad payment method", dto.ProcessOrderRequest{
			WarehouseID:   f.warehouse.String(),
			Items:         []dto.OrderItemRequest{item(productID, 1, 3)},
			PaymentMethod: "cash",
		}},
		{"zero quantity", dto.ProcessOrderRequest{
			WarehouseID:   f.warehouse.String(),
			Items:         []dto.OrderItemRequest{item(productID, 0, 3)},
			PaymentMethod: model.PaymentMethodDirect,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.ProcessOrder(context.Background(), f.client, tc.req)
			assert.True(t, apierror.IsKind(err, apierror.KindValidation))
		})
	}
}

func TestProcessOrder_RoleGate(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.ProcessOrder(context.Background(),
		authz.Actor{ID: uuid.New(), Role: authz.RoleSupplier}, dto.ProcessOrderRequest{})
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))
}
