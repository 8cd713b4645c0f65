package service_test

import (
	"context"
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

type stockFixture struct {
	svc      service.StockService
	stocks   *stubStockRepo
	audit    *stubAuditRepo
	notifier *recordingNotifier
	manager  authz.Actor
}

func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()
	f := &stockFixture{
		stocks:   newStubStockRepo(),
		audit:    &stubAuditRepo{},
		notifier: &recordingNotifier{},
		manager:  authz.Actor{ID: uuid.New(), Role: authz.RoleStockManager},
	}
	f.svc = service.NewStockService(f.stocks, f.audit, f.notifier, 10)
	return f
}

func TestAdjust_AppliesDelta(t *testing.T) {
	f := newStockFixture(t)
	productID, warehouseID := uuid.New(), uuid.New()
	f.stocks.seed(productID, warehouseID, decimal.NewFromInt(10), decimal.NewFromInt(2))

	resp, err := f.svc.Adjust(context.Background(), f.manager, dto.AdjustStockRequest{
		ProductID:   productID.String(),
		WarehouseID: warehouseID.String(),
		Delta:       decimal.NewFromInt(-4),
		Reason:      "spoilage",
	})
	require.NoError(t, err)
	assert.Equal(t, "6", resp.Quantity.String())

	entries := f.audit.byEntityType(model.EntityStocks)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Details, "spoilage")
}

func TestAdjust_RefusesNegativeResult(t *testing.T) {
	f := newStockFixture(t)
	productID, warehouseID := uuid.New(), uuid.New()
	f.stocks.seed(productID, warehouseID, decimal.NewFromInt(10), decimal.NewFromInt(2))

	_, err := f.svc.Adjust(context.Background(), f.manager, dto.AdjustStockRequest{
		ProductID:   productID.String(),
		WarehouseID: warehouseID.String(),
		Delta:       decimal.NewFromInt(-15),
	})
	assert.True(t, apierror.IsKind(err, apierror.KindStateConflict))

	// Quantity untouched, nothing audited.
	stock, _ := f.stocks.FindByProductAndWarehouse(context.Background(), productID, warehouseID)
	assert.Equal(t, "10", stock.Quantity.String())
	assert.Empty(t, f.audit.entries)
}

func TestAdjust_ZeroDeltaRejected(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.Adjust(context.Background(), f.manager, dto.AdjustStockRequest{
		ProductID:   uuid.NewString(),
		WarehouseID: uuid.NewString(),
		Delta:       decimal.Zero,
	})
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestAdjust_MissingEntryIsNotFound(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.Adjust(context.Background(), f.manager, dto.AdjustStockRequest{
		ProductID:   uuid.NewString(),
		WarehouseID: uuid.NewString(),
		Delta:       decimal.NewFromInt(1),
	})
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestTransfer_MovesAndCreatesDestination(t *testing.T) {
	f := newStockFixture(t)
	productID, fromID, toID := uuid.New(), uuid.New(), uuid.New()
	f.stocks.seed(productID, fromID, decimal.NewFromInt(10), decimal.NewFromFloat(2.5))

	resp, err := f.svc.Transfer(context.Background(), f.manager, dto.TransferStockRequest{
		ProductID:       productID.String(),
		FromWarehouseID: fromID.String(),
		ToWarehouseID:   toID.String(),
		Quantity:        decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	source, _ := f.stocks.FindByProductAndWarehouse(context.Background(), productID, fromID)
	assert.Equal(t, "0", source.Quantity.String())

	// Destination inherits the source's unit price.
	dest, _ := f.stocks.FindByProductAndWarehouse(context.Background(), productID, toID)
	assert.Equal(t, "10", dest.Quantity.String())
	assert.Equal(t, "2.5", dest.UnitPrice.String())
	assert.Equal(t, dest.ID.String(), resp.ID)

	// One audit entry referencing both warehouses.
	entries := f.audit.byEntityType(model.EntityStocks)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Details, fromID.String())
	assert.Contains(t, entries[0].Details, toID.String())
}

func TestTransfer_AddsToExistingDestination(t *testing.T) {
	f := newStockFixture(t)
	productID, fromID, toID := uuid.New(), uuid.New(), uuid.New()
	f.stocks.seed(productID, fromID, decimal.NewFromInt(8), decimal.NewFromInt(3))
	f.stocks.seed(productID, toID, decimal.NewFromInt(2), decimal.NewFromInt(5))

	_, err := f.svc.Transfer(context.Background(), f.manager, dto.TransferStockRequest{
		ProductID:       productID.String(),
		FromWarehouseID: fromID.String(),
		ToWarehouseID:   toID.String(),
		Quantity:        decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	dest, _ := f.stocks.FindByProductAndWarehouse(context.Background(), productID, toID)
	assert.Equal(t, "5", dest.Quantity.String())
	// Existing destination keeps its own unit price.
	assert.Equal(t, "5", dest.UnitPrice.String())
}

func TestTransfer_InsufficientSource(t *testing.T) {
	f := newStockFixture(t)
	productID, fromID, toID := uuid.New(), uuid.New(), uuid.New()
	f.stocks.seed(productID, fromID, decimal.NewFromInt(2), decimal.NewFromInt(3))

	_, err := f.svc.Transfer(context.Background(), f.manager, dto.TransferStockRequest{
		ProductID:       productID.String(),
		FromWarehouseID: fromID.String(),
		ToWarehouseID:   toID.String(),
		Quantity:        decimal.NewFromInt(5),
	})
	assert.True(t, apierror.IsKind(err, apierror.KindInsufficientStock))

	source, _ := f.stocks.FindByProductAndWarehouse(context.Background(), productID, fromID)
	assert.Equal(t, "2", source.Quantity.String())
}

func TestTransfer_SameWarehouseRejected(t *testing.T) {
	f := newStockFixture(t)
	id := uuid.NewString()

	_, err := f.svc.Transfer(context.Background(), f.manager, dto.TransferStockRequest{
		ProductID:       uuid.NewString(),
		FromWarehouseID: id,
		ToWarehouseID:   id,
		Quantity:        decimal.NewFromInt(1),
	})
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestReport_Aggregates(t *testing.T) {
	f := newStockFixture(t)
	w1, w2 := uuid.New(), uuid.New()
	f.stocks.seed(uuid.New(), w1, decimal.NewFromInt(20), decimal.NewFromInt(2)) // value 40
	f.stocks.seed(uuid.New(), w1, decimal.NewFromInt(4), decimal.NewFromInt(5))  // value 20, low
	f.stocks.seed(uuid.New(), w2, decimal.NewFromInt(15), decimal.NewFromInt(1)) // value 15

	report, err := f.svc.Report(context.Background(), f.manager)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalItems)
	assert.Equal(t, "75", report.TotalValue.String())
	require.Len(t, report.LowStock, 1)
	assert.Equal(t, "4", report.LowStock[0].Quantity.String())

	require.Len(t, report.ByWarehouse, 2)
	assert.Equal(t, w1.String(), report.ByWarehouse[0].WarehouseID)
	assert.Equal(t, 2, report.ByWarehouse[0].ItemCount)
	assert.Equal(t, "60", report.ByWarehouse[0].TotalValue.String())
}

func TestReport_IncludesRecentStockActivity(t *testing.T) {
	f := newStockFixture(t)
	productID, warehouseID := uuid.New(), uuid.New()
	f.stocks.seed(productID, warehouseID, decimal.NewFromInt(50), decimal.NewFromInt(2))

	_, err := f.svc.Adjust(context.Background(), f.manager, dto.AdjustStockRequest{
		ProductID:   productID.String(),
		WarehouseID: warehouseID.String(),
		Delta:       decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	report, err := f.svc.Report(context.Background(), f.manager)
	require.NoError(t, err)
	require.Len(t, report.RecentActivity, 1)
	assert.Equal(t, model.EntityStocks, report.RecentActivity[0].EntityType)
}

func TestAlert_LowStockNotifiesOnce(t *testing.T) {
	f := newStockFixture(t)
	productID, warehouseID := uuid.New(), uuid.New()
	f.stocks.seed(productID, warehouseID, decimal.NewFromInt(8), decimal.NewFromInt(2))

	resp, err := f.svc.Alert(context.Background(), f.manager, dto.StockAlertRequest{
		ProductID: productID.String(),
		Threshold: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	assert.True(t, resp.IsLowStock)
	assert.Equal(t, "8", resp.Quantity.String())
	assert.Len(t, f.notifier.sent, 1)
	assert.Len(t, f.audit.byEntityType(model.EntityStocks), 1)
}

func TestAlert_AboveThresholdHasNoSideEffects(t *testing.T) {
	f := newStockFixture(t)
	productID, warehouseID := uuid.New(), uuid.New()
	f.stocks.seed(productID, warehouseID, decimal.NewFromInt(12), decimal.NewFromInt(2))

	resp, err := f.svc.Alert(context.Background(), f.manager, dto.StockAlertRequest{
		ProductID: productID.String(),
		Threshold: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	assert.False(t, resp.IsLowStock)
	assert.Empty(t, f.notifier.sent)
	assert.Empty(t, f.audit.entries)
}

func TestAlert_EqualToThresholdIsLow(t *testing.T) {
	f := newStockFixture(t)
	productID, warehouseID := uuid.New(), uuid.New()
	f.stocks.seed(productID, warehouseID, decimal.NewFromInt(10), decimal.NewFromInt(2))

	resp, err := f.svc.Alert(context.Background(), f.manager, dto.StockAlertRequest{
		ProductID: productID.String(),
		Threshold: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.True(t, resp.IsLowStock)
}

func TestAlert_UnknownProduct(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.Alert(context.Background(), f.manager, dto.StockAlertRequest{
		ProductID: uuid.NewString(),
		Threshold: decimal.NewFromInt(10),
	})
	assert.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestStock_RoleGates(t *testing.T) {
	f := newStockFixture(t)
	client := authz.Actor{ID: uuid.New(), Role: authz.RoleClient}

	_, err := f.svc.Adjust(context.Background(), client, dto.AdjustStockRequest{})
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))
	_, err = f.svc.Transfer(context.Background(), client, dto.TransferStockRequest{})
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))
	_, err = f.svc.Report(context.Background(), client)
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))
	_, err = f.svc.Alert(context.Background(), client, dto.StockAlertRequest{})
	assert.True(t, apierror.IsKind(err, apierror.KindPermission))
}
