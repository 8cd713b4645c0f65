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

// recentActivityWindow bounds the audit slice included in the report.
const recentActivityWindow = 30 * 24 * time.Hour

// recentActivityLimit caps how many audit entries the report returns.
const recentActivityLimit = 50

// StockService covers the ad hoc ledger operations outside the two
// workflows: manual adjustment, inter-warehouse transfer, reporting and
// low-stock alerting. Mutations follow the same transaction discipline
// as order processing and stock receipt.
type StockService interface {
	Adjust(ctx context.Context, actor authz.Actor, req dto.AdjustStockRequest) (*dto.StockEntryResponse, error)
	Transfer(ctx context.Context, actor authz.Actor, req dto.TransferStockRequest) (*dto.StockEntryResponse, error)
	Report(ctx context.Context, actor authz.Actor) (*dto.StockReportResponse, error)
	Alert(ctx context.Context, actor authz.Actor, req dto.StockAlertRequest) (*dto.StockAlertResponse, error)
}

type stockService struct {
	stocks            repository.StockRepository
	audit             repository.TransactionLogRepository
	notifier          Notifier
	lowStockThreshold decimal.Decimal
}

func NewStockService(
	stocks repository.StockRepository,
	audit repository.TransactionLogRepository,
	notifier Notifier,
	lowStockThreshold int,
) StockService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 10
	}
	return &stockService{
		stocks:            stocks,
		audit:             audit,
		notifier:          notifier,
		lowStockThreshold: decimal.NewFromInt(int64(lowStockThreshold)),
	}
}

// ── Adjust ────────────────────────────────────────────────────────────────────

func (s *stockService) Adjust(ctx context.Context, actor authz.Actor, req dto.AdjustStockRequest) (*dto.StockEntryResponse, error) {
	if err := authz.Require(actor, authz.OpStockAdjust); err != nil {
		return nil, err
	}

	productID, warehouseID, err := parsePair(req.ProductID, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if req.Delta.IsZero() {
		return nil, apierror.Validation(map[string]string{"delta": "must not be zero"})
	}

	var adjusted *model.Stock
	txErr := runTx(ctx, s.stocks.DB(), func(tx *gorm.DB) error {
		stock, err := s.stocks.FindForUpdateTx(tx, productID, warehouseID)
		if err != nil {
			return asNotFound(err, "stock entry")
		}

		previous := stock.Quantity
		next := previous.Add(req.Delta)
		if next.IsNegative() {
			return apierror.StateConflict(fmt.Sprintf(
				"adjustment would drive quantity negative: %s on hand, delta %s", previous, req.Delta))
		}

		stock.Quantity = next
		if err := s.stocks.SaveTx(tx, stock); err != nil {
			return apierror.Internal(err)
		}

		entry := &model.TransactionLog{
			EntityType: model.EntityStocks,
			EntityID:   stock.ID,
			Action:     model.ActionUpdate,
			UserID:     actor.ID,
			Details: fmt.Sprintf("manual adjustment: %s → %s (delta %s) — %s",
				previous, next, req.Delta, reasonOrDefault(req.Reason)),
		}
		if err := s.audit.CreateTx(tx, entry); err != nil {
			return apierror.Internal(err)
		}

		adjusted = stock
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := stockToResponse(adjusted)
	resp.Message = "stock adjusted"
	return resp, nil
}

// ── Transfer ──────────────────────────────────────────────────────────────────

func (s *stockService) Transfer(ctx context.Context, actor authz.Actor, req dto.TransferStockRequest) (*dto.StockEntryResponse, error) {
	if err := authz.Require(actor, authz.OpStockTransfer); err != nil {
		return nil, err
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"product_id": "must be a valid uuid"})
	}
	fromID, err := uuid.Parse(req.FromWarehouseID)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"from_warehouse_id": "must be a valid uuid"})
	}
	toID, err := uuid.Parse(req.ToWarehouseID)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"to_warehouse_id": "must be a valid uuid"})
	}
	if fromID == toID {
		return nil, apierror.Validation(map[string]string{"to_warehouse_id": "must differ from from_warehouse_id"})
	}
	if !req.Quantity.IsPositive() {
		return nil, apierror.Validation(map[string]string{"quantity": "must be positive"})
	}

	var destination *model.Stock
	txErr := runTx(ctx, s.stocks.DB(), func(tx *gorm.DB) error {
		source, err := s.stocks.FindForUpdateTx(tx, productID, fromID)
		if err != nil {
			return asNotFound(err, "source stock entry")
		}
		if source.Quantity.LessThan(req.Quantity) {
			return apierror.InsufficientStock(productID.String(), source.Quantity, req.Quantity)
		}

		source.Quantity = source.Quantity.Sub(req.Quantity)
		if err := s.stocks.SaveTx(tx, source); err != nil {
			return apierror.Internal(err)
		}

		// Destination is created lazily at the source's unit price.
		dest, err := s.stocks.FindForUpdateTx(tx, productID, toID)
		switch {
		case err == nil:
			dest.Quantity = dest.Quantity.Add(req.Quantity)
			if err := s.stocks.SaveTx(tx, dest); err != nil {
				return apierror.Internal(err)
			}
		case isRecordNotFound(err):
			dest = &model.Stock{
				ProductID:   productID,
				WarehouseID: toID,
				Quantity:    req.Quantity,
				UnitPrice:   source.UnitPrice,
			}
			if err := s.stocks.CreateTx(tx, dest); err != nil {
				return apierror.Internal(err)
			}
		default:
			return apierror.Internal(err)
		}

		entry := &model.TransactionLog{
			EntityType: model.EntityStocks,
			EntityID:   source.ID,
			Action:     model.ActionUpdate,
			UserID:     actor.ID,
			Details: fmt.Sprintf("transfer: %s units of product %s from warehouse %s to warehouse %s — %s",
				req.Quantity, productID, fromID, toID, reasonOrDefault(req.Reason)),
		}
		if err := s.audit.CreateTx(tx, entry); err != nil {
			return apierror.Internal(err)
		}

		destination = dest
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := stockToResponse(destination)
	resp.Message = "stock transferred"
	return resp, nil
}

// ── Report ────────────────────────────────────────────────────────────────────
// Read-only aggregation: no mutation, no audit entry.

func (s *stockService) Report(ctx context.Context, actor authz.Actor) (*dto.StockReportResponse, error) {
	if err := authz.Require(actor, authz.OpStockReport); err != nil {
		return nil, err
	}

	stocks, err := s.stocks.List(ctx)
	if err != nil {
		return nil, apierror.Internal(err)
	}

	report := &dto.StockReportResponse{
		TotalItems: len(stocks),
		TotalValue: decimal.Zero,
	}

	type bucket struct {
		name  string
		count int
		value decimal.Decimal
	}
	byWarehouse := make(map[uuid.UUID]*bucket)
	warehouseOrder := make([]uuid.UUID, 0)

	for i := range stocks {
		stock := &stocks[i]
		value := stock.Value()
		report.TotalValue = report.TotalValue.Add(value)

		if stock.Quantity.LessThan(s.lowStockThreshold) {
			report.LowStock = append(report.LowStock, *stockToResponse(stock))
		}

		b, ok := byWarehouse[stock.WarehouseID]
		if !ok {
			b = &bucket{value: decimal.Zero}
			if stock.Warehouse != nil {
				b.name = stock.Warehouse.Name
			}
			byWarehouse[stock.WarehouseID] = b
			warehouseOrder = append(warehouseOrder, stock.WarehouseID)
		}
		b.count++
		b.value = b.value.Add(value)
	}

	for _, id := range warehouseOrder {
		b := byWarehouse[id]
		report.ByWarehouse = append(report.ByWarehouse, dto.WarehouseBreakdown{
			WarehouseID: id.String(),
			Warehouse:   b.name,
			ItemCount:   b.count,
			TotalValue:  b.value,
		})
	}

	since := time.Now().UTC().Add(-recentActivityWindow)
	entries, err := s.audit.ListRecentByEntityType(ctx, model.EntityStocks, since, recentActivityLimit)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	for _, e := range entries {
		report.RecentActivity = append(report.RecentActivity, dto.AuditEntryResponse{
			ID:         e.ID.String(),
			EntityType: e.EntityType,
			EntityID:   e.EntityID.String(),
			Action:     e.Action,
			UserID:     e.UserID.String(),
			Details:    e.Details,
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		})
	}

	return report, nil
}

// ── Alert ─────────────────────────────────────────────────────────────────────
// Compares the first matching ledger entry for the product against the
// caller-supplied threshold. Only a genuinely low quantity produces side
// effects (one notification, one audit entry).

func (s *stockService) Alert(ctx context.Context, actor authz.Actor, req dto.StockAlertRequest) (*dto.StockAlertResponse, error) {
	if err := authz.Require(actor, authz.OpStockAlert); err != nil {
		return nil, err
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"product_id": "must be a valid uuid"})
	}
	if req.Threshold.IsNegative() {
		return nil, apierror.Validation(map[string]string{"threshold": "must not be negative"})
	}

	stock, err := s.stocks.FindFirstByProduct(ctx, productID)
	if err != nil {
		return nil, asNotFound(err, "stock entry")
	}

	resp := &dto.StockAlertResponse{
		ProductID:   productID.String(),
		WarehouseID: stock.WarehouseID.String(),
		Quantity:    stock.Quantity,
		Threshold:   req.Threshold,
		IsLowStock:  stock.Quantity.LessThanOrEqual(req.Threshold),
	}
	if !resp.IsLowStock {
		resp.Message = "stock level above threshold"
		return resp, nil
	}

	s.notifier.Notify(ctx, actor.ID.String(), model.NotificationTypeEmail,
		fmt.Sprintf("Low stock alert: product %s at %s units (threshold %s)",
			productID, stock.Quantity, req.Threshold))
	_ = s.audit.Create(ctx, &model.TransactionLog{
		EntityType: model.EntityStocks,
		EntityID:   stock.ID,
		Action:     model.ActionUpdate,
		UserID:     actor.ID,
		Details: fmt.Sprintf("low stock alert raised: product %s at %s units (threshold %s)",
			productID, stock.Quantity, req.Threshold),
	})

	resp.Message = "low stock alert raised"
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func parsePair(productID, warehouseID string) (uuid.UUID, uuid.UUID, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apierror.Validation(map[string]string{"product_id": "must be a valid uuid"})
	}
	wid, err := uuid.Parse(warehouseID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apierror.Validation(map[string]string{"warehouse_id": "must be a valid uuid"})
	}
	return pid, wid, nil
}

func reasonOrDefault(reason string) string {
	if reason == "" {
		return "no reason given"
	}
	return reason
}

func stockToResponse(s *model.Stock) *dto.StockEntryResponse {
	name := ""
	if s.Product != nil {
		name = s.Product.Name
	}
	return &dto.StockEntryResponse{
		ID:          s.ID.String(),
		ProductID:   s.ProductID.String(),
		Product:     name,
		WarehouseID: s.WarehouseID.String(),
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		LastUpdated: s.LastUpdated.Format(time.RFC3339),
	}
}
