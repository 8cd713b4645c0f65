package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Strife-cyber/agro/internal/apierror"
	"github.com/Strife-cyber/agro/internal/authz"
	"github.com/Strife-cyber/agro/internal/dto"
	"github.com/Strife-cyber/agro/internal/model"
	"github.com/Strife-cyber/agro/internal/repository"
)

// ApprovisionnementService drives the supply-proposal state machine:
// pending → validated_bd → received, with a rejected branch from either
// non-terminal state. Commercial approval (business developer) and
// physical receipt (stock manager) are deliberately separate gates; the
// audit trail records which actor authorized which half.
type ApprovisionnementService interface {
	Create(ctx context.Context, actor authz.Actor, req dto.CreateApprovisionnementRequest) (*dto.ApprovisionnementResponse, error)
	ValidateBD(ctx context.Context, actor authz.Actor, id uuid.UUID) (*dto.ApprovisionnementResponse, error)
	RejectBD(ctx context.Context, actor authz.Actor, id uuid.UUID, reason string) (*dto.ApprovisionnementResponse, error)
	ReceiveStock(ctx context.Context, actor authz.Actor, id uuid.UUID) (*dto.ApprovisionnementResponse, error)
	RejectStock(ctx context.Context, actor authz.Actor, id uuid.UUID, reason string) (*dto.ApprovisionnementResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ApprovisionnementResponse, error)
	List(ctx context.Context, filter dto.ApprovisionnementFilter) (*dto.ApprovisionnementListResponse, error)
}

type approvisionnementService struct {
	repo       repository.ApprovisionnementRepository
	stocks     repository.StockRepository
	payments   repository.PaymentRepository
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
	users      repository.UserRepository
	audit      repository.TransactionLogRepository
	notifier   Notifier
}

func NewApprovisionnementService(
	repo repository.ApprovisionnementRepository,
	stocks repository.StockRepository,
	payments repository.PaymentRepository,
	products repository.ProductRepository,
	warehouses repository.WarehouseRepository,
	users repository.UserRepository,
	audit repository.TransactionLogRepository,
	notifier Notifier,
) ApprovisionnementService {
	return &approvisionnementService{
		repo:       repo,
		stocks:     stocks,
		payments:   payments,
		products:   products,
		warehouses: warehouses,
		users:      users,
		audit:      audit,
		notifier:   notifier,
	}
}

// ── Create ────────────────────────────────────────────────────────────────────

func (s *approvisionnementService) Create(ctx context.Context, actor authz.Actor, req dto.CreateApprovisionnementRequest) (*dto.ApprovisionnementResponse, error) {
	if err := authz.Require(actor, authz.OpApproCreate); err != nil {
		return nil, err
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"product_id": "must be a valid uuid"})
	}
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"warehouse_id": "must be a valid uuid"})
	}
	deliveryDate, err := time.Parse(time.RFC3339, req.DeliveryDate)
	if err != nil {
		return nil, apierror.Validation(map[string]string{"delivery_date": "must be RFC 3339"})
	}
	if !req.Quantity.IsPositive() || !req.ProposedPrice.IsPositive() {
		return nil, apierror.Validation(map[string]string{"quantity": "must be positive", "proposed_price": "must be positive"})
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, asNotFound(err, "product")
	}
	if _, err := s.warehouses.FindByID(ctx, warehouseID); err != nil {
		return nil, asNotFound(err, "warehouse")
	}

	a := &model.Approvisionnement{
		SupplierID:    actor.ID,
		ProductID:     productID,
		WarehouseID:   warehouseID,
		Quantity:      req.Quantity,
		ProposedPrice: req.ProposedPrice,
		DeliveryDate:  deliveryDate,
		Status:        model.ApproStatusPending,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, apierror.Internal(err)
	}

	s.auditLog(ctx, a.ID, model.ActionCreate, actor.ID,
		fmt.Sprintf("supply proposal created: %s units at %s", a.Quantity, a.ProposedPrice))
	s.notifyRole(ctx, string(authz.RoleBusinessDeveloper),
		fmt.Sprintf("New supply proposal %s awaiting commercial validation", a.ID))

	resp := approToResponse(a)
	resp.Message = "supply proposal submitted"
	return resp, nil
}

// ── ValidateBD ────────────────────────────────────────────────────────────────

func (s *approvisionnementService) ValidateBD(ctx context.Context, actor authz.Actor, id uuid.UUID) (*dto.ApprovisionnementResponse, error) {
	if err := authz.Require(actor, authz.OpApproValidateBD); err != nil {
		return nil, err
	}

	a, err := s.transition(ctx, id, model.ApproStatusPending, func(a *model.Approvisionnement) {
		a.Status = model.ApproStatusValidatedBD
		actorID := actor.ID
		a.BusinessDeveloperID = &actorID
	}, actor.ID, "commercially validated by business developer")
	if err != nil {
		return nil, err
	}

	s.notifyRole(ctx, string(authz.RoleStockManager),
		fmt.Sprintf("Supply proposal %s validated, awaiting physical receipt", a.ID))

	resp := approToResponse(a)
	resp.Message = "proposal validated"
	return resp, nil
}

// ── RejectBD ──────────────────────────────────────────────────────────────────

func (s *approvisionnementService) RejectBD(ctx context.Context, actor authz.Actor, id uuid.UUID, reason string) (*dto.ApprovisionnementResponse, error) {
	if err := authz.Require(actor, authz.OpApproRejectBD); err != nil {
		return nil, err
	}

	a, err := s.transition(ctx, id, model.ApproStatusPending, func(a *model.Approvisionnement) {
		a.Status = model.ApproStatusRejected
		actorID := actor.ID
		a.BusinessDeveloperID = &actorID
		if reason != "" {
			a.RejectionReason = &reason
		}
	}, actor.ID, "rejected by business developer: "+reason)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, a.SupplierID.String(), model.NotificationTypeEmail,
		rejectionMessage(a.ID, reason))

	resp := approToResponse(a)
	resp.Message = "proposal rejected"
	return resp, nil
}

// ── ReceiveStock ──────────────────────────────────────────────────────────────
// The whole receipt is one atomic unit: status flip, ledger upsert,
// payment stub and audit entry commit or roll back together. The ledger
// row is locked first so a concurrent order decrement serializes behind
// the credit.

func (s *approvisionnementService) ReceiveStock(ctx context.Context, actor authz.Actor, id uuid.UUID) (*dto.ApprovisionnementResponse, error) {
	if err := authz.Require(actor, authz.OpApproReceive); err != nil {
		return nil, err
	}

	var received *model.Approvisionnement
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		a, err := s.repo.FindForUpdateTx(tx, id)
		if err != nil {
			return asNotFound(err, "approvisionnement")
		}
		if a.Status != model.ApproStatusValidatedBD {
			return apierror.StateConflict(fmt.Sprintf(
				"approvisionnement is %s, receipt requires validated_bd", a.Status))
		}

		a.Status = model.ApproStatusReceived
		actorID := actor.ID
		a.StockManagerID = &actorID
		if err := s.repo.SaveTx(tx, a); err != nil {
			return apierror.Internal(err)
		}

		// Ledger upsert: credit the existing pair, or create it lazily.
		// The proposed price overwrites the stored unit price either way.
		stock, err := s.stocks.FindForUpdateTx(tx, a.ProductID, a.WarehouseID)
		switch {
		case err == nil:
			stock.Quantity = stock.Quantity.Add(a.Quantity)
			stock.UnitPrice = a.ProposedPrice
			approID := a.ID
			stock.ApprovisionnementID = &approID
			if err := s.stocks.SaveTx(tx, stock); err != nil {
				return apierror.Internal(err)
			}
		case isRecordNotFound(err):
			approID := a.ID
			stock = &model.Stock{
				ProductID:           a.ProductID,
				WarehouseID:         a.WarehouseID,
				Quantity:            a.Quantity,
				UnitPrice:           a.ProposedPrice,
				ApprovisionnementID: &approID,
			}
			if err := s.stocks.CreateTx(tx, stock); err != nil {
				return apierror.Internal(err)
			}
		default:
			return apierror.Internal(err)
		}

		approID := a.ID
		payment := &model.Payment{
			ApprovisionnementID: &approID,
			Amount:              a.Quantity.Mul(a.ProposedPrice),
			PaymentMethod:       model.PaymentMethodDirect,
			Status:              model.PaymentStatusPending,
			PaymentDate:         time.Now().UTC(),
		}
		if err := s.payments.CreateTx(tx, payment); err != nil {
			return apierror.Internal(err)
		}

		entry := &model.TransactionLog{
			EntityType: model.EntityStocks,
			EntityID:   stock.ID,
			Action:     model.ActionUpdate,
			UserID:     actor.ID,
			Details: fmt.Sprintf("received %s units of product %s into warehouse %s (approvisionnement %s)",
				a.Quantity, a.ProductID, a.WarehouseID, a.ID),
		}
		if err := s.audit.CreateTx(tx, entry); err != nil {
			return apierror.Internal(err)
		}

		received = a
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Post-commit, best-effort.
	s.notifier.Notify(ctx, received.SupplierID.String(), model.NotificationTypeEmail,
		fmt.Sprintf("Your delivery for proposal %s was received; payment of %s has been initiated",
			received.ID, received.Quantity.Mul(received.ProposedPrice)))

	resp := approToResponse(received)
	resp.Message = "stock received, payment initiated"
	return resp, nil
}

// ── RejectStock ───────────────────────────────────────────────────────────────

func (s *approvisionnementService) RejectStock(ctx context.Context, actor authz.Actor, id uuid.UUID, reason string) (*dto.ApprovisionnementResponse, error) {
	if err := authz.Require(actor, authz.OpApproRejectStock); err != nil {
		return nil, err
	}

	a, err := s.transition(ctx, id, model.ApproStatusValidatedBD, func(a *model.Approvisionnement) {
		a.Status = model.ApproStatusRejected
		actorID := actor.ID
		a.StockManagerID = &actorID
		if reason != "" {
			a.RejectionReason = &reason
		}
	}, actor.ID, "rejected at receipt by stock manager: "+reason)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, a.SupplierID.String(), model.NotificationTypeEmail,
		rejectionMessage(a.ID, reason))

	resp := approToResponse(a)
	resp.Message = "delivery rejected"
	return resp, nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *approvisionnementService) Get(ctx context.Context, id uuid.UUID) (*dto.ApprovisionnementResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "approvisionnement")
	}
	return approToResponse(a), nil
}

func (s *approvisionnementService) List(ctx context.Context, filter dto.ApprovisionnementFilter) (*dto.ApprovisionnementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	items := make([]dto.ApprovisionnementResponse, 0, len(records))
	for i := range records {
		items = append(items, *approToResponse(&records[i]))
	}
	return &dto.ApprovisionnementListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Internals ─────────────────────────────────────────────────────────────────

// transition applies a guarded state change: the record is locked, its
// status checked against required, mutated, saved and audited in one
// transaction.
func (s *approvisionnementService) transition(
	ctx context.Context,
	id uuid.UUID,
	required string,
	mutate func(*model.Approvisionnement),
	actorID uuid.UUID,
	details string,
) (*model.Approvisionnement, error) {
	var result *model.Approvisionnement
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		a, err := s.repo.FindForUpdateTx(tx, id)
		if err != nil {
			return asNotFound(err, "approvisionnement")
		}
		if a.Status != required {
			return apierror.StateConflict(fmt.Sprintf(
				"approvisionnement is %s, expected %s", a.Status, required))
		}

		mutate(a)
		if err := s.repo.SaveTx(tx, a); err != nil {
			return apierror.Internal(err)
		}

		entry := &model.TransactionLog{
			EntityType: model.EntityApprovisionnements,
			EntityID:   a.ID,
			Action:     model.ActionUpdate,
			UserID:     actorID,
			Details:    details,
		}
		if err := s.audit.CreateTx(tx, entry); err != nil {
			return apierror.Internal(err)
		}

		result = a
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

// auditLog appends an entry outside any transaction; failure is logged by
// the repository caller chain, never surfaced.
func (s *approvisionnementService) auditLog(ctx context.Context, entityID uuid.UUID, action string, userID uuid.UUID, details string) {
	_ = s.audit.Create(ctx, &model.TransactionLog{
		EntityType: model.EntityApprovisionnements,
		EntityID:   entityID,
		Action:     action,
		UserID:     userID,
		Details:    details,
	})
}

// notifyRole notifies the first active user holding a role. Which staff
// member picks the work up is not modeled; one recipient is enough to
// surface the pending item.
func (s *approvisionnementService) notifyRole(ctx context.Context, role, message string) {
	user, err := s.users.FindFirstByRole(ctx, role)
	if err != nil {
		return
	}
	s.notifier.Notify(ctx, user.ID.String(), model.NotificationTypeEmail, message)
}

func rejectionMessage(id uuid.UUID, reason string) string {
	if reason == "" {
		return fmt.Sprintf("Your supply proposal %s was rejected", id)
	}
	return fmt.Sprintf("Your supply proposal %s was rejected: %s", id, reason)
}

func approToResponse(a *model.Approvisionnement) *dto.ApprovisionnementResponse {
	resp := &dto.ApprovisionnementResponse{
		ID:            a.ID.String(),
		SupplierID:    a.SupplierID.String(),
		ProductID:     a.ProductID.String(),
		WarehouseID:   a.WarehouseID.String(),
		Quantity:      a.Quantity,
		ProposedPrice: a.ProposedPrice,
		DeliveryDate:  a.DeliveryDate.Format(time.RFC3339),
		Status:        a.Status,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
	if a.BusinessDeveloperID != nil {
		id := a.BusinessDeveloperID.String()
		resp.BusinessDeveloperID = &id
	}
	if a.StockManagerID != nil {
		id := a.StockManagerID.String()
		resp.StockManagerID = &id
	}
	resp.RejectionReason = a.RejectionReason
	return resp
}
