package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Strife-cyber/agro/internal/dto"
	"github.com/Strife-cyber/agro/internal/model"
	"github.com/Strife-cyber/agro/internal/repository"
	"github.com/Strife-cyber/agro/internal/service"
)

// In-memory stubs. DB() returns nil so services run their transaction
// bodies directly; misses return gorm.ErrRecordNotFound so the not-found
// mapping behaves like the real repositories.

// ── Stock ─────────────────────────────────────────────────────────────────────

type stockKey struct{ productID, warehouseID uuid.UUID }

type stubStockRepo struct {
	entries map[stockKey]*model.Stock
	order   []stockKey
	findErr error // injected store failure for lookup paths
}

func newStubStockRepo() *stubStockRepo {
	return &stubStockRepo{entries: make(map[stockKey]*model.Stock)}
}

func (r *stubStockRepo) seed(productID, warehouseID uuid.UUID, qty, price decimal.Decimal) *model.Stock {
	s := &model.Stock{
		ID:          uuid.New(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    qty,
		UnitPrice:   price,
		LastUpdated: time.Now().UTC(),
	}
	k := stockKey{productID, warehouseID}
	r.entries[k] = s
	r.order = append(r.order, k)
	return s
}

func (r *stubStockRepo) FindByProductAndWarehouse(_ context.Context, productID, warehouseID uuid.UUID) (*model.Stock, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.entries[stockKey{productID, warehouseID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubStockRepo) FindFirstByProduct(_ context.Context, productID uuid.UUID) (*model.Stock, error) {
	for _, k := range r.order {
		if k.productID == productID {
			return r.entries[k], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubStockRepo) List(_ context.Context) ([]model.Stock, error) {
	out := make([]model.Stock, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, *r.entries[k])
	}
	return out, nil
}

func (r *stubStockRepo) FindForUpdateTx(_ *gorm.DB, productID, warehouseID uuid.UUID) (*model.Stock, error) {
	s, ok := r.entries[stockKey{productID, warehouseID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubStockRepo) CreateTx(_ *gorm.DB, s *model.Stock) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.LastUpdated = time.Now().UTC()
	k := stockKey{s.ProductID, s.WarehouseID}
	r.entries[k] = s
	r.order = append(r.order, k)
	return nil
}

func (r *stubStockRepo) SaveTx(_ *gorm.DB, s *model.Stock) error {
	s.LastUpdated = time.Now().UTC()
	r.entries[stockKey{s.ProductID, s.WarehouseID}] = s
	return nil
}

func (r *stubStockRepo) DecrementTx(_ *gorm.DB, productID, warehouseID uuid.UUID, qty decimal.Decimal) (int64, error) {
	s, ok := r.entries[stockKey{productID, warehouseID}]
	if !ok || s.Quantity.LessThan(qty) {
		return 0, nil
	}
	s.Quantity = s.Quantity.Sub(qty)
	s.LastUpdated = time.Now().UTC()
	return 1, nil
}

func (r *stubStockRepo) DB() *gorm.DB { return nil }

var _ repository.StockRepository = (*stubStockRepo)(nil)

// ── Approvisionnement ─────────────────────────────────────────────────────────

type stubApproRepo struct {
	records map[uuid.UUID]*model.Approvisionnement
}

func newStubApproRepo() *stubApproRepo {
	return &stubApproRepo{records: make(map[uuid.UUID]*model.Approvisionnement)}
}

func (r *stubApproRepo) Create(_ context.Context, a *model.Approvisionnement) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now().UTC()
	r.records[a.ID] = a
	return nil
}

func (r *stubApproRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Approvisionnement, error) {
	a, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubApproRepo) List(_ context.Context, filter dto.ApprovisionnementFilter) ([]model.Approvisionnement, int64, error) {
	var out []model.Approvisionnement
	for _, a := range r.records {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *stubApproRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Approvisionnement, error) {
	a, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubApproRepo) SaveTx(_ *gorm.DB, a *model.Approvisionnement) error {
	r.records[a.ID] = a
	return nil
}

func (r *stubApproRepo) DB() *gorm.DB { return nil }

var _ repository.ApprovisionnementRepository = (*stubApproRepo)(nil)

// ── Order ─────────────────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	o.CreatedAt = time.Now().UTC()
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── Payment / Delivery ────────────────────────────────────────────────────────

type stubPaymentRepo struct {
	payments []*model.Payment
}

func (r *stubPaymentRepo) CreateTx(_ *gorm.DB, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.payments = append(r.payments, p)
	return nil
}

func (r *stubPaymentRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*model.Payment, error) {
	for _, p := range r.payments {
		if p.OrderID != nil && *p.OrderID == orderID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPaymentRepo) FindByApprovisionnementID(_ context.Context, approID uuid.UUID) (*model.Payment, error) {
	for _, p := range r.payments {
		if p.ApprovisionnementID != nil && *p.ApprovisionnementID == approID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ repository.PaymentRepository = (*stubPaymentRepo)(nil)

type stubDeliveryRepo struct {
	deliveries []*model.Delivery
}

func (r *stubDeliveryRepo) CreateTx(_ *gorm.DB, d *model.Delivery) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.deliveries = append(r.deliveries, d)
	return nil
}

func (r *stubDeliveryRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*model.Delivery, error) {
	for _, d := range r.deliveries {
		if d.OrderID == orderID {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ repository.DeliveryRepository = (*stubDeliveryRepo)(nil)

// ── Users ─────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) seed(role string) *model.User {
	u := &model.User{
		ID:       uuid.New(),
		FullName: role + " user",
		Email:    uuid.NewString() + "@test.local",
		Role:     role,
		Active:   true,
	}
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Active {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindFirstByRole(_ context.Context, role string) (*model.User, error) {
	for _, u := range r.users {
		if u.Role == role && u.Active {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = false
	}
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── Catalog ───────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) seed(name string) *model.Product {
	p := &model.Product{ID: uuid.New(), Name: name, Active: true}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = false
	}
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubWarehouseRepo struct {
	warehouses map[uuid.UUID]*model.Warehouse
}

func newStubWarehouseRepo() *stubWarehouseRepo {
	return &stubWarehouseRepo{warehouses: make(map[uuid.UUID]*model.Warehouse)}
}

func (r *stubWarehouseRepo) seed(name string) *model.Warehouse {
	w := &model.Warehouse{ID: uuid.New(), Name: name, Active: true}
	r.warehouses[w.ID] = w
	return w
}

func (r *stubWarehouseRepo) Create(_ context.Context, w *model.Warehouse) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	r.warehouses[w.ID] = w
	return nil
}

func (r *stubWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return w, nil
}

func (r *stubWarehouseRepo) List(_ context.Context) ([]model.Warehouse, error) {
	var out []model.Warehouse
	for _, w := range r.warehouses {
		out = append(out, *w)
	}
	return out, nil
}

var _ repository.WarehouseRepository = (*stubWarehouseRepo)(nil)

// ── Audit ─────────────────────────────────────────────────────────────────────

type stubAuditRepo struct {
	entries []model.TransactionLog
}

func (r *stubAuditRepo) Create(_ context.Context, entry *model.TransactionLog) error {
	return r.append(entry)
}

func (r *stubAuditRepo) CreateTx(_ *gorm.DB, entry *model.TransactionLog) error {
	return r.append(entry)
}

func (r *stubAuditRepo) append(entry *model.TransactionLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now().UTC()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubAuditRepo) ListRecentByEntityType(_ context.Context, entityType string, since time.Time, limit int) ([]model.TransactionLog, error) {
	var out []model.TransactionLog
	for _, e := range r.entries {
		if e.EntityType == entityType && !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// byEntityType counts entries for assertions.
func (r *stubAuditRepo) byEntityType(entityType string) []model.TransactionLog {
	var out []model.TransactionLog
	for _, e := range r.entries {
		if e.EntityType == entityType {
			out = append(out, e)
		}
	}
	return out
}

var _ repository.TransactionLogRepository = (*stubAuditRepo)(nil)

// ── Notifier ──────────────────────────────────────────────────────────────────

type recordedNotification struct {
	UserID  string
	Type    string
	Message string
}

type recordingNotifier struct {
	sent []recordedNotification
}

func (n *recordingNotifier) Notify(_ context.Context, userID, notifType, message string) {
	n.sent = append(n.sent, recordedNotification{UserID: userID, Type: notifType, Message: message})
}

func (n *recordingNotifier) to(userID string) []recordedNotification {
	var out []recordedNotification
	for _, r := range n.sent {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

var _ service.Notifier = (*recordingNotifier)(nil)
