// Package apptest provee dobles en memoria de los puertos de persistencia para los tests
// de casos de uso y handlers. No se usa en producción.
package apptest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/zola-inventory-api/internal/application/inventory"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
)

// Store base de datos en memoria. Las transacciones se serializan y un error
// en la función restaura el estado previo (rollback).
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data state
}

type state struct {
	users     map[string]entity.User
	grants    map[string]map[entity.Permission]entity.PermissionGrant
	products  map[string]entity.Product
	suppliers map[string]entity.Supplier
	invoices  map[string]entity.Invoice
	orders    map[string]entity.PurchaseOrder
	movements []entity.StockMovement
	alerts    []entity.LowStockAlert
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: state{
		users:     map[string]entity.User{},
		grants:    map[string]map[entity.Permission]entity.PermissionGrant{},
		products:  map[string]entity.Product{},
		suppliers: map[string]entity.Supplier{},
		invoices:  map[string]entity.Invoice{},
		orders:    map[string]entity.PurchaseOrder{},
	}}
}

func (s state) clone() state {
	c := state{
		users:     make(map[string]entity.User, len(s.users)),
		grants:    make(map[string]map[entity.Permission]entity.PermissionGrant, len(s.grants)),
		products:  make(map[string]entity.Product, len(s.products)),
		suppliers: make(map[string]entity.Supplier, len(s.suppliers)),
		invoices:  make(map[string]entity.Invoice, len(s.invoices)),
		orders:    make(map[string]entity.PurchaseOrder, len(s.orders)),
		movements: append([]entity.StockMovement(nil), s.movements...),
		alerts:    append([]entity.LowStockAlert(nil), s.alerts...),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.grants {
		m := make(map[entity.Permission]entity.PermissionGrant, len(v))
		for p, g := range v {
			m[p] = g
		}
		c.grants[k] = m
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.invoices {
		v.Items = append([]entity.InvoiceItem(nil), v.Items...)
		c.invoices[k] = v
	}
	for k, v := range s.orders {
		v.Items = append([]entity.PurchaseOrderItem(nil), v.Items...)
		c.orders[k] = v
	}
	return c
}

// Repos devuelve los repositorios transaccionales sobre este store.
func (s *Store) Repos() inventory.TxRepos {
	return inventory.TxRepos{
		Products:       s.Products(),
		Movements:      s.Movements(),
		Alerts:         s.Alerts(),
		Invoices:       s.Invoices(),
		PurchaseOrders: s.PurchaseOrders(),
	}
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

var _ inventory.TxRunner = (*Store)(nil)

// ─── Users ──────────────────────────────────────────────────────────────────

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	r.s.data.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.users[u.ID] = *u
	return nil
}

func (r userRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0, len(r.s.data.users))
	for _, u := range r.s.data.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return paginate(out, limit, offset), nil
}

// ─── Permissions ────────────────────────────────────────────────────────────

// Permissions repositorio de concesiones.
func (s *Store) Permissions() repository.PermissionRepository { return permRepo{s} }

type permRepo struct{ s *Store }

func (r permRepo) ListByUser(_ context.Context, userID string) ([]entity.PermissionGrant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.PermissionGrant, 0)
	for _, p := range entity.AllPermissions {
		if g, ok := r.s.data.grants[userID][p]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r permRepo) Grant(_ context.Context, g entity.PermissionGrant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.data.grants[g.UserID]
	if !ok {
		m = map[entity.Permission]entity.PermissionGrant{}
		r.s.data.grants[g.UserID] = m
	}
	if _, exists := m[g.Permission]; !exists {
		m[g.Permission] = g
	}
	return nil
}

func (r permRepo) Revoke(_ context.Context, userID string, p entity.Permission) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.grants[userID][p]; !ok {
		return false, nil
	}
	delete(r.s.data.grants[userID], p)
	return true, nil
}

// ─── Products ───────────────────────────────────────────────────────────────

// Products repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return productRepo{s} }

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.data.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.data.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	upd := *p
	upd.QuantityInStock = cur.QuantityInStock
	r.s.data.products[p.ID] = upd
	return nil
}

func (r productRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.QuantityInStock = quantity
	r.s.data.products[id] = p
	return nil
}

func (r productRepo) UpdatePhoto(_ context.Context, id, photoURL string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.PhotoURL = photoURL
	r.s.data.products[id] = p
	return nil
}

func (r productRepo) List(_ context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0)
	for _, p := range r.s.data.products {
		p := p
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.LowStock && !p.IsLowStock() {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r productRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.data.products, id)

	// Mismas acciones de las claves foráneas: SET NULL en líneas y libro, CASCADE en avisos.
	for k, o := range r.s.data.orders {
		o.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
		for i := range o.Items {
			if o.Items[i].ProductID == id {
				o.Items[i].ProductID = ""
			}
		}
		r.s.data.orders[k] = o
	}
	for k, inv := range r.s.data.invoices {
		inv.Items = append([]entity.InvoiceItem(nil), inv.Items...)
		for i := range inv.Items {
			if inv.Items[i].ProductID == id {
				inv.Items[i].ProductID = ""
			}
		}
		r.s.data.invoices[k] = inv
	}
	for i := range r.s.data.movements {
		if r.s.data.movements[i].ProductID == id {
			r.s.data.movements[i].ProductID = ""
		}
	}
	alerts := r.s.data.alerts[:0:0]
	for _, a := range r.s.data.alerts {
		if a.ProductID != id {
			alerts = append(alerts, a)
		}
	}
	r.s.data.alerts = alerts
	return nil
}

// ─── Suppliers ──────────────────────────────────────────────────────────────

// Suppliers repositorio de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository { return supplierRepo{s} }

type supplierRepo struct{ s *Store }

func (r supplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.suppliers[sp.ID] = *sp
	return nil
}

func (r supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.data.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}

func (r supplierRepo) Update(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.suppliers[sp.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.suppliers[sp.ID] = *sp
	return nil
}

func (r supplierRepo) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Supplier, 0, len(r.s.data.suppliers))
	for _, sp := range r.s.data.suppliers {
		sp := sp
		out = append(out, &sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r supplierRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.data.suppliers, id)
	return nil
}

// ─── Invoices ───────────────────────────────────────────────────────────────

// Invoices repositorio de facturas.
func (s *Store) Invoices() repository.InvoiceRepository { return invoiceRepo{s} }

type invoiceRepo struct{ s *Store }

func (r invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.invoices {
		if existing.InvoiceNumber == inv.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *inv
	cp.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	r.s.data.invoices[inv.ID] = cp
	return nil
}

func (r invoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.data.invoices[id]
	if !ok {
		return nil, nil
	}
	inv.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	return &inv, nil
}

func (r invoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.data.invoices[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.CustomerName = inv.CustomerName
	cur.PhoneNumber = inv.PhoneNumber
	cur.Notes = inv.Notes
	cur.UpdatedAt = inv.UpdatedAt
	r.s.data.invoices[inv.ID] = cur
	return nil
}

func (r invoiceRepo) UpdatePhoto(_ context.Context, id, photoURL string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.data.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.PhotoURL = photoURL
	r.s.data.invoices[id] = cur
	return nil
}

func (r invoiceRepo) List(_ context.Context, limit, offset int) ([]*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Invoice, 0, len(r.s.data.invoices))
	for _, inv := range r.s.data.invoices {
		inv := inv
		inv.Items = nil
		out = append(out, &inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r invoiceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.data.invoices, id)
	return nil
}

// ─── Purchase orders ────────────────────────────────────────────────────────

// PurchaseOrders repositorio de pedidos de compra.
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository { return orderRepo{s} }

type orderRepo struct{ s *Store }

func (r orderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *o
	cp.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
	r.s.data.orders[o.ID] = cp
	return nil
}

func (r orderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, nil
	}
	o.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
	return &o, nil
}

func (r orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r orderRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	r.s.data.orders[id] = o
	return nil
}

func (r orderRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.PurchaseOrder, 0)
	for _, o := range r.s.data.orders {
		o := o
		if status != "" && o.Status != status {
			continue
		}
		o.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r orderRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.data.orders, id)
	return nil
}

// ─── Stock movements ────────────────────────────────────────────────────────

// Movements libro de stock.
func (s *Store) Movements() repository.StockMovementRepository { return movementRepo{s} }

type movementRepo struct{ s *Store }

func (r movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.movements = append(r.s.data.movements, *m)
	return nil
}

func (r movementRepo) List(_ context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.StockMovement, 0)
	for i := len(r.s.data.movements) - 1; i >= 0; i-- {
		m := r.s.data.movements[i]
		if productID != "" && m.ProductID != productID {
			continue
		}
		out = append(out, &m)
	}
	return paginate(out, limit, offset), nil
}

// ─── Alerts ─────────────────────────────────────────────────────────────────

// Alerts avisos de stock bajo.
func (s *Store) Alerts() repository.AlertRepository { return alertRepo{s} }

type alertRepo struct{ s *Store }

func (r alertRepo) Create(_ context.Context, a *entity.LowStockAlert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.alerts = append(r.s.data.alerts, *a)
	return nil
}

func (r alertRepo) ListOpen(_ context.Context, limit int) ([]*entity.LowStockAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.LowStockAlert, 0)
	for i := len(r.s.data.alerts) - 1; i >= 0; i-- {
		a := r.s.data.alerts[i]
		if a.Acknowledged {
			continue
		}
		out = append(out, &a)
	}
	return paginate(out, limit, 0), nil
}

func (r alertRepo) Acknowledge(_ context.Context, id, userID string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.data.alerts {
		a := &r.s.data.alerts[i]
		if a.ID != id || a.Acknowledged {
			continue
		}
		a.Acknowledged = true
		a.AcknowledgedAt = &at
		a.AcknowledgedBy = userID
		return true, nil
	}
	return false, nil
}

// ─── Analytics ──────────────────────────────────────────────────────────────

// Analytics consultas agregadas.
func (s *Store) Analytics() repository.AnalyticsRepository { return analyticsRepo{s} }

type analyticsRepo struct{ s *Store }

func (r analyticsRepo) GetInventorySummary(_ context.Context) (repository.InventorySummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := repository.InventorySummary{
		TotalProducts:       len(r.s.data.products),
		TotalSuppliers:      len(r.s.data.suppliers),
		TotalInvoices:       len(r.s.data.invoices),
		TotalPurchaseOrders: len(r.s.data.orders),
		StockValue:          decimal.Zero,
	}
	for _, p := range r.s.data.products {
		p := p
		if p.IsLowStock() {
			sum.LowStockProducts++
		}
		sum.StockValue = sum.StockValue.Add(p.StockValue())
	}
	for _, o := range r.s.data.orders {
		if o.Status == entity.POStatusPending {
			sum.PendingOrders++
		}
	}
	return sum, nil
}

// ─── Helpers de inspección ──────────────────────────────────────────────────

// MovementCount cantidad de filas del libro.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.movements)
}

// AlertCount cantidad de avisos (confirmados o no).
func (s *Store) AlertCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.alerts)
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
