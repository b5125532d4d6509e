package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, invoice_number, customer_name, phone_number, supplier_id, subtotal, shipping_price,
	tax_amount, total, notes, photo_url, created_by, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera y sus líneas. Para que sea atómico debe llamarse dentro de una tx.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		inv.ID, inv.InvoiceNumber, inv.CustomerName, inv.PhoneNumber, nullIfEmpty(inv.SupplierID),
		inv.Subtotal, inv.ShippingPrice, inv.TaxAmount, inv.Total, inv.Notes, inv.PhotoURL,
		nullIfEmpty(inv.CreatedBy), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	for i := range inv.Items {
		item := &inv.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.InvoiceID = inv.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO invoice_items (id, invoice_id, product_id, item_name, quantity, price_per_item, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, item.InvoiceID, nullIfEmpty(item.ProductID), item.ItemName, item.Quantity, item.PricePerItem, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la factura con sus líneas; nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	items, err := r.items(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

// Update modifica los datos del cliente y las notas. Importes y líneas no se editan.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE invoices SET customer_name = $2, phone_number = $3, notes = $4, updated_at = $5
		WHERE id = $1`,
		inv.ID, inv.CustomerName, inv.PhoneNumber, inv.Notes, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePhoto registra la URL de la foto del comprobante.
func (r *InvoiceRepo) UpdatePhoto(ctx context.Context, id, photoURL string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE invoices SET photo_url = $2, updated_at = now() WHERE id = $1`, id, photoURL)
	if err != nil {
		return fmt.Errorf("update invoice photo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List cabeceras más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Delete elimina la factura; las líneas se borran en cascada.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepo) items(ctx context.Context, invoiceID string) ([]entity.InvoiceItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, product_id, item_name, quantity, price_per_item, subtotal
		FROM invoice_items WHERE invoice_id = $1 ORDER BY item_name, id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var out []entity.InvoiceItem
	for rows.Next() {
		var (
			it        entity.InvoiceItem
			productID *string
		)
		if err := rows.Scan(&it.ID, &it.InvoiceID, &productID, &it.ItemName, &it.Quantity, &it.PricePerItem, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		it.ProductID = deref(productID)
		out = append(out, it)
	}
	return out, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv                   entity.Invoice
		supplierID, createdBy *string
	)
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.CustomerName, &inv.PhoneNumber, &supplierID,
		&inv.Subtotal, &inv.ShippingPrice, &inv.TaxAmount, &inv.Total, &inv.Notes, &inv.PhotoURL,
		&createdBy, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	inv.SupplierID = deref(supplierID)
	inv.CreatedBy = deref(createdBy)
	return &inv, nil
}
