package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, invoice_number, customer_id, user_id, subtotal, tax_amount,
		discount_amount, total_amount, paid_amount, balance_amount, payment_status,
		payment_method, sale_type, is_return, original_sale_id, notes, created_at, updated_at`

// SaleRepo implementación sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de una venta. Devuelve domain.ErrConflict si el
// número de factura ya existe (dos ventas del mismo día con el mismo consecutivo).
func (r *SaleRepo) Create(sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, invoice_number, customer_id, user_id, subtotal, tax_amount,
			discount_amount, total_amount, paid_amount, balance_amount, payment_status,
			payment_method, sale_type, is_return, original_sale_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.InvoiceNumber, nullIfEmpty(sale.CustomerID), sale.UserID,
		sale.Subtotal, sale.TaxAmount, sale.DiscountAmount, sale.TotalAmount,
		sale.PaidAmount, sale.BalanceAmount, sale.PaymentStatus, sale.PaymentMethod,
		sale.SaleType, sale.IsReturn, nullIfEmpty(sale.OriginalSaleID), sale.Notes,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, discount_amount, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity,
		item.UnitPrice, item.DiscountAmount, item.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID devuelve una venta por id, o nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByInvoiceNumber devuelve una venta por número de factura, o nil si no existe.
func (r *SaleRepo) GetByInvoiceNumber(invoiceNumber string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE invoice_number = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, invoiceNumber))
}

// GetItemsBySaleID devuelve las líneas de una venta.
func (r *SaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, discount_amount, total_price
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity,
			&it.UnitPrice, &it.DiscountAmount, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListRecent devuelve las últimas ventas, más recientes primero.
func (r *SaleRepo) ListRecent(limit int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) scanOne(row pgx.Row) (*entity.Sale, error) {
	s, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var customerID, originalSaleID *string
	err := row.Scan(
		&s.ID, &s.InvoiceNumber, &customerID, &s.UserID,
		&s.Subtotal, &s.TaxAmount, &s.DiscountAmount, &s.TotalAmount,
		&s.PaidAmount, &s.BalanceAmount, &s.PaymentStatus, &s.PaymentMethod,
		&s.SaleType, &s.IsReturn, &originalSaleID, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	if customerID != nil {
		s.CustomerID = *customerID
	}
	if originalSaleID != nil {
		s.OriginalSaleID = *originalSaleID
	}
	return &s, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
