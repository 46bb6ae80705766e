package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

var _ repository.CashBookRepository = (*CashBookRepo)(nil)

// CashBookRepo implementación sobre PostgreSQL.
// El libro de caja es solo append: no hay UPDATE ni DELETE.
type CashBookRepo struct {
	q Querier
}

// NewCashBookRepository construye el adaptador.
func NewCashBookRepository(q Querier) *CashBookRepo {
	return &CashBookRepo{q: q}
}

// Create persiste un asiento de caja.
func (r *CashBookRepo) Create(entry *entity.CashEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cash_book (id, transaction_date, description, type, amount, category,
			reference_number, payment_method, notes, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.TransactionDate, entry.Description, entry.Type, entry.Amount,
		entry.Category, entry.ReferenceNumber, entry.PaymentMethod, entry.Notes,
		entry.UserID, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cash entry: %w", err)
	}
	return nil
}

// List devuelve asientos de caja, más recientes primero, con filtro opcional de fechas.
func (r *CashBookRepo) List(from, to *time.Time, limit, offset int) ([]*entity.CashEntry, error) {
	query := `
		SELECT id, transaction_date, description, type, amount, category,
			reference_number, payment_method, notes, user_id, created_at
		FROM cash_book
		WHERE ($1::date IS NULL OR transaction_date >= $1)
		  AND ($2::date IS NULL OR transaction_date <= $2)
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cash entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.CashEntry
	for rows.Next() {
		var e entity.CashEntry
		if err := rows.Scan(
			&e.ID, &e.TransactionDate, &e.Description, &e.Type, &e.Amount,
			&e.Category, &e.ReferenceNumber, &e.PaymentMethod, &e.Notes,
			&e.UserID, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cash entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
