package cashbook

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// CashBookUseCase registra asientos del libro de caja: ledger independiente,
// solo append, sin coordinación con ventas ni inventario.
type CashBookUseCase struct {
	repo repository.CashBookRepository
}

// NewCashBookUseCase construye el caso de uso.
func NewCashBookUseCase(repo repository.CashBookRepository) *CashBookUseCase {
	return &CashBookUseCase{repo: repo}
}

// RecordEntry valida e inserta un asiento. La fecha por defecto es hoy.
func (uc *CashBookUseCase) RecordEntry(ctx context.Context, userID string, in dto.CashEntryRequest) (*dto.CashEntryResponse, error) {
	if userID == "" || in.Description == "" || in.PaymentMethod == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.CashEntryTypeIncome && in.Type != entity.CashEntryTypeExpense {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	txDate := now
	if in.TransactionDate != "" {
		parsed, err := time.Parse("2006-01-02", in.TransactionDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		txDate = parsed
	}

	entry := &entity.CashEntry{
		ID:              uuid.New().String(),
		TransactionDate: txDate,
		Description:     in.Description,
		Type:            in.Type,
		Amount:          in.Amount,
		Category:        in.Category,
		ReferenceNumber: in.ReferenceNumber,
		PaymentMethod:   in.PaymentMethod,
		Notes:           in.Notes,
		UserID:          userID,
		CreatedAt:       now,
	}
	if err := uc.repo.Create(entry); err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// List devuelve asientos del libro de caja en un rango de fechas opcional.
func (uc *CashBookUseCase) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*dto.CashEntryResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.repo.List(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CashEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEntryResponse(e))
	}
	return out, nil
}

func toEntryResponse(e *entity.CashEntry) *dto.CashEntryResponse {
	return &dto.CashEntryResponse{
		ID:              e.ID,
		TransactionDate: e.TransactionDate.Format("2006-01-02"),
		Description:     e.Description,
		Type:            e.Type,
		Amount:          e.Amount,
		Category:        e.Category,
		ReferenceNumber: e.ReferenceNumber,
		PaymentMethod:   e.PaymentMethod,
		UserID:          e.UserID,
		CreatedAt:       e.CreatedAt,
	}
}
