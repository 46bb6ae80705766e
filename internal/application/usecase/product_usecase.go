package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos.
// El stock no se edita por aquí: solo el motor de movimientos lo muta.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un nuevo producto con stock cero.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.BasePrice.LessThan(decimal.Zero) || in.SellingPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	var expiry *time.Time
	if in.ExpiryDate != "" {
		parsed, err := time.Parse("2006-01-02", in.ExpiryDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		expiry = &parsed
	}
	unit := in.Unit
	if unit == "" {
		unit = "pcs"
	}
	minStock := in.MinimumStock
	if minStock <= 0 {
		minStock = 10
	}

	now := time.Now()
	product := &entity.Product{
		ID:                   uuid.New().String(),
		SKU:                  in.SKU,
		Barcode:              in.Barcode,
		CategoryID:           in.CategoryID,
		Name:                 in.Name,
		Description:          in.Description,
		BasePrice:            in.BasePrice,
		SellingPrice:         in.SellingPrice,
		MarkupPercentage:     markupPct(in.BasePrice, in.SellingPrice),
		StockQuantity:        0,
		MinimumStock:         minStock,
		Unit:                 unit,
		RequiresPrescription: in.RequiresPrescription,
		ExpiryDate:           expiry,
		BatchNumber:          in.BatchNumber,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// markupPct calcula el margen porcentual sobre el precio base (0 si base es 0).
func markupPct(base, selling decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return selling.Sub(base).Div(base).Mul(hundred).Round(2)
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) ([]*dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// ListLowStock lista los productos activos en o por debajo del stock mínimo.
func (uc *ProductUseCase) ListLowStock(limit int) ([]*dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.repo.ListLowStock(limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update actualiza los campos editables del producto.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.BasePrice != nil {
		if in.BasePrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.BasePrice = *in.BasePrice
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.SellingPrice = *in.SellingPrice
	}
	if in.MinimumStock != nil {
		if *in.MinimumStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinimumStock = *in.MinimumStock
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.MarkupPercentage = markupPct(product.BasePrice, product.SellingPrice)
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                   p.ID,
		SKU:                  p.SKU,
		Barcode:              p.Barcode,
		CategoryID:           p.CategoryID,
		Name:                 p.Name,
		Description:          p.Description,
		BasePrice:            p.BasePrice,
		SellingPrice:         p.SellingPrice,
		StockQuantity:        p.StockQuantity,
		MinimumStock:         p.MinimumStock,
		Unit:                 p.Unit,
		RequiresPrescription: p.RequiresPrescription,
		IsActive:             p.IsActive,
		LowStock:             p.IsLowStock(),
		CreatedAt:            p.CreatedAt,
	}
}
