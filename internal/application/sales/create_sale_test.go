package sales_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/application/sales"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testSaleUserID = "00000000-0000-0000-0000-0000000000aa"

func seedProduct(s *memStore, id, name string, price string, stock int) {
	s.products[id] = &entity.Product{
		ID:            id,
		SKU:           "SKU-" + id,
		Name:          name,
		SellingPrice:  decimal.RequireFromString(price),
		StockQuantity: stock,
		MinimumStock:  2,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// buildSaleUC arma el caso de uso completo sobre el store en memoria,
// con el libro de stock real encadenado en la misma "transacción".
func buildSaleUC(s *memStore, policy inventory.Policy) *sales.CreateSaleUseCase {
	runner := &memTxRunner{s}
	ledger := inventory.NewStockLedgerUseCase(runner, &memMovementRepo{s}, policy)
	return sales.NewCreateSaleUseCase(
		runner, ledger,
		&catalogProductRepo{s}, &memSaleRepo{s}, &memCustomerRepo{s},
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales y semántica de pago
// ──────────────────────────────────────────────────────────────────────────────

// Venta en efectivo de dos líneas: subtotal = Σ qty*precio, total = subtotal,
// pagado = total y saldo cero.
func TestCreateSale_EfectivoTotalesYPago(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Paracetamol 500mg", "2.50", 10)
	seedProduct(s, "p2", "Ibuprofeno 400mg", "4.00", 10)
	uc := buildSaleUC(s, inventory.Policy{})

	out, err := uc.CreateSale(context.Background(), testSaleUserID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 2},
		},
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	// 3*2.50 + 2*4.00 = 15.50
	assert.True(t, decimal.RequireFromString("15.50").Equal(out.Subtotal),
		"subtotal debe ser la suma de las líneas, fue %s", out.Subtotal)
	assert.True(t, out.TotalAmount.Equal(out.Subtotal), "venta rápida sin impuestos: total == subtotal")
	assert.True(t, out.PaidAmount.Equal(out.TotalAmount), "efectivo: pagado == total")
	assert.True(t, out.BalanceAmount.IsZero(), "efectivo: saldo cero")
	assert.Equal(t, entity.PaymentStatusPaid, out.PaymentStatus)

	require.Len(t, out.Items, 2)
	assert.True(t, decimal.RequireFromString("7.50").Equal(out.Items[0].TotalPrice))
	assert.True(t, decimal.RequireFromString("8.00").Equal(out.Items[1].TotalPrice))
	assert.Equal(t, "Paracetamol 500mg", out.Items[0].ProductName)
}

// Venta a crédito: nada pagado, todo en saldo, estado unpaid.
func TestCreateSale_CreditoQuedaEnSaldo(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Amoxicilina 500mg", "12.00", 5)
	uc := buildSaleUC(s, inventory.Policy{})

	out, err := uc.CreateSale(context.Background(), testSaleUserID, dto.CreateSaleRequest{
		CustomerName:  "María Gómez",
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 2}},
		PaymentMethod: entity.PaymentMethodCredit,
	})
	require.NoError(t, err)

	assert.True(t, out.PaidAmount.IsZero(), "crédito: pagado cero")
	assert.True(t, out.BalanceAmount.Equal(out.TotalAmount), "crédito: saldo == total")
	assert.Equal(t, entity.PaymentStatusUnpaid, out.PaymentStatus)
	assert.NotEmpty(t, out.CustomerID, "venta a crédito con nombre debe resolver cliente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger de stock
// ──────────────────────────────────────────────────────────────────────────────

// Cada línea descuenta stock y deja exactamente un movimiento out con
// previous/new coherentes. Stock 5, vender 2 → 3; vender 1 más → 2.
func TestCreateSale_DescuentaStockYRegistraMovimientos(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Loratadina 10mg", "3.00", 5)
	uc := buildSaleUC(s, inventory.Policy{})
	ctx := context.Background()

	first, err := uc.CreateSale(ctx, testSaleUserID, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 2}},
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, s.products["p1"].StockQuantity)

	_, err = uc.CreateSale(ctx, testSaleUserID, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s.products["p1"].StockQuantity)

	movs, err := (&memMovementRepo{s}).ListByReference(entity.ReferenceTypeSale, first.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1, "una línea → un movimiento con la venta como referencia")
	m := movs[0]
	assert.Equal(t, entity.MovementTypeOut, m.Type)
	assert.Equal(t, 2, m.Quantity)
	assert.Equal(t, 5, m.PreviousStock)
	assert.Equal(t, 3, m.NewStock)
	assert.Equal(t, testSaleUserID, m.UserID)
}

// Stock insuficiente con la política por defecto: la venta se rechaza
// completa y el stock no cambia.
func TestCreateSale_StockInsuficiente_Rechaza(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Omeprazol 20mg", "6.00", 1)
	uc := buildSaleUC(s, inventory.Policy{})

	_, err := uc.CreateSale(context.Background(), testSaleUserID, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 3}},
		PaymentMethod: entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, s.products["p1"].StockQuantity, "el stock no debe cambiar")
	assert.Empty(t, s.movements, "no debe quedar ningún movimiento")
	assert.Empty(t, s.sales, "no debe quedar ninguna venta")
}

// Con AllowNegativeStock la misma venta pasa y el stock queda negativo.
func TestCreateSale_StockNegativoPermitidoPorPolitica(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Omeprazol 20mg", "6.00", 1)
	uc := buildSaleUC(s, inventory.Policy{AllowNegativeStock: true})

	_, err := uc.CreateSale(context.Background(), testSaleUserID, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 3}},
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, -2, s.products["p1"].StockQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad
// ──────────────────────────────────────────────────────────────────────────────

// Si la línea N falla, las líneas anteriores también se revierten: ni venta,
// ni ítems, ni movimientos, ni cliente nuevo.
func TestCreateSale_FalloEnSegundaLinea_RevierteTodo(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Paracetamol 500mg", "2.50", 10)
	seedProduct(s, "p2", "Ibuprofeno 400mg", "4.00", 1) // insuficiente para 5
	uc := buildSaleUC(s, inventory.Policy{})

	_, err := uc.CreateSale(context.Background(), testSaleUserID, dto.CreateSaleRequest{
		CustomerName: "Cliente Nuevo",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 4},
			{ProductID: "p2", Quantity: 5},
		},
		PaymentMethod: entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, s.products["p1"].StockQuantity, "la primera línea debe revertirse")
	assert.Equal(t, 1, s.products["p2"].StockQuantity)
	assert.Empty(t, s.movements)
	assert.Empty(t, s.sales)
	assert.Empty(t, s.items)
	assert.Empty(t, s.customers, "el cliente creado en la tx fallida no debe sobrevivir")
}

// ──────────────────────────────────────────────────────────────────────────────
// Numeración de facturas
// ──────────────────────────────────────────────────────────────────────────────

// Ventas sucesivas del mismo día reciben consecutivos 1, 2, 3... y el número
// queda con el formato INV-YYYYMMDD-NNNN.
func TestCreateSale_ConsecutivoDeFacturaPorDia(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Vitamina C", "1.00", 100)
	uc := buildSaleUC(s, inventory.Policy{})
	ctx := context.Background()

	day := time.Now().Format("20060102")
	for i, want := range []string{"INV-" + day + "-0001", "INV-" + day + "-0002", "INV-" + day + "-0003"} {
		out, err := uc.CreateSale(ctx, testSaleUserID, dto.CreateSaleRequest{
			Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
			PaymentMethod: entity.PaymentMethodCash,
		})
		require.NoError(t, err, "venta %d", i+1)
		assert.Equal(t, want, out.InvoiceNumber)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de cliente
// ──────────────────────────────────────────────────────────────────────────────

// El mismo nombre (con espacios extra) reutiliza el cliente existente en vez
// de crear uno nuevo.
func TestCreateSale_ClientePorNombre_FindOrCreate(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Aspirina", "1.50", 50)
	uc := buildSaleUC(s, inventory.Policy{})
	ctx := context.Background()

	first, err := uc.CreateSale(ctx, testSaleUserID, dto.CreateSaleRequest{
		CustomerName:  "Juan Pérez",
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	require.Len(t, s.customers, 1)

	second, err := uc.CreateSale(ctx, testSaleUserID, dto.CreateSaleRequest{
		CustomerName:  "  Juan Pérez  ",
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.Len(t, s.customers, 1, "no debe duplicarse el cliente")
	assert.Equal(t, first.CustomerID, second.CustomerID)
}

// Venta de mostrador sin nombre: no se crea cliente.
func TestCreateSale_SinNombreNoCreaCliente(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Aspirina", "1.50", 50)
	uc := buildSaleUC(s, inventory.Policy{})

	out, err := uc.CreateSale(context.Background(), testSaleUserID, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Empty(t, out.CustomerID)
	assert.Empty(t, s.customers)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_Validaciones(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Aspirina", "1.50", 50)
	inactive := &entity.Product{ID: "p9", SKU: "SKU-p9", Name: "Descontinuado",
		SellingPrice: decimal.New(1, 0), StockQuantity: 10, IsActive: false}
	s.products["p9"] = inactive
	uc := buildSaleUC(s, inventory.Policy{})
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateSaleRequest
		want error
	}{
		{"carrito vacío", dto.CreateSaleRequest{PaymentMethod: "cash"}, domain.ErrInvalidInput},
		{"método de pago inválido", dto.CreateSaleRequest{
			Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
			PaymentMethod: "bitcoin",
		}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateSaleRequest{
			Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 0}},
			PaymentMethod: "cash",
		}, domain.ErrInvalidInput},
		{"producto inexistente", dto.CreateSaleRequest{
			Items:         []dto.SaleItemRequest{{ProductID: "nope", Quantity: 1}},
			PaymentMethod: "cash",
		}, domain.ErrNotFound},
		{"producto inactivo", dto.CreateSaleRequest{
			Items:         []dto.SaleItemRequest{{ProductID: "p9", Quantity: 1}},
			PaymentMethod: "cash",
		}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateSale(ctx, testSaleUserID, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// Sin userID tampoco pasa.
	_, err := uc.CreateSale(ctx, "", dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSale_ConItemsYCliente(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Paracetamol 500mg", "2.50", 10)
	uc := buildSaleUC(s, inventory.Policy{})
	ctx := context.Background()

	created, err := uc.CreateSale(ctx, testSaleUserID, dto.CreateSaleRequest{
		CustomerName:  "Ana Ruiz",
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 2}},
		PaymentMethod: entity.PaymentMethodCard,
	})
	require.NoError(t, err)

	got, err := uc.GetSale(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.InvoiceNumber, got.InvoiceNumber)
	assert.Equal(t, "Ana Ruiz", got.CustomerName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Paracetamol 500mg", got.Items[0].ProductName)

	_, err = uc.GetSale(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Dos ventas simultáneas compiten por la última unidad: exactamente una gana
// y la otra recibe stock insuficiente, sin dejar nada a medias.
func TestCreateSale_ConcurrentesUltimaUnidad(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Suero oral", "3.00", 1)
	uc := buildSaleUC(s, inventory.Policy{})

	req := dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.CreateSale(context.Background(), testSaleUserID, req)
			results[i] = err
		}(i)
	}
	wg.Wait()

	ganadas, rechazadas := 0, 0
	for _, err := range results {
		switch err {
		case nil:
			ganadas++
		case domain.ErrInsufficientStock:
			rechazadas++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ganadas)
	assert.Equal(t, 1, rechazadas)
	assert.Equal(t, 0, s.products["p1"].StockQuantity)
	assert.Len(t, s.sales, 1)
	assert.Len(t, s.movements, 1)
}

// N ventas simultáneas del mismo día reciben N consecutivos distintos.
func TestCreateSale_ConcurrentesConsecutivosDistintos(t *testing.T) {
	const n = 8
	s := newMemStore()
	seedProduct(s, "p1", "Paracetamol 500mg", "2.50", 100)
	uc := buildSaleUC(s, inventory.Policy{})

	var wg sync.WaitGroup
	invoices := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := uc.CreateSale(context.Background(), testSaleUserID, dto.CreateSaleRequest{
				Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
				PaymentMethod: entity.PaymentMethodCash,
			})
			errs[i] = err
			if err == nil {
				invoices[i] = out.InvoiceNumber
			}
		}(i)
	}
	wg.Wait()

	vistos := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.False(t, vistos[invoices[i]], "número de factura repetido: %s", invoices[i])
		vistos[invoices[i]] = true
	}
	assert.Len(t, s.sales, n)
	assert.Equal(t, 100-n, s.products["p1"].StockQuantity)
}

// El orden del carrito no cambia el resultado: los productos se procesan
// siempre en orden de ID.
func TestCreateSale_CarritoDesordenado(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "Paracetamol 500mg", "2.50", 10)
	seedProduct(s, "p2", "Ibuprofeno 400mg", "4.00", 10)
	uc := buildSaleUC(s, inventory.Policy{})

	out, err := uc.CreateSale(context.Background(), testSaleUserID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p2", Quantity: 1},
			{ProductID: "p1", Quantity: 2},
		},
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	require.Len(t, out.Items, 2)
	assert.Equal(t, "p1", out.Items[0].ProductID)
	assert.Equal(t, "p2", out.Items[1].ProductID)
	assert.True(t, decimal.RequireFromString("9.00").Equal(out.TotalAmount))
}
