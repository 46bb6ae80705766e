package sales_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria con semántica transaccional (snapshot + restore) para
// ejercitar el todo-o-nada de la venta sin una base de datos real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex // serializa transacciones y lecturas fuera de tx
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	customers map[string]*entity.Customer
	sales     map[string]*entity.Sale
	items     []*entity.SaleItem
	counters  map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
		sales:     make(map[string]*entity.Sale),
		counters:  make(map[string]int),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for _, m := range s.movements {
		cm := *m
		c.movements = append(c.movements, &cm)
	}
	for id, cu := range s.customers {
		cc := *cu
		c.customers[id] = &cc
	}
	for id, sa := range s.sales {
		cs := *sa
		c.sales[id] = &cs
	}
	for _, it := range s.items {
		ci := *it
		c.items = append(c.items, &ci)
	}
	for k, v := range s.counters {
		c.counters[k] = v
	}
	return c
}

// restore repone los datos desde un snapshot sin tocar el mutex.
func (s *memStore) restore(from *memStore) {
	s.products = from.products
	s.movements = from.movements
	s.customers = from.customers
	s.sales = from.sales
	s.items = from.items
	s.counters = from.counters
}

// ── Repos sobre el store ──────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) SetStock(productID string, quantity int) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) ListLowStock(limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.IsActive && p.IsLowStock() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cm := *m
	r.s.movements = append(r.s.movements, &cm)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && !m.CreatedAt.Before(*to) {
			continue
		}
		cm := *m
		out = append(out, &cm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memMovementRepo) ListByReference(referenceType, referenceID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ReferenceType == referenceType && m.ReferenceID == referenceID {
			cm := *m
			out = append(out, &cm)
		}
	}
	return out, nil
}

type memCustomerRepo struct{ s *memStore }

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	cc := *c
	r.s.customers[c.ID] = &cc
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *memCustomerRepo) GetByName(name string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.Name == name {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		cc := *c
		out = append(out, &cc)
	}
	return out, nil
}

func (r *memCustomerRepo) Update(c *entity.Customer) error {
	if _, ok := r.s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cc := *c
	r.s.customers[c.ID] = &cc
	return nil
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(sale *entity.Sale) error {
	for _, existing := range r.s.sales {
		if existing.InvoiceNumber == sale.InvoiceNumber {
			return domain.ErrConflict
		}
	}
	cs := *sale
	r.s.sales[sale.ID] = &cs
	return nil
}

func (r *memSaleRepo) CreateItem(item *entity.SaleItem) error {
	ci := *item
	r.s.items = append(r.s.items, &ci)
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cs := *sale
	return &cs, nil
}

func (r *memSaleRepo) GetByInvoiceNumber(invoiceNumber string) (*entity.Sale, error) {
	for _, sale := range r.s.sales {
		if sale.InvoiceNumber == invoiceNumber {
			cs := *sale
			return &cs, nil
		}
	}
	return nil, nil
}

func (r *memSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.s.items {
		if it.SaleID == saleID {
			ci := *it
			out = append(out, &ci)
		}
	}
	return out, nil
}

func (r *memSaleRepo) ListRecent(limit int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		cs := *sale
		out = append(out, &cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memCounterRepo struct{ s *memStore }

func (r *memCounterRepo) Next(day time.Time) (int, error) {
	key := day.Format("2006-01-02")
	r.s.counters[key]++
	return r.s.counters[key], nil
}

// ── TxRunner con snapshot/restore ─────────────────────────────────────────────

// memTxRunner emula la atomicidad: toma un snapshot del store antes de fn y
// lo restaura completo si fn falla. El mutex del store hace que cada
// transacción corra de principio a fin sin ver escrituras de otra, igual que
// los locks de fila serializan las ventas concurrentes en la base real.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snapshot := r.s.clone()
	err := fn(&memMovementRepo{r.s}, &memProductRepo{r.s})
	if err != nil {
		r.s.restore(snapshot)
	}
	return err
}

func (r *memTxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	counterRepo repository.InvoiceCounterRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snapshot := r.s.clone()
	err := fn(
		&memMovementRepo{r.s}, &memProductRepo{r.s},
		&memCustomerRepo{r.s}, &memSaleRepo{r.s}, &memCounterRepo{r.s},
	)
	if err != nil {
		r.s.restore(snapshot)
	}
	return err
}

// catalogProductRepo envuelve memProductRepo con el mutex del store para las
// lecturas de catálogo que el caso de uso hace fuera de la transacción.
type catalogProductRepo struct{ s *memStore }

func (r *catalogProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&memProductRepo{r.s}).Create(p)
}

func (r *catalogProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&memProductRepo{r.s}).GetByID(id)
}

func (r *catalogProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&memProductRepo{r.s}).GetByIDForUpdate(id)
}

func (r *catalogProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&memProductRepo{r.s}).GetBySKU(sku)
}

func (r *catalogProductRepo) SetStock(productID string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&memProductRepo{r.s}).SetStock(productID, quantity)
}

func (r *catalogProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&memProductRepo{r.s}).Update(p)
}

func (r *catalogProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&memProductRepo{r.s}).List(limit, offset)
}

func (r *catalogProductRepo) ListLowStock(limit int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&memProductRepo{r.s}).ListLowStock(limit)
}
