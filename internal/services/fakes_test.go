package services

import (
	"context"
	"sync"

	"stockroom/internal/models"
	"stockroom/internal/repository"
)

// memStore is an in-memory repository.Store for exercising the
// services without a database. Find methods hand out copies so a
// mutation only lands once Save is called, the same contract the real
// store gives.
type memStore struct {
	mu         sync.Mutex
	nextID     uint
	products   map[uint]models.Product
	stocks     map[uint]models.Stock // keyed by product id
	warehouses map[uint]models.Warehouse
	employees  map[uint]models.Employee
}

func newMemStore() *memStore {
	return &memStore{
		nextID:     1,
		products:   make(map[uint]models.Product),
		stocks:     make(map[uint]models.Stock),
		warehouses: make(map[uint]models.Warehouse),
		employees:  make(map[uint]models.Employee),
	}
}

func (m *memStore) allocID() uint {
	id := m.nextID
	m.nextID++
	return id
}

func (m *memStore) Repos() *repository.Repos {
	return &repository.Repos{
		Products:   &memProducts{m},
		Stocks:     &memStocks{m},
		Warehouses: &memWarehouses{m},
		Employees:  &memEmployees{m},
	}
}

func (m *memStore) Do(ctx context.Context, fn func(*repository.Repos) error) error {
	return fn(m.Repos())
}

type memProducts struct{ s *memStore }

func (r *memProducts) Create(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	product.ID = r.s.allocID()
	r.s.products[product.ID] = *product
	return nil
}

func (r *memProducts) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *memProducts) FindByName(ctx context.Context, name string) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Name == name {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memProducts) FindAll(ctx context.Context) ([]models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProducts) FindBySize(ctx context.Context, size models.ProductSize) ([]models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Product
	for _, p := range r.s.products {
		if p.Size == size {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProducts) ExistsByID(ctx context.Context, id uint) (bool, error) {
	p, _ := r.FindByID(ctx, id)
	return p != nil, nil
}

func (r *memProducts) ExistsByName(ctx context.Context, name string) (bool, error) {
	p, _ := r.FindByName(ctx, name)
	return p != nil, nil
}

func (r *memProducts) Save(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[product.ID] = *product
	return nil
}

func (r *memProducts) Delete(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, product.ID)
	return nil
}

type memStocks struct{ s *memStore }

func (r *memStocks) Create(ctx context.Context, stock *models.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stock.ID = r.s.allocID()
	r.s.stocks[stock.ProductID] = *stock
	return nil
}

func (r *memStocks) FindByProductID(ctx context.Context, productID uint) (*models.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if st, ok := r.s.stocks[productID]; ok {
		return &st, nil
	}
	return nil, nil
}

func (r *memStocks) FindByProductName(ctx context.Context, productName string) (*models.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Name == productName {
			if st, ok := r.s.stocks[p.ID]; ok {
				return &st, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *memStocks) Save(ctx context.Context, stock *models.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stocks[stock.ProductID] = *stock
	return nil
}

func (r *memStocks) Delete(ctx context.Context, stock *models.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.stocks, stock.ProductID)
	return nil
}

type memWarehouses struct{ s *memStore }

func cloneWarehouse(w models.Warehouse) models.Warehouse {
	tasks := make([]models.WarehouseTask, len(w.Tasks))
	copy(tasks, w.Tasks)
	w.Tasks = tasks
	return w
}

func (r *memWarehouses) Create(ctx context.Context, warehouse *models.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	warehouse.ID = r.s.allocID()
	r.s.warehouses[warehouse.ID] = cloneWarehouse(*warehouse)
	return nil
}

func (r *memWarehouses) FindByID(ctx context.Context, id uint) (*models.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w, ok := r.s.warehouses[id]; ok {
		w = cloneWarehouse(w)
		return &w, nil
	}
	return nil, nil
}

func (r *memWarehouses) FindAll(ctx context.Context) ([]models.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Warehouse, 0, len(r.s.warehouses))
	for _, w := range r.s.warehouses {
		out = append(out, cloneWarehouse(w))
	}
	return out, nil
}

func (r *memWarehouses) ExistsByID(ctx context.Context, id uint) (bool, error) {
	w, _ := r.FindByID(ctx, id)
	return w != nil, nil
}

func (r *memWarehouses) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.warehouses {
		if w.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *memWarehouses) Save(ctx context.Context, warehouse *models.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.warehouses[warehouse.ID] = cloneWarehouse(*warehouse)
	return nil
}

func (r *memWarehouses) Delete(ctx context.Context, warehouse *models.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.warehouses, warehouse.ID)
	return nil
}

type memEmployees struct{ s *memStore }

func (r *memEmployees) Create(ctx context.Context, employee *models.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	employee.ID = r.s.allocID()
	r.s.employees[employee.ID] = *employee
	return nil
}

func (r *memEmployees) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := r.s.employees[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (r *memEmployees) FindByUsername(ctx context.Context, username string) (*models.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.Username == username {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (r *memEmployees) FindAll(ctx context.Context) ([]models.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Employee, 0, len(r.s.employees))
	for _, e := range r.s.employees {
		out = append(out, e)
	}
	return out, nil
}

func (r *memEmployees) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	e, _ := r.FindByUsername(ctx, username)
	return e != nil, nil
}

func (r *memEmployees) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memEmployees) Save(ctx context.Context, employee *models.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.employees[employee.ID] = *employee
	return nil
}

// fakeNotifier records activation emails instead of sending them.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []uint
}

func (f *fakeNotifier) SendActivationEmail(ctx context.Context, employee *models.Employee, activationToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, employee.ID)
	return nil
}
