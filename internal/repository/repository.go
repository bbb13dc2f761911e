package repository

import (
	"context"

	"stockroom/internal/models"
)

// Find* methods return (nil, nil) when no row matches; services decide
// which typed failure a miss maps to.

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindByName(ctx context.Context, name string) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindBySize(ctx context.Context, size models.ProductSize) ([]models.Product, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, product *models.Product) error
}

type StockRepository interface {
	Create(ctx context.Context, stock *models.Stock) error
	FindByProductID(ctx context.Context, productID uint) (*models.Stock, error)
	FindByProductName(ctx context.Context, productName string) (*models.Stock, error)
	Save(ctx context.Context, stock *models.Stock) error
	Delete(ctx context.Context, stock *models.Stock) error
}

type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *models.Warehouse) error
	FindByID(ctx context.Context, id uint) (*models.Warehouse, error)
	FindAll(ctx context.Context) ([]models.Warehouse, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, warehouse *models.Warehouse) error
	Delete(ctx context.Context, warehouse *models.Warehouse) error
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	FindByID(ctx context.Context, id uint) (*models.Employee, error)
	FindByUsername(ctx context.Context, username string) (*models.Employee, error)
	FindAll(ctx context.Context) ([]models.Employee, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, employee *models.Employee) error
}

// Repos bundles the repositories one unit of work sees.
type Repos struct {
	Products   ProductRepository
	Stocks     StockRepository
	Warehouses WarehouseRepository
	Employees  EmployeeRepository
}

// Store is the persistence capability the services depend on. Do runs
// fn against repositories bound to one transaction: either every write
// inside fn lands, or none do. Task completion relies on this to apply
// its stock delta and capacity delta as one atomic unit.
type Store interface {
	Repos() *Repos
	Do(ctx context.Context, fn func(r *Repos) error) error
}
