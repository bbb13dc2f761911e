package repository

import (
	"context"
	"errors"

	"stockroom/internal/models"

	"gorm.io/gorm"
)

// GormStore implements Store on top of a *gorm.DB.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Repos() *Repos {
	return reposFor(s.db)
}

func (s *GormStore) Do(ctx context.Context, fn func(r *Repos) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func reposFor(db *gorm.DB) *Repos {
	return &Repos{
		Products:   &gormProducts{db: db},
		Stocks:     &gormStocks{db: db},
		Warehouses: &gormWarehouses{db: db},
		Employees:  &gormEmployees{db: db},
	}
}

func first[T any](db *gorm.DB, conds ...interface{}) (*T, error) {
	var entity T
	if err := db.First(&entity, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func exists(db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type gormProducts struct {
	db *gorm.DB
}

func (r *gormProducts) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *gormProducts) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	return first[models.Product](r.db.WithContext(ctx), "id = ?", id)
}

func (r *gormProducts) FindByName(ctx context.Context, name string) (*models.Product, error) {
	return first[models.Product](r.db.WithContext(ctx), "product_name = ?", name)
}

func (r *gormProducts) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Order("id").Find(&products).Error
	return products, err
}

func (r *gormProducts) FindBySize(ctx context.Context, size models.ProductSize) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Where("product_size = ?", size).Order("id").Find(&products).Error
	return products, err
}

func (r *gormProducts) ExistsByID(ctx context.Context, id uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Product{}, "id = ?", id)
}

func (r *gormProducts) ExistsByName(ctx context.Context, name string) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Product{}, "product_name = ?", name)
}

func (r *gormProducts) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *gormProducts) Delete(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Delete(product).Error
}

type gormStocks struct {
	db *gorm.DB
}

func (r *gormStocks) Create(ctx context.Context, stock *models.Stock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

func (r *gormStocks) FindByProductID(ctx context.Context, productID uint) (*models.Stock, error) {
	return first[models.Stock](r.db.WithContext(ctx), "product_id = ?", productID)
}

func (r *gormStocks) FindByProductName(ctx context.Context, productName string) (*models.Stock, error) {
	var stock models.Stock
	err := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = stocks.product_id").
		Where("products.product_name = ?", productName).
		First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

func (r *gormStocks) Save(ctx context.Context, stock *models.Stock) error {
	return r.db.WithContext(ctx).Save(stock).Error
}

func (r *gormStocks) Delete(ctx context.Context, stock *models.Stock) error {
	return r.db.WithContext(ctx).Delete(stock).Error
}

type gormWarehouses struct {
	db *gorm.DB
}

func (r *gormWarehouses) Create(ctx context.Context, warehouse *models.Warehouse) error {
	return r.db.WithContext(ctx).Create(warehouse).Error
}

func (r *gormWarehouses) FindByID(ctx context.Context, id uint) (*models.Warehouse, error) {
	return first[models.Warehouse](r.db.WithContext(ctx), "id = ?", id)
}

func (r *gormWarehouses) FindAll(ctx context.Context) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	err := r.db.WithContext(ctx).Order("id").Find(&warehouses).Error
	return warehouses, err
}

func (r *gormWarehouses) ExistsByID(ctx context.Context, id uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Warehouse{}, "id = ?", id)
}

func (r *gormWarehouses) ExistsByName(ctx context.Context, name string) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Warehouse{}, "warehouse_name = ?", name)
}

func (r *gormWarehouses) Save(ctx context.Context, warehouse *models.Warehouse) error {
	return r.db.WithContext(ctx).Save(warehouse).Error
}

func (r *gormWarehouses) Delete(ctx context.Context, warehouse *models.Warehouse) error {
	return r.db.WithContext(ctx).Delete(warehouse).Error
}

type gormEmployees struct {
	db *gorm.DB
}

func (r *gormEmployees) Create(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *gormEmployees) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	return first[models.Employee](r.db.WithContext(ctx), "id = ?", id)
}

func (r *gormEmployees) FindByUsername(ctx context.Context, username string) (*models.Employee, error) {
	return first[models.Employee](r.db.WithContext(ctx), "username = ?", username)
}

func (r *gormEmployees) FindAll(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).Order("id").Find(&employees).Error
	return employees, err
}

func (r *gormEmployees) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Employee{}, "username = ?", username)
}

func (r *gormEmployees) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Employee{}, "email = ?", email)
}

func (r *gormEmployees) Save(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}
