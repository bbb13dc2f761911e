package services

import (
	"context"

	"stockroom/internal/apperr"
	"stockroom/internal/models"
	"stockroom/internal/repository"
	"stockroom/internal/security"
	"stockroom/internal/utils/logger"
)

// ProductService owns the catalog: products and their stock records.
// Every mutating entry point goes through the authorization gate first.
type ProductService struct {
	store    repository.Store
	security *security.Service
	log      *logger.Logger
}

func NewProductService(store repository.Store, sec *security.Service) *ProductService {
	return &ProductService{
		store:    store,
		security: sec,
		log:      logger.New("product_service"),
	}
}

func (s *ProductService) ListProducts(ctx context.Context, role models.Role) ([]models.Product, error) {
	if err := s.security.CheckAccess(role, models.OperationStore, models.ResourceProduct); err != nil {
		return nil, err
	}
	return s.store.Repos().Products.FindAll(ctx)
}

func (s *ProductService) GetProductByName(ctx context.Context, role models.Role, name string) (*models.Product, error) {
	if err := s.security.CheckAccess(role, models.OperationStore, models.ResourceProduct); err != nil {
		return nil, err
	}
	product, err := s.store.Repos().Products.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.ProductNotFound(name)
	}
	return product, nil
}

func (s *ProductService) ListProductsBySize(ctx context.Context, role models.Role, size models.ProductSize) ([]models.Product, error) {
	if err := s.security.CheckAccess(role, models.OperationStore, models.ResourceProduct); err != nil {
		return nil, err
	}
	if !size.Valid() {
		return nil, apperr.InvalidSize(string(size))
	}
	return s.store.Repos().Products.FindBySize(ctx, size)
}

// AddProduct creates a product. The stock record is created separately
// once the product is assigned to a warehouse (CreateStock).
func (s *ProductService) AddProduct(ctx context.Context, role models.Role, name string, size models.ProductSize) (*models.Product, error) {
	if err := s.security.CheckAccess(role, models.OperationAdd, models.ResourceProduct); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperr.EmptyData()
	}
	if !size.Valid() {
		return nil, apperr.InvalidSize(string(size))
	}

	product := &models.Product{Name: name, Size: size}
	err := s.store.Do(ctx, func(r *repository.Repos) error {
		taken, err := r.Products.ExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if taken {
			return apperr.ProductAlreadyExists(name)
		}
		return r.Products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("added product %q size=%s", name, size)
	return product, nil
}

func (s *ProductService) RenameProduct(ctx context.Context, role models.Role, name, newName string) (*models.Product, error) {
	if err := s.security.CheckAccess(role, models.OperationModify, models.ResourceProduct); err != nil {
		return nil, err
	}
	if newName == "" {
		return nil, apperr.EmptyData()
	}

	var product *models.Product
	err := s.store.Do(ctx, func(r *repository.Repos) error {
		var err error
		product, err = r.Products.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if product == nil {
			return apperr.ProductNotFound(name)
		}
		product.Name = newName
		return r.Products.Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product together with its stock record, all or
// nothing. A product that still has stock on hand cannot be deleted.
func (s *ProductService) DeleteProduct(ctx context.Context, role models.Role, name string) error {
	if err := s.security.CheckAccess(role, models.OperationRemoval, models.ResourceProduct); err != nil {
		return err
	}

	return s.store.Do(ctx, func(r *repository.Repos) error {
		product, err := r.Products.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if product == nil {
			return apperr.ProductNotFound(name)
		}

		stock, err := r.Stocks.FindByProductID(ctx, product.ID)
		if err != nil {
			return err
		}
		if stock == nil {
			return apperr.StockNotFound(name)
		}
		if stock.Quantity > 0 {
			return apperr.NonZeroStock(name)
		}

		if err := r.Stocks.Delete(ctx, stock); err != nil {
			return err
		}
		return r.Products.Delete(ctx, product)
	})
}

// CreateStock opens a stock record for a product in a warehouse.
func (s *ProductService) CreateStock(ctx context.Context, role models.Role, productID, warehouseID uint) (*models.Stock, error) {
	if err := s.security.CheckAccess(role, models.OperationStore, models.ResourceProduct); err != nil {
		return nil, err
	}

	stock := &models.Stock{ProductID: productID, WarehouseID: warehouseID}
	err := s.store.Do(ctx, func(r *repository.Repos) error {
		productExists, err := r.Products.ExistsByID(ctx, productID)
		if err != nil {
			return err
		}
		if !productExists {
			return apperr.NotFound("product", "")
		}

		warehouseExists, err := r.Warehouses.ExistsByID(ctx, warehouseID)
		if err != nil {
			return err
		}
		if !warehouseExists {
			return apperr.WarehouseNotFound(warehouseID)
		}

		existing, err := r.Stocks.FindByProductID(ctx, productID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.AlreadyExists("stock", "")
		}
		return r.Stocks.Create(ctx, stock)
	})
	if err != nil {
		return nil, err
	}
	return stock, nil
}

// AdjustStock applies a signed delta to a product's on-hand quantity.
func (s *ProductService) AdjustStock(ctx context.Context, role models.Role, productID uint, delta int64) (*models.Stock, error) {
	if err := s.security.CheckAccess(role, models.OperationModify, models.ResourceProduct); err != nil {
		return nil, err
	}

	var stock *models.Stock
	err := s.store.Do(ctx, func(r *repository.Repos) error {
		var err error
		stock, err = r.Stocks.FindByProductID(ctx, productID)
		if err != nil {
			return err
		}
		if stock == nil {
			return apperr.StockNotFound("")
		}
		if err := stock.Adjust(delta); err != nil {
			return err
		}
		return r.Stocks.Save(ctx, stock)
	})
	if err != nil {
		return nil, err
	}
	return stock, nil
}
