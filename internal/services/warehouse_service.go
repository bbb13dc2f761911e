package services

import (
	"context"

	"stockroom/internal/apperr"
	"stockroom/internal/metrics"
	"stockroom/internal/models"
	"stockroom/internal/repository"
	"stockroom/internal/security"
	"stockroom/internal/utils/logger"
)

type WarehouseService struct {
	store    repository.Store
	security *security.Service
	log      *logger.Logger
}

func NewWarehouseService(store repository.Store, sec *security.Service) *WarehouseService {
	return &WarehouseService{
		store:    store,
		security: sec,
		log:      logger.New("warehouse_service"),
	}
}

func (s *WarehouseService) ListWarehouses(ctx context.Context, role models.Role) ([]models.Warehouse, error) {
	if err := s.security.CheckAccess(role, models.OperationStore, models.ResourceWarehouse); err != nil {
		return nil, err
	}
	return s.store.Repos().Warehouses.FindAll(ctx)
}

func (s *WarehouseService) GetWarehouse(ctx context.Context, role models.Role, id uint) (*models.Warehouse, error) {
	if err := s.security.CheckAccess(role, models.OperationStore, models.ResourceWarehouse); err != nil {
		return nil, err
	}
	warehouse, err := s.store.Repos().Warehouses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, apperr.WarehouseNotFound(id)
	}
	return warehouse, nil
}

// AddWarehouse registers a warehouse. Capacity must sit inside the
// accepted band and names are unique. New warehouses start empty.
func (s *WarehouseService) AddWarehouse(ctx context.Context, role models.Role, name string, capacity int64) (*models.Warehouse, error) {
	if err := s.security.CheckAccess(role, models.OperationAdd, models.ResourceWarehouse); err != nil {
		return nil, err
	}
	if name == "" || capacity == 0 {
		return nil, apperr.EmptyData()
	}
	if capacity < models.MinWarehouseCapacity || capacity > models.MaxWarehouseCapacity {
		return nil, apperr.IllegalCapacity(models.MinWarehouseCapacity, models.MaxWarehouseCapacity)
	}

	warehouse := &models.Warehouse{Name: name, Capacity: capacity, OccupiedArea: 0}
	err := s.store.Do(ctx, func(r *repository.Repos) error {
		taken, err := r.Warehouses.ExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if taken {
			return apperr.WarehouseAlreadyExists(name)
		}
		return r.Warehouses.Create(ctx, warehouse)
	})
	if err != nil {
		return nil, err
	}

	metrics.SetWarehouseOccupancy(warehouse.ID, warehouse.Name, 0, capacity)
	s.log.Info("added warehouse %q capacity=%d", name, capacity)
	return warehouse, nil
}

// ModifyWarehouse updates the fields that are present. A blank name and
// a nil capacity mean "leave as is".
func (s *WarehouseService) ModifyWarehouse(ctx context.Context, role models.Role, id uint, name string, capacity *int64) (*models.Warehouse, error) {
	if err := s.security.CheckAccess(role, models.OperationModify, models.ResourceWarehouse); err != nil {
		return nil, err
	}

	var warehouse *models.Warehouse
	err := s.store.Do(ctx, func(r *repository.Repos) error {
		var err error
		warehouse, err = r.Warehouses.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return apperr.WarehouseNotFound(id)
		}
		if name != "" && name != warehouse.Name {
			taken, err := r.Warehouses.ExistsByName(ctx, name)
			if err != nil {
				return err
			}
			if taken {
				return apperr.WarehouseAlreadyExists(name)
			}
			warehouse.Name = name
		}
		if capacity != nil {
			if *capacity < models.MinWarehouseCapacity || *capacity > models.MaxWarehouseCapacity {
				return apperr.IllegalCapacity(models.MinWarehouseCapacity, models.MaxWarehouseCapacity)
			}
			if *capacity < warehouse.OccupiedArea {
				return apperr.CapacityExceeded(id)
			}
			warehouse.Capacity = *capacity
		}
		return r.Warehouses.Save(ctx, warehouse)
	})
	if err != nil {
		return nil, err
	}

	metrics.SetWarehouseOccupancy(warehouse.ID, warehouse.Name, warehouse.OccupiedArea, warehouse.Capacity)
	return warehouse, nil
}

// SetOccupiedArea overrides the occupancy counter directly. The model
// guards the accepted range.
func (s *WarehouseService) SetOccupiedArea(ctx context.Context, role models.Role, id uint, value int64) (*models.Warehouse, error) {
	if err := s.security.CheckAccess(role, models.OperationModify, models.ResourceWarehouse); err != nil {
		return nil, err
	}

	var warehouse *models.Warehouse
	err := s.store.Do(ctx, func(r *repository.Repos) error {
		var err error
		warehouse, err = r.Warehouses.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return apperr.WarehouseNotFound(id)
		}
		if err := warehouse.SetOccupiedArea(value); err != nil {
			return err
		}
		return r.Warehouses.Save(ctx, warehouse)
	})
	if err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (s *WarehouseService) DeleteWarehouse(ctx context.Context, role models.Role, id uint) error {
	if err := s.security.CheckAccess(role, models.OperationRemoval, models.ResourceWarehouse); err != nil {
		return err
	}

	return s.store.Do(ctx, func(r *repository.Repos) error {
		warehouse, err := r.Warehouses.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return apperr.WarehouseNotFound(id)
		}
		return r.Warehouses.Delete(ctx, warehouse)
	})
}
