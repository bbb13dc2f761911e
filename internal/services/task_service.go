package services

import (
	"context"
	"sync"
	"time"

	"stockroom/internal/apperr"
	"stockroom/internal/metrics"
	"stockroom/internal/models"
	"stockroom/internal/repository"
	"stockroom/internal/security"
	"stockroom/internal/utils/logger"
)

// TaskService drives the warehouse task lifecycle. Tasks live inside
// their warehouse row, so every mutation serializes on a per-warehouse
// lock and runs inside a single store transaction.
type TaskService struct {
	store    repository.Store
	security *security.Service
	locks    sync.Map // warehouse id -> *sync.Mutex
	log      *logger.Logger
}

func NewTaskService(store repository.Store, sec *security.Service) *TaskService {
	return &TaskService{
		store:    store,
		security: sec,
		log:      logger.New("task_service"),
	}
}

func (s *TaskService) lockWarehouse(id uint) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// CreateTask validates and appends a new task to the warehouse. The
// stock and capacity checks here are advisory: stock can drain and
// capacity can fill between creation and completion, and completion
// re-validates before moving anything.
func (s *TaskService) CreateTask(ctx context.Context, warehouseID, productID uint, quantity int64, status models.TaskStatus) (*models.WarehouseTask, error) {
	defer s.lockWarehouse(warehouseID)()

	var created models.WarehouseTask
	err := s.store.Do(ctx, func(r *repository.Repos) error {
		warehouse, err := r.Warehouses.FindByID(ctx, warehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return apperr.WarehouseNotFound(warehouseID)
		}

		product, stock, err := s.validateTaskInput(ctx, r, productID, quantity, status)
		if err != nil {
			return err
		}
		if status == models.StatusReleaseArea && stock.Quantity < quantity {
			return apperr.InsufficientStock(productID)
		}
		if product.Size.AreaWeight()*quantity > warehouse.AvailableCapacity() {
			return apperr.CapacityExceeded(warehouseID)
		}

		now := time.Now().UTC()
		created = models.WarehouseTask{
			ID:             warehouse.NextTaskID(),
			ProductID:      productID,
			Quantity:       quantity,
			Status:         status,
			ApprovalStatus: models.ApprovalNotApproved,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		warehouse.AppendTask(created)
		return r.Warehouses.Save(ctx, warehouse)
	})
	metrics.RecordTaskOperation("create", err)
	if err != nil {
		return nil, err
	}

	s.log.Info("created task %d in warehouse %d (%s)", created.ID, warehouseID, created.Status)
	return &created, nil
}

// validateTaskInput runs the shared creation/update checks: product
// exists, status is workable, quantity is positive, and a stock record
// exists when the task releases goods.
func (s *TaskService) validateTaskInput(ctx context.Context, r *repository.Repos, productID uint, quantity int64, status models.TaskStatus) (*models.Product, *models.Stock, error) {
	if quantity <= 0 {
		return nil, nil, apperr.InvalidInput("quantity must be positive")
	}
	if !status.IsWorkable() {
		return nil, nil, apperr.IncorrectStatus(string(status))
	}

	product, err := r.Products.FindByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, apperr.NotFound("product", "")
	}
	// A task's footprint never exceeds the largest legal warehouse,
	// which also keeps the area arithmetic within int64.
	if quantity > models.MaxWarehouseCapacity/product.Size.AreaWeight() {
		return nil, nil, apperr.InvalidInput("quantity out of range")
	}

	var stock *models.Stock
	if status == models.StatusReleaseArea {
		stock, err = r.Stocks.FindByProductID(ctx, productID)
		if err != nil {
			return nil, nil, err
		}
		if stock == nil {
			return nil, nil, apperr.StockNotFound(product.Name)
		}
	}
	return product, stock, nil
}

// ApproveTask marks a task APPROVED. Requires the warehouse operation
// modify permission; a finished task cannot be re-approved.
func (s *TaskService) ApproveTask(ctx context.Context, role models.Role, warehouseID, taskID uint) (*models.WarehouseTask, error) {
	if err := s.security.CheckAccess(role, models.OperationModify, models.ResourceWarehouseOperation); err != nil {
		return nil, err
	}
	defer s.lockWarehouse(warehouseID)()

	var approved models.WarehouseTask
	err := s.store.Do(ctx, func(r *repository.Repos) error {
		warehouse, err := r.Warehouses.FindByID(ctx, warehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return apperr.WarehouseNotFound(warehouseID)
		}

		task, idx := warehouse.FindTask(taskID)
		if task == nil {
			return apperr.TaskNotFound(taskID)
		}
		if task.ApprovalStatus == models.ApprovalDone {
			return apperr.TaskAlreadyCompleted(taskID)
		}

		task.ApprovalStatus = models.ApprovalApproved
		task.UpdatedAt = time.Now().UTC()
		warehouse.Tasks[idx] = *task
		approved = *task
		return r.Warehouses.Save(ctx, warehouse)
	})
	metrics.RecordTaskOperation("approve", err)
	if err != nil {
		return nil, err
	}
	return &approved, nil
}

// CompleteTask executes an approved task: reception moves goods in,
// release moves goods out. Stock and occupancy change together with the
// task state inside one transaction.
func (s *TaskService) CompleteTask(ctx context.Context, warehouseID, taskID uint) (*models.WarehouseTask, error) {
	defer s.lockWarehouse(warehouseID)()

	var done models.WarehouseTask
	var occupied, capacity int64
	var warehouseName string
	err := s.store.Do(ctx, func(r *repository.Repos) error {
		warehouse, err := r.Warehouses.FindByID(ctx, warehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return apperr.WarehouseNotFound(warehouseID)
		}

		task, idx := warehouse.FindTask(taskID)
		if task == nil {
			return apperr.TaskNotFound(taskID)
		}
		switch task.ApprovalStatus {
		case models.ApprovalDone:
			return apperr.TaskAlreadyCompleted(taskID)
		case models.ApprovalNotApproved:
			return apperr.TaskNotApproved(taskID)
		}
		if !task.Status.IsWorkable() {
			return apperr.IncorrectStatus(string(task.Status))
		}

		product, err := r.Products.FindByID(ctx, task.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return apperr.NotFound("product", "")
		}
		stock, err := r.Stocks.FindByProductID(ctx, task.ProductID)
		if err != nil {
			return err
		}
		if stock == nil {
			return apperr.StockNotFound(product.Name)
		}

		area := product.Size.AreaWeight() * task.Quantity
		switch task.Status {
		case models.StatusReceptionArea:
			if err := stock.Adjust(task.Quantity); err != nil {
				return err
			}
			if warehouse.OccupiedArea+area > warehouse.Capacity {
				return apperr.CapacityExceeded(warehouseID)
			}
			warehouse.OccupiedArea += area
		case models.StatusReleaseArea:
			if err := stock.Adjust(-task.Quantity); err != nil {
				return err
			}
			if warehouse.OccupiedArea-area < 0 {
				return apperr.CapacityExceeded(warehouseID)
			}
			warehouse.OccupiedArea -= area
		}

		task.ApprovalStatus = models.ApprovalDone
		task.UpdatedAt = time.Now().UTC()
		warehouse.Tasks[idx] = *task
		done = *task
		occupied, capacity = warehouse.OccupiedArea, warehouse.Capacity
		warehouseName = warehouse.Name

		if err := r.Stocks.Save(ctx, stock); err != nil {
			return err
		}
		return r.Warehouses.Save(ctx, warehouse)
	})
	metrics.RecordTaskOperation("complete", err)
	if err != nil {
		return nil, err
	}

	metrics.SetWarehouseOccupancy(warehouseID, warehouseName, occupied, capacity)
	s.log.Info("completed task %d in warehouse %d", taskID, warehouseID)
	return &done, nil
}

// ModifyTask replaces the mutable fields of a pending task and resets
// its approval, so a changed task has to be approved again.
func (s *TaskService) ModifyTask(ctx context.Context, warehouseID uint, updated models.WarehouseTask) (*models.WarehouseTask, error) {
	defer s.lockWarehouse(warehouseID)()

	var result models.WarehouseTask
	err := s.store.Do(ctx, func(r *repository.Repos) error {
		warehouse, err := r.Warehouses.FindByID(ctx, warehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return apperr.WarehouseNotFound(warehouseID)
		}

		task, idx := warehouse.FindTask(updated.ID)
		if task == nil {
			return apperr.TaskNotFound(updated.ID)
		}

		_, stock, err := s.validateTaskInput(ctx, r, updated.ProductID, updated.Quantity, updated.Status)
		if err != nil {
			return err
		}
		if updated.Status == models.StatusReleaseArea && stock.Quantity < updated.Quantity {
			return apperr.InsufficientStock(updated.ProductID)
		}

		task.ProductID = updated.ProductID
		task.Quantity = updated.Quantity
		task.Status = updated.Status
		task.ApprovalStatus = models.ApprovalNotApproved
		task.UpdatedAt = time.Now().UTC()
		warehouse.Tasks[idx] = *task
		result = *task
		return r.Warehouses.Save(ctx, warehouse)
	})
	metrics.RecordTaskOperation("modify", err)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteTask drops a task from the warehouse regardless of its state.
// Deleting a task that is not there is a no-op.
func (s *TaskService) DeleteTask(ctx context.Context, warehouseID, taskID uint) error {
	defer s.lockWarehouse(warehouseID)()

	err := s.store.Do(ctx, func(r *repository.Repos) error {
		warehouse, err := r.Warehouses.FindByID(ctx, warehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return apperr.WarehouseNotFound(warehouseID)
		}
		if !warehouse.RemoveTask(taskID) {
			return nil
		}
		return r.Warehouses.Save(ctx, warehouse)
	})
	metrics.RecordTaskOperation("delete", err)
	return err
}

func (s *TaskService) ListTasks(ctx context.Context, warehouseID uint) ([]models.WarehouseTask, error) {
	warehouse, err := s.store.Repos().Warehouses.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, apperr.WarehouseNotFound(warehouseID)
	}
	return warehouse.Tasks, nil
}

func (s *TaskService) ListTasksByApproval(ctx context.Context, warehouseID uint, status models.ApprovalStatus) ([]models.WarehouseTask, error) {
	tasks, err := s.ListTasks(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.WarehouseTask, 0, len(tasks))
	for _, t := range tasks {
		if t.ApprovalStatus == status {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (s *TaskService) ListTasksByCompletion(ctx context.Context, warehouseID uint, status models.CompletionStatus) ([]models.WarehouseTask, error) {
	tasks, err := s.ListTasks(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.WarehouseTask, 0, len(tasks))
	for _, t := range tasks {
		if t.CompletionStatus() == status {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}
