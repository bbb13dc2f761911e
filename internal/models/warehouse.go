package models

import (
	"time"

	"stockroom/internal/apperr"

	"gorm.io/datatypes"
)

// Warehouse capacity policy: a warehouse must be able to store between
// 500 and 2500 pallets.
const (
	MinWarehouseCapacity = 500 * 10000
	MaxWarehouseCapacity = 2500 * 10000
)

// UnsetOccupiedArea is the legacy sentinel for "never measured". It is
// accepted by SetOccupiedArea for compatibility but this implementation
// always initializes new warehouses with an occupied area of 0.
const UnsetOccupiedArea = -1

// WarehouseTask lives inside its parent warehouse's task list. Its id is
// unique only within that list; two warehouses may both hold a task 1.
type WarehouseTask struct {
	ID             uint           `json:"task_id"`
	ProductID      uint           `json:"product_id"`
	Quantity       int64          `json:"quantity"`
	Status         TaskStatus     `json:"status"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	CreatedAt      time.Time      `json:"task_created_at"`
	UpdatedAt      time.Time      `json:"task_updated_at"`
}

// CompletionStatus derives the wire-level completion flag from the
// approval state machine.
func (t *WarehouseTask) CompletionStatus() CompletionStatus {
	if t.ApprovalStatus == ApprovalDone {
		return CompletionDone
	}
	return CompletionNotDone
}

// Warehouse is the aggregate root for its task list: the whole row,
// tasks included, is the unit of persistence.
type Warehouse struct {
	Base
	Name         string                             `gorm:"uniqueIndex;not null;column:warehouse_name" json:"name" validate:"required,min=1"`
	Capacity     int64                              `gorm:"not null" json:"capacity"`
	OccupiedArea int64                              `gorm:"not null;default:0" json:"occupiedArea"`
	Tasks        datatypes.JSONSlice[WarehouseTask] `gorm:"type:jsonb" json:"tasks"`
}

// AvailableCapacity is the free area left in the warehouse.
func (w *Warehouse) AvailableCapacity() int64 {
	return w.Capacity - w.OccupiedArea
}

// SetOccupiedArea enforces -1 <= value <= capacity.
func (w *Warehouse) SetOccupiedArea(value int64) error {
	if value < UnsetOccupiedArea || value > w.Capacity {
		return apperr.OccupiedAreaInvalid(value)
	}
	w.OccupiedArea = value
	return nil
}

// FindTask locates a task by id within the warehouse's list. The second
// return value is an index usable for in-place updates.
func (w *Warehouse) FindTask(taskID uint) (*WarehouseTask, int) {
	for i := range w.Tasks {
		if w.Tasks[i].ID == taskID {
			return &w.Tasks[i], i
		}
	}
	return nil, -1
}

// NextTaskID allocates the next task id within this warehouse.
func (w *Warehouse) NextTaskID() uint {
	var max uint
	for i := range w.Tasks {
		if w.Tasks[i].ID > max {
			max = w.Tasks[i].ID
		}
	}
	return max + 1
}

// AppendTask adds a task to the end of the ordered list.
func (w *Warehouse) AppendTask(task WarehouseTask) {
	w.Tasks = append(w.Tasks, task)
}

// RemoveTask deletes a task by id. Removal is unconditional, matching
// the legacy contract; a DONE task is removed without reversing its
// stock or capacity effects.
func (w *Warehouse) RemoveTask(taskID uint) bool {
	for i := range w.Tasks {
		if w.Tasks[i].ID == taskID {
			w.Tasks = append(w.Tasks[:i], w.Tasks[i+1:]...)
			return true
		}
	}
	return false
}
