package models

import (
	"time"
)

// Base contains common columns for all tables. Identity is a plain
// numeric autoincrement key.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Role string

const (
	RoleAdmin             Role = "ADMIN"
	RoleBusinessOwner     Role = "BUSINESS_OWNER"
	RoleWarehouseOperator Role = "WAREHOUSE_OPERATOR"
)

// IsValidRole checks if a given role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleBusinessOwner, RoleWarehouseOperator:
		return true
	default:
		return false
	}
}

// Operation is a verb of the warehouse system an actor may perform.
type Operation string

const (
	OperationReceive  Operation = "RECEIVE"
	OperationStore    Operation = "STORE"
	OperationModify   Operation = "MODIFY"
	OperationRemoval  Operation = "REMOVAL"
	OperationAdd      Operation = "ADD"
	OperationRelease  Operation = "RELEASE"
	OperationApproval Operation = "APPROVAL"
)

// Resource is the noun an operation targets.
type Resource string

const (
	ResourceProduct            Resource = "PRODUCT"
	ResourceWarehouse          Resource = "WAREHOUSE"
	ResourceWarehouseOperation Resource = "WAREHOUSE_OPERATION"
)

// ApprovalStatus is the task lifecycle state machine. Transitions are
// monotonic: NOT_APPROVED -> APPROVED -> DONE, DONE is terminal.
type ApprovalStatus string

const (
	ApprovalNotApproved ApprovalStatus = "NOT_APPROVED"
	ApprovalApproved    ApprovalStatus = "APPROVED"
	ApprovalDone        ApprovalStatus = "DONE"
)

// CompletionStatus is a wire-level projection of ApprovalStatus kept for
// compatibility with the completion filter endpoint.
type CompletionStatus string

const (
	CompletionNotDone CompletionStatus = "NOT_DONE"
	CompletionDone    CompletionStatus = "DONE"
)

// TaskStatus is the direction of a warehouse task. SHIPPED exists on the
// wire but is never a valid creation or completion status.
type TaskStatus string

const (
	StatusReceptionArea TaskStatus = "RECEPTION_AREA"
	StatusReleaseArea   TaskStatus = "RELEASE_AREA"
	StatusShipped       TaskStatus = "SHIPPED"
)

// IsWorkable reports whether the status is one a task can be created or
// completed with.
func (s TaskStatus) IsWorkable() bool {
	return s == StatusReceptionArea || s == StatusReleaseArea
}

// ProductSize is the discrete size class of a product. Each class
// carries a fixed area weight in warehouse area-units.
type ProductSize string

const (
	SizeSmall  ProductSize = "SMALL"
	SizeMedium ProductSize = "MEDIUM"
	SizeBig    ProductSize = "BIG"
	SizePallet ProductSize = "PALLET"
)

// AreaWeight returns the area-units one item of this size occupies, or
// 0 for an unknown size.
func (s ProductSize) AreaWeight() int64 {
	switch s {
	case SizeSmall:
		return 1
	case SizeMedium:
		return 10
	case SizeBig:
		return 100
	case SizePallet:
		return 10000
	default:
		return 0
	}
}

func (s ProductSize) Valid() bool {
	return s.AreaWeight() > 0
}
