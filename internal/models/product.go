package models

import (
	"stockroom/internal/apperr"
	"stockroom/internal/events"

	"gorm.io/gorm"
)

type Product struct {
	Base
	Name string      `gorm:"uniqueIndex;not null;column:product_name" json:"name" validate:"required,min=1"`
	Size ProductSize `gorm:"not null;column:product_size" json:"size" validate:"required,product_size"`
}

func (p *Product) AfterCreate(tx *gorm.DB) error {
	// Best-effort publish; a failed handler never rolls back the insert.
	events.Emit(events.ProductCreated, p)
	return nil
}

// Stock records the on-hand quantity of one product in one warehouse.
// Quantity never goes negative.
type Stock struct {
	Base
	ProductID   uint       `gorm:"not null;index" json:"productId"`
	Product     *Product   `json:"product,omitempty"`
	WarehouseID uint       `gorm:"not null;index" json:"warehouseId"`
	Warehouse   *Warehouse `json:"warehouse,omitempty"`
	Quantity    int64      `gorm:"not null;default:0" json:"quantity"`
}

// Adjust applies a signed delta to the on-hand quantity.
func (s *Stock) Adjust(delta int64) error {
	if s.Quantity+delta < 0 {
		return apperr.InsufficientStock(s.ProductID)
	}
	s.Quantity += delta
	return nil
}
