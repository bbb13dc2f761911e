package services

import (
	"context"
	"testing"

	"stockroom/internal/apperr"
	"stockroom/internal/models"
	"stockroom/internal/security"
)

func newWarehouseService(store *memStore) *WarehouseService {
	return NewWarehouseService(store, security.NewService())
}

func TestAddWarehouse(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newWarehouseService(store)

	tests := []struct {
		name      string
		role      models.Role
		warehouse string
		capacity  int64
		wantKind  apperr.Kind
	}{
		{"operator denied", models.RoleWarehouseOperator, "north", models.MinWarehouseCapacity, apperr.KindAccessDenied},
		{"empty name", models.RoleAdmin, "", models.MinWarehouseCapacity, apperr.KindInvalidInput},
		{"below minimum", models.RoleAdmin, "north", models.MinWarehouseCapacity - 1, apperr.KindInvalidInput},
		{"above maximum", models.RoleAdmin, "north", models.MaxWarehouseCapacity + 1, apperr.KindInvalidInput},
		{"at minimum", models.RoleAdmin, "north", models.MinWarehouseCapacity, ""},
		{"at maximum", models.RoleAdmin, "south", models.MaxWarehouseCapacity, ""},
		{"duplicate name", models.RoleAdmin, "north", models.MinWarehouseCapacity, apperr.KindAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warehouse, err := svc.AddWarehouse(ctx, tt.role, tt.warehouse, tt.capacity)
			if got := apperr.KindOf(err); got != tt.wantKind {
				t.Fatalf("kind = %q, want %q (err: %v)", got, tt.wantKind, err)
			}
			if tt.wantKind == "" && warehouse.OccupiedArea != 0 {
				t.Errorf("new warehouse occupied area = %d, want 0", warehouse.OccupiedArea)
			}
		})
	}
}

func TestModifyWarehouse(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newWarehouseService(store)

	warehouse, err := svc.AddWarehouse(ctx, models.RoleAdmin, "north", models.MinWarehouseCapacity)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Blank name and nil capacity leave the warehouse untouched.
	unchanged, err := svc.ModifyWarehouse(ctx, models.RoleAdmin, warehouse.ID, "", nil)
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if unchanged.Name != "north" || unchanged.Capacity != models.MinWarehouseCapacity {
		t.Errorf("warehouse changed unexpectedly: %+v", unchanged)
	}

	bigger := int64(models.MaxWarehouseCapacity)
	modified, err := svc.ModifyWarehouse(ctx, models.RoleAdmin, warehouse.ID, "north-east", &bigger)
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if modified.Name != "north-east" || modified.Capacity != bigger {
		t.Errorf("modify did not apply: %+v", modified)
	}

	tooSmall := int64(models.MinWarehouseCapacity - 1)
	if _, err := svc.ModifyWarehouse(ctx, models.RoleAdmin, warehouse.ID, "", &tooSmall); !apperr.IsKind(err, apperr.KindInvalidInput) {
		t.Errorf("capacity below band: got %v, want INVALID_INPUT", err)
	}

	if _, err := svc.ModifyWarehouse(ctx, models.RoleAdmin, warehouse.ID+99, "", nil); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("missing warehouse: got %v, want NOT_FOUND", err)
	}
}

func TestSetOccupiedArea(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newWarehouseService(store)

	warehouse, err := svc.AddWarehouse(ctx, models.RoleAdmin, "north", models.MinWarehouseCapacity)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	tests := []struct {
		name     string
		value    int64
		wantKind apperr.Kind
	}{
		{"zero", 0, ""},
		{"full", models.MinWarehouseCapacity, ""},
		{"unset sentinel", models.UnsetOccupiedArea, ""},
		{"below sentinel", -2, apperr.KindStateConflict},
		{"beyond capacity", models.MinWarehouseCapacity + 1, apperr.KindStateConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetOccupiedArea(ctx, models.RoleAdmin, warehouse.ID, tt.value)
			if got := apperr.KindOf(err); got != tt.wantKind {
				t.Fatalf("kind = %q, want %q (err: %v)", got, tt.wantKind, err)
			}
		})
	}
}

func TestDeleteWarehouse(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newWarehouseService(store)

	warehouse, err := svc.AddWarehouse(ctx, models.RoleAdmin, "north", models.MinWarehouseCapacity)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.DeleteWarehouse(ctx, models.RoleWarehouseOperator, warehouse.ID); !apperr.IsKind(err, apperr.KindAccessDenied) {
		t.Fatalf("operator delete: got %v, want ACCESS_DENIED", err)
	}
	if err := svc.DeleteWarehouse(ctx, models.RoleBusinessOwner, warehouse.ID); !apperr.IsKind(err, apperr.KindAccessDenied) {
		t.Fatalf("owner delete: got %v, want ACCESS_DENIED", err)
	}
	if err := svc.DeleteWarehouse(ctx, models.RoleAdmin, warehouse.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := svc.DeleteWarehouse(ctx, models.RoleAdmin, warehouse.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("second delete: got %v, want NOT_FOUND", err)
	}
}
