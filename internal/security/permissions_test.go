package security

import (
	"testing"

	"stockroom/internal/models"
)

func TestHasAccessMatrix(t *testing.T) {
	allOperations := []models.Operation{
		models.OperationReceive,
		models.OperationStore,
		models.OperationModify,
		models.OperationRemoval,
		models.OperationAdd,
	}
	allResources := []models.Resource{
		models.ResourceProduct,
		models.ResourceWarehouseOperation,
		models.ResourceWarehouse,
	}

	allowed := map[models.Role]map[models.Operation][]models.Resource{
		models.RoleAdmin: {
			models.OperationReceive: allResources,
			models.OperationStore:   allResources,
			models.OperationModify:  allResources,
			models.OperationRemoval: allResources,
			models.OperationAdd:     allResources,
		},
		models.RoleBusinessOwner: {
			models.OperationReceive: {models.ResourceProduct, models.ResourceWarehouseOperation},
			models.OperationStore:   {models.ResourceProduct, models.ResourceWarehouseOperation},
			models.OperationModify:  {models.ResourceProduct, models.ResourceWarehouseOperation},
			models.OperationRemoval: {models.ResourceProduct, models.ResourceWarehouseOperation},
		},
		models.RoleWarehouseOperator: {
			models.OperationReceive: {models.ResourceProduct},
			models.OperationStore:   {models.ResourceProduct},
			models.OperationModify:  {models.ResourceProduct},
			models.OperationRemoval: {models.ResourceProduct},
		},
	}

	for role, operations := range allowed {
		for _, op := range allOperations {
			for _, res := range allResources {
				want := false
				for _, r := range operations[op] {
					if r == res {
						want = true
					}
				}
				if got := HasAccess(role, op, res); got != want {
					t.Errorf("HasAccess(%s, %s, %s) = %v, want %v", role, op, res, got, want)
				}
			}
		}
	}
}

func TestHasAccessUnknownInputs(t *testing.T) {
	if HasAccess("INTERN", models.OperationStore, models.ResourceProduct) {
		t.Error("unknown role must be denied")
	}
	if HasAccess(models.RoleAdmin, "TELEPORT", models.ResourceProduct) {
		t.Error("unknown operation must be denied")
	}
	if HasAccess(models.RoleWarehouseOperator, models.OperationModify, "OFFICE") {
		t.Error("unknown resource must be denied")
	}
}

// The operator's gap that matters in practice: task approval needs
// MODIFY on WAREHOUSE_OPERATION.
func TestOperatorCannotApproveTasks(t *testing.T) {
	if HasAccess(models.RoleWarehouseOperator, models.OperationModify, models.ResourceWarehouseOperation) {
		t.Error("WAREHOUSE_OPERATOR must not modify warehouse operations")
	}
	if !HasAccess(models.RoleBusinessOwner, models.OperationModify, models.ResourceWarehouseOperation) {
		t.Error("BUSINESS_OWNER must be able to modify warehouse operations")
	}
}
