package security

import (
	"stockroom/internal/models"
)

// permissionTable maps each role to the set of (operation, resource)
// pairs it may perform. It is built once at package init and never
// exposed; HasAccess is the only way in.
var permissionTable map[models.Role]map[models.Operation][]models.Resource

func init() {
	adminResources := []models.Resource{
		models.ResourceProduct,
		models.ResourceWarehouseOperation,
		models.ResourceWarehouse,
	}
	ownerResources := []models.Resource{
		models.ResourceProduct,
		models.ResourceWarehouseOperation,
	}
	operatorResources := []models.Resource{
		models.ResourceProduct,
	}

	permissionTable = map[models.Role]map[models.Operation][]models.Resource{
		models.RoleAdmin: {
			models.OperationReceive: adminResources,
			models.OperationStore:   adminResources,
			models.OperationModify:  adminResources,
			models.OperationRemoval: adminResources,
			models.OperationAdd:     adminResources,
		},
		models.RoleBusinessOwner: {
			models.OperationReceive: ownerResources,
			models.OperationStore:   ownerResources,
			models.OperationModify:  ownerResources,
			models.OperationRemoval: ownerResources,
		},
		models.RoleWarehouseOperator: {
			models.OperationReceive: operatorResources,
			models.OperationStore:   operatorResources,
			models.OperationModify:  operatorResources,
			models.OperationRemoval: operatorResources,
		},
	}
}

// HasAccess reports whether the role may perform the operation on the
// resource. Unknown roles or operations simply deny.
func HasAccess(role models.Role, operation models.Operation, resource models.Resource) bool {
	operations, ok := permissionTable[role]
	if !ok {
		return false
	}
	for _, allowed := range operations[operation] {
		if allowed == resource {
			return true
		}
	}
	return false
}
