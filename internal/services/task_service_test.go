package services

import (
	"context"
	"testing"

	"stockroom/internal/apperr"
	"stockroom/internal/models"
	"stockroom/internal/security"
)

// seedCatalog creates a warehouse at the minimum capacity, one PALLET
// product with stock on hand, and returns their ids.
func seedCatalog(t *testing.T, store *memStore, quantity int64) (warehouseID, productID uint) {
	t.Helper()
	ctx := context.Background()
	repos := store.Repos()

	product := &models.Product{Name: "pallet of bricks", Size: models.SizePallet}
	if err := repos.Products.Create(ctx, product); err != nil {
		t.Fatalf("create product: %v", err)
	}

	warehouse := &models.Warehouse{Name: "north", Capacity: models.MinWarehouseCapacity}
	if err := repos.Warehouses.Create(ctx, warehouse); err != nil {
		t.Fatalf("create warehouse: %v", err)
	}

	stock := &models.Stock{ProductID: product.ID, WarehouseID: warehouse.ID, Quantity: quantity}
	if err := repos.Stocks.Create(ctx, stock); err != nil {
		t.Fatalf("create stock: %v", err)
	}

	return warehouse.ID, product.ID
}

func newTaskService(store *memStore) *TaskService {
	return NewTaskService(store, security.NewService())
}

func TestCreateTaskValidation(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	wID, pID := seedCatalog(t, store, 5)
	svc := newTaskService(store)

	tests := []struct {
		name      string
		warehouse uint
		product   uint
		quantity  int64
		status    models.TaskStatus
		wantKind  apperr.Kind
	}{
		{"missing warehouse", wID + 99, pID, 1, models.StatusReceptionArea, apperr.KindNotFound},
		{"missing product", wID, pID + 99, 1, models.StatusReceptionArea, apperr.KindNotFound},
		{"zero quantity", wID, pID, 0, models.StatusReceptionArea, apperr.KindInvalidInput},
		{"shipped status rejected", wID, pID, 1, models.StatusShipped, apperr.KindInvalidInput},
		{"quantity overflows area units", wID, pID, 1 << 60, models.StatusReceptionArea, apperr.KindInvalidInput},
		{"release beyond stock", wID, pID, 6, models.StatusReleaseArea, apperr.KindInsufficientStock},
		{"reception beyond capacity", wID, pID, 501, models.StatusReceptionArea, apperr.KindCapacityExceeded},
		{"valid reception", wID, pID, 1, models.StatusReceptionArea, ""},
		{"valid release", wID, pID, 5, models.StatusReleaseArea, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := svc.CreateTask(ctx, tt.warehouse, tt.product, tt.quantity, tt.status)
			if got := apperr.KindOf(err); got != tt.wantKind {
				t.Fatalf("kind = %q, want %q (err: %v)", got, tt.wantKind, err)
			}
			if tt.wantKind == "" {
				if task == nil {
					t.Fatal("expected a task")
				}
				if task.ApprovalStatus != models.ApprovalNotApproved {
					t.Errorf("new task approval = %s, want NOT_APPROVED", task.ApprovalStatus)
				}
			}
		})
	}
}

func TestTaskIDsAreScopedToWarehouse(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	wID, pID := seedCatalog(t, store, 10)

	other := &models.Warehouse{Name: "south", Capacity: models.MinWarehouseCapacity}
	if err := store.Repos().Warehouses.Create(ctx, other); err != nil {
		t.Fatalf("create warehouse: %v", err)
	}

	svc := newTaskService(store)
	first, err := svc.CreateTask(ctx, wID, pID, 1, models.StatusReceptionArea)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	second, err := svc.CreateTask(ctx, other.ID, pID, 1, models.StatusReceptionArea)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if first.ID != 1 || second.ID != 1 {
		t.Errorf("task ids = %d, %d; each warehouse numbers its own tasks from 1", first.ID, second.ID)
	}
}

func TestApproveTaskRequiresPermission(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	wID, pID := seedCatalog(t, store, 5)
	svc := newTaskService(store)

	task, err := svc.CreateTask(ctx, wID, pID, 1, models.StatusReceptionArea)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	// The operator can create tasks but never approve them.
	if _, err := svc.ApproveTask(ctx, models.RoleWarehouseOperator, wID, task.ID); !apperr.IsKind(err, apperr.KindAccessDenied) {
		t.Fatalf("operator approve: got %v, want ACCESS_DENIED", err)
	}

	approved, err := svc.ApproveTask(ctx, models.RoleAdmin, wID, task.ID)
	if err != nil {
		t.Fatalf("admin approve: %v", err)
	}
	if approved.ApprovalStatus != models.ApprovalApproved {
		t.Errorf("approval = %s, want APPROVED", approved.ApprovalStatus)
	}

	// Approving twice is harmless while the task is still pending work.
	if _, err := svc.ApproveTask(ctx, models.RoleBusinessOwner, wID, task.ID); err != nil {
		t.Errorf("second approve: %v", err)
	}
}

func TestCompleteReceptionTask(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	wID, pID := seedCatalog(t, store, 5)
	svc := newTaskService(store)

	task, err := svc.CreateTask(ctx, wID, pID, 3, models.StatusReceptionArea)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Completing before approval must be rejected.
	if _, err := svc.CompleteTask(ctx, wID, task.ID); !apperr.IsKind(err, apperr.KindStateConflict) {
		t.Fatalf("complete unapproved: got %v, want STATE_CONFLICT", err)
	}

	if _, err := svc.ApproveTask(ctx, models.RoleAdmin, wID, task.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	done, err := svc.CompleteTask(ctx, wID, task.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.ApprovalStatus != models.ApprovalDone {
		t.Errorf("approval = %s, want DONE", done.ApprovalStatus)
	}
	if done.CompletionStatus() != models.CompletionDone {
		t.Errorf("completion = %s, want DONE", done.CompletionStatus())
	}

	stock, _ := store.Repos().Stocks.FindByProductID(ctx, pID)
	if stock.Quantity != 8 {
		t.Errorf("stock = %d, want 8", stock.Quantity)
	}
	warehouse, _ := store.Repos().Warehouses.FindByID(ctx, wID)
	wantArea := models.SizePallet.AreaWeight() * 3
	if warehouse.OccupiedArea != wantArea {
		t.Errorf("occupied area = %d, want %d", warehouse.OccupiedArea, wantArea)
	}

	// A finished task stays finished.
	if _, err := svc.CompleteTask(ctx, wID, task.ID); !apperr.IsKind(err, apperr.KindStateConflict) {
		t.Errorf("re-complete: got %v, want STATE_CONFLICT", err)
	}
}

func TestCompleteReleaseRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	wID, pID := seedCatalog(t, store, 5)
	svc := newTaskService(store)

	receive, err := svc.CreateTask(ctx, wID, pID, 2, models.StatusReceptionArea)
	if err != nil {
		t.Fatalf("create reception: %v", err)
	}
	if _, err := svc.ApproveTask(ctx, models.RoleAdmin, wID, receive.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := svc.CompleteTask(ctx, wID, receive.ID); err != nil {
		t.Fatalf("complete reception: %v", err)
	}

	release, err := svc.CreateTask(ctx, wID, pID, 2, models.StatusReleaseArea)
	if err != nil {
		t.Fatalf("create release: %v", err)
	}
	if _, err := svc.ApproveTask(ctx, models.RoleAdmin, wID, release.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := svc.CompleteTask(ctx, wID, release.ID); err != nil {
		t.Fatalf("complete release: %v", err)
	}

	stock, _ := store.Repos().Stocks.FindByProductID(ctx, pID)
	if stock.Quantity != 5 {
		t.Errorf("stock = %d, want 5 after the round trip", stock.Quantity)
	}
	warehouse, _ := store.Repos().Warehouses.FindByID(ctx, wID)
	if warehouse.OccupiedArea != 0 {
		t.Errorf("occupied area = %d, want 0 after the round trip", warehouse.OccupiedArea)
	}
}

func TestCompleteReleaseRevalidatesStock(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	wID, pID := seedCatalog(t, store, 5)
	svc := newTaskService(store)

	task, err := svc.CreateTask(ctx, wID, pID, 5, models.StatusReleaseArea)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.ApproveTask(ctx, models.RoleAdmin, wID, task.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// Stock drains between creation and completion. The warehouse is
	// still empty, so the occupancy bound would fail too; the stock
	// shortfall must be the error that surfaces.
	stock, _ := store.Repos().Stocks.FindByProductID(ctx, pID)
	stock.Quantity = 2
	if err := store.Repos().Stocks.Save(ctx, stock); err != nil {
		t.Fatalf("save stock: %v", err)
	}

	if _, err := svc.CompleteTask(ctx, wID, task.ID); !apperr.IsKind(err, apperr.KindInsufficientStock) {
		t.Fatalf("complete: got %v, want INSUFFICIENT_STOCK", err)
	}

	// The failed completion must not have touched anything.
	stock, _ = store.Repos().Stocks.FindByProductID(ctx, pID)
	if stock.Quantity != 2 {
		t.Errorf("stock = %d, want 2", stock.Quantity)
	}
	got, _ := store.Repos().Warehouses.FindByID(ctx, wID)
	if task, _ := got.FindTask(task.ID); task.ApprovalStatus != models.ApprovalApproved {
		t.Errorf("approval = %s, want APPROVED to stay", task.ApprovalStatus)
	}
}

func TestModifyTaskResetsApproval(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	wID, pID := seedCatalog(t, store, 5)
	svc := newTaskService(store)

	task, err := svc.CreateTask(ctx, wID, pID, 1, models.StatusReceptionArea)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.ApproveTask(ctx, models.RoleAdmin, wID, task.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	modified, err := svc.ModifyTask(ctx, wID, models.WarehouseTask{
		ID:        task.ID,
		ProductID: pID,
		Quantity:  2,
		Status:    models.StatusReleaseArea,
	})
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if modified.ApprovalStatus != models.ApprovalNotApproved {
		t.Errorf("approval = %s, modification must reset it", modified.ApprovalStatus)
	}
	if modified.Quantity != 2 || modified.Status != models.StatusReleaseArea {
		t.Errorf("fields not updated: %+v", modified)
	}
}

func TestDeleteTaskIsUnconditional(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	wID, pID := seedCatalog(t, store, 5)
	svc := newTaskService(store)

	task, err := svc.CreateTask(ctx, wID, pID, 1, models.StatusReceptionArea)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.ApproveTask(ctx, models.RoleAdmin, wID, task.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := svc.CompleteTask(ctx, wID, task.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// Even a finished task can be deleted.
	if err := svc.DeleteTask(ctx, wID, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	tasks, err := svc.ListTasks(ctx, wID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("tasks = %d, want 0", len(tasks))
	}

	// Deleting again is a no-op.
	if err := svc.DeleteTask(ctx, wID, task.ID); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestListTaskProjections(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	wID, pID := seedCatalog(t, store, 10)
	svc := newTaskService(store)

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateTask(ctx, wID, pID, 1, models.StatusReceptionArea); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := svc.ApproveTask(ctx, models.RoleAdmin, wID, 1); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := svc.CompleteTask(ctx, wID, 1); err != nil {
		t.Fatalf("complete: %v", err)
	}

	pending, err := svc.ListTasksByApproval(ctx, wID, models.ApprovalNotApproved)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("pending = %d, want 2", len(pending))
	}

	done, err := svc.ListTasksByCompletion(ctx, wID, models.CompletionDone)
	if err != nil {
		t.Fatalf("list done: %v", err)
	}
	if len(done) != 1 {
		t.Errorf("done = %d, want 1", len(done))
	}
	notDone, err := svc.ListTasksByCompletion(ctx, wID, models.CompletionNotDone)
	if err != nil {
		t.Fatalf("list not done: %v", err)
	}
	if len(notDone) != 2 {
		t.Errorf("not done = %d, want 2", len(notDone))
	}
}
