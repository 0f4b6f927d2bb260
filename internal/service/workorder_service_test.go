package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/testutil"
)

// TestWorkOrderService_CreateWorkOrder tests opening a maintenance order.
//
// WHY: Creation sets the order's starting point in the lifecycle. An order
// with a vendor already lined up skips straight to assigned; one without sits
// open. Vendor references must stay inside the user's account.
func TestWorkOrderService_CreateWorkOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("opens an unassigned order with default priority", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)

		// Execute
		order, err := svc.CreateWorkOrder(ctx, user.ID, request.CreateWorkOrderRequest{
			PropertyID: prop.ID,
			Title:      "Leaking kitchen faucet",
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateWorkOrder() returned unexpected error: %v", err)
		}
		if order.Status != model.WorkOrderStatusOpen {
			t.Errorf("Expected status open, got %s", order.Status)
		}
		if order.Priority != model.WorkOrderPriorityMedium {
			t.Errorf("Expected priority to default to medium, got %s", order.Priority)
		}
		testutil.AssertRowCount(t, db, "work_orders", 1)
	})

	t.Run("assigning a vendor at creation moves the order to assigned", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		vendor := testutil.NewVendor(user.ID).Build(t, db)

		// Execute
		order, err := svc.CreateWorkOrder(ctx, user.ID, request.CreateWorkOrderRequest{
			PropertyID: prop.ID,
			VendorID:   &vendor.ID,
			Title:      "Water heater replacement",
			Priority:   model.WorkOrderPriorityHigh,
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateWorkOrder() returned unexpected error: %v", err)
		}
		if order.Status != model.WorkOrderStatusAssigned {
			t.Errorf("Expected status assigned, got %s", order.Status)
		}
		if order.VendorID == nil || *order.VendorID != vendor.ID {
			t.Errorf("Expected vendor %s, got %v", vendor.ID, order.VendorID)
		}
	})

	t.Run("rejects another user's vendor", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		vendor := testutil.NewVendor(other.ID).Build(t, db)

		// Execute
		_, err := svc.CreateWorkOrder(ctx, user.ID, request.CreateWorkOrderRequest{
			PropertyID: prop.ID,
			VendorID:   &vendor.ID,
			Title:      "Water heater replacement",
		})

		// Assert
		if !errors.Is(err, apperrors.ErrVendorNotFound) {
			t.Errorf("Expected ErrVendorNotFound, got %v", err)
		}
	})

	t.Run("rejects an unknown priority", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)

		// Execute
		_, err := svc.CreateWorkOrder(ctx, user.ID, request.CreateWorkOrderRequest{
			PropertyID: prop.ID,
			Title:      "Leaking kitchen faucet",
			Priority:   "asap",
		})

		// Assert
		if !errors.Is(err, apperrors.ErrInvalidPriority) {
			t.Errorf("Expected ErrInvalidPriority, got %v", err)
		}
	})

	t.Run("rejects another user's property", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		owner := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, owner.ID)

		// Execute
		_, err := svc.CreateWorkOrder(ctx, other.ID, request.CreateWorkOrderRequest{
			PropertyID: prop.ID,
			Title:      "Leaking kitchen faucet",
		})

		// Assert
		if !errors.Is(err, apperrors.ErrPropertyNotFound) {
			t.Errorf("Expected ErrPropertyNotFound, got %v", err)
		}
	})

	t.Run("strips markup from the title", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)

		// Execute
		order, err := svc.CreateWorkOrder(ctx, user.ID, request.CreateWorkOrderRequest{
			PropertyID: prop.ID,
			Title:      "<script>alert(1)</script>Broken window",
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateWorkOrder() returned unexpected error: %v", err)
		}
		if order.Title != "Broken window" {
			t.Errorf("Expected sanitized title, got %q", order.Title)
		}
	})
}

// TestWorkOrderService_GetWorkOrders tests listing and its filters.
func TestWorkOrderService_GetWorkOrders(t *testing.T) {
	t.Run("filters by status", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		open := testutil.NewWorkOrder(user.ID, prop.ID).Build(t, db)
		testutil.NewWorkOrder(user.ID, prop.ID).WithStatus(model.WorkOrderStatusCompleted).Build(t, db)

		// Execute
		orders, err := svc.GetWorkOrders(user.ID, "", model.WorkOrderStatusOpen)

		// Assert
		if err != nil {
			t.Fatalf("GetWorkOrders() returned unexpected error: %v", err)
		}
		if len(orders) != 1 {
			t.Fatalf("Expected 1 open order, got %d", len(orders))
		}
		if orders[0].ID != open.ID {
			t.Errorf("Expected order %s, got %s", open.ID, orders[0].ID)
		}
	})

	t.Run("rejects an unknown status filter", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)

		// Execute
		_, err := svc.GetWorkOrders(user.ID, "", "paused")

		// Assert
		if !errors.Is(err, apperrors.ErrInvalidStatus) {
			t.Errorf("Expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("filters by property", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		propA := testutil.CreateProperty(t, db, user.ID)
		propB := testutil.CreateProperty(t, db, user.ID)
		wanted := testutil.NewWorkOrder(user.ID, propA.ID).Build(t, db)
		testutil.NewWorkOrder(user.ID, propB.ID).Build(t, db)

		// Execute
		orders, err := svc.GetWorkOrders(user.ID, propA.ID, "")

		// Assert
		if err != nil {
			t.Fatalf("GetWorkOrders() returned unexpected error: %v", err)
		}
		if len(orders) != 1 || orders[0].ID != wanted.ID {
			t.Errorf("Expected only order %s for property %s", wanted.ID, propA.ID)
		}
	})
}

// TestWorkOrderService_UpdateStatus tests the order lifecycle.
//
// WHY: Completed and cancelled orders are terminal; reopening them would
// corrupt maintenance history. Completion is also the moment the actual cost
// is known, so the transition accepts it in the same call.
func TestWorkOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("moves an order through its lifecycle", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		created := testutil.NewWorkOrder(user.ID, prop.ID).Build(t, db)

		// Execute
		order, err := svc.UpdateStatus(ctx, user.ID, created.ID, request.UpdateWorkOrderStatusRequest{
			Status: model.WorkOrderStatusInProgress,
		})

		// Assert
		if err != nil {
			t.Fatalf("UpdateStatus() returned unexpected error: %v", err)
		}
		if order.Status != model.WorkOrderStatusInProgress {
			t.Errorf("Expected status in_progress, got %s", order.Status)
		}
		if order.CompletedAt != nil {
			t.Error("Expected CompletedAt to stay unset before completion")
		}
	})

	t.Run("completing stamps the completion time and actual cost", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		created := testutil.NewWorkOrder(user.ID, prop.ID).
			WithStatus(model.WorkOrderStatusInProgress).
			WithEstimatedCost(200).
			Build(t, db)

		// Execute
		order, err := svc.UpdateStatus(ctx, user.ID, created.ID, request.UpdateWorkOrderStatusRequest{
			Status:     model.WorkOrderStatusCompleted,
			ActualCost: floatPtr(247.80),
		})

		// Assert
		if err != nil {
			t.Fatalf("UpdateStatus() returned unexpected error: %v", err)
		}
		if order.Status != model.WorkOrderStatusCompleted {
			t.Errorf("Expected status completed, got %s", order.Status)
		}
		if order.CompletedAt == nil {
			t.Error("Expected CompletedAt to be stamped")
		}
		if order.ActualCost == nil || *order.ActualCost != 247.80 {
			t.Errorf("Expected actual cost 247.80, got %v", order.ActualCost)
		}
	})

	t.Run("rejects moving a terminal order", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		created := testutil.NewWorkOrder(user.ID, prop.ID).
			WithStatus(model.WorkOrderStatusCancelled).
			Build(t, db)

		// Execute
		_, err := svc.UpdateStatus(ctx, user.ID, created.ID, request.UpdateWorkOrderStatusRequest{
			Status: model.WorkOrderStatusOpen,
		})

		// Assert
		if !errors.Is(err, apperrors.ErrInvalidStageTransition) {
			t.Errorf("Expected ErrInvalidStageTransition, got %v", err)
		}
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		created := testutil.NewWorkOrder(user.ID, prop.ID).Build(t, db)

		// Execute
		_, err := svc.UpdateStatus(ctx, user.ID, created.ID, request.UpdateWorkOrderStatusRequest{
			Status: "paused",
		})

		// Assert
		if !errors.Is(err, apperrors.ErrInvalidStatus) {
			t.Errorf("Expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("returns not found for another user's order", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		owner := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, owner.ID)
		created := testutil.NewWorkOrder(owner.ID, prop.ID).Build(t, db)

		// Execute
		_, err := svc.UpdateStatus(ctx, other.ID, created.ID, request.UpdateWorkOrderStatusRequest{
			Status: model.WorkOrderStatusInProgress,
		})

		// Assert
		if !errors.Is(err, apperrors.ErrWorkOrderNotFound) {
			t.Errorf("Expected ErrWorkOrderNotFound, got %v", err)
		}
	})
}

// TestWorkOrderService_UpdateWorkOrder tests partial updates.
func TestWorkOrderService_UpdateWorkOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("assigning a vendor to an open order moves it to assigned", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		vendor := testutil.NewVendor(user.ID).Build(t, db)
		created := testutil.NewWorkOrder(user.ID, prop.ID).Build(t, db)

		// Execute
		order, err := svc.UpdateWorkOrder(ctx, user.ID, created.ID, request.UpdateWorkOrderRequest{
			VendorID: &vendor.ID,
		})

		// Assert
		if err != nil {
			t.Fatalf("UpdateWorkOrder() returned unexpected error: %v", err)
		}
		if order.Status != model.WorkOrderStatusAssigned {
			t.Errorf("Expected status assigned, got %s", order.Status)
		}
	})

	t.Run("assigning a vendor leaves an in-progress status alone", func(t *testing.T) {
		// Setup: vendor swap mid-job should not rewind the lifecycle.
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		vendor := testutil.NewVendor(user.ID).Build(t, db)
		created := testutil.NewWorkOrder(user.ID, prop.ID).
			WithStatus(model.WorkOrderStatusInProgress).
			Build(t, db)

		// Execute
		order, err := svc.UpdateWorkOrder(ctx, user.ID, created.ID, request.UpdateWorkOrderRequest{
			VendorID: &vendor.ID,
		})

		// Assert
		if err != nil {
			t.Fatalf("UpdateWorkOrder() returned unexpected error: %v", err)
		}
		if order.Status != model.WorkOrderStatusInProgress {
			t.Errorf("Expected status to stay in_progress, got %s", order.Status)
		}
	})

	t.Run("updates only the provided fields", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		created := testutil.NewWorkOrder(user.ID, prop.ID).
			WithTitle("Leaking kitchen faucet").
			WithEstimatedCost(150).
			Build(t, db)

		// Execute
		order, err := svc.UpdateWorkOrder(ctx, user.ID, created.ID, request.UpdateWorkOrderRequest{
			EstimatedCost: floatPtr(185),
		})

		// Assert
		if err != nil {
			t.Fatalf("UpdateWorkOrder() returned unexpected error: %v", err)
		}
		if order.EstimatedCost == nil || *order.EstimatedCost != 185 {
			t.Errorf("Expected estimated cost 185, got %v", order.EstimatedCost)
		}
		if order.Title != "Leaking kitchen faucet" {
			t.Errorf("Expected title to be unchanged, got %q", order.Title)
		}
	})

	t.Run("rejects an unknown priority", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		created := testutil.NewWorkOrder(user.ID, prop.ID).Build(t, db)

		// Execute
		_, err := svc.UpdateWorkOrder(ctx, user.ID, created.ID, request.UpdateWorkOrderRequest{
			Priority: strPtr("whenever"),
		})

		// Assert
		if !errors.Is(err, apperrors.ErrInvalidPriority) {
			t.Errorf("Expected ErrInvalidPriority, got %v", err)
		}
	})
}

// TestWorkOrderService_DeleteWorkOrder tests removal and scoping.
func TestWorkOrderService_DeleteWorkOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the order", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		user := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, user.ID)
		created := testutil.NewWorkOrder(user.ID, prop.ID).Build(t, db)

		// Execute
		if err := svc.DeleteWorkOrder(ctx, user.ID, created.ID); err != nil {
			t.Fatalf("DeleteWorkOrder() returned unexpected error: %v", err)
		}

		// Assert
		testutil.AssertRowCount(t, db, "work_orders", 0)
	})

	t.Run("returns not found for another user's order", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWorkOrderService(t, db)
		owner := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		prop := testutil.CreateProperty(t, db, owner.ID)
		created := testutil.NewWorkOrder(owner.ID, prop.ID).Build(t, db)

		// Execute
		err := svc.DeleteWorkOrder(ctx, other.ID, created.ID)

		// Assert
		if !errors.Is(err, apperrors.ErrWorkOrderNotFound) {
			t.Errorf("Expected ErrWorkOrderNotFound, got %v", err)
		}
	})
}
