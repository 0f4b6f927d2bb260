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

// TestPropertyService_GetProperties tests property listing.
//
// WHY: Retired properties keep their history but must stay out of default
// listings, and one user's properties must never leak into another's list.
func TestPropertyService_GetProperties(t *testing.T) {
	t.Run("excludes retired properties by default", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)
		user := testutil.CreateUser(t, db)
		active := testutil.NewProperty(user.ID).Build(t, db)
		testutil.NewProperty(user.ID).Retired().Build(t, db)

		// Execute
		properties, err := svc.GetProperties(user.ID, false)

		// Assert
		if err != nil {
			t.Fatalf("GetProperties() returned unexpected error: %v", err)
		}
		if len(properties) != 1 {
			t.Fatalf("Expected 1 property, got %d", len(properties))
		}
		if properties[0].ID != active.ID {
			t.Errorf("Expected the active property, got %s", properties[0].ID)
		}
	})

	t.Run("includes retired properties when asked", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)
		user := testutil.CreateUser(t, db)
		testutil.NewProperty(user.ID).Build(t, db)
		testutil.NewProperty(user.ID).Retired().Build(t, db)

		// Execute
		properties, err := svc.GetProperties(user.ID, true)

		// Assert
		if err != nil {
			t.Fatalf("GetProperties() returned unexpected error: %v", err)
		}
		if len(properties) != 2 {
			t.Errorf("Expected 2 properties, got %d", len(properties))
		}
	})

	t.Run("only returns the user's own properties", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)
		owner := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		testutil.NewProperty(owner.ID).Build(t, db)
		testutil.NewProperty(other.ID).Build(t, db)

		// Execute
		properties, err := svc.GetProperties(owner.ID, true)

		// Assert
		if err != nil {
			t.Fatalf("GetProperties() returned unexpected error: %v", err)
		}
		if len(properties) != 1 {
			t.Errorf("Expected 1 property, got %d", len(properties))
		}
	})
}

// TestPropertyService_GetProperty tests single property retrieval.
func TestPropertyService_GetProperty(t *testing.T) {
	t.Run("returns the property", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)
		user := testutil.CreateUser(t, db)
		created := testutil.NewProperty(user.ID).WithAddress("42 Birch Lane").Build(t, db)

		// Execute
		property, err := svc.GetProperty(user.ID, created.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetProperty() returned unexpected error: %v", err)
		}
		if property.Address != "42 Birch Lane" {
			t.Errorf("Expected address '42 Birch Lane', got %q", property.Address)
		}
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)
		user := testutil.CreateUser(t, db)

		// Execute
		_, err := svc.GetProperty(user.ID, testutil.MakeID())

		// Assert
		if !errors.Is(err, apperrors.ErrPropertyNotFound) {
			t.Errorf("Expected ErrPropertyNotFound, got %v", err)
		}
	})

	t.Run("returns not found for another user's property", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)
		owner := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		property := testutil.NewProperty(owner.ID).Build(t, db)

		// Execute
		_, err := svc.GetProperty(other.ID, property.ID)

		// Assert
		if !errors.Is(err, apperrors.ErrPropertyNotFound) {
			t.Errorf("Expected ErrPropertyNotFound, got %v", err)
		}
	})
}

// TestPropertyService_CreateProperty tests property creation.
func TestPropertyService_CreateProperty(t *testing.T) {
	t.Run("creates an active property", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)
		user := testutil.CreateUser(t, db)

		req := request.CreatePropertyRequest{
			Address:      "901 Sycamore Ave",
			City:         "Columbus",
			State:        "OH",
			Zip:          "43004",
			PropertyType: "single_family",
			Bedrooms:     3,
			Bathrooms:    2.5,
			SquareFeet:   1650,
			YearBuilt:    1998,
		}

		// Execute
		property, err := svc.CreateProperty(context.Background(), user.ID, req)

		// Assert
		if err != nil {
			t.Fatalf("CreateProperty() returned unexpected error: %v", err)
		}
		if property.Status != model.PropertyStatusActive {
			t.Errorf("Expected status %q, got %q", model.PropertyStatusActive, property.Status)
		}
		if property.Bedrooms != 3 || property.Bathrooms != 2.5 {
			t.Errorf("Expected 3 bed / 2.5 bath, got %d / %v", property.Bedrooms, property.Bathrooms)
		}
		testutil.AssertRowCount(t, db, "properties", 1)
	})

	t.Run("strips markup from free text fields", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)
		user := testutil.CreateUser(t, db)

		req := request.CreatePropertyRequest{
			Address: "<b>188</b> Oak St",
			City:    "<script>alert(1)</script>Dayton",
			State:   "OH",
			Zip:     "45402",
		}

		// Execute
		property, err := svc.CreateProperty(context.Background(), user.ID, req)

		// Assert
		if err != nil {
			t.Fatalf("CreateProperty() returned unexpected error: %v", err)
		}
		if property.Address != "188 Oak St" {
			t.Errorf("Expected sanitized address, got %q", property.Address)
		}
		if property.City != "Dayton" {
			t.Errorf("Expected sanitized city, got %q", property.City)
		}
	})
}

// TestPropertyService_UpdateProperty tests partial property updates.
func TestPropertyService_UpdateProperty(t *testing.T) {
	t.Run("updates only the provided fields", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)
		user := testutil.CreateUser(t, db)
		property := testutil.NewProperty(user.ID).
			WithAddress("42 Birch Lane").
			WithCity("Akron").
			Build(t, db)

		// Execute
		updated, err := svc.UpdateProperty(context.Background(), user.ID, property.ID, request.UpdatePropertyRequest{
			City: strPtr("Cleveland"),
		})

		// Assert
		if err != nil {
			t.Fatalf("UpdateProperty() returned unexpected error: %v", err)
		}
		if updated.City != "Cleveland" {
			t.Errorf("Expected city 'Cleveland', got %q", updated.City)
		}
		if updated.Address != "42 Birch Lane" {
			t.Errorf("Expected address unchanged, got %q", updated.Address)
		}
	})

	t.Run("returns not found for another user's property", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)
		owner := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		property := testutil.NewProperty(owner.ID).Build(t, db)

		// Execute
		_, err := svc.UpdateProperty(context.Background(), other.ID, property.ID, request.UpdatePropertyRequest{
			City: strPtr("Cleveland"),
		})

		// Assert
		if !errors.Is(err, apperrors.ErrPropertyNotFound) {
			t.Errorf("Expected ErrPropertyNotFound, got %v", err)
		}
	})
}

// TestPropertyService_RetireProperty tests the soft delete.
//
// WHY: There is no hard delete for properties. Entries and valuations keep
// foreign keys into this table, so retirement only flips status and the row
// must survive.
func TestPropertyService_RetireProperty(t *testing.T) {
	t.Run("retires the property and keeps the row", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)
		user := testutil.CreateUser(t, db)
		property := testutil.NewProperty(user.ID).Build(t, db)

		// Execute
		err := svc.RetireProperty(context.Background(), user.ID, property.ID)

		// Assert
		if err != nil {
			t.Fatalf("RetireProperty() returned unexpected error: %v", err)
		}
		visible, err := svc.GetProperties(user.ID, false)
		if err != nil {
			t.Fatalf("GetProperties() returned unexpected error: %v", err)
		}
		if len(visible) != 0 {
			t.Errorf("Expected no visible properties, got %d", len(visible))
		}
		testutil.AssertRowCount(t, db, "properties", 1)
	})

	t.Run("retiring twice is a no-op", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)
		user := testutil.CreateUser(t, db)
		property := testutil.NewProperty(user.ID).Retired().Build(t, db)

		// Execute
		err := svc.RetireProperty(context.Background(), user.ID, property.ID)

		// Assert
		if err != nil {
			t.Errorf("RetireProperty() returned unexpected error: %v", err)
		}
	})

	t.Run("returns not found for another user's property", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPropertyService(t, db)
		owner := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		property := testutil.NewProperty(owner.ID).Build(t, db)

		// Execute
		err := svc.RetireProperty(context.Background(), other.ID, property.ID)

		// Assert
		if !errors.Is(err, apperrors.ErrPropertyNotFound) {
			t.Errorf("Expected ErrPropertyNotFound, got %v", err)
		}
	})
}
