package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/testutil"
)

// TestContactService_CreateContact tests contact creation.
func TestContactService_CreateContact(t *testing.T) {
	t.Run("creates a contact with optional fields empty", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestContactService(t, db)
		user := testutil.CreateUser(t, db)

		// Execute
		contact, err := svc.CreateContact(context.Background(), user.ID, request.CreateContactRequest{
			Name: "Riverside Title Co",
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateContact() returned unexpected error: %v", err)
		}
		if contact.Name != "Riverside Title Co" {
			t.Errorf("Expected name 'Riverside Title Co', got %q", contact.Name)
		}
		if contact.Phone != nil || contact.Email != nil {
			t.Errorf("Expected empty phone and email, got %v / %v", contact.Phone, contact.Email)
		}
		testutil.AssertRowCount(t, db, "contacts", 1)
	})

	t.Run("strips markup from the name and notes", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestContactService(t, db)
		user := testutil.CreateUser(t, db)

		// Execute
		contact, err := svc.CreateContact(context.Background(), user.ID, request.CreateContactRequest{
			Name:  "<b>Pat</b> Holloway",
			Notes: strPtr("<script>alert(1)</script>met at auction"),
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateContact() returned unexpected error: %v", err)
		}
		if contact.Name != "Pat Holloway" {
			t.Errorf("Expected sanitized name, got %q", contact.Name)
		}
		if contact.Notes == nil || *contact.Notes != "met at auction" {
			t.Errorf("Expected sanitized notes, got %v", contact.Notes)
		}
	})
}

// TestContactService_GetContacts tests listing, filtering, and search.
func TestContactService_GetContacts(t *testing.T) {
	t.Run("filters by module scope", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestContactService(t, db)
		user := testutil.CreateUser(t, db)
		testutil.NewContact(user.ID).WithName("Deposit Bank").WithModule("deposits").Build(t, db)
		testutil.NewContact(user.ID).WithName("Trace Broker").WithModule("skip_traces").Build(t, db)

		// Execute
		contacts, err := svc.GetContacts(user.ID, strPtr("deposits"), "")

		// Assert
		if err != nil {
			t.Fatalf("GetContacts() returned unexpected error: %v", err)
		}
		if len(contacts) != 1 {
			t.Fatalf("Expected 1 contact, got %d", len(contacts))
		}
		if contacts[0].Name != "Deposit Bank" {
			t.Errorf("Expected 'Deposit Bank', got %q", contacts[0].Name)
		}
	})

	t.Run("searches names case insensitively", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestContactService(t, db)
		user := testutil.CreateUser(t, db)
		testutil.NewContact(user.ID).WithName("Holloway Plumbing").Build(t, db)
		testutil.NewContact(user.ID).WithName("Creekside Lawn").Build(t, db)

		// Execute
		contacts, err := svc.GetContacts(user.ID, nil, "holloway")

		// Assert
		if err != nil {
			t.Fatalf("GetContacts() returned unexpected error: %v", err)
		}
		if len(contacts) != 1 {
			t.Fatalf("Expected 1 match, got %d", len(contacts))
		}
		if contacts[0].Name != "Holloway Plumbing" {
			t.Errorf("Expected 'Holloway Plumbing', got %q", contacts[0].Name)
		}
	})

	t.Run("orders contacts by name", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestContactService(t, db)
		user := testutil.CreateUser(t, db)
		testutil.NewContact(user.ID).WithName("Zimmer Roofing").Build(t, db)
		testutil.NewContact(user.ID).WithName("Atlas Inspections").Build(t, db)

		// Execute
		contacts, err := svc.GetContacts(user.ID, nil, "")

		// Assert
		if err != nil {
			t.Fatalf("GetContacts() returned unexpected error: %v", err)
		}
		if len(contacts) != 2 {
			t.Fatalf("Expected 2 contacts, got %d", len(contacts))
		}
		if contacts[0].Name != "Atlas Inspections" {
			t.Errorf("Expected name order, got %q first", contacts[0].Name)
		}
	})

	t.Run("only returns the user's own contacts", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestContactService(t, db)
		owner := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		testutil.NewContact(owner.ID).Build(t, db)
		testutil.NewContact(other.ID).Build(t, db)

		// Execute
		contacts, err := svc.GetContacts(owner.ID, nil, "")

		// Assert
		if err != nil {
			t.Fatalf("GetContacts() returned unexpected error: %v", err)
		}
		if len(contacts) != 1 {
			t.Errorf("Expected 1 contact, got %d", len(contacts))
		}
	})
}

// TestContactService_UpdateContact tests partial contact updates.
func TestContactService_UpdateContact(t *testing.T) {
	t.Run("updates only the provided fields", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestContactService(t, db)
		user := testutil.CreateUser(t, db)
		contact := testutil.NewContact(user.ID).
			WithName("Pat Holloway").
			WithPhone("614-555-0188").
			Build(t, db)

		// Execute
		updated, err := svc.UpdateContact(context.Background(), user.ID, contact.ID, request.UpdateContactRequest{
			Email: strPtr("pat@holloway.example"),
		})

		// Assert
		if err != nil {
			t.Fatalf("UpdateContact() returned unexpected error: %v", err)
		}
		if updated.Email == nil || *updated.Email != "pat@holloway.example" {
			t.Errorf("Expected updated email, got %v", updated.Email)
		}
		if updated.Phone == nil || *updated.Phone != "614-555-0188" {
			t.Errorf("Expected phone unchanged, got %v", updated.Phone)
		}
		if updated.Name != "Pat Holloway" {
			t.Errorf("Expected name unchanged, got %q", updated.Name)
		}
	})

	t.Run("returns not found for another user's contact", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestContactService(t, db)
		owner := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		contact := testutil.NewContact(owner.ID).Build(t, db)

		// Execute
		_, err := svc.UpdateContact(context.Background(), other.ID, contact.ID, request.UpdateContactRequest{
			Name: strPtr("Hijacked"),
		})

		// Assert
		if !errors.Is(err, apperrors.ErrContactNotFound) {
			t.Errorf("Expected ErrContactNotFound, got %v", err)
		}
	})
}

// TestContactService_DeleteContact tests contact deletion.
func TestContactService_DeleteContact(t *testing.T) {
	t.Run("deletes the contact", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestContactService(t, db)
		user := testutil.CreateUser(t, db)
		contact := testutil.NewContact(user.ID).Build(t, db)

		// Execute
		err := svc.DeleteContact(context.Background(), user.ID, contact.ID)

		// Assert
		if err != nil {
			t.Fatalf("DeleteContact() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "contacts", 0)
	})

	t.Run("returns not found for another user's contact", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestContactService(t, db)
		owner := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		contact := testutil.NewContact(owner.ID).Build(t, db)

		// Execute
		err := svc.DeleteContact(context.Background(), other.ID, contact.ID)

		// Assert
		if !errors.Is(err, apperrors.ErrContactNotFound) {
			t.Errorf("Expected ErrContactNotFound, got %v", err)
		}
		testutil.AssertRowCount(t, db, "contacts", 1)
	})
}
