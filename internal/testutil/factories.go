package testutil

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/shopspring/decimal"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/auth"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
)

// UserBuilder provides a fluent interface for creating test accounts.
//
// Example usage:
//
//	// Simple creation with defaults
//	user := testutil.NewUser().Build(t, db)
//
//	// Customized user
//	user := testutil.NewUser().
//	    WithEmail("landlord@example.com").
//	    WithPassword("hunter2hunter2").
//	    Build(t, db)
type UserBuilder struct {
	ID       string
	Email    string
	Name     string
	Password string
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		ID:       MakeID(),
		Email:    MakeEmail("user"),
		Name:     MakeName("Test User"),
		Password: "correct-horse-battery",
	}
}

// WithEmail sets a custom email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

// WithName sets a custom name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.Name = name
	return b
}

// WithPassword sets the plaintext password hashed into the stored row.
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.Password = password
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	hash, err := auth.HashPassword(b.Password)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = db.Exec(query, b.ID, b.Email, b.Name, hash, createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{
		ID:           b.ID,
		Email:        b.Email,
		Name:         b.Name,
		PasswordHash: hash,
		CreatedAt:    createdAt,
	}
}

// CreateUser creates a user with default values.
//
// Example usage:
//
//	user := testutil.CreateUser(t, db)
func CreateUser(t *testing.T, db *sql.DB) model.User {
	t.Helper()
	return NewUser().Build(t, db)
}

// TeamMemberBuilder provides a fluent interface for creating team
// memberships. The default row is an open invitation: no linked user, not
// yet accepted.
type TeamMemberBuilder struct {
	ID         string
	OwnerID    string
	Email      string
	Role       string
	UserID     *string
	AcceptedAt *time.Time
}

// NewTeamMember creates a TeamMemberBuilder for the given owner.
func NewTeamMember(ownerID string) *TeamMemberBuilder {
	return &TeamMemberBuilder{
		ID:      MakeID(),
		OwnerID: ownerID,
		Email:   MakeEmail("invitee"),
		Role:    model.TeamRoleMember,
	}
}

// WithEmail sets the invited email.
func (b *TeamMemberBuilder) WithEmail(email string) *TeamMemberBuilder {
	b.Email = email
	return b
}

// WithRole sets the membership role.
func (b *TeamMemberBuilder) WithRole(role string) *TeamMemberBuilder {
	b.Role = role
	return b
}

// AcceptedBy links the membership to a user and stamps the acceptance.
func (b *TeamMemberBuilder) AcceptedBy(userID string) *TeamMemberBuilder {
	acceptedAt := time.Now().UTC()
	b.UserID = &userID
	b.AcceptedAt = &acceptedAt
	return b
}

// Build creates the team membership in the database and returns it.
func (b *TeamMemberBuilder) Build(t *testing.T, db *sql.DB) model.TeamMember {
	t.Helper()

	var userID, acceptedAt any
	if b.UserID != nil {
		userID = *b.UserID
	}
	if b.AcceptedAt != nil {
		acceptedAt = b.AcceptedAt.Format(time.RFC3339)
	}

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO team_members (id, owner_id, email, role, user_id, accepted_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.OwnerID, b.Email, b.Role, userID, acceptedAt, createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test team member: %v", err)
	}

	return model.TeamMember{
		ID:         b.ID,
		OwnerID:    b.OwnerID,
		Email:      b.Email,
		Role:       b.Role,
		UserID:     b.UserID,
		AcceptedAt: b.AcceptedAt,
		CreatedAt:  createdAt,
	}
}

// PropertyBuilder provides a fluent interface for creating test properties.
//
// Example usage:
//
//	property := testutil.NewProperty(user.ID).
//	    WithAddress("12 Elm St").
//	    WithCity("Dayton").
//	    Build(t, db)
type PropertyBuilder struct {
	ID           string
	UserID       string
	Address      string
	City         string
	State        string
	Zip          string
	PropertyType string
	Bedrooms     int
	Bathrooms    float64
	SquareFeet   int
	YearBuilt    int
	Status       string
}

// NewProperty creates a PropertyBuilder with sensible defaults.
func NewProperty(userID string) *PropertyBuilder {
	return &PropertyBuilder{
		ID:           MakeID(),
		UserID:       userID,
		Address:      MakeAddress("Maple Ave"),
		City:         "Columbus",
		State:        "OH",
		Zip:          "43004",
		PropertyType: "single_family",
		Bedrooms:     3,
		Bathrooms:    2,
		SquareFeet:   1450,
		YearBuilt:    1987,
		Status:       model.PropertyStatusActive,
	}
}

// WithAddress sets a custom address.
func (b *PropertyBuilder) WithAddress(address string) *PropertyBuilder {
	b.Address = address
	return b
}

// WithCity sets a custom city.
func (b *PropertyBuilder) WithCity(city string) *PropertyBuilder {
	b.City = city
	return b
}

// WithPropertyType sets the property type.
func (b *PropertyBuilder) WithPropertyType(propertyType string) *PropertyBuilder {
	b.PropertyType = propertyType
	return b
}

// Retired marks the property as retired.
func (b *PropertyBuilder) Retired() *PropertyBuilder {
	b.Status = model.PropertyStatusRetired
	return b
}

// Build creates the property in the database and returns it.
func (b *PropertyBuilder) Build(t *testing.T, db *sql.DB) model.Property {
	t.Helper()

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO properties (id, user_id, address, city, state, zip, property_type,
		                        bedrooms, bathrooms, square_feet, year_built, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.UserID, b.Address, b.City, b.State, b.Zip, b.PropertyType,
		b.Bedrooms, b.Bathrooms, b.SquareFeet, b.YearBuilt, b.Status,
		createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test property: %v", err)
	}

	return model.Property{
		ID:           b.ID,
		UserID:       b.UserID,
		Address:      b.Address,
		City:         b.City,
		State:        b.State,
		Zip:          b.Zip,
		PropertyType: b.PropertyType,
		Bedrooms:     b.Bedrooms,
		Bathrooms:    b.Bathrooms,
		SquareFeet:   b.SquareFeet,
		YearBuilt:    b.YearBuilt,
		Status:       b.Status,
		CreatedAt:    createdAt,
	}
}

// CreateProperty creates a property for the user with default values.
//
// Example usage:
//
//	property := testutil.CreateProperty(t, db, user.ID)
func CreateProperty(t *testing.T, db *sql.DB, userID string) model.Property {
	t.Helper()
	return NewProperty(userID).Build(t, db)
}

// EntryBuilder provides a fluent interface for creating portfolio entries.
//
// Example usage:
//
//	entry := testutil.NewEntry(user.ID, property.ID).
//	    WithAcquisitionPrice(250000).
//	    WithMonthlyRent(2100).
//	    Build(t, db)
type EntryBuilder struct {
	ID                  string
	UserID              string
	PropertyID          string
	AcquisitionDate     time.Time
	AcquisitionPrice    float64
	MonthlyRent         float64
	MonthlyExpenses     float64
	OwnershipPercentage float64
	IsActive            bool
}

// NewEntry creates an EntryBuilder with sensible defaults.
func NewEntry(userID, propertyID string) *EntryBuilder {
	return &EntryBuilder{
		ID:                  MakeID(),
		UserID:              userID,
		PropertyID:          propertyID,
		AcquisitionDate:     time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
		AcquisitionPrice:    200000,
		MonthlyRent:         1800,
		MonthlyExpenses:     250,
		OwnershipPercentage: 100,
		IsActive:            true,
	}
}

// WithAcquisitionDate sets the acquisition date.
func (b *EntryBuilder) WithAcquisitionDate(date time.Time) *EntryBuilder {
	b.AcquisitionDate = date
	return b
}

// WithAcquisitionPrice sets the acquisition price.
func (b *EntryBuilder) WithAcquisitionPrice(price float64) *EntryBuilder {
	b.AcquisitionPrice = price
	return b
}

// WithMonthlyRent sets the expected monthly rent.
func (b *EntryBuilder) WithMonthlyRent(rent float64) *EntryBuilder {
	b.MonthlyRent = rent
	return b
}

// WithMonthlyExpenses sets the expected monthly expenses.
func (b *EntryBuilder) WithMonthlyExpenses(expenses float64) *EntryBuilder {
	b.MonthlyExpenses = expenses
	return b
}

// WithOwnershipPercentage sets the ownership share.
func (b *EntryBuilder) WithOwnershipPercentage(pct float64) *EntryBuilder {
	b.OwnershipPercentage = pct
	return b
}

// Inactive marks the entry as deactivated.
func (b *EntryBuilder) Inactive() *EntryBuilder {
	b.IsActive = false
	return b
}

// Build creates the portfolio entry in the database and returns it.
func (b *EntryBuilder) Build(t *testing.T, db *sql.DB) model.PortfolioEntry {
	t.Helper()

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO portfolio_entries (id, user_id, property_id, acquisition_date, acquisition_price,
		                               deal_id, group_id, monthly_rent, monthly_expenses,
		                               ownership_percentage, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.UserID, b.PropertyID,
		b.AcquisitionDate.Format("2006-01-02"), b.AcquisitionPrice,
		nil, nil,
		b.MonthlyRent, b.MonthlyExpenses, b.OwnershipPercentage, b.IsActive,
		createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test portfolio entry: %v", err)
	}

	return model.PortfolioEntry{
		ID:                  b.ID,
		UserID:              b.UserID,
		PropertyID:          b.PropertyID,
		AcquisitionDate:     b.AcquisitionDate,
		AcquisitionPrice:    b.AcquisitionPrice,
		MonthlyRent:         b.MonthlyRent,
		MonthlyExpenses:     b.MonthlyExpenses,
		OwnershipPercentage: b.OwnershipPercentage,
		IsActive:            b.IsActive,
		CreatedAt:           createdAt,
	}
}

// CreateEntry creates an active portfolio entry with default values.
func CreateEntry(t *testing.T, db *sql.DB, userID, propertyID string) model.PortfolioEntry {
	t.Helper()
	return NewEntry(userID, propertyID).Build(t, db)
}

// MonthlyRecordBuilder provides a fluent interface for creating monthly
// records. The month is stored as its first day.
type MonthlyRecordBuilder struct {
	ID            string
	EntryID       string
	Month         time.Time
	RentCollected float64
	Expenses      model.ExpenseBreakdown
}

// NewMonthlyRecord creates a MonthlyRecordBuilder with sensible defaults.
func NewMonthlyRecord(entryID string) *MonthlyRecordBuilder {
	return &MonthlyRecordBuilder{
		ID:            MakeID(),
		EntryID:       entryID,
		Month:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RentCollected: 1800,
		Expenses: model.ExpenseBreakdown{
			Maintenance: 120,
			Taxes:       210,
			Insurance:   80,
			Management:  144,
		},
	}
}

// WithMonth sets the record's month.
func (b *MonthlyRecordBuilder) WithMonth(month time.Time) *MonthlyRecordBuilder {
	b.Month = month
	return b
}

// WithRentCollected sets the rent collected.
func (b *MonthlyRecordBuilder) WithRentCollected(rent float64) *MonthlyRecordBuilder {
	b.RentCollected = rent
	return b
}

// WithExpenses sets the full expense breakdown.
func (b *MonthlyRecordBuilder) WithExpenses(expenses model.ExpenseBreakdown) *MonthlyRecordBuilder {
	b.Expenses = expenses
	return b
}

// Build creates the monthly record in the database and returns it.
func (b *MonthlyRecordBuilder) Build(t *testing.T, db *sql.DB) model.MonthlyRecord {
	t.Helper()

	month := time.Date(b.Month.Year(), b.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
	createdAt := time.Now().UTC()
	query := `
		INSERT INTO monthly_records (id, entry_id, month, rent_collected,
		                             maintenance, taxes, insurance, utilities, management, hoa, other, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.EntryID, month.Format("2006-01-02"), b.RentCollected,
		b.Expenses.Maintenance, b.Expenses.Taxes, b.Expenses.Insurance,
		b.Expenses.Utilities, b.Expenses.Management, b.Expenses.HOA, b.Expenses.Other,
		createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test monthly record: %v", err)
	}

	expenses := b.Expenses
	expenses.Total = expenses.Sum()

	return model.MonthlyRecord{
		ID:            b.ID,
		EntryID:       b.EntryID,
		Month:         month,
		RentCollected: b.RentCollected,
		Expenses:      expenses,
		CreatedAt:     createdAt,
	}
}

// MortgageBuilder provides a fluent interface for creating mortgages.
// Mortgages default to non-primary; mark one per entry with Primary().
type MortgageBuilder struct {
	ID              string
	EntryID         string
	Lender          string
	OriginalBalance float64
	CurrentBalance  float64
	InterestRate    float64
	MonthlyPayment  float64
	IsPrimary       bool
}

// NewMortgage creates a MortgageBuilder with sensible defaults.
func NewMortgage(entryID string) *MortgageBuilder {
	return &MortgageBuilder{
		ID:              MakeID(),
		EntryID:         entryID,
		Lender:          MakeName("First Federal"),
		OriginalBalance: 160000,
		CurrentBalance:  150000,
		InterestRate:    0.065,
		MonthlyPayment:  1011.31,
	}
}

// WithLender sets the lender name.
func (b *MortgageBuilder) WithLender(lender string) *MortgageBuilder {
	b.Lender = lender
	return b
}

// WithOriginalBalance sets the original balance.
func (b *MortgageBuilder) WithOriginalBalance(balance float64) *MortgageBuilder {
	b.OriginalBalance = balance
	return b
}

// WithCurrentBalance sets the current balance.
func (b *MortgageBuilder) WithCurrentBalance(balance float64) *MortgageBuilder {
	b.CurrentBalance = balance
	return b
}

// WithInterestRate sets the annual interest rate as a fraction.
func (b *MortgageBuilder) WithInterestRate(rate float64) *MortgageBuilder {
	b.InterestRate = rate
	return b
}

// WithMonthlyPayment sets the monthly payment.
func (b *MortgageBuilder) WithMonthlyPayment(payment float64) *MortgageBuilder {
	b.MonthlyPayment = payment
	return b
}

// Primary marks the mortgage as the entry's primary loan.
func (b *MortgageBuilder) Primary() *MortgageBuilder {
	b.IsPrimary = true
	return b
}

// Build creates the mortgage in the database and returns it.
func (b *MortgageBuilder) Build(t *testing.T, db *sql.DB) model.Mortgage {
	t.Helper()

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO mortgages (id, entry_id, lender, original_balance, current_balance,
		                       interest_rate, monthly_payment, is_primary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.EntryID, b.Lender, b.OriginalBalance, b.CurrentBalance,
		b.InterestRate, b.MonthlyPayment, b.IsPrimary,
		createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test mortgage: %v", err)
	}

	return model.Mortgage{
		ID:              b.ID,
		EntryID:         b.EntryID,
		Lender:          b.Lender,
		OriginalBalance: b.OriginalBalance,
		CurrentBalance:  b.CurrentBalance,
		InterestRate:    b.InterestRate,
		MonthlyPayment:  b.MonthlyPayment,
		IsPrimary:       b.IsPrimary,
		CreatedAt:       createdAt,
	}
}

// ValuationBuilder provides a fluent interface for creating valuations.
type ValuationBuilder struct {
	ID             string
	PropertyID     string
	EstimatedValue float64
	ValuationDate  time.Time
	Source         string
}

// NewValuation creates a ValuationBuilder with sensible defaults.
func NewValuation(propertyID string) *ValuationBuilder {
	return &ValuationBuilder{
		ID:             MakeID(),
		PropertyID:     propertyID,
		EstimatedValue: 230000,
		ValuationDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Source:         model.ValuationSourceManual,
	}
}

// WithValue sets the estimated value.
func (b *ValuationBuilder) WithValue(value float64) *ValuationBuilder {
	b.EstimatedValue = value
	return b
}

// WithDate sets the valuation date.
func (b *ValuationBuilder) WithDate(date time.Time) *ValuationBuilder {
	b.ValuationDate = date
	return b
}

// WithSource sets the valuation source.
func (b *ValuationBuilder) WithSource(source string) *ValuationBuilder {
	b.Source = source
	return b
}

// Build creates the valuation in the database and returns it.
func (b *ValuationBuilder) Build(t *testing.T, db *sql.DB) model.Valuation {
	t.Helper()

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO valuations (id, property_id, estimated_value, valuation_date, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.PropertyID, b.EstimatedValue,
		b.ValuationDate.Format("2006-01-02"), b.Source,
		createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test valuation: %v", err)
	}

	return model.Valuation{
		ID:             b.ID,
		PropertyID:     b.PropertyID,
		EstimatedValue: b.EstimatedValue,
		ValuationDate:  b.ValuationDate,
		Source:         b.Source,
		CreatedAt:      createdAt,
	}
}

// ContactBuilder provides a fluent interface for creating contacts.
// Optional fields stay NULL unless set.
type ContactBuilder struct {
	ID     string
	UserID string
	Name   string
	Phone  *string
	Email  *string
	Module *string
	Notes  *string
}

// NewContact creates a ContactBuilder with sensible defaults.
func NewContact(userID string) *ContactBuilder {
	return &ContactBuilder{
		ID:     MakeID(),
		UserID: userID,
		Name:   MakeName("Test Contact"),
	}
}

// WithName sets a custom name.
func (b *ContactBuilder) WithName(name string) *ContactBuilder {
	b.Name = name
	return b
}

// WithPhone sets the phone number.
func (b *ContactBuilder) WithPhone(phone string) *ContactBuilder {
	b.Phone = &phone
	return b
}

// WithEmail sets the email address.
func (b *ContactBuilder) WithEmail(email string) *ContactBuilder {
	b.Email = &email
	return b
}

// WithModule scopes the contact to an app module.
func (b *ContactBuilder) WithModule(module string) *ContactBuilder {
	b.Module = &module
	return b
}

// WithNotes sets free-form notes.
func (b *ContactBuilder) WithNotes(notes string) *ContactBuilder {
	b.Notes = &notes
	return b
}

// Build creates the contact in the database and returns it.
func (b *ContactBuilder) Build(t *testing.T, db *sql.DB) model.Contact {
	t.Helper()

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO contacts (id, user_id, name, phone, email, module, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.UserID, b.Name,
		nullString(b.Phone), nullString(b.Email), nullString(b.Module), nullString(b.Notes),
		createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test contact: %v", err)
	}

	return model.Contact{
		ID:        b.ID,
		UserID:    b.UserID,
		Name:      b.Name,
		Phone:     b.Phone,
		Email:     b.Email,
		Module:    b.Module,
		Notes:     b.Notes,
		CreatedAt: createdAt,
	}
}

// VendorBuilder provides a fluent interface for creating vendors.
type VendorBuilder struct {
	ID     string
	UserID string
	Name   string
	Trade  string
	Phone  *string
	Email  *string
	Rating *float64
	Notes  *string
}

// NewVendor creates a VendorBuilder with sensible defaults.
func NewVendor(userID string) *VendorBuilder {
	return &VendorBuilder{
		ID:     MakeID(),
		UserID: userID,
		Name:   MakeName("Test Vendor"),
		Trade:  "plumbing",
	}
}

// WithName sets a custom name.
func (b *VendorBuilder) WithName(name string) *VendorBuilder {
	b.Name = name
	return b
}

// WithTrade sets the vendor's trade.
func (b *VendorBuilder) WithTrade(trade string) *VendorBuilder {
	b.Trade = trade
	return b
}

// WithRating sets the vendor rating.
func (b *VendorBuilder) WithRating(rating float64) *VendorBuilder {
	b.Rating = &rating
	return b
}

// Build creates the vendor in the database and returns it.
func (b *VendorBuilder) Build(t *testing.T, db *sql.DB) model.Vendor {
	t.Helper()

	var rating any
	if b.Rating != nil {
		rating = *b.Rating
	}

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO vendors (id, user_id, name, trade, phone, email, rating, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.UserID, b.Name, b.Trade,
		nullString(b.Phone), nullString(b.Email), rating, nullString(b.Notes),
		createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test vendor: %v", err)
	}

	return model.Vendor{
		ID:        b.ID,
		UserID:    b.UserID,
		Name:      b.Name,
		Trade:     b.Trade,
		Phone:     b.Phone,
		Email:     b.Email,
		Rating:    b.Rating,
		Notes:     b.Notes,
		CreatedAt: createdAt,
	}
}

// WorkOrderBuilder provides a fluent interface for creating work orders.
type WorkOrderBuilder struct {
	ID            string
	UserID        string
	PropertyID    string
	VendorID      *string
	Title         string
	Description   *string
	Status        string
	Priority      string
	EstimatedCost *float64
	ActualCost    *float64
	CompletedAt   *time.Time
}

// NewWorkOrder creates a WorkOrderBuilder with sensible defaults.
func NewWorkOrder(userID, propertyID string) *WorkOrderBuilder {
	return &WorkOrderBuilder{
		ID:         MakeID(),
		UserID:     userID,
		PropertyID: propertyID,
		Title:      "Leaking kitchen faucet",
		Status:     model.WorkOrderStatusOpen,
		Priority:   model.WorkOrderPriorityMedium,
	}
}

// WithTitle sets the work order title.
func (b *WorkOrderBuilder) WithTitle(title string) *WorkOrderBuilder {
	b.Title = title
	return b
}

// WithVendor assigns a vendor.
func (b *WorkOrderBuilder) WithVendor(vendorID string) *WorkOrderBuilder {
	b.VendorID = &vendorID
	return b
}

// WithStatus sets the status.
func (b *WorkOrderBuilder) WithStatus(status string) *WorkOrderBuilder {
	b.Status = status
	return b
}

// WithPriority sets the priority.
func (b *WorkOrderBuilder) WithPriority(priority string) *WorkOrderBuilder {
	b.Priority = priority
	return b
}

// WithEstimatedCost sets the estimated cost.
func (b *WorkOrderBuilder) WithEstimatedCost(cost float64) *WorkOrderBuilder {
	b.EstimatedCost = &cost
	return b
}

// Build creates the work order in the database and returns it.
func (b *WorkOrderBuilder) Build(t *testing.T, db *sql.DB) model.WorkOrder {
	t.Helper()

	var vendorID, estimatedCost, actualCost, completedAt any
	if b.VendorID != nil {
		vendorID = *b.VendorID
	}
	if b.EstimatedCost != nil {
		estimatedCost = *b.EstimatedCost
	}
	if b.ActualCost != nil {
		actualCost = *b.ActualCost
	}
	if b.CompletedAt != nil {
		completedAt = b.CompletedAt.Format(time.RFC3339)
	}

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO work_orders (id, user_id, property_id, vendor_id, title, description,
		                         status, priority, estimated_cost, actual_cost, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.UserID, b.PropertyID, vendorID, b.Title, nullString(b.Description),
		b.Status, b.Priority, estimatedCost, actualCost, completedAt,
		createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test work order: %v", err)
	}

	return model.WorkOrder{
		ID:            b.ID,
		UserID:        b.UserID,
		PropertyID:    b.PropertyID,
		VendorID:      b.VendorID,
		Title:         b.Title,
		Description:   b.Description,
		Status:        b.Status,
		Priority:      b.Priority,
		EstimatedCost: b.EstimatedCost,
		ActualCost:    b.ActualCost,
		CompletedAt:   b.CompletedAt,
		CreatedAt:     createdAt,
	}
}

// TurnoverBuilder provides a fluent interface for creating turnovers.
type TurnoverBuilder struct {
	ID              string
	UserID          string
	PropertyID      string
	Stage           string
	NoticeDate      time.Time
	MoveOutDate     *time.Time
	ListedDate      *time.Time
	LeasedDate      *time.Time
	PreviousRent    *float64
	NewRent         *float64
	MakeReadyBudget *float64
}

// NewTurnover creates a TurnoverBuilder with sensible defaults.
func NewTurnover(userID, propertyID string) *TurnoverBuilder {
	return &TurnoverBuilder{
		ID:         MakeID(),
		UserID:     userID,
		PropertyID: propertyID,
		Stage:      model.TurnoverStageNotice,
		NoticeDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WithStage sets the turnover stage.
func (b *TurnoverBuilder) WithStage(stage string) *TurnoverBuilder {
	b.Stage = stage
	return b
}

// WithNoticeDate sets the notice date.
func (b *TurnoverBuilder) WithNoticeDate(date time.Time) *TurnoverBuilder {
	b.NoticeDate = date
	return b
}

// WithPreviousRent sets the outgoing tenancy's rent.
func (b *TurnoverBuilder) WithPreviousRent(rent float64) *TurnoverBuilder {
	b.PreviousRent = &rent
	return b
}

// WithMakeReadyBudget sets the make-ready budget.
func (b *TurnoverBuilder) WithMakeReadyBudget(budget float64) *TurnoverBuilder {
	b.MakeReadyBudget = &budget
	return b
}

// Build creates the turnover in the database and returns it.
func (b *TurnoverBuilder) Build(t *testing.T, db *sql.DB) model.Turnover {
	t.Helper()

	var moveOut, listed, leased, previousRent, newRent, budget any
	if b.MoveOutDate != nil {
		moveOut = b.MoveOutDate.Format("2006-01-02")
	}
	if b.ListedDate != nil {
		listed = b.ListedDate.Format("2006-01-02")
	}
	if b.LeasedDate != nil {
		leased = b.LeasedDate.Format("2006-01-02")
	}
	if b.PreviousRent != nil {
		previousRent = *b.PreviousRent
	}
	if b.NewRent != nil {
		newRent = *b.NewRent
	}
	if b.MakeReadyBudget != nil {
		budget = *b.MakeReadyBudget
	}

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO turnovers (id, user_id, property_id, stage, notice_date, move_out_date,
		                       listed_date, leased_date, previous_rent, new_rent, make_ready_budget,
		                       notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.UserID, b.PropertyID, b.Stage, b.NoticeDate.Format("2006-01-02"),
		moveOut, listed, leased, previousRent, newRent, budget, nil,
		createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test turnover: %v", err)
	}

	return model.Turnover{
		ID:              b.ID,
		UserID:          b.UserID,
		PropertyID:      b.PropertyID,
		Stage:           b.Stage,
		NoticeDate:      b.NoticeDate,
		MoveOutDate:     b.MoveOutDate,
		ListedDate:      b.ListedDate,
		LeasedDate:      b.LeasedDate,
		PreviousRent:    b.PreviousRent,
		NewRent:         b.NewRent,
		MakeReadyBudget: b.MakeReadyBudget,
		CreatedAt:       createdAt,
	}
}

// DepositBuilder provides a fluent interface for creating security deposits.
// Amounts are decimal strings, matching the wire format.
type DepositBuilder struct {
	ID         string
	UserID     string
	PropertyID string
	TenantName string
	Amount     string
	Status     string
	ReceivedAt time.Time
	SettledAt  *time.Time
}

// NewDeposit creates a DepositBuilder with sensible defaults.
func NewDeposit(userID, propertyID string) *DepositBuilder {
	return &DepositBuilder{
		ID:         MakeID(),
		UserID:     userID,
		PropertyID: propertyID,
		TenantName: MakeName("Tenant"),
		Amount:     "1500.00",
		Status:     model.DepositStatusHeld,
		ReceivedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WithTenantName sets the tenant name.
func (b *DepositBuilder) WithTenantName(name string) *DepositBuilder {
	b.TenantName = name
	return b
}

// WithAmount sets the deposit amount from a decimal string.
func (b *DepositBuilder) WithAmount(amount string) *DepositBuilder {
	b.Amount = amount
	return b
}

// WithReceivedAt sets the received date.
func (b *DepositBuilder) WithReceivedAt(date time.Time) *DepositBuilder {
	b.ReceivedAt = date
	return b
}

// Settled marks the deposit as already settled.
func (b *DepositBuilder) Settled() *DepositBuilder {
	settledAt := time.Now().UTC()
	b.Status = model.DepositStatusSettled
	b.SettledAt = &settledAt
	return b
}

// Build creates the deposit in the database and returns it.
func (b *DepositBuilder) Build(t *testing.T, db *sql.DB) model.Deposit {
	t.Helper()

	amount, err := decimal.NewFromString(b.Amount)
	if err != nil {
		t.Fatalf("Failed to parse test deposit amount: %v", err)
	}

	var settledAt any
	if b.SettledAt != nil {
		settledAt = b.SettledAt.Format(time.RFC3339)
	}

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO deposits (id, user_id, property_id, tenant_name, amount, status,
		                      received_at, settled_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = db.Exec(query,
		b.ID, b.UserID, b.PropertyID, b.TenantName, amount.String(), b.Status,
		b.ReceivedAt.Format("2006-01-02"), settledAt,
		createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test deposit: %v", err)
	}

	return model.Deposit{
		ID:         b.ID,
		UserID:     b.UserID,
		PropertyID: b.PropertyID,
		TenantName: b.TenantName,
		Amount:     amount,
		Status:     b.Status,
		ReceivedAt: b.ReceivedAt,
		SettledAt:  b.SettledAt,
		CreatedAt:  createdAt,
	}
}

// DepositChargeBuilder provides a fluent interface for creating deposit
// charges.
type DepositChargeBuilder struct {
	ID          string
	DepositID   string
	Description string
	Amount      string
}

// NewDepositCharge creates a DepositChargeBuilder with sensible defaults.
func NewDepositCharge(depositID string) *DepositChargeBuilder {
	return &DepositChargeBuilder{
		ID:          MakeID(),
		DepositID:   depositID,
		Description: "Carpet cleaning",
		Amount:      "150.00",
	}
}

// WithDescription sets the charge description.
func (b *DepositChargeBuilder) WithDescription(description string) *DepositChargeBuilder {
	b.Description = description
	return b
}

// WithAmount sets the charge amount from a decimal string.
func (b *DepositChargeBuilder) WithAmount(amount string) *DepositChargeBuilder {
	b.Amount = amount
	return b
}

// Build creates the charge in the database and returns it.
func (b *DepositChargeBuilder) Build(t *testing.T, db *sql.DB) model.DepositCharge {
	t.Helper()

	amount, err := decimal.NewFromString(b.Amount)
	if err != nil {
		t.Fatalf("Failed to parse test charge amount: %v", err)
	}

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO deposit_charges (id, deposit_id, description, amount, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = db.Exec(query,
		b.ID, b.DepositID, b.Description, amount.String(),
		createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test deposit charge: %v", err)
	}

	return model.DepositCharge{
		ID:          b.ID,
		DepositID:   b.DepositID,
		Description: b.Description,
		Amount:      amount,
		CreatedAt:   createdAt,
	}
}

// SkipTraceBuilder provides a fluent interface for creating stored lookup
// results. Payloads are encrypted the way the service stores them, so
// reads through the service decrypt cleanly.
type SkipTraceBuilder struct {
	ID        string
	UserID    string
	Address   string
	OwnerName *string
	Status    string
	Payload   string
}

// NewSkipTrace creates a SkipTraceBuilder with sensible defaults.
func NewSkipTrace(userID string) *SkipTraceBuilder {
	return &SkipTraceBuilder{
		ID:      MakeID(),
		UserID:  userID,
		Address: MakeAddress("Oak St"),
		Status:  model.SkipTraceStatusPending,
	}
}

// WithStatus sets the lookup status.
func (b *SkipTraceBuilder) WithStatus(status string) *SkipTraceBuilder {
	b.Status = status
	return b
}

// WithOwnerName sets the owner name.
func (b *SkipTraceBuilder) WithOwnerName(name string) *SkipTraceBuilder {
	b.OwnerName = &name
	return b
}

// WithPayload encrypts the contact payload and marks the lookup complete.
func (b *SkipTraceBuilder) WithPayload(t *testing.T, payload model.SkipTracePayload) *SkipTraceBuilder {
	t.Helper()

	plaintext, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to encode test skip trace payload: %v", err)
	}
	token, err := fernet.EncryptAndSign(plaintext, TestFernetKeys(t)[0])
	if err != nil {
		t.Fatalf("Failed to encrypt test skip trace payload: %v", err)
	}

	b.Payload = string(token)
	b.Status = model.SkipTraceStatusComplete
	return b
}

// Build creates the skip trace row in the database and returns it.
func (b *SkipTraceBuilder) Build(t *testing.T, db *sql.DB) model.SkipTraceResult {
	t.Helper()

	var ownerName any
	if b.OwnerName != nil {
		ownerName = *b.OwnerName
	}

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO skip_traces (id, user_id, address, owner_name, status, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.UserID, b.Address, ownerName, b.Status, b.Payload,
		createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test skip trace: %v", err)
	}

	return model.SkipTraceResult{
		ID:        b.ID,
		UserID:    b.UserID,
		Address:   b.Address,
		OwnerName: b.OwnerName,
		Status:    b.Status,
		Payload:   b.Payload,
		CreatedAt: createdAt,
	}
}

// nullString renders *string as a bind value, nil as NULL.
func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
