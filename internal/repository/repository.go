package repository

import (
	"context"

	"example.com/fleetops/internal/database"
	"example.com/fleetops/internal/models"

	"gorm.io/gorm"
)

// Repository provides data access methods for all fleet entities
type Repository interface {
	// Transaction support
	WithTransaction(ctx context.Context, fn func(ctx context.Context, txRepo Repository) error) error

	// Fleet operations
	CreateFleet(ctx context.Context, fleet *models.Fleet) error
	UpdateFleet(ctx context.Context, fleet *models.Fleet) error
	FindFleetByUID(ctx context.Context, uid string) (*models.Fleet, error)

	// Vehicle operations
	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	UpdateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	FindVehicleByUID(ctx context.Context, uid string) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, fleetID string) ([]*models.Vehicle, error)

	// Driver operations
	CreateDriver(ctx context.Context, driver *models.Driver) error
	UpdateDriver(ctx context.Context, driver *models.Driver) error
	FindDriverByUID(ctx context.Context, uid string) (*models.Driver, error)
	ListDrivers(ctx context.Context, fleetID string) ([]*models.Driver, error)

	// Assignment operations
	CreateAssignments(ctx context.Context, assignments []*models.Assignment) error
	UpdateAssignment(ctx context.Context, assignment *models.Assignment) error
	DeleteAssignment(ctx context.Context, uid string) error
	FindAssignmentByUID(ctx context.Context, uid string) (*models.Assignment, error)
	ListAssignmentsForDate(ctx context.Context, fleetID, date string) ([]*models.Assignment, error)

	// Inspection operations
	CreateInspection(ctx context.Context, inspection *models.Inspection) error
	FindInspectionByUID(ctx context.Context, uid string) (*models.Inspection, error)
	ListInspections(ctx context.Context, fleetID, vehicleID, date string) ([]*models.Inspection, error)
	SaveInspectionAnalyses(ctx context.Context, inspection *models.Inspection) error
	ListInspectionsWithPendingAnalysis(ctx context.Context, limit int) ([]*models.Inspection, error)

	// FuelEntry operations
	CreateFuelEntry(ctx context.Context, entry *models.FuelEntry) error
	ListFuelEntries(ctx context.Context, fleetID, vehicleID string) ([]*models.FuelEntry, error)
}

// repo is an implementation of the Repository interface
type repo struct {
	db database.DB
}

// dbWrapper adapts a transaction handle to the database.DB interface
type dbWrapper struct {
	db *gorm.DB
}

func (w *dbWrapper) DB() (*gorm.DB, error) {
	return w.db, nil
}

func (w *dbWrapper) Close() error {
	return nil
}

// NewRepository creates a new repository instance
func NewRepository(db database.DB) Repository {
	return &repo{
		db: db,
	}
}

// WithTransaction executes the given function within a database transaction
func (r *repo) WithTransaction(ctx context.Context, fn func(ctx context.Context, txRepo Repository) error) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &repo{db: &dbWrapper{db: tx}}
		return fn(ctx, txRepo)
	})
}

// gormDB returns the underlying gorm handle
func (r *repo) gormDB() (*gorm.DB, error) {
	return r.db.DB()
}
