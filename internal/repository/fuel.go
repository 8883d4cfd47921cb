package repository

import (
	"context"

	"example.com/fleetops/internal/models"
)

// CreateFuelEntry creates a new fuel entry
func (r *repo) CreateFuelEntry(ctx context.Context, entry *models.FuelEntry) error {
	db, err := r.gormDB()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(entry).Error
}

// ListFuelEntries lists fuel entries of a fleet, optionally narrowed to a
// vehicle, newest first
func (r *repo) ListFuelEntries(ctx context.Context, fleetID, vehicleID string) ([]*models.FuelEntry, error) {
	db, err := r.gormDB()
	if err != nil {
		return nil, err
	}

	query := db.WithContext(ctx).Where("fleet_id = ?", fleetID)
	if vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}

	var entries []*models.FuelEntry
	if err := query.Order("date DESC, created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
