package repository

import (
	"context"

	"example.com/fleetops/internal/database"
	"example.com/fleetops/internal/models"
)

// CreateVehicle creates a new vehicle
func (r *repo) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	db, err := r.gormDB()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(vehicle).Error
}

// UpdateVehicle updates an existing vehicle
func (r *repo) UpdateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	db, err := r.gormDB()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Save(vehicle).Error
}

// FindVehicleByUID finds a vehicle by UID
func (r *repo) FindVehicleByUID(ctx context.Context, uid string) (*models.Vehicle, error) {
	db, err := r.gormDB()
	if err != nil {
		return nil, err
	}

	var vehicle models.Vehicle
	if err := db.WithContext(ctx).Where("uid = ?", uid).First(&vehicle).Error; err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// ListVehicles lists all vehicles of a fleet in creation order. The stable
// ordering matters: the assignment allocator derives its candidate pool from
// this list and must be deterministic.
func (r *repo) ListVehicles(ctx context.Context, fleetID string) ([]*models.Vehicle, error) {
	db, err := r.gormDB()
	if err != nil {
		return nil, err
	}

	var vehicles []*models.Vehicle
	err = db.WithContext(ctx).
		Where("fleet_id = ?", fleetID).
		Order("created_at, id").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}
