package repository

import (
	"context"

	"example.com/fleetops/internal/database"
	"example.com/fleetops/internal/models"
)

// CreateDriver creates a new driver
func (r *repo) CreateDriver(ctx context.Context, driver *models.Driver) error {
	db, err := r.gormDB()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(driver).Error
}

// UpdateDriver updates an existing driver
func (r *repo) UpdateDriver(ctx context.Context, driver *models.Driver) error {
	db, err := r.gormDB()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Save(driver).Error
}

// FindDriverByUID finds a driver by UID
func (r *repo) FindDriverByUID(ctx context.Context, uid string) (*models.Driver, error) {
	db, err := r.gormDB()
	if err != nil {
		return nil, err
	}

	var driver models.Driver
	if err := db.WithContext(ctx).Where("uid = ?", uid).First(&driver).Error; err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &driver, nil
}

// ListDrivers lists all drivers of a fleet
func (r *repo) ListDrivers(ctx context.Context, fleetID string) ([]*models.Driver, error) {
	db, err := r.gormDB()
	if err != nil {
		return nil, err
	}

	var drivers []*models.Driver
	err = db.WithContext(ctx).
		Where("fleet_id = ?", fleetID).
		Order("created_at, id").
		Find(&drivers).Error
	if err != nil {
		return nil, err
	}
	return drivers, nil
}
