package repository

import (
	"context"

	"example.com/fleetops/internal/database"
	"example.com/fleetops/internal/models"
)

// CreateFleet creates a new fleet
func (r *repo) CreateFleet(ctx context.Context, fleet *models.Fleet) error {
	db, err := r.gormDB()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(fleet).Error
}

// UpdateFleet updates an existing fleet
func (r *repo) UpdateFleet(ctx context.Context, fleet *models.Fleet) error {
	db, err := r.gormDB()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Save(fleet).Error
}

// FindFleetByUID finds a fleet by UID
func (r *repo) FindFleetByUID(ctx context.Context, uid string) (*models.Fleet, error) {
	db, err := r.gormDB()
	if err != nil {
		return nil, err
	}

	var fleet models.Fleet
	if err := db.WithContext(ctx).Where("uid = ?", uid).First(&fleet).Error; err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &fleet, nil
}
