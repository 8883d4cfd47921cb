package repository

import (
	"context"
	"errors"

	"example.com/fleetops/internal/database"
	"example.com/fleetops/internal/models"

	"gorm.io/gorm"
)

// CreateAssignments inserts a batch of assignments. A unique-index violation
// on the (fleet, date, vehicle) slot surfaces as ErrDuplicateKey.
func (r *repo) CreateAssignments(ctx context.Context, assignments []*models.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	db, err := r.gormDB()
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Create(&assignments).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// UpdateAssignment updates an existing assignment
func (r *repo) UpdateAssignment(ctx context.Context, assignment *models.Assignment) error {
	db, err := r.gormDB()
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Save(assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// DeleteAssignment soft-deletes an assignment by UID
func (r *repo) DeleteAssignment(ctx context.Context, uid string) error {
	db, err := r.gormDB()
	if err != nil {
		return err
	}

	result := db.WithContext(ctx).Where("uid = ?", uid).Delete(&models.Assignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAssignmentByUID finds an assignment by UID
func (r *repo) FindAssignmentByUID(ctx context.Context, uid string) (*models.Assignment, error) {
	db, err := r.gormDB()
	if err != nil {
		return nil, err
	}

	var assignment models.Assignment
	if err := db.WithContext(ctx).Where("uid = ?", uid).First(&assignment).Error; err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// ListAssignmentsForDate lists all assignments of a fleet on a given date
func (r *repo) ListAssignmentsForDate(ctx context.Context, fleetID, date string) ([]*models.Assignment, error) {
	db, err := r.gormDB()
	if err != nil {
		return nil, err
	}

	var assignments []*models.Assignment
	err = db.WithContext(ctx).
		Where("fleet_id = ? AND date = ?", fleetID, date).
		Order("created_at, id").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
