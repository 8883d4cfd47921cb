package repository

import (
	"context"

	"example.com/fleetops/internal/database"
	"example.com/fleetops/internal/models"
)

// CreateInspection creates a new inspection
func (r *repo) CreateInspection(ctx context.Context, inspection *models.Inspection) error {
	db, err := r.gormDB()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(inspection).Error
}

// FindInspectionByUID finds an inspection by UID
func (r *repo) FindInspectionByUID(ctx context.Context, uid string) (*models.Inspection, error) {
	db, err := r.gormDB()
	if err != nil {
		return nil, err
	}

	var inspection models.Inspection
	if err := db.WithContext(ctx).Where("uid = ?", uid).First(&inspection).Error; err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inspection, nil
}

// ListInspections lists inspections of a fleet, optionally narrowed to a
// vehicle and/or a date
func (r *repo) ListInspections(ctx context.Context, fleetID, vehicleID, date string) ([]*models.Inspection, error) {
	db, err := r.gormDB()
	if err != nil {
		return nil, err
	}

	query := db.WithContext(ctx).Where("fleet_id = ?", fleetID)
	if vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}
	if date != "" {
		query = query.Where("date = ?", date)
	}

	var inspections []*models.Inspection
	if err := query.Order("created_at DESC").Find(&inspections).Error; err != nil {
		return nil, err
	}
	return inspections, nil
}

// SaveInspectionAnalyses persists the analysis results and pending flag of an
// inspection without touching the rest of the record
func (r *repo) SaveInspectionAnalyses(ctx context.Context, inspection *models.Inspection) error {
	db, err := r.gormDB()
	if err != nil {
		return err
	}

	return db.WithContext(ctx).
		Model(inspection).
		Select("analyses", "analysis_pending").
		Updates(map[string]interface{}{
			"analyses":         inspection.Analyses,
			"analysis_pending": inspection.AnalysisPending,
		}).Error
}

// ListInspectionsWithPendingAnalysis lists inspections whose photo analysis
// has not completed yet, oldest first
func (r *repo) ListInspectionsWithPendingAnalysis(ctx context.Context, limit int) ([]*models.Inspection, error) {
	db, err := r.gormDB()
	if err != nil {
		return nil, err
	}

	var inspections []*models.Inspection
	err = db.WithContext(ctx).
		Where("analysis_pending = ?", true).
		Order("created_at").
		Limit(limit).
		Find(&inspections).Error
	if err != nil {
		return nil, err
	}
	return inspections, nil
}
