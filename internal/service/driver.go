package service

import (
	"context"
	"time"

	"example.com/fleetops/internal/models"
	"example.com/fleetops/internal/repository"

	"github.com/google/uuid"
)

// DriverInput carries the writable fields of a driver
type DriverInput struct {
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	LicenseNumber string     `json:"license_number"`
	LicenseExpiry *time.Time `json:"license_expiry"`
}

// CreateDriver creates a new driver in a fleet
func (s *fleetService) CreateDriver(ctx context.Context, fleetID string, input *DriverInput) (*models.Driver, error) {
	if input.Name == "" {
		return nil, NewValidationError("driver name is required")
	}

	if _, err := s.repo.FindFleetByUID(ctx, fleetID); err != nil {
		return nil, err
	}

	driver := &models.Driver{
		UID:           uuid.New().String(),
		FleetID:       fleetID,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		LicenseNumber: input.LicenseNumber,
		LicenseExpiry: input.LicenseExpiry,
		Status:        models.DriverStatusActive,
	}

	if err := s.repo.CreateDriver(ctx, driver); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"fleet_id":  fleetID,
		"driver_id": driver.UID,
	}).Info("Driver created")

	return driver, nil
}

// GetDriver retrieves a driver by UID, scoped to a fleet
func (s *fleetService) GetDriver(ctx context.Context, fleetID, uid string) (*models.Driver, error) {
	return s.findFleetDriver(ctx, fleetID, uid)
}

// UpdateDriver updates a driver's writable fields
func (s *fleetService) UpdateDriver(ctx context.Context, fleetID, uid string, input *DriverInput) (*models.Driver, error) {
	driver, err := s.findFleetDriver(ctx, fleetID, uid)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		driver.Name = input.Name
	}
	if input.Email != "" {
		driver.Email = input.Email
	}
	if input.Phone != "" {
		driver.Phone = input.Phone
	}
	if input.LicenseNumber != "" {
		driver.LicenseNumber = input.LicenseNumber
	}
	if input.LicenseExpiry != nil {
		driver.LicenseExpiry = input.LicenseExpiry
	}

	if err := s.repo.UpdateDriver(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// UpdateDriverStatus patches a driver's lifecycle status
func (s *fleetService) UpdateDriverStatus(ctx context.Context, fleetID, uid string, status models.DriverStatus) (*models.Driver, error) {
	if !status.IsValid() {
		return nil, NewValidationError("invalid driver status: %s", status)
	}

	driver, err := s.findFleetDriver(ctx, fleetID, uid)
	if err != nil {
		return nil, err
	}

	driver.Status = status
	if err := s.repo.UpdateDriver(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// ListDrivers lists all drivers of a fleet
func (s *fleetService) ListDrivers(ctx context.Context, fleetID string) ([]*models.Driver, error) {
	return s.repo.ListDrivers(ctx, fleetID)
}

// findFleetDriver loads a driver and verifies it belongs to the fleet
func (s *fleetService) findFleetDriver(ctx context.Context, fleetID, uid string) (*models.Driver, error) {
	driver, err := s.repo.FindDriverByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if driver.FleetID != fleetID {
		return nil, repository.ErrNotFound
	}
	return driver, nil
}
