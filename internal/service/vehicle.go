package service

import (
	"context"
	"time"

	"example.com/fleetops/internal/models"
	"example.com/fleetops/internal/repository"

	"github.com/google/uuid"
)

// VehicleInput carries the writable fields of a vehicle
type VehicleInput struct {
	PlateNumber     string             `json:"plate_number"`
	VIN             string             `json:"vin"`
	Make            string             `json:"make"`
	ModelName       string             `json:"model"`
	Year            int                `json:"year"`
	Type            models.VehicleType `json:"type"`
	Odometer        int                `json:"odometer"`
	LastServiceDate *time.Time         `json:"last_service_date"`
	NextServiceDate *time.Time         `json:"next_service_date"`
}

// CreateVehicle creates a new vehicle in a fleet
func (s *fleetService) CreateVehicle(ctx context.Context, fleetID string, input *VehicleInput) (*models.Vehicle, error) {
	if input.PlateNumber == "" {
		return nil, NewValidationError("plate number is required")
	}

	if _, err := s.repo.FindFleetByUID(ctx, fleetID); err != nil {
		return nil, err
	}

	vehicleType := input.Type
	if vehicleType == "" {
		vehicleType = models.VehicleTypeOther
	}

	vehicle := &models.Vehicle{
		UID:             uuid.New().String(),
		FleetID:         fleetID,
		PlateNumber:     input.PlateNumber,
		VIN:             input.VIN,
		Make:            input.Make,
		ModelName:       input.ModelName,
		Year:            input.Year,
		Type:            vehicleType,
		Status:          models.VehicleStatusAvailable,
		Odometer:        input.Odometer,
		LastServiceDate: input.LastServiceDate,
		NextServiceDate: input.NextServiceDate,
	}

	if err := s.repo.CreateVehicle(ctx, vehicle); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"fleet_id":   fleetID,
		"vehicle_id": vehicle.UID,
		"plate":      vehicle.PlateNumber,
	}).Info("Vehicle created")

	return vehicle, nil
}

// GetVehicle retrieves a vehicle by UID, scoped to a fleet
func (s *fleetService) GetVehicle(ctx context.Context, fleetID, uid string) (*models.Vehicle, error) {
	return s.findFleetVehicle(ctx, fleetID, uid)
}

// UpdateVehicle updates a vehicle's writable fields
func (s *fleetService) UpdateVehicle(ctx context.Context, fleetID, uid string, input *VehicleInput) (*models.Vehicle, error) {
	vehicle, err := s.findFleetVehicle(ctx, fleetID, uid)
	if err != nil {
		return nil, err
	}

	if input.PlateNumber != "" {
		vehicle.PlateNumber = input.PlateNumber
	}
	if input.VIN != "" {
		vehicle.VIN = input.VIN
	}
	if input.Make != "" {
		vehicle.Make = input.Make
	}
	if input.ModelName != "" {
		vehicle.ModelName = input.ModelName
	}
	if input.Year != 0 {
		vehicle.Year = input.Year
	}
	if input.Type != "" {
		vehicle.Type = input.Type
	}
	if input.Odometer != 0 {
		vehicle.Odometer = input.Odometer
	}
	if input.LastServiceDate != nil {
		vehicle.LastServiceDate = input.LastServiceDate
	}
	if input.NextServiceDate != nil {
		vehicle.NextServiceDate = input.NextServiceDate
	}

	if err := s.repo.UpdateVehicle(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// UpdateVehicleStatus patches a vehicle's lifecycle status
func (s *fleetService) UpdateVehicleStatus(ctx context.Context, fleetID, uid string, status models.VehicleStatus) (*models.Vehicle, error) {
	if !status.IsValid() {
		return nil, NewValidationError("invalid vehicle status: %s", status)
	}

	vehicle, err := s.findFleetVehicle(ctx, fleetID, uid)
	if err != nil {
		return nil, err
	}

	vehicle.Status = status
	if err := s.repo.UpdateVehicle(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// ListVehicles lists all vehicles of a fleet
func (s *fleetService) ListVehicles(ctx context.Context, fleetID string) ([]*models.Vehicle, error) {
	return s.repo.ListVehicles(ctx, fleetID)
}

// findFleetVehicle loads a vehicle and verifies it belongs to the fleet. A
// vehicle of another fleet is reported as not found, not as forbidden.
func (s *fleetService) findFleetVehicle(ctx context.Context, fleetID, uid string) (*models.Vehicle, error) {
	vehicle, err := s.repo.FindVehicleByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if vehicle.FleetID != fleetID {
		return nil, repository.ErrNotFound
	}
	return vehicle, nil
}
