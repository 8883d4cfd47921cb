package service

import (
	"context"
	"time"

	"example.com/fleetops/internal/models"

	"github.com/google/uuid"
)

// FuelEntryInput carries a refuelling record
type FuelEntryInput struct {
	FleetID    string  `json:"fleet_id"`
	VehicleID  string  `json:"vehicle_id"`
	DriverID   string  `json:"driver_id"`
	Date       string  `json:"date"`
	Odometer   int     `json:"odometer"`
	Liters     float64 `json:"liters"`
	TotalCost  float64 `json:"total_cost"`
	Station    string  `json:"station"`
	ReceiptKey string  `json:"receipt_key"`
}

// AddFuelEntry records a refuelling for a vehicle
func (s *fleetService) AddFuelEntry(ctx context.Context, input *FuelEntryInput) (*models.FuelEntry, error) {
	if _, err := time.Parse(dateLayout, input.Date); err != nil {
		return nil, NewValidationError("invalid date: %s", input.Date)
	}
	if input.Liters <= 0 {
		return nil, NewValidationError("liters must be positive")
	}
	if input.TotalCost < 0 {
		return nil, NewValidationError("total cost cannot be negative")
	}
	vehicle, err := s.findFleetVehicle(ctx, input.FleetID, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if input.DriverID != "" {
		if _, err := s.findFleetDriver(ctx, input.FleetID, input.DriverID); err != nil {
			return nil, err
		}
	}

	entry := &models.FuelEntry{
		UID:        uuid.New().String(),
		FleetID:    input.FleetID,
		VehicleID:  input.VehicleID,
		DriverID:   input.DriverID,
		Date:       input.Date,
		Odometer:   input.Odometer,
		Liters:     input.Liters,
		TotalCost:  input.TotalCost,
		Station:    input.Station,
		ReceiptKey: input.ReceiptKey,
	}

	if err := s.repo.CreateFuelEntry(ctx, entry); err != nil {
		return nil, err
	}

	// Keep the vehicle odometer in step with the latest reading
	if input.Odometer > vehicle.Odometer {
		vehicle.Odometer = input.Odometer
		if err := s.repo.UpdateVehicle(ctx, vehicle); err != nil {
			s.logger.WithError(err).WithField("vehicle_id", vehicle.UID).
				Warn("Failed to update vehicle odometer")
		}
	}

	return entry, nil
}

// ListFuelEntries lists a fleet's fuel entries, optionally narrowed to a
// vehicle
func (s *fleetService) ListFuelEntries(ctx context.Context, fleetID, vehicleID string) ([]*models.FuelEntry, error) {
	return s.repo.ListFuelEntries(ctx, fleetID, vehicleID)
}
