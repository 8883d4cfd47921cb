package service

import (
	"context"

	"example.com/fleetops/internal/models"

	"github.com/google/uuid"
)

// FleetInput carries the writable fields of a fleet
type FleetInput struct {
	Name         string `json:"name"`
	AdminID      string `json:"admin_id"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Timezone     string `json:"timezone"`
}

// CreateFleet creates a new fleet
func (s *fleetService) CreateFleet(ctx context.Context, input *FleetInput) (*models.Fleet, error) {
	if input.Name == "" {
		return nil, NewValidationError("fleet name is required")
	}

	fleet := &models.Fleet{
		UID:          uuid.New().String(),
		Name:         input.Name,
		AdminID:      input.AdminID,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Timezone:     input.Timezone,
	}

	if err := s.repo.CreateFleet(ctx, fleet); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"fleet_id": fleet.UID,
		"name":     fleet.Name,
	}).Info("Fleet created")

	return fleet, nil
}

// GetFleet retrieves a fleet by UID
func (s *fleetService) GetFleet(ctx context.Context, uid string) (*models.Fleet, error) {
	return s.repo.FindFleetByUID(ctx, uid)
}

// UpdateFleet updates a fleet's writable fields
func (s *fleetService) UpdateFleet(ctx context.Context, uid string, input *FleetInput) (*models.Fleet, error) {
	fleet, err := s.repo.FindFleetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		fleet.Name = input.Name
	}
	if input.AdminID != "" {
		fleet.AdminID = input.AdminID
	}
	if input.ContactEmail != "" {
		fleet.ContactEmail = input.ContactEmail
	}
	if input.ContactPhone != "" {
		fleet.ContactPhone = input.ContactPhone
	}
	if input.Timezone != "" {
		fleet.Timezone = input.Timezone
	}

	if err := s.repo.UpdateFleet(ctx, fleet); err != nil {
		return nil, err
	}
	return fleet, nil
}
