package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"example.com/fleetops/internal/cache"
	"example.com/fleetops/internal/messaging"
	"example.com/fleetops/internal/models"
	"example.com/fleetops/internal/repository"

	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	assignmentCacheTTL = 5 * time.Minute
)

// BulkAssignInput is a request to allocate vehicles to an ordered list of
// drivers for one day
type BulkAssignInput struct {
	FleetID   string   `json:"fleet_id"`
	Date      string   `json:"date"`
	DriverIDs []string `json:"driver_ids"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
}

// AssignmentInput is a request to create a single assignment. VehicleID is
// optional; when empty the next free vehicle is allocated.
type AssignmentInput struct {
	FleetID   string `json:"fleet_id"`
	Date      string `json:"date"`
	DriverID  string `json:"driver_id"`
	VehicleID string `json:"vehicle_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AssignmentUpdate carries a partial update to an assignment. Nil fields are
// left untouched.
type AssignmentUpdate struct {
	VehicleID *string                  `json:"vehicle_id"`
	DriverID  *string                  `json:"driver_id"`
	StartTime *string                  `json:"start_time"`
	EndTime   *string                  `json:"end_time"`
	Status    *models.AssignmentStatus `json:"status"`
}

// BulkAssign allocates vehicles to drivers for a day. The pool is the fleet's
// vehicles in creation order minus those already assigned on the date; the
// i-th driver gets the i-th pool vehicle. Drivers beyond the pool get an
// empty vehicle reference. All rows commit in one transaction, serialized per
// (fleet, date), so a concurrent allocation can never double-book a vehicle.
func (s *fleetService) BulkAssign(ctx context.Context, input *BulkAssignInput) ([]*models.Assignment, error) {
	if len(input.DriverIDs) == 0 {
		return nil, NewValidationError("at least one driver is required")
	}
	if err := s.validateShift(input.Date, input.StartTime, input.EndTime); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindFleetByUID(ctx, input.FleetID); err != nil {
		return nil, err
	}
	for _, driverID := range input.DriverIDs {
		if err := s.requireActiveDriver(ctx, input.FleetID, driverID); err != nil {
			return nil, err
		}
	}

	key := slotKey(input.FleetID, input.Date)
	s.slots.Lock(key)
	defer s.slots.Unlock(key)

	var created []*models.Assignment
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.Repository) error {
		pool, err := s.freeVehicles(ctx, txRepo, input.FleetID, input.Date)
		if err != nil {
			return err
		}

		created = make([]*models.Assignment, 0, len(input.DriverIDs))
		for i, driverID := range input.DriverIDs {
			vehicleID := ""
			if i < len(pool) {
				vehicleID = pool[i].UID
			}
			created = append(created, &models.Assignment{
				UID:       uuid.New().String(),
				FleetID:   input.FleetID,
				Date:      input.Date,
				VehicleID: vehicleID,
				DriverID:  driverID,
				StartTime: input.StartTime,
				EndTime:   input.EndTime,
				Status:    models.AssignmentStatusPending,
			})
		}

		return txRepo.CreateAssignments(ctx, created)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, NewConflictError("vehicle already assigned on %s", input.Date)
		}
		return nil, err
	}

	s.invalidateAssignments(ctx, input.FleetID, input.Date)
	s.publishEvent(ctx, messaging.EventAssignmentsCreated, input.FleetID, map[string]interface{}{
		"date":  input.Date,
		"count": len(created),
	})

	s.logger.WithFields(map[string]interface{}{
		"fleet_id": input.FleetID,
		"date":     input.Date,
		"drivers":  len(input.DriverIDs),
		"assigned": assignedCount(created),
	}).Info("Bulk assignment completed")

	return created, nil
}

// CreateAssignment creates a single assignment through the same
// conflict-checked path as a bulk allocation
func (s *fleetService) CreateAssignment(ctx context.Context, input *AssignmentInput) (*models.Assignment, error) {
	if input.DriverID == "" {
		return nil, NewValidationError("driver is required")
	}
	if err := s.validateShift(input.Date, input.StartTime, input.EndTime); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindFleetByUID(ctx, input.FleetID); err != nil {
		return nil, err
	}
	if err := s.requireActiveDriver(ctx, input.FleetID, input.DriverID); err != nil {
		return nil, err
	}
	if input.VehicleID != "" {
		if _, err := s.findFleetVehicle(ctx, input.FleetID, input.VehicleID); err != nil {
			return nil, err
		}
	}

	key := slotKey(input.FleetID, input.Date)
	s.slots.Lock(key)
	defer s.slots.Unlock(key)

	var created *models.Assignment
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.Repository) error {
		vehicleID := input.VehicleID
		if vehicleID == "" {
			pool, err := s.freeVehicles(ctx, txRepo, input.FleetID, input.Date)
			if err != nil {
				return err
			}
			if len(pool) > 0 {
				vehicleID = pool[0].UID
			}
		} else {
			taken, err := s.vehicleTaken(ctx, txRepo, input.FleetID, input.Date, vehicleID, "")
			if err != nil {
				return err
			}
			if taken {
				return NewConflictError("vehicle %s already assigned on %s", vehicleID, input.Date)
			}
		}

		created = &models.Assignment{
			UID:       uuid.New().String(),
			FleetID:   input.FleetID,
			Date:      input.Date,
			VehicleID: vehicleID,
			DriverID:  input.DriverID,
			StartTime: input.StartTime,
			EndTime:   input.EndTime,
			Status:    models.AssignmentStatusPending,
		}
		return txRepo.CreateAssignments(ctx, []*models.Assignment{created})
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, NewConflictError("vehicle already assigned on %s", input.Date)
		}
		return nil, err
	}

	s.invalidateAssignments(ctx, input.FleetID, input.Date)
	s.publishEvent(ctx, messaging.EventAssignmentsCreated, input.FleetID, map[string]interface{}{
		"date":  input.Date,
		"count": 1,
	})

	return created, nil
}

// UpdateAssignment applies a partial update. A vehicle reassignment passes
// the same conflict check as allocation; status moves forward only.
func (s *fleetService) UpdateAssignment(ctx context.Context, fleetID, uid string, updates *AssignmentUpdate) (*models.Assignment, error) {
	current, err := s.findFleetAssignment(ctx, fleetID, uid)
	if err != nil {
		return nil, err
	}

	if updates.DriverID != nil {
		if err := s.requireActiveDriver(ctx, fleetID, *updates.DriverID); err != nil {
			return nil, err
		}
	}
	if updates.VehicleID != nil && *updates.VehicleID != "" {
		if _, err := s.findFleetVehicle(ctx, fleetID, *updates.VehicleID); err != nil {
			return nil, err
		}
	}

	key := slotKey(fleetID, current.Date)
	s.slots.Lock(key)
	defer s.slots.Unlock(key)

	var updated *models.Assignment
	err = s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.Repository) error {
		assignment, err := txRepo.FindAssignmentByUID(ctx, uid)
		if err != nil {
			return err
		}

		if updates.VehicleID != nil && *updates.VehicleID != assignment.VehicleID {
			if *updates.VehicleID != "" {
				taken, err := s.vehicleTaken(ctx, txRepo, fleetID, assignment.Date, *updates.VehicleID, assignment.UID)
				if err != nil {
					return err
				}
				if taken {
					return NewConflictError("vehicle %s already assigned on %s", *updates.VehicleID, assignment.Date)
				}
			}
			assignment.VehicleID = *updates.VehicleID
		}
		if updates.DriverID != nil {
			assignment.DriverID = *updates.DriverID
		}
		if updates.StartTime != nil {
			assignment.StartTime = *updates.StartTime
		}
		if updates.EndTime != nil {
			assignment.EndTime = *updates.EndTime
		}
		if updates.StartTime != nil || updates.EndTime != nil {
			if err := validateWindow(assignment.StartTime, assignment.EndTime); err != nil {
				return err
			}
		}
		if updates.Status != nil {
			if err := validateTransition(assignment.Status, *updates.Status); err != nil {
				return err
			}
			assignment.Status = *updates.Status
		}

		updated = assignment
		return txRepo.UpdateAssignment(ctx, assignment)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, NewConflictError("vehicle already assigned on %s", current.Date)
		}
		return nil, err
	}

	s.invalidateAssignments(ctx, fleetID, updated.Date)
	s.publishEvent(ctx, messaging.EventAssignmentUpdated, fleetID, updated)

	return updated, nil
}

// RemoveAssignment soft-deletes an assignment, freeing its vehicle for the
// same date immediately
func (s *fleetService) RemoveAssignment(ctx context.Context, fleetID, uid string) error {
	assignment, err := s.findFleetAssignment(ctx, fleetID, uid)
	if err != nil {
		return err
	}

	key := slotKey(fleetID, assignment.Date)
	s.slots.Lock(key)
	defer s.slots.Unlock(key)

	if err := s.repo.DeleteAssignment(ctx, uid); err != nil {
		return err
	}

	s.invalidateAssignments(ctx, fleetID, assignment.Date)
	s.publishEvent(ctx, messaging.EventAssignmentRemoved, fleetID, map[string]interface{}{
		"assignment_id": uid,
		"date":          assignment.Date,
		"vehicle_id":    assignment.VehicleID,
	})

	return nil
}

// ListAssignmentsForDate lists a fleet's assignments on a date, served from
// Redis when fresh
func (s *fleetService) ListAssignmentsForDate(ctx context.Context, fleetID, date string) ([]*models.Assignment, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, NewValidationError("invalid date: %s", date)
	}

	cacheKey := assignmentCacheKey(fleetID, date)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var assignments []*models.Assignment
		if err := json.Unmarshal([]byte(cached), &assignments); err == nil {
			return assignments, nil
		}
	} else if !cache.IsCacheMiss(err) {
		s.logger.WithError(err).Warn("Assignment cache read failed")
	}

	assignments, err := s.repo.ListAssignmentsForDate(ctx, fleetID, date)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(assignments); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(data), assignmentCacheTTL); err != nil {
			s.logger.WithError(err).Warn("Assignment cache write failed")
		}
	}

	return assignments, nil
}

// freeVehicles returns the fleet's vehicles, in creation order, that have no
// live assignment on the date
func (s *fleetService) freeVehicles(ctx context.Context, txRepo repository.Repository, fleetID, date string) ([]*models.Vehicle, error) {
	assignments, err := txRepo.ListAssignmentsForDate(ctx, fleetID, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		if a.VehicleID != "" {
			taken[a.VehicleID] = true
		}
	}

	vehicles, err := txRepo.ListVehicles(ctx, fleetID)
	if err != nil {
		return nil, err
	}

	pool := make([]*models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if !taken[v.UID] {
			pool = append(pool, v)
		}
	}
	return pool, nil
}

// vehicleTaken reports whether another live assignment already references the
// vehicle on the date. excludeUID skips the row being updated.
func (s *fleetService) vehicleTaken(ctx context.Context, txRepo repository.Repository, fleetID, date, vehicleID, excludeUID string) (bool, error) {
	assignments, err := txRepo.ListAssignmentsForDate(ctx, fleetID, date)
	if err != nil {
		return false, err
	}
	for _, a := range assignments {
		if a.UID != excludeUID && a.VehicleID == vehicleID {
			return true, nil
		}
	}
	return false, nil
}

// requireActiveDriver verifies the driver belongs to the fleet and is active
func (s *fleetService) requireActiveDriver(ctx context.Context, fleetID, driverID string) error {
	driver, err := s.findFleetDriver(ctx, fleetID, driverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewValidationError("unknown driver: %s", driverID)
		}
		return err
	}
	if driver.Status != models.DriverStatusActive {
		return NewValidationError("driver %s is not active", driverID)
	}
	return nil
}

// findFleetAssignment loads an assignment and verifies it belongs to the fleet
func (s *fleetService) findFleetAssignment(ctx context.Context, fleetID, uid string) (*models.Assignment, error) {
	assignment, err := s.repo.FindAssignmentByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if assignment.FleetID != fleetID {
		return nil, repository.ErrNotFound
	}
	return assignment, nil
}

// validateShift validates a (date, start, end) shift request. The date must
// be today or later; the window must not wrap past midnight.
func (s *fleetService) validateShift(date, start, end string) error {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return NewValidationError("invalid date: %s", date)
	}
	today, _ := time.Parse(dateLayout, time.Now().Format(dateLayout))
	if parsed.Before(today) {
		return NewValidationError("date %s is in the past", date)
	}
	return validateWindow(start, end)
}

// validateWindow validates a same-day HH:MM time window
func validateWindow(start, end string) error {
	startAt, err := time.Parse(timeLayout, start)
	if err != nil {
		return NewValidationError("invalid start time: %s", start)
	}
	endAt, err := time.Parse(timeLayout, end)
	if err != nil {
		return NewValidationError("invalid end time: %s", end)
	}
	if !endAt.After(startAt) {
		return NewValidationError("end time must be after start time")
	}
	return nil
}

// validateTransition enforces the pending -> in-progress -> completed
// lifecycle
func validateTransition(from, to models.AssignmentStatus) error {
	if !to.IsValid() {
		return NewValidationError("invalid assignment status: %s", to)
	}
	if from == to {
		return nil
	}
	allowed := map[models.AssignmentStatus]models.AssignmentStatus{
		models.AssignmentStatusPending:    models.AssignmentStatusInProgress,
		models.AssignmentStatusInProgress: models.AssignmentStatusCompleted,
	}
	if allowed[from] != to {
		return NewValidationError("cannot move assignment from %s to %s", from, to)
	}
	return nil
}

// invalidateAssignments drops the cached listing for a (fleet, date)
func (s *fleetService) invalidateAssignments(ctx context.Context, fleetID, date string) {
	if err := s.cache.Delete(ctx, assignmentCacheKey(fleetID, date)); err != nil {
		s.logger.WithError(err).Warn("Assignment cache invalidation failed")
	}
}

func assignmentCacheKey(fleetID, date string) string {
	return fmt.Sprintf("assignments:%s:%s", fleetID, date)
}

func slotKey(fleetID, date string) string {
	return fleetID + "|" + date
}

func assignedCount(assignments []*models.Assignment) int {
	n := 0
	for _, a := range assignments {
		if a.VehicleID != "" {
			n++
		}
	}
	return n
}
