package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is the base model with common fields for all database entities
type Model struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Role represents the access role carried by a bearer token
type Role string

const (
	// RoleAdmin represents a fleet administrator
	RoleAdmin Role = "admin"
	// RoleDriver represents a driver
	RoleDriver Role = "driver"
)

// VehicleStatus is an enum for vehicle lifecycle states
type VehicleStatus string

const (
	// VehicleStatusAvailable represents a vehicle ready for assignment
	VehicleStatusAvailable VehicleStatus = "available"
	// VehicleStatusInUse represents a vehicle currently assigned
	VehicleStatusInUse VehicleStatus = "in-use"
	// VehicleStatusMaintenance represents a vehicle under maintenance
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	// VehicleStatusRetired represents a vehicle removed from service
	VehicleStatusRetired VehicleStatus = "retired"
)

// IsValid returns true if the status is a recognized value
func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleStatusAvailable, VehicleStatusInUse, VehicleStatusMaintenance, VehicleStatusRetired:
		return true
	}
	return false
}

// VehicleType is an enum for vehicle body types
type VehicleType string

const (
	// VehicleTypeVan represents a van
	VehicleTypeVan VehicleType = "van"
	// VehicleTypeTruck represents a truck
	VehicleTypeTruck VehicleType = "truck"
	// VehicleTypeCar represents a car
	VehicleTypeCar VehicleType = "car"
	// VehicleTypeOther represents any other vehicle type
	VehicleTypeOther VehicleType = "other"
)

// DriverStatus is an enum for driver lifecycle states
type DriverStatus string

const (
	// DriverStatusActive represents a driver eligible for assignment
	DriverStatusActive DriverStatus = "active"
	// DriverStatusInactive represents an off-duty driver
	DriverStatusInactive DriverStatus = "inactive"
	// DriverStatusSuspended represents a suspended driver
	DriverStatusSuspended DriverStatus = "suspended"
)

// IsValid returns true if the status is a recognized value
func (s DriverStatus) IsValid() bool {
	switch s {
	case DriverStatusActive, DriverStatusInactive, DriverStatusSuspended:
		return true
	}
	return false
}

// AssignmentStatus is an enum for assignment lifecycle states
type AssignmentStatus string

const (
	// AssignmentStatusPending represents a newly created assignment
	AssignmentStatusPending AssignmentStatus = "pending"
	// AssignmentStatusInProgress represents a shift that has started
	AssignmentStatusInProgress AssignmentStatus = "in-progress"
	// AssignmentStatusCompleted represents a finished shift
	AssignmentStatusCompleted AssignmentStatus = "completed"
)

// IsValid returns true if the status is a recognized value
func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentStatusPending, AssignmentStatusInProgress, AssignmentStatusCompleted:
		return true
	}
	return false
}

// Fleet model represents a tenant grouping of vehicles and drivers
type Fleet struct {
	Model
	UID          string `json:"uid" gorm:"uniqueIndex;Column:uid"`
	Name         string `json:"name" gorm:"Column:name"`
	AdminID      string `json:"admin_id" gorm:"Column:admin_id"`
	ContactEmail string `json:"contact_email" gorm:"Column:contact_email"`
	ContactPhone string `json:"contact_phone" gorm:"Column:contact_phone"`
	Timezone     string `json:"timezone" gorm:"Column:timezone"`
}

// Vehicle model represents a fleet vehicle
type Vehicle struct {
	Model
	UID             string        `json:"uid" gorm:"uniqueIndex;Column:uid"`
	FleetID         string        `json:"fleet_id" gorm:"index;Column:fleet_id"`
	PlateNumber     string        `json:"plate_number" gorm:"Column:plate_number"`
	VIN             string        `json:"vin" gorm:"Column:vin"`
	Make            string        `json:"make" gorm:"Column:make"`
	ModelName       string        `json:"model" gorm:"Column:model"`
	Year            int           `json:"year" gorm:"Column:year"`
	Type            VehicleType   `json:"type" gorm:"Column:type"`
	Status          VehicleStatus `json:"status" gorm:"Column:status"`
	Odometer        int           `json:"odometer" gorm:"Column:odometer"`
	LastServiceDate *time.Time    `json:"last_service_date" gorm:"Column:last_service_date"`
	NextServiceDate *time.Time    `json:"next_service_date" gorm:"Column:next_service_date"`
}

// Driver model represents a fleet driver
type Driver struct {
	Model
	UID           string       `json:"uid" gorm:"uniqueIndex;Column:uid"`
	FleetID       string       `json:"fleet_id" gorm:"index;Column:fleet_id"`
	Name          string       `json:"name" gorm:"Column:name"`
	Email         string       `json:"email" gorm:"Column:email"`
	Phone         string       `json:"phone" gorm:"Column:phone"`
	LicenseNumber string       `json:"license_number" gorm:"Column:license_number"`
	LicenseExpiry *time.Time   `json:"license_expiry" gorm:"Column:license_expiry"`
	Status        DriverStatus `json:"status" gorm:"Column:status"`
}

// Assignment model represents a (driver, vehicle, date, time-window) pairing
// for a work shift. VehicleID may be empty when a bulk allocation ran out of
// vehicles for the day.
//
// The partial unique index backs the allocator's no-double-booking contract:
// a live assignment row with a non-empty vehicle reference is unique per
// (fleet, date, vehicle).
type Assignment struct {
	Model
	UID       string           `json:"uid" gorm:"uniqueIndex;Column:uid"`
	FleetID   string           `json:"fleet_id" gorm:"Column:fleet_id;index:idx_assignment_slot,unique,priority:1,where:vehicle_id <> '' AND deleted_at IS NULL"`
	Date      string           `json:"date" gorm:"Column:date;index:idx_assignment_slot,unique,priority:2"`
	VehicleID string           `json:"vehicle_id" gorm:"Column:vehicle_id;index:idx_assignment_slot,unique,priority:3"`
	DriverID  string           `json:"driver_id" gorm:"index;Column:driver_id"`
	StartTime string           `json:"start_time" gorm:"Column:start_time"`
	EndTime   string           `json:"end_time" gorm:"Column:end_time"`
	Status    AssignmentStatus `json:"status" gorm:"Column:status"`
}

// FuelEntry model represents a refuelling record for a vehicle
type FuelEntry struct {
	Model
	UID        string  `json:"uid" gorm:"uniqueIndex;Column:uid"`
	FleetID    string  `json:"fleet_id" gorm:"index;Column:fleet_id"`
	VehicleID  string  `json:"vehicle_id" gorm:"index;Column:vehicle_id"`
	DriverID   string  `json:"driver_id" gorm:"Column:driver_id"`
	Date       string  `json:"date" gorm:"Column:date"`
	Odometer   int     `json:"odometer" gorm:"Column:odometer"`
	Liters     float64 `json:"liters" gorm:"Column:liters"`
	TotalCost  float64 `json:"total_cost" gorm:"Column:total_cost"`
	Station    string  `json:"station" gorm:"Column:station"`
	ReceiptKey string  `json:"receipt_key" gorm:"Column:receipt_key"`
}
