package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"example.com/fleetops/internal/damage"
)

// InspectionType is an enum for inspection kinds
type InspectionType string

const (
	// InspectionTypePreTrip represents a start-of-shift inspection
	InspectionTypePreTrip InspectionType = "pre-trip"
	// InspectionTypePostTrip represents an end-of-shift inspection
	InspectionTypePostTrip InspectionType = "post-trip"
	// InspectionTypeMaintenance represents a maintenance inspection
	InspectionTypeMaintenance InspectionType = "maintenance"
)

// IsValid returns true if the type is a recognized value
func (t InspectionType) IsValid() bool {
	switch t {
	case InspectionTypePreTrip, InspectionTypePostTrip, InspectionTypeMaintenance:
		return true
	}
	return false
}

// InspectionStatus is an enum for inspection outcomes
type InspectionStatus string

const (
	// InspectionStatusPass represents an inspection with no blocking issues
	InspectionStatusPass InspectionStatus = "pass"
	// InspectionStatusFail represents an inspection with blocking issues
	InspectionStatusFail InspectionStatus = "fail"
	// InspectionStatusPending represents an inspection awaiting review
	InspectionStatusPending InspectionStatus = "pending"
)

// ExteriorChecklist covers the exterior checks of an inspection
type ExteriorChecklist struct {
	Lights       bool `json:"lights"`
	Tires        bool `json:"tires"`
	BodyDamage   bool `json:"body_damage"`
	Mirrors      bool `json:"mirrors"`
	Windows      bool `json:"windows"`
	Wipers       bool `json:"wipers"`
	LicensePlate bool `json:"license_plate"`
}

// InteriorChecklist covers the interior checks of an inspection
type InteriorChecklist struct {
	Seats       bool `json:"seats"`
	Seatbelts   bool `json:"seatbelts"`
	Dashboard   bool `json:"dashboard"`
	Controls    bool `json:"controls"`
	Cleanliness bool `json:"cleanliness"`
}

// MechanicalChecklist covers the mechanical checks of an inspection
type MechanicalChecklist struct {
	Brakes       bool `json:"brakes"`
	Steering     bool `json:"steering"`
	Engine       bool `json:"engine"`
	Transmission bool `json:"transmission"`
	Horn         bool `json:"horn"`
	Battery      bool `json:"battery"`
}

// SafetyChecklist covers the safety-equipment checks of an inspection
type SafetyChecklist struct {
	FirstAidKit      bool `json:"first_aid_kit"`
	FireExtinguisher bool `json:"fire_extinguisher"`
	EmergencyKit     bool `json:"emergency_kit"`
	Reflectors       bool `json:"reflectors"`
}

// Checklist is the fixed four-category inspection checklist
type Checklist struct {
	Exterior   ExteriorChecklist   `json:"exterior"`
	Interior   InteriorChecklist   `json:"interior"`
	Mechanical MechanicalChecklist `json:"mechanical"`
	Safety     SafetyChecklist     `json:"safety"`
}

// Value implements driver.Valuer for jsonb storage
func (c Checklist) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for jsonb storage
func (c *Checklist) Scan(value interface{}) error {
	return scanJSON(value, c)
}

// PhotoSet maps a named photo slot (front, back, left, right, interior,
// damage-N) to an object-store key
type PhotoSet map[string]string

// Value implements driver.Valuer for jsonb storage
func (p PhotoSet) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for jsonb storage
func (p *PhotoSet) Scan(value interface{}) error {
	return scanJSON(value, p)
}

// Issue is a problem recorded during an inspection
type Issue struct {
	Category    string          `json:"category"` // safety, mechanical, cosmetic
	Severity    damage.Severity `json:"severity"`
	Description string          `json:"description"`
	Resolved    bool            `json:"resolved"`
	ResolvedBy  string          `json:"resolved_by,omitempty"`
}

// IssueList is the set of issues attached to an inspection
type IssueList []Issue

// Value implements driver.Valuer for jsonb storage
func (l IssueList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner for jsonb storage
func (l *IssueList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// AnalysisMap maps a photo slot to its damage analysis
type AnalysisMap map[string]damage.Analysis

// Value implements driver.Valuer for jsonb storage
func (m AnalysisMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner for jsonb storage
func (m *AnalysisMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// Signature captures sign-off on a submitted inspection
type Signature struct {
	Driver     string `json:"driver"`
	Supervisor string `json:"supervisor,omitempty"`
}

// Value implements driver.Valuer for jsonb storage
func (s Signature) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for jsonb storage
func (s *Signature) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// Location is an optional geolocation stamp
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// Value implements driver.Valuer for jsonb storage
func (l Location) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner for jsonb storage
func (l *Location) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Weather is an optional weather stamp
type Weather struct {
	Condition     string  `json:"condition"`
	Temperature   float64 `json:"temperature"`
	Precipitation bool    `json:"precipitation"`
}

// Value implements driver.Valuer for jsonb storage
func (w Weather) Value() (driver.Value, error) {
	return json.Marshal(w)
}

// Scan implements sql.Scanner for jsonb storage
func (w *Weather) Scan(value interface{}) error {
	return scanJSON(value, w)
}

// Inspection model represents a structured vehicle-condition record captured
// at shift start or end. Inspections are immutable once submitted; only the
// advisory analysis map is filled in afterwards.
type Inspection struct {
	Model
	UID             string           `json:"uid" gorm:"uniqueIndex;Column:uid"`
	FleetID         string           `json:"fleet_id" gorm:"index;Column:fleet_id"`
	VehicleID       string           `json:"vehicle_id" gorm:"index;Column:vehicle_id"`
	DriverID        string           `json:"driver_id" gorm:"Column:driver_id"`
	Type            InspectionType   `json:"type" gorm:"Column:type"`
	Date            string           `json:"date" gorm:"index;Column:date"`
	Time            string           `json:"time" gorm:"Column:time"`
	Odometer        int              `json:"odometer" gorm:"Column:odometer"`
	Status          InspectionStatus `json:"status" gorm:"Column:status"`
	Checklist       Checklist        `json:"checklist" gorm:"type:jsonb"`
	Photos          PhotoSet         `json:"photos" gorm:"type:jsonb"`
	Notes           string           `json:"notes" gorm:"Column:notes;type:text"`
	Issues          IssueList        `json:"issues,omitempty" gorm:"type:jsonb"`
	Signature       *Signature       `json:"signature,omitempty" gorm:"type:jsonb"`
	Location        *Location        `json:"location,omitempty" gorm:"type:jsonb"`
	Weather         *Weather         `json:"weather,omitempty" gorm:"type:jsonb"`
	Analyses        AnalysisMap      `json:"analyses,omitempty" gorm:"type:jsonb"`
	AnalysisPending bool             `json:"analysis_pending" gorm:"index;Column:analysis_pending"`
}

// scanJSON unmarshals a jsonb column into dest, accepting the []byte and
// string representations drivers produce
func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
