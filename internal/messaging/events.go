package messaging

// Event types published to the fleet-events queue
const (
	// EventAssignmentsCreated is published after a bulk allocation commits
	EventAssignmentsCreated = "assignments-created"
	// EventAssignmentUpdated is published after a manual reassignment or
	// status change
	EventAssignmentUpdated = "assignment-updated"
	// EventAssignmentRemoved is published after an assignment is removed
	EventAssignmentRemoved = "assignment-removed"
	// EventInspectionSubmitted is published after an inspection is stored
	EventInspectionSubmitted = "inspection-submitted"
)

// Event is the envelope for fleet notification messages. SessionID on the
// bus is the fleet UID so consumers see per-fleet ordering.
type Event struct {
	Type    string      `json:"type"`
	FleetID string      `json:"fleet_id"`
	Payload interface{} `json:"payload"`
}
