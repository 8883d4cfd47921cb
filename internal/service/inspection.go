package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"example.com/fleetops/internal/damage"
	"example.com/fleetops/internal/messaging"
	"example.com/fleetops/internal/models"
	"example.com/fleetops/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// pendingAnalysisBatchSize caps how many inspections one worker run retries
const pendingAnalysisBatchSize = 20

// InspectionInput carries a submitted inspection
type InspectionInput struct {
	FleetID   string                  `json:"fleet_id"`
	VehicleID string                  `json:"vehicle_id"`
	DriverID  string                  `json:"driver_id"`
	Type      models.InspectionType   `json:"type"`
	Date      string                  `json:"date"`
	Time      string                  `json:"time"`
	Odometer  int                     `json:"odometer"`
	Status    models.InspectionStatus `json:"status"`
	Checklist models.Checklist        `json:"checklist"`
	Photos    models.PhotoSet         `json:"photos"`
	Notes     string                  `json:"notes"`
	Issues    models.IssueList        `json:"issues"`
	Signature *models.Signature       `json:"signature"`
	Location  *models.Location        `json:"location"`
	Weather   *models.Weather         `json:"weather"`
}

// SubmitInspection stores an inspection and runs the advisory photo analysis.
// Analysis and indexing failures never fail the submission; a failed analysis
// is flagged and retried by the background worker.
func (s *fleetService) SubmitInspection(ctx context.Context, input *InspectionInput) (*models.Inspection, error) {
	if !input.Type.IsValid() {
		return nil, NewValidationError("invalid inspection type: %s", input.Type)
	}
	if _, err := time.Parse(dateLayout, input.Date); err != nil {
		return nil, NewValidationError("invalid date: %s", input.Date)
	}
	if _, err := s.findFleetVehicle(ctx, input.FleetID, input.VehicleID); err != nil {
		return nil, err
	}
	if _, err := s.findFleetDriver(ctx, input.FleetID, input.DriverID); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.InspectionStatusPending
	}

	inspection := &models.Inspection{
		UID:       uuid.New().String(),
		FleetID:   input.FleetID,
		VehicleID: input.VehicleID,
		DriverID:  input.DriverID,
		Type:      input.Type,
		Date:      input.Date,
		Time:      input.Time,
		Odometer:  input.Odometer,
		Status:    status,
		Checklist: input.Checklist,
		Photos:    input.Photos,
		Notes:     input.Notes,
		Issues:    input.Issues,
		Signature: input.Signature,
		Location:  input.Location,
		Weather:   input.Weather,
	}

	if err := s.repo.CreateInspection(ctx, inspection); err != nil {
		return nil, err
	}

	s.analyzeInspectionPhotos(ctx, inspection)
	s.indexInspection(ctx, inspection)

	s.publishEvent(ctx, messaging.EventInspectionSubmitted, inspection.FleetID, map[string]interface{}{
		"inspection_id": inspection.UID,
		"vehicle_id":    inspection.VehicleID,
		"type":          inspection.Type,
		"status":        inspection.Status,
	})

	s.logger.WithFields(logrus.Fields{
		"fleet_id":      inspection.FleetID,
		"inspection_id": inspection.UID,
		"vehicle_id":    inspection.VehicleID,
		"type":          inspection.Type,
	}).Info("Inspection submitted")

	return inspection, nil
}

// GetInspection retrieves an inspection by UID, scoped to a fleet
func (s *fleetService) GetInspection(ctx context.Context, fleetID, uid string) (*models.Inspection, error) {
	inspection, err := s.repo.FindInspectionByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if inspection.FleetID != fleetID {
		return nil, repository.ErrNotFound
	}
	return inspection, nil
}

// ListInspections lists a fleet's inspections, optionally narrowed to a
// vehicle and/or a date
func (s *fleetService) ListInspections(ctx context.Context, fleetID, vehicleID, date string) ([]*models.Inspection, error) {
	if date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return nil, NewValidationError("invalid date: %s", date)
		}
	}
	return s.repo.ListInspections(ctx, fleetID, vehicleID, date)
}

// SearchInspections runs a free-text query against the inspection index
func (s *fleetService) SearchInspections(ctx context.Context, fleetID, term string) ([]json.RawMessage, error) {
	if s.search == nil {
		return nil, ErrSearchDisabled
	}
	if term == "" {
		return nil, NewValidationError("search term is required")
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"fleet_id": fleetID}},
				},
				"must": []map[string]interface{}{
					{"multi_match": map[string]interface{}{
						"query":  term,
						"fields": []string{"notes", "issues.description", "vehicle_id", "driver_id"},
					}},
				},
			},
		},
	}

	return s.search.SearchDocuments(ctx, query)
}

// RunPendingAnalyses retries the photo analysis of inspections whose analysis
// did not complete on submission
func (s *fleetService) RunPendingAnalyses(ctx context.Context) error {
	inspections, err := s.repo.ListInspectionsWithPendingAnalysis(ctx, pendingAnalysisBatchSize)
	if err != nil {
		return err
	}

	for _, inspection := range inspections {
		s.analyzeInspectionPhotos(ctx, inspection)
	}

	if len(inspections) > 0 {
		s.logger.WithField("count", len(inspections)).Info("Retried pending photo analyses")
	}
	return nil
}

// analyzeInspectionPhotos classifies each inspection photo and persists the
// results. Slots are processed in name order; a slot that fails leaves the
// inspection flagged for retry while the others still get their analysis.
func (s *fleetService) analyzeInspectionPhotos(ctx context.Context, inspection *models.Inspection) {
	if len(inspection.Photos) == 0 {
		if inspection.AnalysisPending {
			inspection.AnalysisPending = false
			s.saveAnalyses(ctx, inspection)
		}
		return
	}

	slots := make([]string, 0, len(inspection.Photos))
	for slot := range inspection.Photos {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	if inspection.Analyses == nil {
		inspection.Analyses = models.AnalysisMap{}
	}

	pending := false
	for _, slot := range slots {
		if _, done := inspection.Analyses[slot]; done {
			continue
		}

		labels, err := s.detector.DetectLabels(ctx, s.bucket, inspection.Photos[slot])
		if err != nil {
			pending = true
			s.logger.WithError(err).WithFields(logrus.Fields{
				"inspection_id": inspection.UID,
				"slot":          slot,
			}).Error("Photo analysis failed")
			continue
		}

		inspection.Analyses[slot] = damage.Classify(labels)
	}

	inspection.AnalysisPending = pending
	s.saveAnalyses(ctx, inspection)
}

// saveAnalyses persists the analysis map; a storage failure here is logged
// and the pending flag stays for the worker
func (s *fleetService) saveAnalyses(ctx context.Context, inspection *models.Inspection) {
	if err := s.repo.SaveInspectionAnalyses(ctx, inspection); err != nil {
		s.logger.WithError(err).WithField("inspection_id", inspection.UID).
			Error("Failed to persist photo analyses")
	}
}

// indexInspection pushes the inspection into the search index. Indexing is
// best-effort; failures are logged.
func (s *fleetService) indexInspection(ctx context.Context, inspection *models.Inspection) {
	if s.search == nil {
		return
	}

	doc, err := json.Marshal(inspection)
	if err != nil {
		s.logger.WithError(err).WithField("inspection_id", inspection.UID).
			Error("Failed to marshal inspection for indexing")
		return
	}

	if err := s.search.IndexDocument(ctx, inspection.UID, doc); err != nil {
		s.logger.WithError(err).WithField("inspection_id", inspection.UID).
			Error("Failed to index inspection")
	}
}
