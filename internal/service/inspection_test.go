package service

import (
	"context"
	"testing"

	"example.com/fleetops/internal/damage"
	"example.com/fleetops/internal/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func inspectionInput() *InspectionInput {
	return &InspectionInput{
		FleetID:   "f1",
		VehicleID: "v1",
		DriverID:  "d1",
		Type:      models.InspectionTypePreTrip,
		Date:      futureDate(),
		Time:      "07:45",
		Odometer:  120400,
		Photos: models.PhotoSet{
			"front": "inspections/v1/front.jpg",
		},
		Notes: "scratch on rear bumper",
	}
}

func TestSubmitInspectionClassifiesPhotos(t *testing.T) {
	repo := new(mockRepository)
	bus := new(mockBus)
	detector := new(mockLabelDetector)

	repo.On("FindVehicleByUID", mock.Anything, "v1").Return(fleetVehicle("v1"), nil)
	repo.On("FindDriverByUID", mock.Anything, "d1").Return(activeDriver("d1"), nil)
	repo.On("CreateInspection", mock.Anything, mock.Anything).Return(nil)
	repo.On("SaveInspectionAnalyses", mock.Anything, mock.Anything).Return(nil)
	detector.On("DetectLabels", mock.Anything, "fleet-photos", "inspections/v1/front.jpg").
		Return([]damage.Label{{Name: "Scratch", Confidence: 95}}, nil)
	bus.On("SendMessage", mock.Anything, mock.Anything, "f1").Return(nil)

	svc := testService(repo, new(mockCache), bus, detector, new(mockStore))

	inspection, err := svc.SubmitInspection(context.Background(), inspectionInput())

	require.NoError(t, err)
	require.NotEmpty(t, inspection.UID)
	require.Equal(t, models.InspectionStatusPending, inspection.Status)
	require.False(t, inspection.AnalysisPending)

	analysis, ok := inspection.Analyses["front"]
	require.True(t, ok)
	require.True(t, analysis.HasDamage)
	require.Equal(t, damage.SeverityHigh, analysis.Severity)
	require.Equal(t, "Scratch", analysis.DamageType)

	repo.AssertExpectations(t)
	detector.AssertExpectations(t)
}

func TestSubmitInspectionSurvivesAnalysisFailure(t *testing.T) {
	repo := new(mockRepository)
	bus := new(mockBus)
	detector := new(mockLabelDetector)

	repo.On("FindVehicleByUID", mock.Anything, "v1").Return(fleetVehicle("v1"), nil)
	repo.On("FindDriverByUID", mock.Anything, "d1").Return(activeDriver("d1"), nil)
	repo.On("CreateInspection", mock.Anything, mock.Anything).Return(nil)
	repo.On("SaveInspectionAnalyses", mock.Anything, mock.Anything).Return(nil)
	detector.On("DetectLabels", mock.Anything, "fleet-photos", "inspections/v1/front.jpg").
		Return(nil, context.DeadlineExceeded)
	bus.On("SendMessage", mock.Anything, mock.Anything, "f1").Return(nil)

	svc := testService(repo, new(mockCache), bus, detector, new(mockStore))

	inspection, err := svc.SubmitInspection(context.Background(), inspectionInput())

	require.NoError(t, err)
	require.True(t, inspection.AnalysisPending)
	require.Empty(t, inspection.Analyses)
}

func TestSubmitInspectionRejectsUnknownType(t *testing.T) {
	svc := testService(new(mockRepository), new(mockCache), new(mockBus), new(mockLabelDetector), new(mockStore))

	input := inspectionInput()
	input.Type = "weekly"

	_, err := svc.SubmitInspection(context.Background(), input)
	require.Error(t, err)
	require.True(t, IsValidationError(err))
}

func TestRunPendingAnalysesRetries(t *testing.T) {
	repo := new(mockRepository)
	detector := new(mockLabelDetector)

	pending := &models.Inspection{
		UID:             "i1",
		FleetID:         "f1",
		VehicleID:       "v1",
		Photos:          models.PhotoSet{"front": "inspections/v1/front.jpg"},
		AnalysisPending: true,
	}

	repo.On("ListInspectionsWithPendingAnalysis", mock.Anything, pendingAnalysisBatchSize).
		Return([]*models.Inspection{pending}, nil)
	detector.On("DetectLabels", mock.Anything, "fleet-photos", "inspections/v1/front.jpg").
		Return([]damage.Label{{Name: "Dent", Confidence: 85}}, nil)
	repo.On("SaveInspectionAnalyses", mock.Anything, mock.MatchedBy(func(i *models.Inspection) bool {
		return i.UID == "i1" && !i.AnalysisPending
	})).Return(nil)

	svc := testService(repo, new(mockCache), new(mockBus), detector, new(mockStore))

	require.NoError(t, svc.RunPendingAnalyses(context.Background()))

	analysis := pending.Analyses["front"]
	require.True(t, analysis.HasDamage)
	require.Equal(t, damage.SeverityMedium, analysis.Severity)
	repo.AssertExpectations(t)
}

func TestSearchInspectionsDisabled(t *testing.T) {
	svc := testService(new(mockRepository), new(mockCache), new(mockBus), new(mockLabelDetector), new(mockStore))

	_, err := svc.SearchInspections(context.Background(), "f1", "bumper")
	require.ErrorIs(t, err, ErrSearchDisabled)
}
