package service

import (
	"context"
	"io"
	"time"

	"example.com/fleetops/internal/damage"
	"example.com/fleetops/internal/models"
	"example.com/fleetops/internal/repository"
	"example.com/fleetops/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

// mockRepository is a testify mock of the repository
type mockRepository struct {
	mock.Mock
}

// WithTransaction runs the callback against the mock itself so tests see the
// in-transaction calls
func (m *mockRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, txRepo repository.Repository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) CreateFleet(ctx context.Context, fleet *models.Fleet) error {
	args := m.Called(ctx, fleet)
	return args.Error(0)
}

func (m *mockRepository) UpdateFleet(ctx context.Context, fleet *models.Fleet) error {
	args := m.Called(ctx, fleet)
	return args.Error(0)
}

func (m *mockRepository) FindFleetByUID(ctx context.Context, uid string) (*models.Fleet, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Fleet), args.Error(1)
}

func (m *mockRepository) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *mockRepository) UpdateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *mockRepository) FindVehicleByUID(ctx context.Context, uid string) (*models.Vehicle, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *mockRepository) ListVehicles(ctx context.Context, fleetID string) ([]*models.Vehicle, error) {
	args := m.Called(ctx, fleetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *mockRepository) CreateDriver(ctx context.Context, driver *models.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *mockRepository) UpdateDriver(ctx context.Context, driver *models.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *mockRepository) FindDriverByUID(ctx context.Context, uid string) (*models.Driver, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *mockRepository) ListDrivers(ctx context.Context, fleetID string) ([]*models.Driver, error) {
	args := m.Called(ctx, fleetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Driver), args.Error(1)
}

func (m *mockRepository) CreateAssignments(ctx context.Context, assignments []*models.Assignment) error {
	args := m.Called(ctx, assignments)
	return args.Error(0)
}

func (m *mockRepository) UpdateAssignment(ctx context.Context, assignment *models.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *mockRepository) DeleteAssignment(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *mockRepository) FindAssignmentByUID(ctx context.Context, uid string) (*models.Assignment, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

func (m *mockRepository) ListAssignmentsForDate(ctx context.Context, fleetID, date string) ([]*models.Assignment, error) {
	args := m.Called(ctx, fleetID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Assignment), args.Error(1)
}

func (m *mockRepository) CreateInspection(ctx context.Context, inspection *models.Inspection) error {
	args := m.Called(ctx, inspection)
	return args.Error(0)
}

func (m *mockRepository) FindInspectionByUID(ctx context.Context, uid string) (*models.Inspection, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inspection), args.Error(1)
}

func (m *mockRepository) ListInspections(ctx context.Context, fleetID, vehicleID, date string) ([]*models.Inspection, error) {
	args := m.Called(ctx, fleetID, vehicleID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Inspection), args.Error(1)
}

func (m *mockRepository) SaveInspectionAnalyses(ctx context.Context, inspection *models.Inspection) error {
	args := m.Called(ctx, inspection)
	return args.Error(0)
}

func (m *mockRepository) ListInspectionsWithPendingAnalysis(ctx context.Context, limit int) ([]*models.Inspection, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Inspection), args.Error(1)
}

func (m *mockRepository) CreateFuelEntry(ctx context.Context, entry *models.FuelEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockRepository) ListFuelEntries(ctx context.Context, fleetID, vehicleID string) ([]*models.FuelEntry, error) {
	args := m.Called(ctx, fleetID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FuelEntry), args.Error(1)
}

// mockCache is a testify mock of the Redis client
type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// mockBus is a testify mock of the Service Bus client
type mockBus struct {
	mock.Mock
}

func (m *mockBus) SendMessage(ctx context.Context, body interface{}, sessionID string) error {
	args := m.Called(ctx, body, sessionID)
	return args.Error(0)
}

func (m *mockBus) Close() error {
	args := m.Called()
	return args.Error(0)
}

// mockLabelDetector is a testify mock of the label detector
type mockLabelDetector struct {
	mock.Mock
}

func (m *mockLabelDetector) DetectLabels(ctx context.Context, bucket, key string) ([]damage.Label, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]damage.Label), args.Error(1)
}

// mockStore is a testify mock of the photo store
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Upload(ctx context.Context, folder, vehicleID, filename, contentType string, body io.Reader) (*storage.StoredPhoto, error) {
	args := m.Called(ctx, folder, vehicleID, filename, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.StoredPhoto), args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockStore) URL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

// testService wires a service around the given mocks with a silent logger
func testService(repo *mockRepository, redis *mockCache, bus *mockBus, detector *mockLabelDetector, store *mockStore) Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewService(repo, redis, bus, store, detector, nil, "fleet-photos", logger)
}
