package service

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"example.com/fleetops/internal/cache"
	"example.com/fleetops/internal/messaging"
	"example.com/fleetops/internal/models"
	"example.com/fleetops/internal/repository"
	"example.com/fleetops/internal/search"
	"example.com/fleetops/internal/storage"
	"example.com/fleetops/internal/vision"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// Service provides the business logic for fleet operations
type Service interface {
	// Fleet operations
	CreateFleet(ctx context.Context, input *FleetInput) (*models.Fleet, error)
	GetFleet(ctx context.Context, uid string) (*models.Fleet, error)
	UpdateFleet(ctx context.Context, uid string, input *FleetInput) (*models.Fleet, error)

	// Vehicle operations
	CreateVehicle(ctx context.Context, fleetID string, input *VehicleInput) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, fleetID, uid string) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, fleetID, uid string, input *VehicleInput) (*models.Vehicle, error)
	UpdateVehicleStatus(ctx context.Context, fleetID, uid string, status models.VehicleStatus) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, fleetID string) ([]*models.Vehicle, error)

	// Driver operations
	CreateDriver(ctx context.Context, fleetID string, input *DriverInput) (*models.Driver, error)
	GetDriver(ctx context.Context, fleetID, uid string) (*models.Driver, error)
	UpdateDriver(ctx context.Context, fleetID, uid string, input *DriverInput) (*models.Driver, error)
	UpdateDriverStatus(ctx context.Context, fleetID, uid string, status models.DriverStatus) (*models.Driver, error)
	ListDrivers(ctx context.Context, fleetID string) ([]*models.Driver, error)

	// Assignment operations
	BulkAssign(ctx context.Context, input *BulkAssignInput) ([]*models.Assignment, error)
	CreateAssignment(ctx context.Context, input *AssignmentInput) (*models.Assignment, error)
	UpdateAssignment(ctx context.Context, fleetID, uid string, updates *AssignmentUpdate) (*models.Assignment, error)
	RemoveAssignment(ctx context.Context, fleetID, uid string) error
	ListAssignmentsForDate(ctx context.Context, fleetID, date string) ([]*models.Assignment, error)

	// Inspection operations
	SubmitInspection(ctx context.Context, input *InspectionInput) (*models.Inspection, error)
	GetInspection(ctx context.Context, fleetID, uid string) (*models.Inspection, error)
	ListInspections(ctx context.Context, fleetID, vehicleID, date string) ([]*models.Inspection, error)
	SearchInspections(ctx context.Context, fleetID, term string) ([]json.RawMessage, error)
	RunPendingAnalyses(ctx context.Context) error

	// Fuel operations
	AddFuelEntry(ctx context.Context, input *FuelEntryInput) (*models.FuelEntry, error)
	ListFuelEntries(ctx context.Context, fleetID, vehicleID string) ([]*models.FuelEntry, error)

	// Photo operations
	UploadPhoto(ctx context.Context, folder, vehicleID, filename, contentType string, body io.Reader) (*storage.StoredPhoto, error)
	DeletePhoto(ctx context.Context, key string) error

	// Lifecycle
	StartAnalysisWorker(interval time.Duration) error
	Shutdown(ctx context.Context) error
}

// fleetService implements the Service interface
type fleetService struct {
	repo      repository.Repository
	cache     cache.RedisClient
	bus       messaging.ServiceBusClient
	photos    storage.PhotoStore
	detector  vision.LabelDetector
	search    search.Client
	logger    *logrus.Logger
	bucket    string
	scheduler gocron.Scheduler
	slots     *keyedMutex
}

// NewService creates a new fleet service. The search client may be nil when
// indexing is disabled.
func NewService(
	repo repository.Repository,
	redisClient cache.RedisClient,
	bus messaging.ServiceBusClient,
	photos storage.PhotoStore,
	detector vision.LabelDetector,
	searchClient search.Client,
	bucket string,
	logger *logrus.Logger,
) Service {
	return &fleetService{
		repo:     repo,
		cache:    redisClient,
		bus:      bus,
		photos:   photos,
		detector: detector,
		search:   searchClient,
		logger:   logger,
		bucket:   bucket,
		slots:    newKeyedMutex(),
	}
}

// Shutdown stops the background worker and closes collaborators
func (s *fleetService) Shutdown(ctx context.Context) error {
	if s.scheduler != nil {
		if err := s.scheduler.Shutdown(); err != nil {
			s.logger.WithError(err).Warn("Failed to shut down analysis scheduler")
		}
	}

	if err := s.bus.Close(); err != nil {
		return err
	}
	return s.cache.Close()
}

// keyedMutex serializes writers per string key. The allocator locks the
// (fleet, date) slot so concurrent bulk allocations for the same day cannot
// interleave between reading the pool and writing the rows.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock locks the mutex for the given key, creating it on first use
func (k *keyedMutex) Lock(key string) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
}

// Unlock unlocks the mutex for the given key
func (k *keyedMutex) Unlock(key string) {
	k.mu.Lock()
	m := k.locks[key]
	k.mu.Unlock()

	if m != nil {
		m.Unlock()
	}
}

// publishEvent sends a fleet event to the notification queue. Delivery is
// best-effort: a broker failure is logged, never returned to the caller.
func (s *fleetService) publishEvent(ctx context.Context, eventType, fleetID string, payload interface{}) {
	event := messaging.Event{
		Type:    eventType,
		FleetID: fleetID,
		Payload: payload,
	}

	if err := s.bus.SendMessage(ctx, event, fleetID); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"event":    eventType,
			"fleet_id": fleetID,
		}).Error("Failed to publish event")
	}
}
