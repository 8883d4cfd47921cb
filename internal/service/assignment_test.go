package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"example.com/fleetops/internal/models"
	"example.com/fleetops/internal/repository"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func futureDate() string {
	return time.Now().AddDate(0, 0, 1).Format(dateLayout)
}

func testFleet() *models.Fleet {
	return &models.Fleet{UID: "f1", Name: "North Depot"}
}

func activeDriver(uid string) *models.Driver {
	return &models.Driver{UID: uid, FleetID: "f1", Name: "Driver " + uid, Status: models.DriverStatusActive}
}

func fleetVehicle(uid string) *models.Vehicle {
	return &models.Vehicle{UID: uid, FleetID: "f1", PlateNumber: "PL-" + uid, Status: models.VehicleStatusAvailable}
}

func TestBulkAssignDeterministicAllocation(t *testing.T) {
	repo := new(mockRepository)
	redisMock := new(mockCache)
	bus := new(mockBus)
	date := futureDate()

	repo.On("FindFleetByUID", mock.Anything, "f1").Return(testFleet(), nil)
	repo.On("FindDriverByUID", mock.Anything, "d1").Return(activeDriver("d1"), nil)
	repo.On("FindDriverByUID", mock.Anything, "d2").Return(activeDriver("d2"), nil)
	repo.On("ListAssignmentsForDate", mock.Anything, "f1", date).Return([]*models.Assignment{}, nil)
	repo.On("ListVehicles", mock.Anything, "f1").
		Return([]*models.Vehicle{fleetVehicle("v1"), fleetVehicle("v2"), fleetVehicle("v3")}, nil)
	repo.On("CreateAssignments", mock.Anything, mock.Anything).Return(nil)
	redisMock.On("Delete", mock.Anything, "assignments:f1:"+date).Return(nil)
	bus.On("SendMessage", mock.Anything, mock.Anything, "f1").Return(nil)

	svc := testService(repo, redisMock, bus, new(mockLabelDetector), new(mockStore))

	created, err := svc.BulkAssign(context.Background(), &BulkAssignInput{
		FleetID:   "f1",
		Date:      date,
		DriverIDs: []string{"d1", "d2"},
		StartTime: "08:00",
		EndTime:   "17:00",
	})

	require.NoError(t, err)
	require.Len(t, created, 2)
	require.Equal(t, "d1", created[0].DriverID)
	require.Equal(t, "v1", created[0].VehicleID)
	require.Equal(t, "d2", created[1].DriverID)
	require.Equal(t, "v2", created[1].VehicleID)
	for _, a := range created {
		require.NotEmpty(t, a.UID)
		require.Equal(t, models.AssignmentStatusPending, a.Status)
		require.Equal(t, date, a.Date)
	}

	repo.AssertExpectations(t)
	bus.AssertExpectations(t)
}

func TestBulkAssignSkipsAssignedVehicles(t *testing.T) {
	repo := new(mockRepository)
	redisMock := new(mockCache)
	bus := new(mockBus)
	date := futureDate()

	existing := []*models.Assignment{
		{UID: "a0", FleetID: "f1", Date: date, VehicleID: "v1", DriverID: "d9"},
	}

	repo.On("FindFleetByUID", mock.Anything, "f1").Return(testFleet(), nil)
	repo.On("FindDriverByUID", mock.Anything, "d1").Return(activeDriver("d1"), nil)
	repo.On("ListAssignmentsForDate", mock.Anything, "f1", date).Return(existing, nil)
	repo.On("ListVehicles", mock.Anything, "f1").
		Return([]*models.Vehicle{fleetVehicle("v1"), fleetVehicle("v2")}, nil)
	repo.On("CreateAssignments", mock.Anything, mock.Anything).Return(nil)
	redisMock.On("Delete", mock.Anything, mock.Anything).Return(nil)
	bus.On("SendMessage", mock.Anything, mock.Anything, "f1").Return(nil)

	svc := testService(repo, redisMock, bus, new(mockLabelDetector), new(mockStore))

	created, err := svc.BulkAssign(context.Background(), &BulkAssignInput{
		FleetID:   "f1",
		Date:      date,
		DriverIDs: []string{"d1"},
		StartTime: "08:00",
		EndTime:   "17:00",
	})

	require.NoError(t, err)
	require.Len(t, created, 1)
	require.Equal(t, "v2", created[0].VehicleID)
}

func TestBulkAssignOverflowDriversGetNoVehicle(t *testing.T) {
	repo := new(mockRepository)
	redisMock := new(mockCache)
	bus := new(mockBus)
	date := futureDate()

	repo.On("FindFleetByUID", mock.Anything, "f1").Return(testFleet(), nil)
	for _, d := range []string{"d1", "d2", "d3"} {
		repo.On("FindDriverByUID", mock.Anything, d).Return(activeDriver(d), nil)
	}
	repo.On("ListAssignmentsForDate", mock.Anything, "f1", date).Return([]*models.Assignment{}, nil)
	repo.On("ListVehicles", mock.Anything, "f1").Return([]*models.Vehicle{fleetVehicle("v1")}, nil)
	repo.On("CreateAssignments", mock.Anything, mock.Anything).Return(nil)
	redisMock.On("Delete", mock.Anything, mock.Anything).Return(nil)
	bus.On("SendMessage", mock.Anything, mock.Anything, "f1").Return(nil)

	svc := testService(repo, redisMock, bus, new(mockLabelDetector), new(mockStore))

	created, err := svc.BulkAssign(context.Background(), &BulkAssignInput{
		FleetID:   "f1",
		Date:      date,
		DriverIDs: []string{"d1", "d2", "d3"},
		StartTime: "08:00",
		EndTime:   "17:00",
	})

	require.NoError(t, err)
	require.Len(t, created, 3)
	require.Equal(t, "v1", created[0].VehicleID)
	require.Empty(t, created[1].VehicleID)
	require.Empty(t, created[2].VehicleID)
}

func TestBulkAssignRejectsPastDate(t *testing.T) {
	repo := new(mockRepository)
	svc := testService(repo, new(mockCache), new(mockBus), new(mockLabelDetector), new(mockStore))

	past := time.Now().AddDate(0, 0, -1).Format(dateLayout)
	_, err := svc.BulkAssign(context.Background(), &BulkAssignInput{
		FleetID:   "f1",
		Date:      past,
		DriverIDs: []string{"d1"},
		StartTime: "08:00",
		EndTime:   "17:00",
	})

	require.Error(t, err)
	require.True(t, IsValidationError(err))
	repo.AssertNotCalled(t, "CreateAssignments", mock.Anything, mock.Anything)
}

func TestBulkAssignRejectsInvertedWindow(t *testing.T) {
	svc := testService(new(mockRepository), new(mockCache), new(mockBus), new(mockLabelDetector), new(mockStore))

	_, err := svc.BulkAssign(context.Background(), &BulkAssignInput{
		FleetID:   "f1",
		Date:      futureDate(),
		DriverIDs: []string{"d1"},
		StartTime: "17:00",
		EndTime:   "08:00",
	})

	require.Error(t, err)
	require.True(t, IsValidationError(err))
}

func TestBulkAssignRejectsInactiveDriver(t *testing.T) {
	repo := new(mockRepository)
	date := futureDate()

	suspended := activeDriver("d1")
	suspended.Status = models.DriverStatusSuspended

	repo.On("FindFleetByUID", mock.Anything, "f1").Return(testFleet(), nil)
	repo.On("FindDriverByUID", mock.Anything, "d1").Return(suspended, nil)

	svc := testService(repo, new(mockCache), new(mockBus), new(mockLabelDetector), new(mockStore))

	_, err := svc.BulkAssign(context.Background(), &BulkAssignInput{
		FleetID:   "f1",
		Date:      date,
		DriverIDs: []string{"d1"},
		StartTime: "08:00",
		EndTime:   "17:00",
	})

	require.Error(t, err)
	require.True(t, IsValidationError(err))
	repo.AssertNotCalled(t, "CreateAssignments", mock.Anything, mock.Anything)
}

func TestBulkAssignSurfacesSlotConflict(t *testing.T) {
	repo := new(mockRepository)
	date := futureDate()

	repo.On("FindFleetByUID", mock.Anything, "f1").Return(testFleet(), nil)
	repo.On("FindDriverByUID", mock.Anything, "d1").Return(activeDriver("d1"), nil)
	repo.On("ListAssignmentsForDate", mock.Anything, "f1", date).Return([]*models.Assignment{}, nil)
	repo.On("ListVehicles", mock.Anything, "f1").Return([]*models.Vehicle{fleetVehicle("v1")}, nil)
	repo.On("CreateAssignments", mock.Anything, mock.Anything).Return(repository.ErrDuplicateKey)

	svc := testService(repo, new(mockCache), new(mockBus), new(mockLabelDetector), new(mockStore))

	_, err := svc.BulkAssign(context.Background(), &BulkAssignInput{
		FleetID:   "f1",
		Date:      date,
		DriverIDs: []string{"d1"},
		StartTime: "08:00",
		EndTime:   "17:00",
	})

	require.Error(t, err)
	require.True(t, IsConflictError(err))
}

func TestUpdateAssignmentRejectsTakenVehicle(t *testing.T) {
	repo := new(mockRepository)
	date := futureDate()

	a1 := &models.Assignment{UID: "a1", FleetID: "f1", Date: date, VehicleID: "v1", DriverID: "d1"}
	a2 := &models.Assignment{UID: "a2", FleetID: "f1", Date: date, VehicleID: "v2", DriverID: "d2"}

	repo.On("FindAssignmentByUID", mock.Anything, "a2").Return(a2, nil)
	repo.On("FindVehicleByUID", mock.Anything, "v1").Return(fleetVehicle("v1"), nil)
	repo.On("ListAssignmentsForDate", mock.Anything, "f1", date).Return([]*models.Assignment{a1, a2}, nil)

	svc := testService(repo, new(mockCache), new(mockBus), new(mockLabelDetector), new(mockStore))

	wanted := "v1"
	_, err := svc.UpdateAssignment(context.Background(), "f1", "a2", &AssignmentUpdate{VehicleID: &wanted})

	require.Error(t, err)
	require.True(t, IsConflictError(err))
	repo.AssertNotCalled(t, "UpdateAssignment", mock.Anything, mock.Anything)
}

func TestUpdateAssignmentMovesToFreeVehicle(t *testing.T) {
	repo := new(mockRepository)
	redisMock := new(mockCache)
	bus := new(mockBus)
	date := futureDate()

	a1 := &models.Assignment{UID: "a1", FleetID: "f1", Date: date, VehicleID: "v1", DriverID: "d1"}
	a2 := &models.Assignment{UID: "a2", FleetID: "f1", Date: date, VehicleID: "v2", DriverID: "d2", Status: models.AssignmentStatusPending}

	repo.On("FindAssignmentByUID", mock.Anything, "a2").Return(a2, nil)
	repo.On("FindVehicleByUID", mock.Anything, "v3").Return(fleetVehicle("v3"), nil)
	repo.On("ListAssignmentsForDate", mock.Anything, "f1", date).Return([]*models.Assignment{a1, a2}, nil)
	repo.On("UpdateAssignment", mock.Anything, mock.Anything).Return(nil)
	redisMock.On("Delete", mock.Anything, "assignments:f1:"+date).Return(nil)
	bus.On("SendMessage", mock.Anything, mock.Anything, "f1").Return(nil)

	svc := testService(repo, redisMock, bus, new(mockLabelDetector), new(mockStore))

	wanted := "v3"
	updated, err := svc.UpdateAssignment(context.Background(), "f1", "a2", &AssignmentUpdate{VehicleID: &wanted})

	require.NoError(t, err)
	require.Equal(t, "v3", updated.VehicleID)
	repo.AssertExpectations(t)
}

func TestUpdateAssignmentRejectsBackwardStatus(t *testing.T) {
	repo := new(mockRepository)
	date := futureDate()

	a1 := &models.Assignment{UID: "a1", FleetID: "f1", Date: date, VehicleID: "v1", DriverID: "d1", Status: models.AssignmentStatusCompleted}
	repo.On("FindAssignmentByUID", mock.Anything, "a1").Return(a1, nil)

	svc := testService(repo, new(mockCache), new(mockBus), new(mockLabelDetector), new(mockStore))

	status := models.AssignmentStatusPending
	_, err := svc.UpdateAssignment(context.Background(), "f1", "a1", &AssignmentUpdate{Status: &status})

	require.Error(t, err)
	require.True(t, IsValidationError(err))
}

func TestRemoveAssignment(t *testing.T) {
	repo := new(mockRepository)
	redisMock := new(mockCache)
	bus := new(mockBus)
	date := futureDate()

	a1 := &models.Assignment{UID: "a1", FleetID: "f1", Date: date, VehicleID: "v1", DriverID: "d1"}
	repo.On("FindAssignmentByUID", mock.Anything, "a1").Return(a1, nil)
	repo.On("DeleteAssignment", mock.Anything, "a1").Return(nil)
	redisMock.On("Delete", mock.Anything, "assignments:f1:"+date).Return(nil)
	bus.On("SendMessage", mock.Anything, mock.Anything, "f1").Return(nil)

	svc := testService(repo, redisMock, bus, new(mockLabelDetector), new(mockStore))

	require.NoError(t, svc.RemoveAssignment(context.Background(), "f1", "a1"))
	repo.AssertExpectations(t)
	redisMock.AssertExpectations(t)
}

func TestRemoveAssignmentOtherFleet(t *testing.T) {
	repo := new(mockRepository)

	a1 := &models.Assignment{UID: "a1", FleetID: "f2", Date: futureDate(), VehicleID: "v1"}
	repo.On("FindAssignmentByUID", mock.Anything, "a1").Return(a1, nil)

	svc := testService(repo, new(mockCache), new(mockBus), new(mockLabelDetector), new(mockStore))

	err := svc.RemoveAssignment(context.Background(), "f1", "a1")
	require.ErrorIs(t, err, repository.ErrNotFound)
	repo.AssertNotCalled(t, "DeleteAssignment", mock.Anything, "a1")
}

func TestListAssignmentsForDateCacheHit(t *testing.T) {
	repo := new(mockRepository)
	redisMock := new(mockCache)
	date := futureDate()

	cached := []*models.Assignment{{UID: "a1", FleetID: "f1", Date: date, VehicleID: "v1", DriverID: "d1"}}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	redisMock.On("Get", mock.Anything, "assignments:f1:"+date).Return(string(data), nil)

	svc := testService(repo, redisMock, new(mockBus), new(mockLabelDetector), new(mockStore))

	assignments, err := svc.ListAssignmentsForDate(context.Background(), "f1", date)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.Equal(t, "a1", assignments[0].UID)
	repo.AssertNotCalled(t, "ListAssignmentsForDate", mock.Anything, "f1", date)
}

func TestListAssignmentsForDateCacheMiss(t *testing.T) {
	repo := new(mockRepository)
	redisMock := new(mockCache)
	date := futureDate()

	stored := []*models.Assignment{{UID: "a1", FleetID: "f1", Date: date, VehicleID: "v1", DriverID: "d1"}}

	redisMock.On("Get", mock.Anything, "assignments:f1:"+date).Return("", redis.Nil)
	repo.On("ListAssignmentsForDate", mock.Anything, "f1", date).Return(stored, nil)
	redisMock.On("Set", mock.Anything, "assignments:f1:"+date, mock.Anything, assignmentCacheTTL).Return(nil)

	svc := testService(repo, redisMock, new(mockBus), new(mockLabelDetector), new(mockStore))

	assignments, err := svc.ListAssignmentsForDate(context.Background(), "f1", date)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	redisMock.AssertExpectations(t)
}
