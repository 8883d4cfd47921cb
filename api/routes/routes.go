package routes

import (
	"example.com/fleetops/api/handlers"
	"example.com/fleetops/api/middleware"
	"example.com/fleetops/config"
	"example.com/fleetops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes sets up all the routes for the server
func SetupRoutes(r *gin.Engine, cfg *config.Config, svc service.Service, log *logrus.Logger) {
	// Health check
	r.GET("/health", handlers.HealthCheck)

	// API routes, all fleet-scoped by the bearer token
	api := r.Group("/api/v1")
	api.Use(middleware.JWTAuth(cfg.Auth, log))

	admin := middleware.RequireAdmin(log)

	// Fleet routes
	fleetHandler := handlers.NewFleetHandler(svc, log)
	fleets := api.Group("/fleets")
	{
		fleets.POST("", admin, fleetHandler.CreateFleet)
		fleets.GET("/current", fleetHandler.GetFleet)
		fleets.PUT("/current", admin, fleetHandler.UpdateFleet)
	}

	// Vehicle routes
	vehicleHandler := handlers.NewVehicleHandler(svc, log)
	vehicles := api.Group("/vehicles")
	{
		vehicles.POST("", admin, vehicleHandler.CreateVehicle)
		vehicles.GET("", vehicleHandler.ListVehicles)
		vehicles.GET("/:id", vehicleHandler.GetVehicle)
		vehicles.PUT("/:id", admin, vehicleHandler.UpdateVehicle)
		vehicles.PATCH("/:id/status", admin, vehicleHandler.UpdateVehicleStatus)
	}

	// Driver routes
	driverHandler := handlers.NewDriverHandler(svc, log)
	drivers := api.Group("/drivers")
	{
		drivers.POST("", admin, driverHandler.CreateDriver)
		drivers.GET("", driverHandler.ListDrivers)
		drivers.GET("/:id", driverHandler.GetDriver)
		drivers.PUT("/:id", admin, driverHandler.UpdateDriver)
		drivers.PATCH("/:id/status", admin, driverHandler.UpdateDriverStatus)
	}

	// Assignment routes; the schedule is admin-managed
	assignmentHandler := handlers.NewAssignmentHandler(svc, log)
	assignments := api.Group("/assignments")
	{
		assignments.POST("/bulk", admin, assignmentHandler.BulkAssign)
		assignments.POST("", admin, assignmentHandler.CreateAssignment)
		assignments.GET("", assignmentHandler.ListAssignments)
		assignments.PATCH("/:id", admin, assignmentHandler.UpdateAssignment)
		assignments.DELETE("/:id", admin, assignmentHandler.RemoveAssignment)
	}

	// Inspection routes; drivers submit their own inspections
	inspectionHandler := handlers.NewInspectionHandler(svc, log)
	inspections := api.Group("/inspections")
	{
		inspections.POST("", inspectionHandler.SubmitInspection)
		inspections.GET("", inspectionHandler.ListInspections)
		inspections.GET("/search", inspectionHandler.SearchInspections)
		inspections.GET("/:id", inspectionHandler.GetInspection)
	}

	// Fuel routes
	fuelHandler := handlers.NewFuelHandler(svc, log)
	fuel := api.Group("/fuel")
	{
		fuel.POST("", fuelHandler.AddFuelEntry)
		fuel.GET("", fuelHandler.ListFuelEntries)
	}

	// Photo routes
	photoHandler := handlers.NewPhotoHandler(svc, log)
	photos := api.Group("/photos")
	{
		photos.POST("", photoHandler.UploadPhoto)
		photos.DELETE("", admin, photoHandler.DeletePhoto)
	}
}
