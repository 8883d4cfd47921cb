package service

import (
	"context"
	"io"

	"example.com/fleetops/internal/storage"
)

// allowedPhotoTypes lists the accepted upload content types
var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadPhoto stores a photo for a vehicle and returns its key and URL
func (s *fleetService) UploadPhoto(ctx context.Context, folder, vehicleID, filename, contentType string, body io.Reader) (*storage.StoredPhoto, error) {
	if !allowedPhotoTypes[contentType] {
		return nil, NewValidationError("unsupported content type: %s", contentType)
	}
	if folder == "" {
		folder = "inspections"
	}

	photo, err := s.photos.Upload(ctx, folder, vehicleID, filename, contentType, body)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"vehicle_id": vehicleID,
		"key":        photo.Key,
	}).Info("Photo uploaded")

	return photo, nil
}

// DeletePhoto removes a stored photo by key
func (s *fleetService) DeletePhoto(ctx context.Context, key string) error {
	if key == "" {
		return NewValidationError("photo key is required")
	}
	return s.photos.Delete(ctx, key)
}
