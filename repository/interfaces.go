package repository

import (
	"context"

	"delivery-tracking/models"
)

// DriverRepositoryI defines operations on Driver entities.
type DriverRepositoryI interface {
	Create(ctx context.Context, email, passwordHash, firstName, lastName string) (*models.Driver, error)
	GetByEmail(ctx context.Context, email string) (*models.Driver, error)
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
}

// LocationRepositoryI defines operations on LocationSample entities.
// The order workflow only calls Latest; Record belongs to the tracking
// collaborator's ingest path.
type LocationRepositoryI interface {
	Latest(ctx context.Context, driverID int64) (*models.LocationSample, error)
	Record(ctx context.Context, driverID int64, lat, lng float64) (*models.LocationSample, error)
}

// OrderRepositoryI defines operations on Order entities.
type OrderRepositoryI interface {
	Put(ctx context.Context, o *models.Order) (*models.Order, error)
	Complete(ctx context.Context, driverID int64, orderNo string, end models.LatLng, completedAt string) error
	GetByKey(ctx context.Context, driverID int64, orderNo string) (*models.Order, error)
	ListRecentByDriver(ctx context.Context, driverID int64, limit int) ([]models.Order, error)
}
