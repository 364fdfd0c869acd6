package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"delivery-tracking/models"
)

// ErrNoLocation indicates the driver has not reported a position yet.
// It is an expected outcome, not a transport or storage failure.
var ErrNoLocation = errors.New("no known driver position")

type LocationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// Latest returns the most recently recorded location sample for the driver.
// Returns ErrNoLocation when no sample exists.
func (r *LocationRepository) Latest(ctx context.Context, driverID int64) (*models.LocationSample, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s models.LocationSample
	err := r.db.QueryRowContext(ctx,
		`SELECT id, driver_id, latitude, longitude, recorded_at FROM locations WHERE driver_id = ? ORDER BY recorded_at DESC, id DESC LIMIT 1`, driverID).
		Scan(&s.ID, &s.DriverID, &s.Latitude, &s.Longitude, &s.RecordedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoLocation
		}
		return nil, err
	}
	return &s, nil
}

// Record inserts a new location sample for the driver. Used by the tracking
// ingest path; the order workflow never writes locations.
func (r *LocationRepository) Record(ctx context.Context, driverID int64, lat, lng float64) (*models.LocationSample, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	recordedAt := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := r.db.ExecContext(ctx, `INSERT INTO locations (driver_id, latitude, longitude, recorded_at) VALUES (?,?,?,?)`,
		driverID, lat, lng, recordedAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.LocationSample{ID: id, DriverID: driverID, Latitude: lat, Longitude: lng, RecordedAt: recordedAt}, nil
}
