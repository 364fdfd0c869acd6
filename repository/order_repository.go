package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"delivery-tracking/models"
)

// OrderRepository is the core repository for Order entities.
// Orders are keyed by (driver_id, order_no); Put is a create-or-replace.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Put writes an order, replacing any prior record with the same
// (driver_id, order_no) key. Status defaults to 'pending' and created_at to
// the current UTC time if unset.
func (r *OrderRepository) Put(ctx context.Context, o *models.Order) (*models.Order, error) {
	if o == nil {
		return nil, errors.New("order is nil")
	}
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	if o.CreatedAt == "" {
		o.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var endLat, endLng, completedAt any
	if o.EndLocation != nil {
		endLat = o.EndLocation.Latitude
		endLng = o.EndLocation.Longitude
	}
	if o.CompletedAt != nil {
		completedAt = *o.CompletedAt
	}

	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO orders
(driver_id, order_no, driver_email, driver_first_name, driver_last_name, delivery_address, estimated_minutes, distance_miles, start_lat, start_lng, end_lat, end_lng, status, created_at, completed_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.DriverID, o.Number, o.DriverEmail, o.DriverFirstName, o.DriverLastName,
		o.DeliveryAddress, o.EstimatedMins, o.DistanceMiles,
		o.StartLocation.Latitude, o.StartLocation.Longitude,
		endLat, endLng, string(o.Status), o.CreatedAt, completedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Complete marks the order as completed, setting the end location and
// completion time. An update against a key that was never started matches zero
// rows and still succeeds; the workflow deliberately does not guard against it.
func (r *OrderRepository) Complete(ctx context.Context, driverID int64, orderNo string, end models.LatLng, completedAt string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, end_lat = ?, end_lng = ?, completed_at = ? WHERE driver_id = ? AND order_no = ?`,
		string(models.OrderStatusCompleted), end.Latitude, end.Longitude, completedAt, driverID, orderNo)
	return err
}

// GetByKey fetches an order by its (driver_id, order_no) key.
func (r *OrderRepository) GetByKey(ctx context.Context, driverID int64, orderNo string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT driver_id, order_no, driver_email, driver_first_name, driver_last_name, delivery_address, estimated_minutes, distance_miles, start_lat, start_lng, end_lat, end_lng, status, created_at, completed_at FROM orders WHERE driver_id = ? AND order_no = ?`,
		driverID, orderNo)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

// ListRecentByDriver returns the driver's most recent orders, newest first.
func (r *OrderRepository) ListRecentByDriver(ctx context.Context, driverID int64, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT driver_id, order_no, driver_email, driver_first_name, driver_last_name, delivery_address, estimated_minutes, distance_miles, start_lat, start_lng, end_lat, end_lng, status, created_at, completed_at FROM orders WHERE driver_id = ? ORDER BY created_at DESC, order_no DESC LIMIT ?`,
		driverID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	var status string
	var endLat, endLng sql.NullFloat64
	var completedAt sql.NullString
	err := row.Scan(&o.DriverID, &o.Number, &o.DriverEmail, &o.DriverFirstName, &o.DriverLastName,
		&o.DeliveryAddress, &o.EstimatedMins, &o.DistanceMiles,
		&o.StartLocation.Latitude, &o.StartLocation.Longitude,
		&endLat, &endLng, &status, &o.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	o.Status = models.OrderStatus(status)
	if endLat.Valid && endLng.Valid {
		o.EndLocation = &models.LatLng{Latitude: endLat.Float64, Longitude: endLng.Float64}
	}
	if completedAt.Valid {
		v := completedAt.String
		o.CompletedAt = &v
	}
	return &o, nil
}
