package models

// OrderStatus represents the current progress of a delivery order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Latitude  float64 `db:"latitude" json:"latitude"`
	Longitude float64 `db:"longitude" json:"longitude"`
}

// Order represents one delivery assignment tracked from start to completion.
// It is keyed by (DriverID, Number); starting the same number again replaces
// the prior record. The driver identity fields are a snapshot taken at
// creation time and are never re-synced.
type Order struct {
	DriverID        int64       `db:"driver_id" json:"driver_id"`
	Number          string      `db:"order_no" json:"order_no"`
	DriverEmail     string      `db:"driver_email" json:"driver_email"`
	DriverFirstName string      `db:"driver_first_name" json:"driver_first_name"`
	DriverLastName  string      `db:"driver_last_name" json:"driver_last_name"`
	DeliveryAddress string      `db:"delivery_address" json:"delivery_address"`
	EstimatedMins   int         `db:"estimated_minutes" json:"estimated_minutes"`
	DistanceMiles   float64     `db:"distance_miles" json:"distance_miles"`
	StartLocation   LatLng      `json:"start_location"`
	// EndLocation is set exactly once, at completion. Nullable in DB.
	EndLocation *LatLng     `json:"end_location,omitempty"`
	Status      OrderStatus `db:"status" json:"status"`
	CreatedAt   string      `db:"created_at" json:"created_at"`
	CompletedAt *string     `db:"completed_at" json:"completed_at,omitempty"`
}

// RouteEstimate is the distance/time pair computed before an order is started.
// It is transient: nothing is persisted until the driver starts the order.
type RouteEstimate struct {
	DistanceMiles float64 `json:"distance_miles"`
	Minutes       int     `json:"estimated_minutes"`
}
