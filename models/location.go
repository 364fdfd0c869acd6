package models

// LocationSample is a point-in-time driver position written by the tracking
// collaborator. The order workflow only ever reads the most recent sample per
// driver.
type LocationSample struct {
	ID         int64   `db:"id" json:"id"`
	DriverID   int64   `db:"driver_id" json:"driver_id"`
	Latitude   float64 `db:"latitude" json:"latitude"`
	Longitude  float64 `db:"longitude" json:"longitude"`
	RecordedAt string  `db:"recorded_at" json:"recorded_at"`
}
