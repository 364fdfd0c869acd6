package geo

import "math"

const (
	// EarthRadiusKm is Earth's radius in kilometers for the Haversine calculation.
	EarthRadiusKm = 6371.0
	// KmToMiles is the conversion factor from kilometers to miles.
	KmToMiles = 0.621371
	// AverageSpeedMPH is the assumed driving speed used for time estimates.
	AverageSpeedMPH = 50.0
)

// HaversineKm calculates the great-circle distance between two points
// on Earth in kilometers using the Haversine formula.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// DistanceMiles is HaversineKm converted to miles.
func DistanceMiles(lat1, lng1, lat2, lng2 float64) float64 {
	return HaversineKm(lat1, lng1, lat2, lng2) * KmToMiles
}

// EstimateMinutes converts a distance in miles into whole driving minutes at
// AverageSpeedMPH. Never returns less than 1 so very short hops still show a
// usable estimate.
func EstimateMinutes(miles float64) int {
	mins := int(math.Round(miles / AverageSpeedMPH * 60))
	if mins < 1 {
		return 1
	}
	return mins
}

// RoundMiles rounds a distance to the two-decimal precision stored on orders.
func RoundMiles(miles float64) float64 {
	return math.Round(miles*100) / 100
}
