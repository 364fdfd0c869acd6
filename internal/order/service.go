// Package order implements the delivery-order lifecycle: estimating a route to
// a destination address, starting an order, and completing it. Each operation
// takes the caller's identity explicitly; nothing is read from ambient state.
package order

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"delivery-tracking/internal/auth"
	"delivery-tracking/internal/events"
	"delivery-tracking/internal/geo"
	"delivery-tracking/models"
	"delivery-tracking/repository"
)

// ErrValidation indicates a missing required input (order number, address,
// authentication). No side effect has occurred when it is returned.
var ErrValidation = errors.New("validation failed")

// Fallback profile values when the driver has no stored profile.
// A missing profile never blocks order creation.
const (
	fallbackFirstName = "Unknown"
	fallbackLastName  = "User"
)

// Resolver converts addresses into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, address string) (models.LatLng, error)
}

// LocationSource reads the driver's most recent recorded position.
type LocationSource interface {
	Latest(ctx context.Context, driverID int64) (*models.LocationSample, error)
}

// ProfileSource reads driver profile snapshots.
type ProfileSource interface {
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
}

// Service orchestrates the order lifecycle against the record store, the
// address resolver and the location source.
type Service struct {
	orders    repository.OrderRepositoryI
	locations LocationSource
	drivers   ProfileSource
	resolver  Resolver
	events    *events.Publisher
	log       *zap.Logger
}

func NewService(orders repository.OrderRepositoryI, locations LocationSource, drivers ProfileSource, resolver Resolver, ev *events.Publisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{orders: orders, locations: locations, drivers: drivers, resolver: resolver, events: ev, log: log}
}

// StartInput carries the driver-supplied fields for starting an order.
type StartInput struct {
	Number          string
	DeliveryAddress string
	Estimate        models.RouteEstimate
}

// EstimateRoute resolves the destination address and computes distance and
// driving time from the driver's last known position. It never proceeds with a
// stale or default position: an unknown position aborts the estimate.
func (s *Service) EstimateRoute(ctx context.Context, driverID int64, address string) (*models.RouteEstimate, error) {
	if driverID == 0 {
		return nil, fmt.Errorf("not authenticated: %w", ErrValidation)
	}
	if strings.TrimSpace(address) == "" {
		return nil, fmt.Errorf("delivery address is required: %w", ErrValidation)
	}

	dest, err := s.resolver.Resolve(ctx, address)
	if err != nil {
		return nil, err
	}

	pos, err := s.locations.Latest(ctx, driverID)
	if err != nil {
		return nil, err
	}

	miles := geo.DistanceMiles(pos.Latitude, pos.Longitude, dest.Latitude, dest.Longitude)
	return &models.RouteEstimate{
		DistanceMiles: geo.RoundMiles(miles),
		Minutes:       geo.EstimateMinutes(miles),
	}, nil
}

// Start validates the inputs, captures the driver's current position and
// identity snapshot, and writes the order with status pending. Re-starting the
// same order number replaces the prior record; last write wins.
func (s *Service) Start(ctx context.Context, p *auth.Principal, in StartInput) (*models.Order, error) {
	if p == nil || p.DriverID == 0 {
		return nil, fmt.Errorf("not authenticated: %w", ErrValidation)
	}
	number := strings.ToUpper(strings.TrimSpace(in.Number))
	if number == "" {
		return nil, fmt.Errorf("order number is required: %w", ErrValidation)
	}
	if strings.TrimSpace(in.DeliveryAddress) == "" {
		return nil, fmt.Errorf("delivery address is required: %w", ErrValidation)
	}

	firstName, lastName := s.profileNames(ctx, p.DriverID)

	pos, err := s.locations.Latest(ctx, p.DriverID)
	if err != nil {
		return nil, err
	}

	o := &models.Order{
		DriverID:        p.DriverID,
		Number:          number,
		DriverEmail:     p.Email,
		DriverFirstName: firstName,
		DriverLastName:  lastName,
		DeliveryAddress: in.DeliveryAddress,
		EstimatedMins:   in.Estimate.Minutes,
		DistanceMiles:   in.Estimate.DistanceMiles,
		StartLocation:   models.LatLng{Latitude: pos.Latitude, Longitude: pos.Longitude},
		Status:          models.OrderStatusPending,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339Nano),
	}
	if _, err := s.orders.Put(ctx, o); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	if err := s.events.OrderStarted(ctx, o); err != nil {
		s.log.Warn("publish order.started failed", zap.String("order_no", number), zap.Error(err))
	}
	s.log.Info("order started",
		zap.Int64("driver_id", p.DriverID),
		zap.String("order_no", number),
		zap.Float64("distance_miles", o.DistanceMiles),
		zap.Int("estimated_minutes", o.EstimatedMins))
	return o, nil
}

// Complete marks the order as completed with the driver's current position.
// Completing a number that was never started is a store-level no-op and still
// reports success; the backing update simply matches zero rows.
func (s *Service) Complete(ctx context.Context, p *auth.Principal, orderNo string) error {
	if p == nil || p.DriverID == 0 {
		return fmt.Errorf("not authenticated: %w", ErrValidation)
	}
	number := strings.ToUpper(strings.TrimSpace(orderNo))
	if number == "" {
		return fmt.Errorf("order number is required: %w", ErrValidation)
	}

	pos, err := s.locations.Latest(ctx, p.DriverID)
	if err != nil {
		return err
	}

	end := models.LatLng{Latitude: pos.Latitude, Longitude: pos.Longitude}
	completedAt := time.Now().UTC().Format(time.RFC3339Nano)
	if err := s.orders.Complete(ctx, p.DriverID, number, end, completedAt); err != nil {
		return fmt.Errorf("complete order: %w", err)
	}

	if err := s.events.OrderCompleted(ctx, p.DriverID, number, end, completedAt); err != nil {
		s.log.Warn("publish order.completed failed", zap.String("order_no", number), zap.Error(err))
	}
	s.log.Info("order completed", zap.Int64("driver_id", p.DriverID), zap.String("order_no", number))
	return nil
}

// Get fetches one of the caller's orders by number. Returns nil when absent.
func (s *Service) Get(ctx context.Context, p *auth.Principal, orderNo string) (*models.Order, error) {
	if p == nil || p.DriverID == 0 {
		return nil, fmt.Errorf("not authenticated: %w", ErrValidation)
	}
	number := strings.ToUpper(strings.TrimSpace(orderNo))
	if number == "" {
		return nil, fmt.Errorf("order number is required: %w", ErrValidation)
	}
	return s.orders.GetByKey(ctx, p.DriverID, number)
}

// Recent lists the caller's most recent orders, newest first.
func (s *Service) Recent(ctx context.Context, p *auth.Principal, limit int) ([]models.Order, error) {
	if p == nil || p.DriverID == 0 {
		return nil, fmt.Errorf("not authenticated: %w", ErrValidation)
	}
	return s.orders.ListRecentByDriver(ctx, p.DriverID, limit)
}

// NavigationURL builds the platform map deep link for the delivery address.
// It is out-of-band convenience; nothing about it is persisted.
func NavigationURL(platform, deliveryAddress string) (string, error) {
	if strings.TrimSpace(deliveryAddress) == "" {
		return "", fmt.Errorf("delivery address is required: %w", ErrValidation)
	}
	base := "http://maps.google.com/?daddr="
	if strings.EqualFold(platform, "ios") {
		base = "http://maps.apple.com/?daddr="
	}
	return base + url.QueryEscape(deliveryAddress), nil
}

// profileNames looks the driver's profile up once at creation time. Absent or
// unreadable profiles fall back to placeholder names.
func (s *Service) profileNames(ctx context.Context, driverID int64) (string, string) {
	drv, err := s.drivers.GetByID(ctx, driverID)
	if err != nil {
		s.log.Warn("driver profile lookup failed", zap.Int64("driver_id", driverID), zap.Error(err))
		return fallbackFirstName, fallbackLastName
	}
	if drv == nil {
		return fallbackFirstName, fallbackLastName
	}
	first, last := drv.FirstName, drv.LastName
	if first == "" {
		first = fallbackFirstName
	}
	if last == "" {
		last = fallbackLastName
	}
	return first, last
}
