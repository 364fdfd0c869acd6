package repository

import (
	"context"
	"errors"
	"testing"

	"delivery-tracking/internal/db"
)

func TestLocationRepository_LatestPicksMostRecent(t *testing.T) {
	d, err := db.Open("file:locrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	ctx := context.Background()
	drivers := NewDriverRepository(d)
	locations := NewLocationRepository(d)

	drv, err := drivers.Create(ctx, "loc@b.c", "hash", "", "")
	if err != nil {
		t.Fatalf("create driver: %v", err)
	}

	if _, err := locations.Record(ctx, drv.ID, 37.0, -122.0); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := locations.Record(ctx, drv.ID, 37.5, -122.5); err != nil {
		t.Fatalf("record: %v", err)
	}

	s, err := locations.Latest(ctx, drv.ID)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if s.Latitude != 37.5 || s.Longitude != -122.5 {
		t.Fatalf("expected most recent sample, got %+v", s)
	}
}

func TestLocationRepository_LatestNoSamples(t *testing.T) {
	d, err := db.Open("file:locrepo_empty?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	locations := NewLocationRepository(d)
	_, err = locations.Latest(context.Background(), 12345)
	if !errors.Is(err, ErrNoLocation) {
		t.Fatalf("expected ErrNoLocation, got %v", err)
	}
}
