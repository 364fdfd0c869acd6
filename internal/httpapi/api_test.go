package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-tracking/internal/order"
	"delivery-tracking/internal/places"
	"delivery-tracking/internal/testutil"
	"delivery-tracking/models"
	"delivery-tracking/repository"
)

const testSecret = "api-test-secret"

// fakeGeoService stands in for the Google Places/Geocoding endpoints.
func fakeGeoService(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/maps/api/place/autocomplete/json":
			w.Write([]byte(`{"status":"OK","predictions":[{"description":"1 Main St, Springfield","place_id":"p1"}]}`))
		case "/maps/api/place/details/json":
			w.Write([]byte(`{"status":"OK","result":{"formatted_address":"1 Main St, Springfield","geometry":{"location":{"lat":37.0,"lng":-121.0}}}}`))
		case "/maps/api/geocode/json":
			w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":37.0,"lng":-121.0}}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAPI(t *testing.T, name string) *httptest.Server {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)

	drivers := repository.NewDriverRepository(d)
	orders := repository.NewOrderRepository(d)
	locations := repository.NewLocationRepository(d)

	geo := fakeGeoService(t)
	resolver := places.New("test-key", geo.URL, nil)

	svc := order.NewService(orders, locations, drivers, resolver, nil, nil)
	api := httptest.NewServer(NewServer(nil, svc, resolver, drivers, locations, testSecret).Handler())
	t.Cleanup(api.Close)
	return api
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		testutil.Authorize(req, token)
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func getWithToken(t *testing.T, client *http.Client, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		testutil.Authorize(req, token)
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestAPI_FullDriverWorkflow(t *testing.T) {
	api := newTestAPI(t, "api_workflow")
	client := api.Client()

	// Register and sign in.
	resp := postJSON(t, client, api.URL+"/api/v1/auth/register", "", map[string]string{
		"email": "Dana@Example.com", "password": "hunter2", "first_name": "Dana", "last_name": "Reed",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, client, api.URL+"/api/v1/auth/login", "", map[string]string{
		"email": "dana@example.com", "password": "hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decode[tokenResponse](t, resp).Token
	require.NotEmpty(t, token)

	// Protected routes reject missing tokens.
	resp = getWithToken(t, client, api.URL+"/api/v1/orders", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Suggestions.
	resp = getWithToken(t, client, api.URL+"/api/v1/suggestions?input=1+main", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sugg := decode[struct {
		Suggestions []models.AddressSuggestion `json:"suggestions"`
	}](t, resp)
	require.Len(t, sugg.Suggestions, 1)
	assert.Equal(t, "p1", sugg.Suggestions[0].PlaceID)

	// Resolving a picked suggestion returns the formatted address.
	resp = postJSON(t, client, api.URL+"/api/v1/suggestions/resolve", token, map[string]string{"place_id": "p1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resolved := decode[struct {
		Address  string        `json:"address"`
		Location models.LatLng `json:"location"`
	}](t, resp)
	assert.Equal(t, "1 Main St, Springfield", resolved.Address)

	// Estimating before any location sample is a 404.
	resp = postJSON(t, client, api.URL+"/api/v1/estimate", token, map[string]string{"address": resolved.Address})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Record a position, then estimate.
	resp = postJSON(t, client, api.URL+"/api/v1/locations", token, map[string]float64{"latitude": 37.0, "longitude": -122.0})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, client, api.URL+"/api/v1/estimate", token, map[string]string{"address": resolved.Address})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	est := decode[models.RouteEstimate](t, resp)
	assert.InDelta(t, 55.3, est.DistanceMiles, 0.5)
	assert.Equal(t, 66, est.Minutes)

	// Start the order with a lowercase number.
	resp = postJSON(t, client, api.URL+"/api/v1/orders", token, map[string]any{
		"order_no": "ab12", "delivery_address": resolved.Address,
		"estimated_minutes": est.Minutes, "distance_miles": est.DistanceMiles,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	started := decode[models.Order](t, resp)
	assert.Equal(t, "AB12", started.Number)
	assert.Equal(t, models.OrderStatusPending, started.Status)

	// Complete it and read it back by the normalized key.
	resp = postJSON(t, client, api.URL+"/api/v1/orders/AB12/complete", token, struct{}{})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = getWithToken(t, client, api.URL+"/api/v1/orders/AB12", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	done := decode[models.Order](t, resp)
	assert.Equal(t, models.OrderStatusCompleted, done.Status)
	require.NotNil(t, done.EndLocation)
	require.NotNil(t, done.CompletedAt)
	createdAt, err := time.Parse(time.RFC3339Nano, done.CreatedAt)
	require.NoError(t, err)
	completedAt, err := time.Parse(time.RFC3339Nano, *done.CompletedAt)
	require.NoError(t, err)
	assert.True(t, completedAt.After(createdAt))

	// List shows the one order.
	resp = getWithToken(t, client, api.URL+"/api/v1/orders", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[struct {
		Orders []models.Order `json:"orders"`
	}](t, resp)
	require.Len(t, list.Orders, 1)

	// Navigation deep link.
	resp = getWithToken(t, client, api.URL+"/api/v1/navigate?platform=ios&address=1+Main+St", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	nav := decode[map[string]string](t, resp)
	assert.Contains(t, nav["url"], "maps.apple.com")

	resp = getWithToken(t, client, api.URL+"/api/v1/navigate?address=", token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_StartWithoutOrderNumber(t *testing.T) {
	api := newTestAPI(t, "api_validation")
	client := api.Client()

	resp := postJSON(t, client, api.URL+"/api/v1/auth/register", "", map[string]string{
		"email": "v@example.com", "password": "pw",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token := decode[tokenResponse](t, resp).Token

	resp = postJSON(t, client, api.URL+"/api/v1/orders", token, map[string]string{
		"order_no": "", "delivery_address": "1 Main St",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_DuplicateRegistration(t *testing.T) {
	api := newTestAPI(t, "api_dup_register")
	client := api.Client()

	resp := postJSON(t, client, api.URL+"/api/v1/auth/register", "", map[string]string{"email": "d@e.f", "password": "pw"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, client, api.URL+"/api/v1/auth/register", "", map[string]string{"email": "d@e.f", "password": "pw"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}
