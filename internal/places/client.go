// Package places wraps the Google Places/Geocoding web service behind the two
// capabilities the order workflow needs: incremental address suggestions and
// resolving an address (or picked suggestion) to coordinates.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"delivery-tracking/models"
)

// ErrResolution indicates the upstream service could not geocode the address.
// Callers surface it to the driver; the estimate flow aborts and may be retried
// with a different address.
var ErrResolution = errors.New("address could not be resolved")

const defaultBaseURL = "https://maps.googleapis.com"

// Client is an HTTP client for the Places autocomplete, place-details and
// geocoding endpoints. Suggestion lookups share one session token until a
// suggestion is resolved, matching the Places billing session model.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *zap.Logger

	mu      sync.Mutex
	session string
}

// New creates a Client. baseURL overrides the public endpoint (used in tests);
// pass "" for the default.
func New(apiKey, baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		log:        log,
	}
}

type autocompleteResponse struct {
	Status      string `json:"status"`
	Predictions []struct {
		Description string `json:"description"`
		PlaceID     string `json:"place_id"`
	} `json:"predictions"`
}

// Suggest queries autocomplete predictions for a partial address. An empty
// input returns an empty result without calling the service. Transport or
// malformed-response failures are logged and degrade to an empty result;
// suggestions are advisory and must never break the calling flow.
func (c *Client) Suggest(ctx context.Context, input string) ([]models.AddressSuggestion, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("input", input)
	q.Set("key", c.apiKey)
	q.Set("sessiontoken", c.sessionToken())

	var ar autocompleteResponse
	if err := c.getJSON(ctx, "/maps/api/place/autocomplete/json", q, &ar); err != nil {
		c.log.Warn("address suggestions unavailable", zap.Error(err))
		return nil, nil
	}
	if ar.Status != "OK" && ar.Status != "ZERO_RESULTS" {
		c.log.Warn("address suggestions rejected", zap.String("status", ar.Status))
		return nil, nil
	}

	out := make([]models.AddressSuggestion, 0, len(ar.Predictions))
	for _, p := range ar.Predictions {
		out = append(out, models.AddressSuggestion{PlaceID: p.PlaceID, Description: p.Description})
	}
	return out, nil
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
}

// PlaceDetails resolves a picked suggestion to its formatted address and
// coordinates. Consumes the current autocomplete session.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (string, models.LatLng, error) {
	if placeID == "" {
		return "", models.LatLng{}, fmt.Errorf("empty place id: %w", ErrResolution)
	}

	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("key", c.apiKey)
	q.Set("sessiontoken", c.consumeSession())

	var dr detailsResponse
	if err := c.getJSON(ctx, "/maps/api/place/details/json", q, &dr); err != nil {
		return "", models.LatLng{}, fmt.Errorf("place details: %v: %w", err, ErrResolution)
	}
	if dr.Status != "OK" {
		return "", models.LatLng{}, fmt.Errorf("place details status %s: %w", dr.Status, ErrResolution)
	}
	loc := models.LatLng{Latitude: dr.Result.Geometry.Location.Lat, Longitude: dr.Result.Geometry.Location.Lng}
	return dr.Result.FormattedAddress, loc, nil
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Resolve converts a free-text address into coordinates.
func (c *Client) Resolve(ctx context.Context, address string) (models.LatLng, error) {
	if strings.TrimSpace(address) == "" {
		return models.LatLng{}, fmt.Errorf("empty address: %w", ErrResolution)
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)

	var gr geocodeResponse
	if err := c.getJSON(ctx, "/maps/api/geocode/json", q, &gr); err != nil {
		return models.LatLng{}, fmt.Errorf("geocode: %v: %w", err, ErrResolution)
	}
	if gr.Status != "OK" || len(gr.Results) == 0 {
		return models.LatLng{}, fmt.Errorf("geocode status %s: %w", gr.Status, ErrResolution)
	}
	loc := gr.Results[0].Geometry.Location
	return models.LatLng{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// sessionToken returns the current autocomplete session token, creating one if
// needed.
func (c *Client) sessionToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == "" {
		c.session = uuid.NewString()
	}
	return c.session
}

// consumeSession returns the current session token and clears it, so the next
// suggestion lookup starts a fresh session.
func (c *Client) consumeSession() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	tok := c.session
	if tok == "" {
		tok = uuid.NewString()
	}
	c.session = ""
	return tok
}
