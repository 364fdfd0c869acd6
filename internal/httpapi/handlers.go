package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"delivery-tracking/internal/auth"
	"delivery-tracking/internal/order"
	"delivery-tracking/models"
)

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	// Degraded lookups come back as an empty list; suggestions are advisory.
	suggestions, err := s.suggester.Suggest(r.Context(), r.URL.Query().Get("input"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if suggestions == nil {
		suggestions = []models.AddressSuggestion{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

func (s *Server) handleResolveSuggestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlaceID string `json:"place_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	address, loc, err := s.suggester.PlaceDetails(r.Context(), req.PlaceID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"address": address, "location": loc})
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	var req struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	est, err := s.svc.EstimateRoute(r.Context(), p.DriverID, req.Address)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, est)
}

func (s *Server) handleStartOrder(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	var req struct {
		OrderNo         string  `json:"order_no"`
		DeliveryAddress string  `json:"delivery_address"`
		EstimatedMins   int     `json:"estimated_minutes"`
		DistanceMiles   float64 `json:"distance_miles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	o, err := s.svc.Start(r.Context(), p, order.StartInput{
		Number:          req.OrderNo,
		DeliveryAddress: req.DeliveryAddress,
		Estimate:        models.RouteEstimate{Minutes: req.EstimatedMins, DistanceMiles: req.DistanceMiles},
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, o)
}

func (s *Server) handleCompleteOrder(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	if err := s.svc.Complete(r.Context(), p, r.PathValue("order_no")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	o, err := s.svc.Get(r.Context(), p, r.PathValue("order_no"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if o == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "order not found"})
		return
	}
	s.writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := s.svc.Recent(r.Context(), p, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if list == nil {
		list = []models.Order{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"orders": list})
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	u, err := order.NavigationURL(r.URL.Query().Get("platform"), r.URL.Query().Get("address"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"url": u})
}

// handleRecordLocation is the tracking collaborator's ingest path. The order
// workflow itself only ever reads these samples.
func (s *Server) handleRecordLocation(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r)
	if err != nil {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}
	var req struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	sample, err := s.locations.Record(r.Context(), p.DriverID, req.Latitude, req.Longitude)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, sample)
}
