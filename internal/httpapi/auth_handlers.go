package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"delivery-tracking/internal/auth"
)

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email and password are required"})
		return
	}

	existing, err := s.drivers.GetByEmail(r.Context(), email)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if existing != nil {
		s.writeJSON(w, http.StatusConflict, errorResponse{Error: "email already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	drv, err := s.drivers.Create(r.Context(), email, hash, req.FirstName, req.LastName)
	if err != nil {
		s.writeError(w, err)
		return
	}

	token, err := auth.GenerateToken(s.jwtSecret, drv.ID, drv.Email)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info("driver registered", zap.Int64("driver_id", drv.ID))
	s.writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	drv, err := s.drivers.GetByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if drv == nil || !auth.CheckPassword(req.Password, drv.PasswordHash) {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(s.jwtSecret, drv.ID, drv.Email)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
