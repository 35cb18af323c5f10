package handler

import (
	"encoding/json"
	"net/http"
)

// geocodeRequest is the POST /api/locations/geocode body.
type geocodeRequest struct {
	Address string `json:"address"`
}

// GeocodeLocation handles POST /api/locations/geocode.
func (s *Server) GeocodeLocation(w http.ResponseWriter, r *http.Request) {
	var req geocodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	loc, err := s.locations.Geocode(r.Context(), req.Address)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, loc)
}
