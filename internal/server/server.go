// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes nearby-crime lookups over HTTP.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abrookins/radar/internal/radar"
	"github.com/abrookins/radar/pkg/types"
)

// floatPattern matches signed decimal path segments; the handlers trust it
// to deliver float-worthy values.
const floatPattern = `[-+]?[0-9]*\.?[0-9]+`

// Server routes nearby-crime queries to a Finder.
type Server struct {
	finder *radar.Finder
	router *mux.Router
}

// New builds a Server over finder and registers its routes.
func New(finder *radar.Finder) *Server {
	s := &Server{finder: finder, router: mux.NewRouter()}

	s.router.HandleFunc(
		fmt.Sprintf("/crimes/near/{lat:%s}/{lng:%s}", floatPattern, floatPattern),
		s.handleNear).Methods(http.MethodGet)
	s.router.HandleFunc(
		fmt.Sprintf("/crimes/near/{lat:%s}/{lng:%s}/geojson", floatPattern, floatPattern),
		s.handleNearGeoJSON).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	return s
}

// Router returns the HTTP handler for the server.
func (s *Server) Router() http.Handler {
	return s.router
}

// nearResponse is the JSON payload for a nearby-crime query.
type nearResponse struct {
	Lat    float64        `json:"lat"`
	Lng    float64        `json:"lng"`
	Count  int            `json:"count"`
	Crimes []*types.Crime `json:"crimes"`
}

func (s *Server) handleNear(w http.ResponseWriter, r *http.Request) {
	lat, lng := pathCoordinates(r)

	crimes := radar.AllCrimes(s.finder.FindNear(lat, lng))
	if crimes == nil {
		crimes = []*types.Crime{}
	}

	writeJSON(w, nearResponse{Lat: lat, Lng: lng, Count: len(crimes), Crimes: crimes})
}

func (s *Server) handleNearGeoJSON(w http.ResponseWriter, r *http.Request) {
	lat, lng := pathCoordinates(r)

	fc := radar.ToFeatureCollection(s.finder.FindNear(lat, lng))

	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]int{
		"locations": s.finder.Locations(),
		"crimes":    s.finder.Crimes(),
	})
}

// pathCoordinates parses the lat/lng route variables. The route regex has
// already vetted their shape.
func pathCoordinates(r *http.Request) (lat, lng float64) {
	vars := mux.Vars(r)
	lat, _ = strconv.ParseFloat(vars["lat"], 64)
	lng, _ = strconv.ParseFloat(vars["lng"], 64)
	return lat, lng
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
