package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Events
	r.HandleFunc("/api/events", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/events/{eventId}", deps.EventHandler.GetEvent).Methods("GET")
	r.HandleFunc("/api/events/{eventId}/availability", deps.EventHandler.SubmitAvailability).Methods("POST")

	// Results
	r.HandleFunc("/api/events/{eventId}/ranking", deps.ResultsHandler.GetRanking).Methods("GET")
	r.HandleFunc("/api/events/{eventId}/grid", deps.ResultsHandler.GetGrid).Methods("GET")
	r.HandleFunc("/api/events/{eventId}/results.csv", deps.ResultsHandler.GetResultsCsv).Methods("GET")

	// Timezones
	r.HandleFunc("/api/timezones", deps.EventHandler.GetTimezones).Methods("GET")
}
