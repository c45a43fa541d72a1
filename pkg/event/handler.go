package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gathertime/gathertime/internal/rest"
	"github.com/gathertime/gathertime/internal/utils"
	"github.com/gathertime/gathertime/pkg/slot"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type EventDTO struct {
	Id                         string            `json:"id"`
	Name                       string            `json:"name"`
	Dates                      []string          `json:"dates"`
	StartHour                  int               `json:"startHour"`
	EndHour                    int               `json:"endHour"`
	EventTimezone              string            `json:"eventTimezone,omitempty"`
	DisableIfNeeded            bool              `json:"disableIfNeeded,omitempty"`
	IfNeededWeight             *float64          `json:"ifNeededWeight,omitempty"`
	ExpiresAt                  *time.Time        `json:"expiresAt,omitempty"`
	HideResultsUntilExpiration bool              `json:"hideResultsUntilExpiration,omitempty"`
	CreatedAt                  time.Time         `json:"createdAt"`
	ResponseCount              int               `json:"responseCount"`
	Availability               []AvailabilityDTO `json:"availability"`
}

type AvailabilityDTO struct {
	ParticipantName       string   `json:"participantName"`
	Timezone              string   `json:"timezone,omitempty"`
	Slots                 []string `json:"slots"`
	SlotsIfNeeded         []string `json:"slotsIfNeeded,omitempty"`
	OtherAvailabilityNote string   `json:"otherAvailabilityNote,omitempty"`
}

type CreateEventRequest struct {
	Name                       string     `json:"name"`
	Dates                      []string   `json:"dates"`
	StartHour                  *int       `json:"startHour"`
	EndHour                    *int       `json:"endHour"`
	EventTimezone              string     `json:"eventTimezone"`
	DisableIfNeeded            bool       `json:"disableIfNeeded"`
	IfNeededWeight             *float64   `json:"ifNeededWeight"`
	ExpiresAt                  *time.Time `json:"expiresAt"`
	HideResultsUntilExpiration bool       `json:"hideResultsUntilExpiration"`
}

type SubmitAvailabilityRequest struct {
	ParticipantName       string    `json:"participantName"`
	Timezone              string    `json:"timezone"`
	Slots                 *[]string `json:"slots"`
	SlotsIfNeeded         []string  `json:"slotsIfNeeded"`
	OtherAvailabilityNote string    `json:"otherAvailabilityNote"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Create a new event with an empty availability list
// @Tags Event
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event"
// @Success 201 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid input"
// @Failure 503 {object} rest.ErrorResponse "Storage unavailable"
// @Router /api/events [post]
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating event")
	var request CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if request.StartHour == nil || request.EndHour == nil {
		rest.WriteError(w, http.StatusBadRequest, "Missing required fields", "startHour and endHour are required")
		return
	}

	created, err := h.service.CreateEvent(r.Context(), NewEvent{
		Name:                       request.Name,
		Dates:                      request.Dates,
		StartHour:                  *request.StartHour,
		EndHour:                    *request.EndHour,
		Timezone:                   request.EventTimezone,
		DisableIfNeeded:            request.DisableIfNeeded,
		IfNeededWeight:             request.IfNeededWeight,
		ExpiresAt:                  request.ExpiresAt,
		HideResultsUntilExpiration: request.HideResultsUntilExpiration,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, EventToDTO(created))
}

// GetEvent godoc
// @Summary Get an event
// @Description Get an event with every participant's availability
// @Tags Event
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} EventDTO
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Failure 503 {object} rest.ErrorResponse "Storage unavailable"
// @Router /api/events/{eventId} [get]
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	e, err := h.service.GetEvent(r.Context(), eventId)
	if err != nil {
		WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.present(e, ""))
}

// SubmitAvailability godoc
// @Summary Submit availability
// @Description Store a participant's marks, replacing an earlier response under the same name
// @Tags Event
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param availability body SubmitAvailabilityRequest true "Availability"
// @Success 200 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid input"
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Failure 410 {object} rest.ErrorResponse "Event expired"
// @Failure 503 {object} rest.ErrorResponse "Storage unavailable"
// @Router /api/events/{eventId}/availability [post]
func (h *Handler) SubmitAvailability(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	var request SubmitAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if request.ParticipantName == "" || request.Slots == nil {
		rest.WriteError(w, http.StatusBadRequest, "Missing required fields", "participantName and slots are required")
		return
	}

	updated, err := h.service.SubmitAvailability(r.Context(), eventId, Availability{
		ParticipantName:       request.ParticipantName,
		Timezone:              request.Timezone,
		Slots:                 *request.Slots,
		SlotsIfNeeded:         request.SlotsIfNeeded,
		OtherAvailabilityNote: request.OtherAvailabilityNote,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.present(updated, strings.TrimSpace(request.ParticipantName)))
}

// GetTimezones godoc
// @Summary List timezones
// @Description Curated timezone options; the caller's zone is listed first when missing
// @Tags Event
// @Produce json
// @Param current query string false "Caller's IANA timezone"
// @Success 200 {array} slot.TimezoneOption
// @Router /api/timezones [get]
func (h *Handler) GetTimezones(w http.ResponseWriter, r *http.Request) {
	current := r.URL.Query().Get("current")
	rest.WriteJSON(w, http.StatusOK, slot.TimezoneOptions(h.clock.Now(), current))
}

// present hides other participants' responses while results are hidden.
func (h *Handler) present(e EventWithAvailability, own string) EventDTO {
	dto := EventToDTO(e)
	if e.ResultsVisible(h.clock.Now()) {
		return dto
	}
	visible := make([]AvailabilityDTO, 0, 1)
	for _, a := range dto.Availability {
		if own != "" && a.ParticipantName == own {
			visible = append(visible, a)
		}
	}
	dto.Availability = visible
	return dto
}

// WriteError maps service errors to HTTP responses.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		rest.WriteError(w, http.StatusBadRequest, "Invalid input", err.Error())
	case errors.Is(err, ErrEventNotFound):
		rest.WriteError(w, http.StatusNotFound, "Event not found", "")
	case errors.Is(err, ErrEventExpired):
		rest.WriteError(w, http.StatusGone, "Event expired", "The event no longer accepts responses")
	case errors.Is(err, ErrStorageUnavailable):
		log.Errorf("storage unavailable: %v", err)
		w.Header().Set("Retry-After", "5")
		rest.WriteError(w, http.StatusServiceUnavailable, "Storage unavailable", "Please try again later")
	default:
		log.Errorf("unexpected error: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Internal error", "")
	}
}

func EventToDTO(e EventWithAvailability) EventDTO {
	dto := EventDTO{
		Id:                         e.Id,
		Name:                       e.Name,
		Dates:                      e.Dates,
		StartHour:                  e.StartHour,
		EndHour:                    e.EndHour,
		EventTimezone:              e.Timezone,
		DisableIfNeeded:            e.DisableIfNeeded,
		IfNeededWeight:             e.IfNeededWeight,
		ExpiresAt:                  e.ExpiresAt,
		HideResultsUntilExpiration: e.HideResultsUntilExpiration,
		CreatedAt:                  e.CreatedAt,
		ResponseCount:              len(e.Availability),
		Availability:               make([]AvailabilityDTO, 0, len(e.Availability)),
	}
	for _, a := range e.Availability {
		dto.Availability = append(dto.Availability, AvailabilityDTO{
			ParticipantName:       a.ParticipantName,
			Timezone:              a.Timezone,
			Slots:                 nonNil(a.Slots),
			SlotsIfNeeded:         a.SlotsIfNeeded,
			OtherAvailabilityNote: a.OtherAvailabilityNote,
		})
	}
	return dto
}
