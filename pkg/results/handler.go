package results

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gathertime/gathertime/internal/rest"
	"github.com/gathertime/gathertime/pkg/event"
	"github.com/gathertime/gathertime/pkg/ranking"
	"github.com/gathertime/gathertime/pkg/slot"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type RankingDTO struct {
	EventId           string          `json:"eventId"`
	Timezone          string          `json:"timezone,omitempty"`
	IfNeededWeight    float64         `json:"ifNeededWeight"`
	TotalParticipants int             `json:"totalParticipants"`
	Slots             []RankedSlotDTO `json:"slots"`
}

type RankedSlotDTO struct {
	Slot           string  `json:"slot"`
	Label          string  `json:"label"`
	Score          float64 `json:"score"`
	GreatCount     int     `json:"greatCount"`
	IfNeededCount  int     `json:"ifNeededCount"`
	AvailableCount int     `json:"availableCount"`
}

type GridDTO struct {
	Mode        string        `json:"mode"`
	Timezone    string        `json:"timezone,omitempty"`
	Dates       []string      `json:"dates"`
	DateHeaders []string      `json:"dateHeaders"`
	Hours       []int         `json:"hours"`
	HourLabels  []string      `json:"hourLabels"`
	Input       *InputGridDTO `json:"input,omitempty"`
	View        *ViewGridDTO  `json:"view,omitempty"`
}

type InputGridDTO struct {
	ParticipantName string         `json:"participantName"`
	Cells           []InputCellDTO `json:"cells"`
}

type InputCellDTO struct {
	Slot            string `json:"slot"`
	Label           string `json:"label"`
	Mark            string `json:"mark"`
	OthersAvailable int    `json:"othersAvailable"`
}

type ViewGridDTO struct {
	Participants []string      `json:"participants"`
	Cells        []ViewCellDTO `json:"cells"`
}

type ViewCellDTO struct {
	Slot          string   `json:"slot"`
	Label         string   `json:"label"`
	Great         []string `json:"great"`
	IfNeeded      []string `json:"ifNeeded"`
	GreatCount    int      `json:"greatCount"`
	IfNeededCount int      `json:"ifNeededCount"`
	Score         float64  `json:"score"`
	Heat          float64  `json:"heat"`
}

type Handler struct {
	service     Service
	defaultTopN int
}

func NewHandler(service Service, defaultTopN int) *Handler {
	return &Handler{service: service, defaultTopN: defaultTopN}
}

// GetRanking godoc
// @Summary Get the best slots
// @Description Rank the event's slots by weighted availability
// @Tags Results
// @Produce json
// @Param eventId path string true "Event ID"
// @Param top query int false "Number of slots to return"
// @Param tz query string false "Viewer's IANA timezone used for labels"
// @Success 200 {object} RankingDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid input"
// @Failure 403 {object} rest.ErrorResponse "Results hidden until the event expires"
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Router /api/events/{eventId}/ranking [get]
func (h *Handler) GetRanking(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	topN := h.defaultTopN
	if topString := r.URL.Query().Get("top"); topString != "" {
		top, err := strconv.Atoi(topString)
		if err != nil || top < 0 {
			rest.WriteError(w, http.StatusBadRequest, "Invalid top", "top must be a non-negative integer")
			return
		}
		topN = top
	}
	viewerZone, ok := viewerTimezone(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetRanking(r.Context(), eventId, topN)
	if err != nil {
		writeError(w, err)
		return
	}

	dto := RankingDTO{
		EventId:           result.Event.Id,
		Timezone:          labelZone(result.Event, viewerZone),
		IfNeededWeight:    result.IfNeededWeight,
		TotalParticipants: result.Participants,
		Slots:             make([]RankedSlotDTO, 0, len(result.Slots)),
	}
	for _, s := range result.Slots {
		dto.Slots = append(dto.Slots, RankedSlotDTO{
			Slot:           s.Slot.String(),
			Label:          slot.LabelOrRaw(s.Slot, result.Event.Timezone, viewerZone),
			Score:          s.Score,
			GreatCount:     s.GreatCount,
			IfNeededCount:  s.IfNeededCount,
			AvailableCount: s.AvailableCount,
		})
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

// GetGrid godoc
// @Summary Get the availability grid
// @Description Render the group view or one participant's input grid
// @Tags Results
// @Produce json
// @Param eventId path string true "Event ID"
// @Param mode query string false "view (default) or input"
// @Param participant query string false "Participant name, input mode only"
// @Param tz query string false "Viewer's IANA timezone used for labels"
// @Success 200 {object} GridDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid input"
// @Failure 403 {object} rest.ErrorResponse "Results hidden until the event expires"
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Router /api/events/{eventId}/grid [get]
func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	modeString := r.URL.Query().Get("mode")
	if modeString == "" {
		modeString = string(ranking.ModeView)
	}
	mode, err := ranking.ParseMode(modeString)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid mode", "mode must be view or input")
		return
	}
	participant := r.URL.Query().Get("participant")
	if mode == ranking.ModeInput && participant == "" {
		rest.WriteError(w, http.StatusBadRequest, "Missing participant", "participant is required in input mode")
		return
	}
	viewerZone, ok := viewerTimezone(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetGrid(r.Context(), eventId, ranking.GridOptions{Mode: mode, Participant: participant})
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, gridToDTO(view, viewerZone))
}

// GetResultsCsv godoc
// @Summary Export results
// @Description Every slot against every participant as CSV
// @Tags Results
// @Produce text/csv
// @Param eventId path string true "Event ID"
// @Param tz query string false "Viewer's IANA timezone used for labels"
// @Success 200 {string} string "CSV"
// @Failure 403 {object} rest.ErrorResponse "Results hidden until the event expires"
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Router /api/events/{eventId}/results.csv [get]
func (h *Handler) GetResultsCsv(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	viewerZone, ok := viewerTimezone(w, r)
	if !ok {
		return
	}
	csv, err := h.service.ExportCsv(r.Context(), eventId, viewerZone)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="results.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write csv: %v", err)
	}
}

func gridToDTO(view GridView, viewerZone string) GridDTO {
	grid := view.Grid
	dto := GridDTO{
		Mode:        string(grid.Mode),
		Timezone:    labelZone(view.Event, viewerZone),
		Dates:       grid.Dates,
		DateHeaders: make([]string, 0, len(grid.Dates)),
		Hours:       grid.Hours,
		HourLabels:  make([]string, 0, len(grid.Hours)),
	}
	for _, d := range grid.Dates {
		dto.DateHeaders = append(dto.DateHeaders, slot.DateHeader(d))
	}
	for _, hour := range grid.Hours {
		dto.HourLabels = append(dto.HourLabels, slot.HourLabel(hour))
	}
	label := func(s slot.Slot) string {
		return slot.LabelOrRaw(s, view.Event.Timezone, viewerZone)
	}

	switch grid.Mode {
	case ranking.ModeInput:
		input := &InputGridDTO{
			ParticipantName: grid.Input.ParticipantName,
			Cells:           make([]InputCellDTO, 0, len(grid.Input.Cells)),
		}
		for _, cell := range grid.Input.Cells {
			input.Cells = append(input.Cells, InputCellDTO{
				Slot:            cell.Slot.String(),
				Label:           label(cell.Slot),
				Mark:            string(cell.Mark),
				OthersAvailable: cell.OthersAvailable,
			})
		}
		dto.Input = input
	case ranking.ModeView:
		v := &ViewGridDTO{
			Participants: grid.View.Participants,
			Cells:        make([]ViewCellDTO, 0, len(grid.View.Cells)),
		}
		for _, cell := range grid.View.Cells {
			v.Cells = append(v.Cells, ViewCellDTO{
				Slot:          cell.Slot.String(),
				Label:         label(cell.Slot),
				Great:         cell.Great,
				IfNeeded:      cell.IfNeeded,
				GreatCount:    len(cell.Great),
				IfNeededCount: len(cell.IfNeeded),
				Score:         cell.Score,
				Heat:          cell.Heat,
			})
		}
		dto.View = v
	}
	return dto
}

// viewerTimezone reads the optional tz parameter, answering 400 when it is not a known zone.
func viewerTimezone(w http.ResponseWriter, r *http.Request) (string, bool) {
	tz := r.URL.Query().Get("tz")
	if tz == "" {
		return "", true
	}
	if _, err := slot.LoadLocation(tz); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid timezone", err.Error())
		return "", false
	}
	return tz, true
}

// labelZone is the zone labels are rendered in; empty for timezone-naive events.
func labelZone(e event.Event, viewerZone string) string {
	if e.Timezone == "" {
		return ""
	}
	if viewerZone == "" {
		return e.Timezone
	}
	return viewerZone
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrResultsHidden):
		rest.WriteError(w, http.StatusForbidden, "Results hidden", "Results are shown once the event expires")
	case errors.Is(err, ranking.ErrUnknownMode):
		rest.WriteError(w, http.StatusBadRequest, "Invalid mode", err.Error())
	default:
		event.WriteError(w, err)
	}
}
