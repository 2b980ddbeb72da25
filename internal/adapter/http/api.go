package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/climatquartier/scenario-service/internal/domain"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes what went wrong.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type zoneSummary struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Region     string           `json:"region"`
	Center     domain.LatLng    `json:"center"`
	Bounds     [2]domain.LatLng `json:"bounds"`
	Color      string           `json:"color"`
	Population int              `json:"population"`
	AreaKm2    float64          `json:"areaKm2"`
}

type impactsResponse struct {
	Zone      string                   `json:"zone"`
	Scenario  domain.ScenarioID        `json:"scenario"`
	Horizon   domain.Horizon           `json:"horizon"`
	Current   domain.Baseline          `json:"current"`
	Projected domain.Baseline          `json:"projected"`
	Impacts   domain.ProjectionImpacts `json:"impacts"`
}

type interpolateRequest struct {
	X      *float64       `json:"x"`
	Points []domain.Point `json:"points"`
}

type interpolateResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) handleListZones(w http.ResponseWriter, _ *http.Request) {
	zones := s.catalog.Zones()
	out := make([]zoneSummary, 0, len(zones))
	for _, z := range zones {
		out = append(out, zoneSummary{
			ID:         z.ID,
			Name:       z.Name,
			Region:     z.Region,
			Center:     z.Center,
			Bounds:     z.Bounds,
			Color:      z.Color,
			Population: z.Population,
			AreaKm2:    z.AreaKm2,
		})
	}
	sharedobs.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetZone(w http.ResponseWriter, r *http.Request) {
	z, err := s.catalog.Zone(strings.ToLower(r.PathValue("id")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, z)
}

func (s *Server) handleZoneImpacts(w http.ResponseWriter, r *http.Request) {
	z, err := s.catalog.Zone(strings.ToLower(r.PathValue("id")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	scenario := domain.ScenarioID(q.Get("scenario"))
	if scenario == "" {
		scenario = domain.DefaultScenario
	}
	if !domain.KnownScenario(scenario) {
		s.writeError(w, r, fmt.Errorf("%w: unknown scenario %q", domain.ErrInvalidRequest, scenario))
		return
	}
	year, err := strconv.Atoi(q.Get("horizon"))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: horizon must be one of 2030, 2050, 2100", domain.ErrInvalidRequest))
		return
	}
	horizon := domain.Horizon(year)

	projected, err := z.Baseline(scenario, horizon)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, impactsResponse{
		Zone:      z.ID,
		Scenario:  scenario,
		Horizon:   horizon,
		Current:   z.Current,
		Projected: projected,
		Impacts:   domain.ProjectImpacts(z.Current, projected),
	})
}

func (s *Server) handleListScenarios(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, domain.Scenarios())
}

func (s *Server) handleListTables(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, domain.Tables())
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req domain.ScenarioRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.simulator.Simulate(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, res)
}

func (s *Server) handleInterpolate(w http.ResponseWriter, r *http.Request) {
	var req interpolateRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.X == nil {
		s.writeError(w, r, fmt.Errorf("%w: x is required", domain.ErrInvalidRequest))
		return
	}
	table := domain.Table(req.Points)
	if err := table.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	y := table.At(*req.X)
	if math.IsInf(y, 0) || math.IsNaN(y) {
		s.writeError(w, r, fmt.Errorf("%w: interpolation at x=%g overflows", domain.ErrInvalidRequest, *req.X))
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, interpolateResponse{X: *req.X, Y: y})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %w", domain.ErrInvalidRequest, err)
	}
	return nil
}

// writeError maps domain errors onto status codes. Anything unrecognised is
// logged and reported as an internal error without its detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, domain.ErrUnknownZone):
		status, code = http.StatusNotFound, "unknown_zone"
	case errors.Is(err, domain.ErrUnknownProjection):
		status, code = http.StatusNotFound, "unknown_projection"
	case errors.Is(err, domain.ErrInvalidRequest):
		status, code = http.StatusBadRequest, "invalid_request"
	case errors.Is(err, domain.ErrInvalidTable):
		status, code = http.StatusBadRequest, "invalid_table"
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	sharedobs.WriteJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: msg}})
}
