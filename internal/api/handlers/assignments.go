package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"carrier-dispatch-service/internal/api/dto"
	"carrier-dispatch-service/internal/domain"
	"carrier-dispatch-service/internal/ports"
	"carrier-dispatch-service/internal/services"

	"github.com/shopspring/decimal"
)

type AssignmentHandler struct {
	Store     ports.RouteLegStore
	Events    ports.EventPublisher
	Loads     ports.LoadRepository
	Locations ports.LocationRepository
	Drafts    ports.DraftSessionStore
}

// Create runs a full assignment session for a new leg: decode, build the
// draft through the engine, submit, and return the updated route.
func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	loadID := r.PathValue("id")

	req, ok := decodeAssignment(w, r)
	if !ok {
		return
	}

	assignment := services.NewAssignment(h.Store, h.Events, loadID)
	h.runSubmit(w, r, assignment, loadID, req)
}

// Update re-submits an existing leg with the edited draft.
func (h *AssignmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	legID := r.PathValue("id")
	loadID := r.URL.Query().Get("loadId")
	if loadID == "" {
		writeError(w, r, http.StatusBadRequest, "loadId query parameter is required")
		return
	}

	req, ok := decodeAssignment(w, r)
	if !ok {
		return
	}

	assignment := services.RestoreAssignment(h.Store, h.Events, loadID, legID, nil)
	h.runSubmit(w, r, assignment, loadID, req)
}

func (h *AssignmentHandler) runSubmit(w http.ResponseWriter, r *http.Request, assignment *services.Assignment, loadID string, req dto.AssignmentRequest) {
	ctx := r.Context()

	charges, err := toDriverCharges(req.Drivers)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	locations, err := h.resolveLocations(r, loadID, req.Locations)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	scheduledDate, err := parseDate(req.ScheduledDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	_ = assignment.SetDrivers(charges)
	_ = assignment.SetLocations(locations)
	_ = assignment.SetSchedule(scheduledDate, req.ScheduledTime)
	_ = assignment.SetInstructions(req.DriverInstructions)
	_ = assignment.SetSendSMS(req.SendSMS)

	route, err := assignment.Submit(ctx)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.stashDraft(ctx, assignment)
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrSubmitInFlight):
			writeError(w, r, http.StatusConflict, err.Error())
		default:
			log.Printf("assignment submit failed: %v", err)
			writeError(w, r, http.StatusBadGateway, "could not save assignment")
		}
		return
	}

	// The commit makes the saved draft stale; drop it best effort.
	if h.Drafts != nil {
		if err := h.Drafts.DeleteDraft(ctx, assignment.SessionKey()); err != nil {
			log.Printf("discard draft after commit: %v", err)
		}
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(route))
}

// stashDraft keeps a rejected draft so the session can be resumed later.
func (h *AssignmentHandler) stashDraft(ctx context.Context, assignment *services.Assignment) {
	if h.Drafts == nil {
		return
	}
	if err := h.Drafts.SaveDraft(ctx, assignment.SessionKey(), assignment.Draft()); err != nil {
		log.Printf("stash draft: %v", err)
	}
}

// NewLegDraft returns the stashed draft for a new-leg session on the load.
func (h *AssignmentHandler) NewLegDraft(w http.ResponseWriter, r *http.Request) {
	h.serveDraft(w, r, services.SessionKey(r.PathValue("id"), ""))
}

// LegDraft returns the stashed draft for an existing-leg edit session.
func (h *AssignmentHandler) LegDraft(w http.ResponseWriter, r *http.Request) {
	loadID := r.URL.Query().Get("loadId")
	if loadID == "" {
		writeError(w, r, http.StatusBadRequest, "loadId query parameter is required")
		return
	}
	h.serveDraft(w, r, services.SessionKey(loadID, r.PathValue("id")))
}

func (h *AssignmentHandler) serveDraft(w http.ResponseWriter, r *http.Request, sessionKey string) {
	if h.Drafts == nil {
		writeError(w, r, http.StatusNotFound, "no draft saved for this session")
		return
	}

	draft, err := h.Drafts.LoadDraft(r.Context(), sessionKey)
	if err != nil {
		log.Printf("load draft %s: %v", sessionKey, err)
		writeError(w, r, http.StatusBadGateway, "could not load draft")
		return
	}
	if draft == nil {
		writeError(w, r, http.StatusNotFound, "no draft saved for this session")
		return
	}

	writeJSON(w, r, http.StatusOK, toDraftResponse(draft))
}

func toDraftResponse(d *domain.RouteLegDraft) dto.DraftResponse {
	resp := dto.DraftResponse{
		Drivers:            []dto.DriverChargeRequest{},
		Locations:          []dto.LegLocationResponse{},
		ScheduledTime:      d.ScheduledTime,
		DriverInstructions: d.DriverInstructions,
		SendSMS:            d.SendSMS,
	}
	if !d.ScheduledDate.IsZero() {
		resp.ScheduledDate = d.ScheduledDate.Format("2006-01-02")
	}
	for _, c := range d.Drivers {
		charge := dto.DriverChargeRequest{DriverID: c.DriverID}
		if c.ChargeType != nil {
			s := string(*c.ChargeType)
			charge.ChargeType = &s
		}
		if c.ChargeValue != nil {
			s := c.ChargeValue.String()
			charge.ChargeValue = &s
		}
		resp.Drivers = append(resp.Drivers, charge)
	}
	for _, loc := range d.Locations {
		resp.Locations = append(resp.Locations, dto.LegLocationResponse{
			Kind: string(loc.Kind),
			ID:   loc.LocationID(),
			Name: loc.DisplayName(),
		})
	}
	return resp
}

// resolveLocations maps id references onto the load's candidate set, so a
// request cannot attach a stop that is not selectable for this load.
func (h *AssignmentHandler) resolveLocations(r *http.Request, loadID string, reqs []dto.LegLocationRequest) ([]domain.LegLocation, error) {
	ctx := r.Context()

	load, err := h.Loads.GetLoad(ctx, loadID)
	if err != nil {
		return nil, fmt.Errorf("load %q not found", loadID)
	}

	byID := make(map[string]domain.LegLocation)
	for _, candidate := range services.BuildCandidateSet(load.CanonicalStops(), nil) {
		byID[candidate.LocationID()] = candidate
	}

	book, err := h.Locations.ListLocations(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	for _, loc := range book {
		if _, ok := byID[loc.ID]; !ok {
			byID[loc.ID] = domain.FromLocation(*loc)
		}
	}

	resolved := make([]domain.LegLocation, 0, len(reqs))
	for _, ref := range reqs {
		loc, ok := byID[ref.ID]
		if !ok {
			return nil, fmt.Errorf("unknown location %q", ref.ID)
		}
		resolved = append(resolved, loc)
	}
	return resolved, nil
}

func decodeAssignment(w http.ResponseWriter, r *http.Request) (dto.AssignmentRequest, bool) {
	var req dto.AssignmentRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return req, false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return req, false
	}

	return req, true
}

func toDriverCharges(reqs []dto.DriverChargeRequest) ([]domain.DriverCharge, error) {
	charges := make([]domain.DriverCharge, 0, len(reqs))
	for _, d := range reqs {
		charge := domain.DriverCharge{DriverID: d.DriverID}

		if d.ChargeType != nil {
			ct, err := domain.ParseChargeType(*d.ChargeType)
			if err != nil {
				return nil, fmt.Errorf("driver %q: %w", d.DriverID, err)
			}
			charge.ChargeType = &ct
		}
		if d.ChargeValue != nil {
			v, err := decimal.NewFromString(*d.ChargeValue)
			if err != nil {
				return nil, fmt.Errorf("driver %q: invalid charge value %q", d.DriverID, *d.ChargeValue)
			}
			charge.ChargeValue = &v
		}

		charges = append(charges, charge)
	}
	return charges, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid scheduled_date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

func toRouteResponse(route *domain.Route) dto.RouteResponse {
	resp := dto.RouteResponse{ID: route.ID, LoadID: route.LoadID, Legs: []dto.RouteLegResponse{}}

	for _, leg := range route.Legs {
		legResp := dto.RouteLegResponse{
			ID:                 leg.ID,
			ScheduledDate:      leg.ScheduledDate,
			ScheduledTime:      leg.ScheduledTime,
			DriverInstructions: leg.DriverInstructions,
			DriverAssignments:  []dto.DriverAssignmentResponse{},
			Locations:          []dto.LegLocationResponse{},
		}
		for _, da := range leg.DriverAssignments {
			ar := dto.DriverAssignmentResponse{DriverID: da.DriverID}
			if da.Driver != nil {
				ar.DriverName = da.Driver.Name
			}
			if da.ChargeType != nil {
				s := string(*da.ChargeType)
				ar.ChargeType = &s
			}
			if da.ChargeValue != nil {
				s := da.ChargeValue.String()
				ar.ChargeValue = &s
			}
			legResp.DriverAssignments = append(legResp.DriverAssignments, ar)
		}
		for _, loc := range leg.Locations {
			legResp.Locations = append(legResp.Locations, dto.LegLocationResponse{
				Kind: string(loc.Kind),
				ID:   loc.LocationID(),
				Name: loc.DisplayName(),
			})
		}
		resp.Legs = append(resp.Legs, legResp)
	}

	return resp
}
