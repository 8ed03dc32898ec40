package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"carrier-dispatch-service/internal/api/dto"
	"carrier-dispatch-service/internal/domain"
	"carrier-dispatch-service/internal/services"

	"github.com/shopspring/decimal"
)

type PayHandler struct{}

// Estimate computes per-driver and total estimated pay for display while
// the user is still editing. Bounds are checked the same way submission
// validation checks them, so the preview never shows a figure submission
// would reject.
func (h *PayHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req dto.PayEstimateRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	metrics, err := toMetrics(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	charges, err := toDriverCharges(req.Drivers)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	for _, c := range charges {
		if err := c.CheckBounds(); err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	resp := dto.PayEstimateResponse{Drivers: []dto.DriverPayResponse{}}
	for _, c := range charges {
		pay := domain.RoundCents(services.DriverPay(c, metrics))
		resp.Drivers = append(resp.Drivers, dto.DriverPayResponse{
			DriverID:  c.DriverID,
			Pay:       pay.String(),
			Formatted: domain.FormatUSD(pay),
		})
	}

	total := domain.RoundCents(services.TotalPay(charges, metrics))
	resp.Total = total.String()
	resp.TotalFormatted = domain.FormatUSD(total)

	writeJSON(w, r, http.StatusOK, resp)
}

func toMetrics(req dto.PayEstimateRequest) (domain.LegMetrics, error) {
	var metrics domain.LegMetrics

	parse := func(s, field string) (decimal.Decimal, error) {
		if s == "" {
			return decimal.Zero, nil
		}
		v, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid %s %q", field, s)
		}
		return v, nil
	}

	var err error
	if metrics.DistanceMiles, err = parse(req.DistanceMiles, "distance_miles"); err != nil {
		return metrics, err
	}
	if metrics.DurationHours, err = parse(req.DurationHours, "duration_hours"); err != nil {
		return metrics, err
	}
	if metrics.LoadRate, err = parse(req.LoadRate, "load_rate"); err != nil {
		return metrics, err
	}
	if req.BilledLoadRate != nil {
		billed, err := parse(*req.BilledLoadRate, "billed_load_rate")
		if err != nil {
			return metrics, err
		}
		metrics.BilledLoadRate = &billed
	}

	return metrics, nil
}
