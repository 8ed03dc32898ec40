package handlers

import (
	"log"
	"net/http"

	"carrier-dispatch-service/internal/api/dto"
	"carrier-dispatch-service/internal/ports"

	"github.com/shopspring/decimal"
)

// DriverHandler exposes read-only roster retrieval endpoints.
type DriverHandler struct {
	Repo ports.DriverRepository
}

func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.Repo.ListDrivers(r.Context())
	if err != nil {
		log.Printf("list drivers failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDriversResponse{
		Drivers: make([]dto.DriverResponse, 0, len(drivers)),
	}
	for _, d := range drivers {
		entry := dto.DriverResponse{
			ID:              d.ID,
			Name:            d.Name,
			Phone:           d.Phone,
			PerMileRate:     decimalString(d.PerMileRate),
			PerHourRate:     decimalString(d.PerHourRate),
			DefaultFixedPay: decimalString(d.DefaultFixedPay),
			TakeHomePercent: decimalString(d.TakeHomePercent),
		}
		if d.DefaultChargeType != nil {
			s := string(*d.DefaultChargeType)
			entry.DefaultChargeType = &s
		}
		res.Drivers = append(res.Drivers, entry)
	}

	writeJSON(w, r, http.StatusOK, res)
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
