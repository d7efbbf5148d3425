// handlers/vacations.go - Time-off passthrough
package handlers

import (
	"net/http"
	"time"
)

// Vacations proxies a time-off range query to the external provider
// through the token-cached client.
func (h *Handler) Vacations(w http.ResponseWriter, r *http.Request) {
	if h.TimeOff == nil {
		respondError(w, http.StatusServiceUnavailable, "vacation provider not configured")
		return
	}

	q := r.URL.Query()
	start, err := time.Parse(dayFormat, q.Get("start"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid start")
		return
	}
	end, err := time.Parse(dayFormat, q.Get("end"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid end")
		return
	}
	if end.Before(start) {
		respondError(w, http.StatusBadRequest, "end before start")
		return
	}

	records, err := h.TimeOff.TimeOffRecords(r.Context(), start, end)
	if err != nil {
		h.Log.Errorw("time-off fetch failed", "err", err)
		respondError(w, http.StatusBadGateway, "failed to fetch time-off records")
		return
	}
	respondJSON(w, http.StatusOK, records)
}
