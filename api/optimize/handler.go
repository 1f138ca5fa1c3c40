// Package optimize exposes the planning pipeline via POST /optimize.
package optimize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gasgrid/lcv-dispatch/core/ingest"
	"github.com/gasgrid/lcv-dispatch/core/logger"
	"github.com/gasgrid/lcv-dispatch/core/notify"
	"github.com/gasgrid/lcv-dispatch/core/plan"
)

// DateLayout is the expected format of selected_date.
const DateLayout = "2006-01-02"

// Request is the optimize request body.
type Request struct {
	SelectedDate       string   `json:"selected_date"`
	SelectedMGS        string   `json:"selected_mgs"`
	SelectedRequestIDs []string `json:"selected_request_ids"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

// NewHandler returns an HTTP handler running the dispatch pipeline. The
// source is re-read per call so newly ingested records are visible without a
// restart. A nil publisher disables plan publication.
func NewHandler(src ingest.Source, planner *plan.Planner, pub notify.Publisher, log logger.Logger) http.Handler {
	if pub == nil {
		pub = notify.NopPublisher{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		day, err := time.Parse(DateLayout, req.SelectedDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format, use YYYY-MM-DD")
			return
		}

		dataset, err := src.Load(r.Context())
		if err != nil {
			log.Errorf("load dataset: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to load dataset")
			return
		}
		requests, err := dataset.Filter(ingest.Scope{
			Date:       day,
			OriginSite: req.SelectedMGS,
			RequestIDs: req.SelectedRequestIDs,
		})
		if err != nil {
			if isScopeError(err) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			log.Errorf("filter dataset: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to filter dataset")
			return
		}

		res := planner.Plan(day, requests, dataset.Fleet)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := pub.PublishPlan(ctx, res); err != nil {
				log.Errorf("publish plan %s: %v", res.RunID, err)
			}
		}()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			log.Errorf("encode response: %v", err)
		}
	})
}

func isScopeError(err error) bool {
	return errors.Is(err, ingest.ErrNoDataForDate) ||
		errors.Is(err, ingest.ErrNoDataForSite) ||
		errors.Is(err, ingest.ErrNoMatchingRequests)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorBody{Detail: detail})
}
