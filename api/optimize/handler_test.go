package optimize

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gasgrid/lcv-dispatch/core/ingest"
	"github.com/gasgrid/lcv-dispatch/core/model"
	"github.com/gasgrid/lcv-dispatch/core/notify"
	"github.com/gasgrid/lcv-dispatch/core/plan"
	"github.com/gasgrid/lcv-dispatch/infra/logger"
)

type staticSource struct {
	ds  ingest.Dataset
	err error
}

func (s staticSource) Load(context.Context) (ingest.Dataset, error) {
	return s.ds, s.err
}

func testSource() staticSource {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	return staticSource{ds: ingest.Dataset{
		Requests: []model.Request{
			{ID: "r1", RouteID: "A", OriginSite: "MGS-1", DestSite: "DBS-1", CreateDate: day.Add(8 * time.Hour), DistanceKm: 10, DurationMin: 30},
			{ID: "r2", RouteID: "B", OriginSite: "MGS-1", DestSite: "DBS-2", CreateDate: day.Add(9 * time.Hour), DistanceKm: 20, DurationMin: 45},
		},
		Fleet: model.NewFleet([]string{"V1", "V2"}),
	}}
}

func newTestHandler(src ingest.Source, pub notify.Publisher) http.Handler {
	planner := plan.New(plan.Config{Seed: 42}, logger.NopLogger{}, nil)
	return NewHandler(src, planner, pub, logger.NopLogger{})
}

func post(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/optimize", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	h := newTestHandler(testSource(), nil)
	req := httptest.NewRequest(http.MethodGet, "/optimize", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestHandlerInvalidDate(t *testing.T) {
	h := newTestHandler(testSource(), nil)
	rec := post(t, h, Request{SelectedDate: "14/03/2025", SelectedMGS: "MGS-1", SelectedRequestIDs: []string{"r1"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body)
	}
}

func TestHandlerScopeErrorsMapTo404(t *testing.T) {
	h := newTestHandler(testSource(), nil)
	cases := []Request{
		{SelectedDate: "2025-03-20", SelectedMGS: "MGS-1", SelectedRequestIDs: []string{"r1"}},
		{SelectedDate: "2025-03-14", SelectedMGS: "MGS-9", SelectedRequestIDs: []string{"r1"}},
		{SelectedDate: "2025-03-14", SelectedMGS: "MGS-1", SelectedRequestIDs: []string{"r9"}},
	}
	for i, c := range cases {
		if rec := post(t, h, c); rec.Code != http.StatusNotFound {
			t.Fatalf("case %d: code = %d body=%s", i, rec.Code, rec.Body)
		}
	}
}

func TestHandlerSuccess(t *testing.T) {
	pub := &notify.MockPublisher{}
	h := newTestHandler(testSource(), pub)
	rec := post(t, h, Request{SelectedDate: "2025-03-14", SelectedMGS: "MGS-1", SelectedRequestIDs: []string{"r1", "r2"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body)
	}
	var res plan.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.OptimalSchedule) != 2 || len(res.SimulationTimeline) != 2 {
		t.Fatalf("schedule=%d timeline=%d", len(res.OptimalSchedule), len(res.SimulationTimeline))
	}
	if res.OptimalSchedule[0].RequestID != "r1" || res.OptimalSchedule[0].StartTime != "2025-03-14 08:00:00" {
		t.Fatalf("bad first entry %#v", res.OptimalSchedule[0])
	}
	// Plan publication happens off the request path.
	deadline := time.Now().Add(2 * time.Second)
	for len(pub.Published()) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("plan never published")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := pub.Published(); got[0].RunID != res.RunID {
		t.Fatalf("published run %s, want %s", got[0].RunID, res.RunID)
	}
}

func TestHandlerSourceFailure(t *testing.T) {
	h := newTestHandler(staticSource{err: context.DeadlineExceeded}, nil)
	rec := post(t, h, Request{SelectedDate: "2025-03-14", SelectedMGS: "MGS-1", SelectedRequestIDs: []string{"r1"}})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rec.Code)
	}
}
