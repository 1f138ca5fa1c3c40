package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gasgrid/lcv-dispatch/core/ingest"
	"github.com/gasgrid/lcv-dispatch/core/model"
	"github.com/gasgrid/lcv-dispatch/infra/logger"
)

// Historical exports spell headers inconsistently; each logical field accepts
// every spelling seen in the wild. Matching is case-insensitive on top.
var columnAliases = map[string][]string{
	"request_id":  {"Request_id", "Request_ID"},
	"route_id":    {"Route_id", "Route_ID"},
	"mgs":         {"MGS", "mgs"},
	"dbs":         {"DBS", "dbs"},
	"lcv_id":      {"lcv_id", "LCV_ID"},
	"create_date": {"create_date", "Create_Date"},
	"distance":    {"Distance", "distance"},
	"duration":    {"Duration", "duration"},
}

// dateLayouts are tried in order when parsing creation timestamps.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// CSVSource loads request records from a CSV export. Rows missing any
// required field, or carrying unparsable numbers or dates, are dropped with
// a warning, mirroring how upstream exports are cleaned.
type CSVSource struct {
	path string
	log  logger.Logger
}

// NewCSVSource creates a source reading from the given file path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path, log: logger.New("csv-source")}
}

// Load implements ingest.Source.
func (s *CSVSource) Load(ctx context.Context) (ingest.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return ingest.Dataset{}, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return ingest.Dataset{}, fmt.Errorf("open dataset %q: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return ingest.Dataset{}, fmt.Errorf("read dataset %q: %w", s.path, err)
	}
	if len(rows) == 0 {
		return ingest.Dataset{}, fmt.Errorf("dataset %q has no header row", s.path)
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return ingest.Dataset{}, fmt.Errorf("dataset %q: %w", s.path, err)
	}

	var (
		requests []model.Request
		vehicles []string
		dropped  int
	)
	for i, row := range rows[1:] {
		req, vehicleID, err := parseRow(row, cols)
		if err != nil {
			dropped++
			s.log.Warnf("row %d dropped: %v", i+2, err)
			continue
		}
		requests = append(requests, req)
		vehicles = append(vehicles, vehicleID)
	}
	if dropped > 0 {
		s.log.Infof("loaded %d requests, dropped %d incomplete rows", len(requests), dropped)
	}
	return ingest.Dataset{Requests: requests, Fleet: model.NewFleet(vehicles)}, nil
}

// mapColumns resolves each logical field to a column index via its aliases.
func mapColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cols := make(map[string]int, len(columnAliases))
	for field, aliases := range columnAliases {
		found := false
		for _, alias := range aliases {
			if i, ok := index[strings.ToLower(alias)]; ok {
				cols[field] = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("missing column %q (accepted: %s)", field, strings.Join(columnAliases[field], ", "))
		}
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int) (model.Request, string, error) {
	get := func(field string) (string, error) {
		i := cols[field]
		if i >= len(row) {
			return "", fmt.Errorf("short row: no %s", field)
		}
		v := strings.TrimSpace(row[i])
		if v == "" {
			return "", fmt.Errorf("empty %s", field)
		}
		return v, nil
	}

	var req model.Request
	var err error
	if req.ID, err = get("request_id"); err != nil {
		return model.Request{}, "", err
	}
	if req.RouteID, err = get("route_id"); err != nil {
		return model.Request{}, "", err
	}
	if req.OriginSite, err = get("mgs"); err != nil {
		return model.Request{}, "", err
	}
	if req.DestSite, err = get("dbs"); err != nil {
		return model.Request{}, "", err
	}
	vehicleID, err := get("lcv_id")
	if err != nil {
		return model.Request{}, "", err
	}

	rawDate, err := get("create_date")
	if err != nil {
		return model.Request{}, "", err
	}
	if req.CreateDate, err = parseDate(rawDate); err != nil {
		return model.Request{}, "", err
	}

	rawDist, err := get("distance")
	if err != nil {
		return model.Request{}, "", err
	}
	if req.DistanceKm, err = strconv.ParseFloat(rawDist, 64); err != nil {
		return model.Request{}, "", fmt.Errorf("distance %q: %w", rawDist, err)
	}
	rawDur, err := get("duration")
	if err != nil {
		return model.Request{}, "", err
	}
	if req.DurationMin, err = strconv.ParseFloat(rawDur, 64); err != nil {
		return model.Request{}, "", fmt.Errorf("duration %q: %w", rawDur, err)
	}

	if err := req.Validate(); err != nil {
		return model.Request{}, "", err
	}
	return req, vehicleID, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", raw)
}
