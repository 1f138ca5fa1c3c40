package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/gasgrid/lcv-dispatch/core/ingest"
	"github.com/gasgrid/lcv-dispatch/core/model"
	"github.com/gasgrid/lcv-dispatch/infra/logger"
)

// PostgresSource loads request records from a Postgres table. The table is
// expected to hold already-normalized columns; rows with NULL required
// fields are excluded by the query itself.
type PostgresSource struct {
	db    *sql.DB
	table string
	log   logger.Logger
}

// requestColumns is the fixed projection read from the table.
const requestColumns = "request_id, route_id, mgs, dbs, lcv_id, create_date, distance, duration"

// NewPostgresSource opens a connection pool for the given DSN.
func NewPostgresSource(dsn, table string) (*PostgresSource, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("verify postgres connection: %w", err)
	}
	return &PostgresSource{db: db, table: table, log: logger.New("postgres-source")}, nil
}

// Load implements ingest.Source.
func (s *PostgresSource) Load(ctx context.Context) (ingest.Dataset, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s
		 WHERE request_id IS NOT NULL AND route_id IS NOT NULL
		   AND mgs IS NOT NULL AND dbs IS NOT NULL AND lcv_id IS NOT NULL
		   AND create_date IS NOT NULL AND distance IS NOT NULL AND duration IS NOT NULL
		 ORDER BY create_date`, requestColumns, s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return ingest.Dataset{}, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	var (
		requests []model.Request
		vehicles []string
	)
	for rows.Next() {
		var (
			req       model.Request
			vehicleID string
		)
		if err := rows.Scan(&req.ID, &req.RouteID, &req.OriginSite, &req.DestSite,
			&vehicleID, &req.CreateDate, &req.DistanceKm, &req.DurationMin); err != nil {
			return ingest.Dataset{}, fmt.Errorf("scan %s: %w", s.table, err)
		}
		if err := req.Validate(); err != nil {
			s.log.Warnf("row dropped: %v", err)
			continue
		}
		requests = append(requests, req)
		vehicles = append(vehicles, vehicleID)
	}
	if err := rows.Err(); err != nil {
		return ingest.Dataset{}, fmt.Errorf("iterate %s: %w", s.table, err)
	}
	return ingest.Dataset{Requests: requests, Fleet: model.NewFleet(vehicles)}, nil
}

// Close releases the connection pool.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}
