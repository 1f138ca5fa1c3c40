package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gasgrid/lcv-dispatch/api/optimize"
	"github.com/gasgrid/lcv-dispatch/config"
	coremetrics "github.com/gasgrid/lcv-dispatch/core/metrics"
	"github.com/gasgrid/lcv-dispatch/core/notify"
	"github.com/gasgrid/lcv-dispatch/core/plan"
	"github.com/gasgrid/lcv-dispatch/infra/ingest"
	"github.com/gasgrid/lcv-dispatch/infra/logger"
	"github.com/gasgrid/lcv-dispatch/infra/metrics"
	"github.com/gasgrid/lcv-dispatch/infra/mqtt"
)

// Service wires the request source, planner, sinks and HTTP surface.
type Service struct {
	cfg       *config.Config
	handler   http.Handler
	publisher *mqtt.PahoPublisher
	log       logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	src, err := ingest.New(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("request source: %w", err)
	}

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken,
			cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var pub notify.Publisher = notify.NopPublisher{}
	var paho *mqtt.PahoPublisher
	if cfg.MQTT.Enabled {
		paho, err = mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		pub = paho
	}

	planner := plan.New(cfg.Planner, logger.New("planner"), sink)
	mux := http.NewServeMux()
	mux.Handle("/optimize", optimize.NewHandler(src, planner, pub, logger.New("api")))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &Service{cfg: cfg, handler: mux, publisher: paho, log: logg}, nil
}

// Handler exposes the HTTP surface, mainly for tests.
func (s *Service) Handler() http.Handler { return s.handler }

// Run starts the HTTP servers and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}()
	s.log.Infof("listening on %s", s.cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Close()
	}
	return nil
}
