package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gasgrid/lcv-dispatch/core/metrics"
	"github.com/gasgrid/lcv-dispatch/core/plan"
	"github.com/gasgrid/lcv-dispatch/infra/ingest"
	"github.com/gasgrid/lcv-dispatch/infra/mqtt"
)

// Config is the root service configuration.
type Config struct {
	Server  ServerConfig   `json:"server"`
	Source  ingest.Config  `json:"source"`
	Planner plan.Config    `json:"planner"`
	Metrics metrics.Config `json:"metrics"`
	MQTT    mqtt.Config    `json:"mqtt"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Load reads the configuration file, applying LCV_-prefixed environment
// overrides on top.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("LCV_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "lcv_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Server.SetDefaults()
	cfg.Source.SetDefaults()
	cfg.Planner.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	if err := cfg.Source.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
