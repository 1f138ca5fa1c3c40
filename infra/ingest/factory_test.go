package ingest

import "testing"

func TestFactoryDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	if cfg.Backend != "csv" || cfg.Path != "data.csv" || cfg.Table != "dispatch_requests" {
		t.Fatalf("bad defaults %#v", cfg)
	}
}

func TestFactoryValidate(t *testing.T) {
	if err := (Config{Backend: "csv", Path: "x.csv"}).Validate(); err != nil {
		t.Fatalf("csv: %v", err)
	}
	if err := (Config{Backend: "csv"}).Validate(); err == nil {
		t.Fatalf("csv without path accepted")
	}
	if err := (Config{Backend: "postgres"}).Validate(); err == nil {
		t.Fatalf("postgres without dsn accepted")
	}
	if err := (Config{Backend: "excel"}).Validate(); err == nil {
		t.Fatalf("unknown backend accepted")
	}
}

func TestFactoryBuildsCSVSource(t *testing.T) {
	src, err := New(Config{Backend: "csv", Path: "x.csv"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := src.(*CSVSource); !ok {
		t.Fatalf("got %T", src)
	}
}
