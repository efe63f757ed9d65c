package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration invalid: %v", err)
	}

	if len(cfg.Chart.ClassicURLs) == 0 || len(cfg.Chart.PaginationQueries) == 0 || len(cfg.Chart.AltEndpoints) == 0 {
		t.Error("default endpoint lists must not be empty")
	}
	if cfg.Chart.GoodEnough != 200 {
		t.Errorf("good_enough = %d, want 200", cfg.Chart.GoodEnough)
	}
	for _, u := range cfg.Chart.AltEndpoints {
		if !strings.HasPrefix(u, "http") {
			t.Errorf("alt endpoint %q is not absolute", u)
		}
	}
}

func TestLoad_NilViperGivesDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://www.imdb.com" {
		t.Errorf("base URL = %q", cfg.BaseURL)
	}
}

func TestLoad_OverlaysViperValues(t *testing.T) {
	v := viper.New()
	v.Set("base_url", "https://imdb.example")
	v.Set("http.retries", 5)
	v.Set("http.timeout", "30s")
	v.Set("output.file", "chart.csv")

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://imdb.example" {
		t.Errorf("base URL = %q", cfg.BaseURL)
	}
	if cfg.HTTP.Retries != 5 {
		t.Errorf("retries = %d, want 5", cfg.HTTP.Retries)
	}
	if cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.HTTP.Timeout)
	}
	if cfg.Output.File != "chart.csv" {
		t.Errorf("output file = %q", cfg.Output.File)
	}
	// Untouched values keep their defaults.
	if cfg.Chart.GoodEnough != 200 {
		t.Errorf("good_enough = %d, want default 200", cfg.Chart.GoodEnough)
	}
}

func TestLoad_OverlaysEnvironmentValues(t *testing.T) {
	t.Setenv("IMDB_TOP250_BASE_URL", "https://env.example")
	t.Setenv("IMDB_TOP250_HTTP_RETRIES", "7")
	t.Setenv("IMDB_TOP250_OUTPUT_FILE", "env.csv")

	v := viper.New()
	v.SetEnvPrefix("IMDB_TOP250")
	v.AutomaticEnv()

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://env.example" {
		t.Errorf("base URL = %q, want https://env.example", cfg.BaseURL)
	}
	if cfg.HTTP.Retries != 7 {
		t.Errorf("retries = %d, want 7", cfg.HTTP.Retries)
	}
	if cfg.Output.File != "env.csv" {
		t.Errorf("output file = %q, want env.csv", cfg.Output.File)
	}
	// Unset keys keep their defaults.
	if cfg.Chart.GoodEnough != 200 {
		t.Errorf("good_enough = %d, want default 200", cfg.Chart.GoodEnough)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero retries", func(c *Config) { c.HTTP.Retries = 0 }},
		{"zero good enough", func(c *Config) { c.Chart.GoodEnough = 0 }},
		{"negative sweep threshold", func(c *Config) { c.Parse.SweepThreshold = -1 }},
		{"negative script threshold", func(c *Config) { c.Parse.ScriptThreshold = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("want validation error")
			}
		})
	}
}

func TestLoad_RejectsInvalidOverlay(t *testing.T) {
	v := viper.New()
	v.Set("http.retries", 0)

	if _, err := Load(v); err == nil {
		t.Fatal("want error for zero retries")
	}
}
