package config

import (
	"strings"
	"testing"
)

// clearEnv blanks every recognized variable so a developer's shell or .env
// file cannot leak into the assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BQ_PROJECT_ID", "GOOGLE_APPLICATION_CREDENTIALS", "BQ_TABLE_REF",
		"BQ_LOCATION", "BQ_ROW_LIMIT", "PORT", "ALLOWED_ORIGIN",
		"EXPORT_BUCKET", "INSIGHT_MODEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.AllowedOrigin != "http://localhost:5177" {
		t.Errorf("AllowedOrigin = %q, want http://localhost:5177", cfg.AllowedOrigin)
	}
	if cfg.Location != "asia-south1" {
		t.Errorf("Location = %q, want asia-south1", cfg.Location)
	}
	if cfg.RowLimit != 10 {
		t.Errorf("RowLimit = %d, want 10", cfg.RowLimit)
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("BQ_PROJECT_ID", "acme-data")
	t.Setenv("BQ_TABLE_REF", "acme-data.dashboards.dashboard_data")
	t.Setenv("BQ_ROW_LIMIT", "25")
	t.Setenv("PORT", "8080")
	t.Setenv("ALLOWED_ORIGIN", "https://dashboard.example.com")

	cfg := Load()

	if cfg.ProjectID != "acme-data" {
		t.Errorf("ProjectID = %q, want acme-data", cfg.ProjectID)
	}
	if cfg.RowLimit != 25 {
		t.Errorf("RowLimit = %d, want 25", cfg.RowLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	opts := cfg.WarehouseOptions()
	if opts.TableRef != "acme-data.dashboards.dashboard_data" {
		t.Errorf("WarehouseOptions().TableRef = %q", opts.TableRef)
	}
	if opts.Location != "asia-south1" {
		t.Errorf("WarehouseOptions().Location = %q, want asia-south1", opts.Location)
	}
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("BQ_ROW_LIMIT", "lots")

	if cfg := Load(); cfg.RowLimit != 10 {
		t.Errorf("RowLimit = %d, want fallback 10", cfg.RowLimit)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ProjectID:     "acme-data",
			TableRef:      "acme-data.dashboards.dashboard_data",
			Location:      "asia-south1",
			RowLimit:      10,
			Port:          "3000",
			AllowedOrigin: "http://localhost:5177",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing project", func(c *Config) { c.ProjectID = "" }, "BQ_PROJECT_ID is required"},
		{"missing table ref", func(c *Config) { c.TableRef = "" }, "BQ_TABLE_REF is required"},
		{"malformed table ref", func(c *Config) { c.TableRef = "dashboard_data" }, "invalid table ref"},
		{"non-numeric port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"origin without scheme", func(c *Config) { c.AllowedOrigin = "localhost:5177" }, "invalid allowed origin"},
		{"empty origin", func(c *Config) { c.AllowedOrigin = "" }, "invalid allowed origin"},
		{"zero row limit", func(c *Config) { c.RowLimit = 0 }, "invalid row limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := &Config{Port: "x", AllowedOrigin: "y", RowLimit: 0}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil, want failure")
	}
	for _, want := range []string{"BQ_PROJECT_ID", "BQ_TABLE_REF", "invalid port", "invalid allowed origin", "invalid row limit"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q missing %q", err, want)
		}
	}
}
