// Package config loads the externally supplied settings for the gateway.
// Warehouse identifiers, credential locations and the allowed browser origin
// are deployment concerns, not business logic, so they only ever enter the
// program through here.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/dkapoor/netsales-dashboard/internal/warehouse"
)

// Config holds all recognized settings.
type Config struct {
	// ProjectID is the warehouse project identifier (BQ_PROJECT_ID).
	ProjectID string
	// CredentialsPath points at the service-account key file
	// (GOOGLE_APPLICATION_CREDENTIALS); empty means ADC.
	CredentialsPath string
	// TableRef is the fully-qualified project.dataset.table the fixed query
	// reads (BQ_TABLE_REF).
	TableRef string
	// Location is the query execution-region hint (BQ_LOCATION).
	Location string
	// RowLimit caps the fixed query's result set (BQ_ROW_LIMIT).
	RowLimit int

	// Port is the HTTP listening port (PORT).
	Port string
	// AllowedOrigin is the single browser origin permitted by CORS
	// (ALLOWED_ORIGIN). The gateway never allows all origins.
	AllowedOrigin string

	// ExportBucket enables snapshot export to GCS when set (EXPORT_BUCKET).
	ExportBucket string
	// InsightModel enables the Gemini insight summary when set
	// (INSIGHT_MODEL), e.g. "gemini-2.5-flash".
	InsightModel string
}

// Load reads configuration from the environment, with a .env file honored for
// local development.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ProjectID:       os.Getenv("BQ_PROJECT_ID"),
		CredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		TableRef:        os.Getenv("BQ_TABLE_REF"),
		Location:        getEnv("BQ_LOCATION", warehouse.DefaultLocation),
		RowLimit:        getEnvInt("BQ_ROW_LIMIT", warehouse.DefaultRowLimit),

		Port:          getEnv("PORT", "3000"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5177"),

		ExportBucket: os.Getenv("EXPORT_BUCKET"),
		InsightModel: os.Getenv("INSIGHT_MODEL"),
	}
}

// Validate returns an error describing every invalid or missing setting.
func (c *Config) Validate() error {
	var problems []string

	if c.ProjectID == "" {
		problems = append(problems, "BQ_PROJECT_ID is required")
	}

	if c.TableRef == "" {
		problems = append(problems, "BQ_TABLE_REF is required")
	} else if strings.Count(c.TableRef, ".") != 2 {
		problems = append(problems, fmt.Sprintf("invalid table ref %q: want project.dataset.table", c.TableRef))
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if u, err := url.Parse(c.AllowedOrigin); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid allowed origin %q: want scheme://host[:port]", c.AllowedOrigin))
	}

	if c.RowLimit < 1 {
		problems = append(problems, fmt.Sprintf("invalid row limit %d: must be positive", c.RowLimit))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// WarehouseOptions maps the config onto the warehouse client's options.
func (c *Config) WarehouseOptions() warehouse.Options {
	return warehouse.Options{
		ProjectID:       c.ProjectID,
		CredentialsPath: c.CredentialsPath,
		TableRef:        c.TableRef,
		Location:        c.Location,
		RowLimit:        c.RowLimit,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
