package cfg

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type DuffelConfig struct {
	APIKey     string
	BaseURL    string
	APIVersion string
}

type PolicyConfig struct {
	AllowedOrigins       []string
	DestinationPool      []string
	PriceCeilingAmount   float64
	PriceCeilingCurrency string
	PreferHoldEligible   bool
}

type ObservabilityConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

type Config struct {
	AppEnv            string
	AppPort           string
	DuffelConfig      DuffelConfig
	PolicyConfig      PolicyConfig
	Observability     ObservabilityConfig
	SearchFanoutLimit int
	NodeID            int64
}

// Load resolves all configuration from the environment once at process
// start. The returned Config is treated as immutable afterwards.
func Load() (*Config, error) {
	var errs []error

	// A missing .env file is fine in deployed environments.
	_ = godotenv.Load()

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)
	duffelAPIKey := mustEnv("DUFFEL_API_KEY", &errs)
	destinationPool := splitList(mustEnv("DESTINATION_POOL", &errs))

	duffelBaseURL := envOr("DUFFEL_API_BASE_URL", "https://api.duffel.com")
	duffelAPIVersion := envOr("DUFFEL_API_VERSION", "v2")
	allowedOrigins := splitList(os.Getenv("ALLOWED_ORIGINS"))
	ceilingCurrency := envOr("PRICE_CEILING_CURRENCY", "USD")
	otlpEndpoint := os.Getenv("OTLP_ENDPOINT")

	ceilingAmount := floatEnv("PRICE_CEILING_AMOUNT", 0, &errs)
	preferHold := boolEnv("PREFER_HOLD_ELIGIBLE", false, &errs)
	fanoutLimit := intEnv("SEARCH_FANOUT_LIMIT", 3, &errs)
	nodeID := intEnv("NODE_ID", 1, &errs)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:  appEnv,
		AppPort: appPort,
		DuffelConfig: DuffelConfig{
			APIKey:     duffelAPIKey,
			BaseURL:    duffelBaseURL,
			APIVersion: duffelAPIVersion,
		},
		PolicyConfig: PolicyConfig{
			AllowedOrigins:       allowedOrigins,
			DestinationPool:      destinationPool,
			PriceCeilingAmount:   ceilingAmount,
			PriceCeilingCurrency: ceilingCurrency,
			PreferHoldEligible:   preferHold,
		},
		Observability: ObservabilityConfig{
			OTLPEndpoint: otlpEndpoint,
			ServiceName:  "duffel-backend",
		},
		SearchFanoutLimit: fanoutLimit,
		NodeID:            int64(nodeID),
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return parsed
}

func floatEnv(key string, fallback float64, errs *[]error) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return parsed
}

func boolEnv(key string, fallback bool, errs *[]error) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return parsed
}

// splitList parses a comma-separated env value into trimmed upper-case
// IATA codes, dropping empty entries.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		code := strings.ToUpper(strings.TrimSpace(p))
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
